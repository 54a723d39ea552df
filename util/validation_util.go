// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/f4lcon-tech/aqari/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateExpense(input model.ExpenseInput) error {
	if input.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	if !contains(viper.GetStringSlice("expenses.scopes"), input.LinkType) {
		return fmt.Errorf("unknown expense link type: %s", input.LinkType)
	}
	if input.PayerRole != "" && !contains(viper.GetStringSlice("expenses.payers"), input.PayerRole) {
		return fmt.Errorf("unknown expense payer role: %s", input.PayerRole)
	}
	switch input.LinkType {
	case "عقار":
		if input.PropertyID == nil {
			return fmt.Errorf("property-linked expense requires property_id")
		}
	case "وحدة":
		if input.UnitID == nil {
			return fmt.Errorf("unit-linked expense requires unit_id")
		}
	case "عقد":
		if input.ContractID == nil {
			return fmt.Errorf("contract-linked expense requires contract_id")
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateMaintenance(input model.MaintenanceInput) error {
	if input.Title == "" {
		return fmt.Errorf("maintenance title cannot be empty")
	}
	if input.Cost < 0 {
		return fmt.Errorf("maintenance cost cannot be negative")
	}
	if input.PropertyID == nil && input.UnitID == nil {
		return fmt.Errorf("maintenance request must reference a property or a unit")
	}
	return nil
}

func (v *ValidationUtil) ValidateEvent(input model.EventInput) error {
	if input.EventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	return nil
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// api/model/input.go
package model

// ExpenseInput is the creation payload for an expense. LinkType selects
// what the expense is attached to and drives which of the id fields must
// be present; PayerRole selects the paying party label.
type ExpenseInput struct {
	LinkType    string  `json:"link_type" binding:"required"`
	PropertyID  *int    `json:"property_id"`
	UnitID      *int    `json:"unit_id"`
	ContractID  *int    `json:"contract_id"`
	Amount      float64 `json:"amount" binding:"required"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	PayerRole   string  `json:"role"`
}

// MaintenanceInput is the creation/update payload for a maintenance
// request.
type MaintenanceInput struct {
	PropertyID  *int    `json:"property_id"`
	UnitID      *int    `json:"unit_id"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Cost        float64 `json:"cost"`
}

// SwitchRoleInput is the role switch request payload.
type SwitchRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// ProfileInput is the partial profile update payload. Nil fields keep
// their stored value.
type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

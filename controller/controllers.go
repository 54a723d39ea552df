// api/controller/controllers.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
)

type Controllers struct {
	Auth        *AuthController
	Permission  *PermissionController
	Contract    *ContractController
	Payment     *PaymentController
	Expense     *ExpenseController
	Maintenance *MaintenanceController
	Event       *EventController
	Analytics   *AnalyticsController
	Audit       *AuditController
}

// respondListError maps a listing failure to its status. A role with no
// scoping rule gets a forbidden answer, never an empty success page.
func respondListError(c *gin.Context, message string, err error) {
	if errors.Is(err, aqari_errors.ErrAuthorizationDenied) {
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		return
	}
	util.RespondWithError(c, http.StatusInternalServerError, message, err)
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Auth:        NewAuthController(services.Auth, services.Permission),
		Permission:  NewPermissionController(services.Permission),
		Contract:    NewContractController(services.Resource),
		Payment:     NewPaymentController(services.Resource),
		Expense:     NewExpenseController(services.Resource),
		Maintenance: NewMaintenanceController(services.Resource),
		Event:       NewEventController(services.Telemetry),
		Analytics:   NewAnalyticsController(services.Analytics),
		Audit:       NewAuditController(services.Audit),
	}
}

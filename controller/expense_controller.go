// api/controller/expense_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
	helper_util "github.com/f4lcon-tech/aqari/api/util/helper"
)

type ExpenseController struct {
	resourceService service.ResourceService
}

func NewExpenseController(resourceService service.ResourceService) *ExpenseController {
	return &ExpenseController{resourceService: resourceService}
}

// RegisterRoutes registers the API routes for expenses
func (ec *ExpenseController) RegisterRoutes(r *gin.RouterGroup) {
	expenses := r.Group("/expenses")
	{
		expenses.GET("/my", ec.ListExpenses)
		expenses.POST("", ec.CreateExpense)
	}
}

// ListExpenses endpoint returns the expenses visible to the actor
func (ec *ExpenseController) ListExpenses(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	expenses, total, err := ec.resourceService.ListExpenses(c, actor, limit, offset)
	if err != nil {
		respondListError(c, "Failed to list expenses", err)
		return
	}
	util.RespondWithList(c, expenses, total)
}

// CreateExpense endpoint
func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	var input model.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid expense data", err)
		return
	}

	expense, err := ec.resourceService.CreateExpense(c, actor, input)
	if err != nil {
		switch {
		case errors.Is(err, aqari_errors.ErrInvalidRequestData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid expense data", err)
		case errors.Is(err, aqari_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		}
		return
	}
	util.RespondWithData(c, http.StatusCreated, expense)
}

// api/controller/payment_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
	helper_util "github.com/f4lcon-tech/aqari/api/util/helper"
)

type PaymentController struct {
	resourceService service.ResourceService
}

func NewPaymentController(resourceService service.ResourceService) *PaymentController {
	return &PaymentController{resourceService: resourceService}
}

// RegisterRoutes registers the API routes for payments
func (pc *PaymentController) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.GET("/my", pc.ListPayments)
	}
}

// ListPayments endpoint returns the payments visible to the actor
func (pc *PaymentController) ListPayments(c *gin.Context) {
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

	payments, total, err := pc.resourceService.ListPayments(c, actor, limit, offset)
	if err != nil {
		respondListError(c, "Failed to list payments", err)
		return
	}
	util.RespondWithList(c, payments, total)
}

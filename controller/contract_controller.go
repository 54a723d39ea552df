// api/controller/contract_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
	helper_util "github.com/f4lcon-tech/aqari/api/util/helper"
)

type ContractController struct {
	resourceService service.ResourceService
}

func NewContractController(resourceService service.ResourceService) *ContractController {
	return &ContractController{resourceService: resourceService}
}

// RegisterRoutes registers the API routes for contracts
func (cc *ContractController) RegisterRoutes(r *gin.RouterGroup) {
	contracts := r.Group("/contracts")
	{
		contracts.GET("/my", cc.ListContracts)
	}
}

// ListContracts endpoint returns the contracts visible to the actor
func (cc *ContractController) ListContracts(c *gin.Context) {
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

	contracts, total, err := cc.resourceService.ListContracts(c, actor, limit, offset)
	if err != nil {
		respondListError(c, "Failed to list contracts", err)
		return
	}
	util.RespondWithList(c, contracts, total)
}

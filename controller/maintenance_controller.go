// api/controller/maintenance_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
	helper_util "github.com/f4lcon-tech/aqari/api/util/helper"
)

type MaintenanceController struct {
	resourceService service.ResourceService
}

func NewMaintenanceController(resourceService service.ResourceService) *MaintenanceController {
	return &MaintenanceController{resourceService: resourceService}
}

// RegisterRoutes registers the API routes for maintenance requests
func (mc *MaintenanceController) RegisterRoutes(r *gin.RouterGroup) {
	maintenance := r.Group("/maintenance")
	{
		maintenance.GET("", mc.ListMaintenance)
		maintenance.POST("", mc.CreateMaintenance)
		maintenance.GET("/:id", mc.GetMaintenance)
		maintenance.PUT("/:id", mc.UpdateMaintenance)
		maintenance.DELETE("/:id", mc.DeleteMaintenance)
	}
}

// ListMaintenance endpoint returns the requests visible to the actor
func (mc *MaintenanceController) ListMaintenance(c *gin.Context) {
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

	requests, total, err := mc.resourceService.ListMaintenance(c, actor, limit, offset)
	if err != nil {
		respondListError(c, "Failed to list maintenance requests", err)
		return
	}
	util.RespondWithList(c, requests, total)
}

// CreateMaintenance endpoint
func (mc *MaintenanceController) CreateMaintenance(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	var input model.MaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance data", err)
		return
	}

	request, err := mc.resourceService.CreateMaintenance(c, actor, input)
	if err != nil {
		if errors.Is(err, aqari_errors.ErrDatabaseOperation) {
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		} else {
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		}
		return
	}
	util.RespondWithData(c, http.StatusCreated, request)
}

// GetMaintenance endpoint
func (mc *MaintenanceController) GetMaintenance(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance id", err)
		return
	}

	request, err := mc.resourceService.GetMaintenance(c, actor, requestID)
	if err != nil {
		if errors.Is(err, aqari_errors.ErrRecordNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Maintenance request not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load maintenance request", err)
		}
		return
	}
	util.RespondWithData(c, http.StatusOK, request)
}

// UpdateMaintenance endpoint
func (mc *MaintenanceController) UpdateMaintenance(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance id", err)
		return
	}

	var input model.MaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance data", err)
		return
	}

	if err := mc.resourceService.UpdateMaintenance(c, actor, requestID, input); err != nil {
		switch {
		case errors.Is(err, aqari_errors.ErrRecordNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Maintenance request not found", err)
		case errors.Is(err, aqari_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		}
		return
	}
	util.RespondWithData(c, http.StatusOK, gin.H{"id": requestID})
}

// DeleteMaintenance endpoint
func (mc *MaintenanceController) DeleteMaintenance(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance id", err)
		return
	}

	if err := mc.resourceService.DeleteMaintenance(c, actor, requestID); err != nil {
		if errors.Is(err, aqari_errors.ErrRecordNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Maintenance request not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete maintenance request", err)
		}
		return
	}
	util.RespondWithData(c, http.StatusOK, gin.H{"id": requestID})
}

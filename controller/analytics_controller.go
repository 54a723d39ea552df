// api/controller/analytics_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// RegisterRoutes registers the admin analytics routes
func (ac *AnalyticsController) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/overview", ac.Overview)
		analytics.GET("/offices", ac.OfficesActivity)
		analytics.GET("/features", ac.TopFeatures)
		analytics.GET("/offices/:id", ac.OfficeDetails)
	}
}

// Overview endpoint
func (ac *AnalyticsController) Overview(c *gin.Context) {
	overview, err := ac.analyticsService.Overview(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load usage overview", err)
		return
	}
	util.RespondWithData(c, http.StatusOK, overview)
}

// OfficesActivity endpoint
func (ac *AnalyticsController) OfficesActivity(c *gin.Context) {
	offices, err := ac.analyticsService.OfficesActivity(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load office activity", err)
		return
	}
	util.RespondWithList(c, offices, len(offices))
}

// TopFeatures endpoint
func (ac *AnalyticsController) TopFeatures(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	features, err := ac.analyticsService.TopFeatures(c, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load feature usage", err)
		return
	}
	util.RespondWithList(c, features, len(features))
}

// OfficeDetails endpoint
func (ac *AnalyticsController) OfficeDetails(c *gin.Context) {
	officeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid office id", err)
		return
	}

	details, err := ac.analyticsService.OfficeDetails(c, officeID)
	if err != nil {
		if errors.Is(err, aqari_errors.ErrOfficeNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Office not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load office details", err)
		}
		return
	}
	util.RespondWithData(c, http.StatusOK, details)
}

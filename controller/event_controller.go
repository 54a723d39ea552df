// api/controller/event_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/telemetry"
	"github.com/f4lcon-tech/aqari/api/util"
)

type EventController struct {
	telemetryService *telemetry.Service
}

func NewEventController(telemetryService *telemetry.Service) *EventController {
	return &EventController{telemetryService: telemetryService}
}

// RegisterRoutes registers the API routes for telemetry events
func (ec *EventController) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	{
		events.POST("", ec.RecordEvent)
	}
}

// RecordEvent endpoint. A policy-dropped event still answers success so
// clients never branch on recording outcomes.
func (ec *EventController) RecordEvent(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	var input model.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid event data", err)
		return
	}
	input.Metadata = withRequestMetadata(c, input.Metadata)

	// Telemetry is best effort: a storage failure stays in the logs and
	// the client still gets a success envelope.
	recorded, err := ec.telemetryService.Record(c, actor, input)
	if err != nil {
		logger.Warn("Event recording failed",
			zap.Error(err),
			zap.String("eventType", input.EventType),
			zap.Int("userID", actor.UserID))
		recorded = false
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recorded": recorded})
}

// withRequestMetadata folds the request context under the caller's
// metadata; explicit keys win over the defaults.
func withRequestMetadata(c *gin.Context, metadata model.JSONMap) model.JSONMap {
	merged := model.JSONMap{
		"route":      c.Request.URL.Path,
		"method":     c.Request.Method,
		"ip":         c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	}
	for k, v := range metadata {
		merged[k] = v
	}
	return merged
}

// api/middleware/audit.go

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/dao"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

// AuditRecorder observes every mutating request and publishes an audit
// record after the response is written. Recording can only fail into the
// logs; the primary request never sees an audit error.
type AuditRecorder struct {
	resourceDAO *dao.ResourceDAO
	bus         *util.EventBus
}

func NewAuditRecorder(resourceDAO *dao.ResourceDAO, bus *util.EventBus) *AuditRecorder {
	return &AuditRecorder{resourceDAO: resourceDAO, bus: bus}
}

var mutatingMethods = map[string]string{
	http.MethodPost:   model.AuditActionInsert,
	http.MethodPut:    model.AuditActionUpdate,
	http.MethodPatch:  model.AuditActionUpdate,
	http.MethodDelete: model.AuditActionDelete,
}

// Handler returns the gin middleware. Reads pass through untouched.
func (r *AuditRecorder) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		action, mutating := mutatingMethods[c.Request.Method]
		path := c.Request.URL.Path
		if !mutating {
			c.Next()
			return
		}

		resource := model.ResourceForRoute(tableSegment(path))
		recordID := lastNumericSegment(path)

		// Snapshot the row before the handler can change or remove it.
		var oldData model.JSONMap
		if action != model.AuditActionInsert && recordID != nil && model.IsKnownResource(resource) {
			snapshot, err := r.resourceDAO.Snapshot(c, resource, *recordID)
			if err != nil {
				logger.Debug("Audit snapshot unavailable",
					zap.Error(err),
					zap.String("resource", string(resource)),
					zap.Int("recordID", *recordID))
			} else {
				oldData = snapshot
			}
		}

		var requestBody model.JSONMap
		if action == model.AuditActionInsert && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				if err := json.Unmarshal(bodyBytes, &requestBody); err != nil {
					requestBody = nil
				}
			}
		}

		start := time.Now()
		c.Next()

		// Failed requests changed nothing worth recording.
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var newData model.JSONMap
		switch action {
		case model.AuditActionInsert:
			newData = requestBody
		case model.AuditActionUpdate:
			if recordID != nil && model.IsKnownResource(resource) {
				snapshot, err := r.resourceDAO.Snapshot(c, resource, *recordID)
				if err != nil {
					logger.Debug("Audit post-update snapshot unavailable",
						zap.Error(err),
						zap.String("resource", string(resource)))
				} else {
					newData = snapshot
				}
			}
		}

		description := describeMutation(action, string(resource), recordID)
		record := model.AuditRecord{
			Action:      action,
			TableName:   string(resource),
			RecordID:    recordID,
			OldData:     oldData,
			NewData:     newData,
			Description: &description,
			IPAddress:   c.ClientIP(),
			Endpoint:    c.Request.Method + " " + path,
			DurationMs:  time.Since(start).Milliseconds(),
		}
		if actor, ok := util.GetActor(c); ok {
			record.UserID = &actor.UserID
			role := actor.ActiveRole
			record.Role = &role
		}

		// The request context dies with the response; the subscriber gets
		// its own.
		r.bus.Publish(context.Background(), util.EventMutationRecorded, record)
	}
}

// describeMutation renders the operator-facing summary line stored with
// every audit row.
func describeMutation(action, table string, recordID *int) string {
	id := "-"
	if recordID != nil {
		id = strconv.Itoa(*recordID)
	}
	return fmt.Sprintf("%s على جدول %s (ID: %s)", action, table, id)
}

// tableSegment picks the path segment the audited table is resolved from.
// Admin panel writes sit one level down, so the admin prefix is skipped.
func tableSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	if segments[0] == "admin" && len(segments) > 1 {
		return segments[1]
	}
	return segments[0]
}

func lastNumericSegment(path string) *int {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if id, err := strconv.Atoi(segments[i]); err == nil {
			return &id
		}
	}
	return nil
}

// api/controller/audit_controller.go
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/f4lcon-tech/aqari/api/audit"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

// RegisterRoutes registers the audit trail routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	auditGroup := r.Group("/audit")
	{
		auditGroup.GET("", ac.ListAuditRecords)
	}
}

// ListAuditRecords endpoint lists the trail for operators, filterable by
// table, action, user and time window
func (ac *AuditController) ListAuditRecords(c *gin.Context) {
	query := model.AuditQuery{
		TableName: c.Query("table"),
		Action:    c.Query("action"),
	}
	if userID, err := strconv.Atoi(c.Query("user_id")); err == nil {
		query.UserID = userID
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		query.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		query.To = &to
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))

	records, total, err := ac.auditService.Query(c, query)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list audit records", err)
		return
	}
	util.RespondWithList(c, records, total)
}

// api/model/audit.go
package model

import "time"

// Audit action verbs derived from the HTTP method of the recorded write.
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditRecord is one row of the audit_log table.
type AuditRecord struct {
	ID          int       `db:"id" json:"id"`
	UserID      *int      `db:"user_id" json:"user_id"`
	UserName    *string   `db:"user_name" json:"user_name"`
	Role        *string   `db:"role" json:"role"`
	Action      string    `db:"action" json:"action"`
	TableName   string    `db:"table_name" json:"table_name"`
	RecordID    *int      `db:"record_id" json:"record_id"`
	OldData     JSONMap   `db:"old_data" json:"old_data"`
	NewData     JSONMap   `db:"new_data" json:"new_data"`
	Description *string   `db:"description" json:"description"`
	IPAddress   string    `db:"ip_address" json:"ip_address"`
	Endpoint    string    `db:"endpoint" json:"endpoint"`
	DurationMs  int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AuditQuery carries the filters for operator listings of the audit trail.
type AuditQuery struct {
	TableName string
	Action    string
	UserID    int
	From      *time.Time
	To        *time.Time
	Page      int
	PerPage   int
}

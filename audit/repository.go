// api/audit/repository.go
package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
)

type Repository interface {
	Insert(ctx context.Context, record model.AuditRecord) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditRecord, int, error)
}

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// Insert appends one audit row. The trail is append-only; nothing in the
// subsystem updates or deletes audit rows.
func (r *PostgresRepository) Insert(ctx context.Context, record model.AuditRecord) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO audit_log (user_id, user_name, role, action, table_name, record_id,
			old_data, new_data, description, ip_address, endpoint, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())`,
		record.UserID, record.UserName, record.Role, record.Action, record.TableName,
		record.RecordID, record.OldData, record.NewData, record.Description,
		record.IPAddress, record.Endpoint, record.DurationMs)
	if err != nil {
		return fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return nil
}

// Query lists audit rows for operators, newest first, with optional
// filters on table, action, user and time window.
func (r *PostgresRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditRecord, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	if query.TableName != "" {
		conditions = append(conditions, "table_name = ?")
		args = append(args, query.TableName)
	}
	if query.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, strings.ToUpper(query.Action))
	}
	if query.UserID != 0 {
		conditions = append(conditions, "user_id = ?")
		args = append(args, query.UserID)
	}
	if query.From != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.From)
	}
	if query.To != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.To)
	}

	where := strings.Join(conditions, " AND ")

	countQuery := r.DB.Rebind("SELECT COUNT(*) FROM audit_log WHERE " + where)
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	perPage := query.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 50
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	listQuery := r.DB.Rebind(`
		SELECT id, user_id, user_name, role, action, table_name, record_id,
			old_data, new_data, description, ip_address, endpoint, duration_ms, created_at
		FROM audit_log WHERE ` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`)
	args = append(args, perPage, (page-1)*perPage)

	records := []model.AuditRecord{}
	if err := r.DB.SelectContext(ctx, &records, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return records, total, nil
}

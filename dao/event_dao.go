// api/dao/event_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
)

type EventDAO struct {
	DB *sqlx.DB
}

func NewEventDAO(db *sqlx.DB) *EventDAO {
	return &EventDAO{DB: db}
}

// InsertEvent appends one telemetry row.
func (dao *EventDAO) InsertEvent(ctx context.Context, event model.SystemEvent) error {
	_, err := dao.DB.ExecContext(ctx, `
		INSERT INTO system_events (user_id, office_id, user_role, event_type, entity_type, entity_id, source, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		event.UserID, event.OfficeID, event.Role, event.EventType,
		event.EntityType, event.EntityID, event.Source, event.Metadata)
	if err != nil {
		return fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return nil
}

// UsageOverview is the platform-wide activity summary.
type UsageOverview struct {
	TotalOffices   int `db:"total_offices" json:"total_offices"`
	ActiveOffices  int `db:"active_offices" json:"active_offices"`
	DormantOffices int `db:"dormant_offices" json:"dormant_offices"`
	EventsLast30d  int `db:"events_last_30d" json:"events_last_30d"`
}

// GetUsageOverview computes the platform summary: active means events in
// the last 7 days, dormant means none in the last 14.
func (dao *EventDAO) GetUsageOverview(ctx context.Context) (*UsageOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM offices) AS total_offices,
			(SELECT COUNT(DISTINCT office_id) FROM system_events
				WHERE office_id IS NOT NULL AND created_at >= NOW() - INTERVAL '7 days') AS active_offices,
			(SELECT COUNT(*) FROM offices o WHERE NOT EXISTS (
				SELECT 1 FROM system_events se
				WHERE se.office_id = o.id AND se.created_at >= NOW() - INTERVAL '14 days')) AS dormant_offices,
			(SELECT COUNT(*) FROM system_events
				WHERE created_at >= NOW() - INTERVAL '30 days') AS events_last_30d`

	var overview UsageOverview
	if err := dao.DB.GetContext(ctx, &overview, query); err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &overview, nil
}

// OfficeActivity is one office's scored activity row.
type OfficeActivity struct {
	OfficeID     int     `db:"office_id" json:"office_id"`
	OfficeName   string  `db:"office_name" json:"office_name"`
	EventCount   int     `db:"event_count" json:"event_count"`
	UsageScore   int     `db:"usage_score" json:"usage_score"`
	LastEventAt  *string `db:"last_event_at" json:"last_event_at"`
	OfficeStatus string  `db:"-" json:"office_status"`
	UsageLabel   string  `db:"-" json:"usage_label"`
}

// scoreCase renders the event weighting used by the usage score. Heavier
// events signal an office closer to paying.
const scoreCase = `CASE se.event_type
	WHEN 'dashboard_view' THEN 5
	WHEN 'contract_open' THEN 10
	WHEN 'contract_create' THEN 20
	WHEN 'report_pdf_download' THEN 30
	WHEN 'payment_paid' THEN 40
	ELSE 0 END`

// ListOfficeActivity scores every office over the last 30 days, busiest
// first.
func (dao *EventDAO) ListOfficeActivity(ctx context.Context) ([]OfficeActivity, error) {
	query := fmt.Sprintf(`
		SELECT o.id AS office_id, o.name AS office_name,
			COUNT(se.id) AS event_count,
			COALESCE(SUM(%s), 0) AS usage_score,
			TO_CHAR(MAX(se.created_at), 'YYYY-MM-DD"T"HH24:MI:SS') AS last_event_at
		FROM offices o
		LEFT JOIN system_events se ON se.office_id = o.id
			AND se.created_at >= NOW() - INTERVAL '30 days'
		GROUP BY o.id, o.name
		ORDER BY usage_score DESC, o.id ASC`, scoreCase)

	rows := []OfficeActivity{}
	if err := dao.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	for i := range rows {
		rows[i].OfficeStatus = classifyStatus(rows[i].EventCount)
		rows[i].UsageLabel = classifyUsage(rows[i].UsageScore)
	}
	return rows, nil
}

func classifyStatus(eventCount int) string {
	switch {
	case eventCount == 0:
		return "Dormant"
	case eventCount < 20:
		return "Semi-active"
	default:
		return "Active"
	}
}

func classifyUsage(score int) string {
	switch {
	case score < 50:
		return "Low Usage"
	case score < 200:
		return "Active"
	default:
		return "Ready to Pay"
	}
}

// FeatureUsage is one event type's aggregate count.
type FeatureUsage struct {
	EventType string `db:"event_type" json:"event_type"`
	Count     int    `db:"count" json:"count"`
}

// ListTopFeatures returns the most recorded event types over the last 30
// days.
func (dao *EventDAO) ListTopFeatures(ctx context.Context, limit int) ([]FeatureUsage, error) {
	rows := []FeatureUsage{}
	err := dao.DB.SelectContext(ctx, &rows, `
		SELECT event_type, COUNT(*) AS count
		FROM system_events
		WHERE created_at >= NOW() - INTERVAL '30 days'
		GROUP BY event_type
		ORDER BY count DESC, event_type ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return rows, nil
}

// GetOfficeTimeline returns the most recent events for one office, capped
// at 100 rows.
func (dao *EventDAO) GetOfficeTimeline(ctx context.Context, officeID int) ([]model.SystemEvent, error) {
	rows := []model.SystemEvent{}
	err := dao.DB.SelectContext(ctx, &rows, `
		SELECT id, user_id, office_id, user_role, event_type, entity_type, entity_id, source, metadata, created_at
		FROM system_events
		WHERE office_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 100`, officeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return rows, nil
}

// GetOfficeActivity scores a single office over the last 30 days.
func (dao *EventDAO) GetOfficeActivity(ctx context.Context, officeID int) (*OfficeActivity, error) {
	query := fmt.Sprintf(`
		SELECT o.id AS office_id, o.name AS office_name,
			COUNT(se.id) AS event_count,
			COALESCE(SUM(%s), 0) AS usage_score,
			TO_CHAR(MAX(se.created_at), 'YYYY-MM-DD"T"HH24:MI:SS') AS last_event_at
		FROM offices o
		LEFT JOIN system_events se ON se.office_id = o.id
			AND se.created_at >= NOW() - INTERVAL '30 days'
		WHERE o.id = $1
		GROUP BY o.id, o.name`, scoreCase)

	var row OfficeActivity
	err := dao.DB.GetContext(ctx, &row, query, officeID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	row.OfficeStatus = classifyStatus(row.EventCount)
	row.UsageLabel = classifyUsage(row.UsageScore)
	return &row, nil
}

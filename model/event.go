// api/model/event.go
package model

import "time"

// SystemEvent is one row of the system_events telemetry stream.
type SystemEvent struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	OfficeID   *int      `db:"office_id" json:"office_id"`
	Role       string    `db:"user_role" json:"user_role"`
	EventType  string    `db:"event_type" json:"event_type"`
	EntityType *string   `db:"entity_type" json:"entity_type"`
	EntityID   *int      `db:"entity_id" json:"entity_id"`
	Source     string    `db:"source" json:"source"`
	Metadata   JSONMap   `db:"metadata" json:"metadata"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// EventInput is the client-facing recording request. User and role come
// from the verified actor, never from the body.
type EventInput struct {
	EventType  string  `json:"event_type" binding:"required"`
	EntityType *string `json:"entity_type"`
	EntityID   *int    `json:"entity_id"`
	Source     string  `json:"source"`
	Metadata   JSONMap `json:"metadata"`
}

// api/model/office.go
package model

import "time"

// suspendedStatuses are the office statuses that block office-class
// access. Legacy rows carry the Arabic label.
var suspendedStatuses = map[string]bool{
	"suspended": true,
	"موقوف":     true,
}

// IsSuspendedStatus reports whether an office status blocks access.
func IsSuspendedStatus(status string) bool {
	return suspendedStatuses[status]
}

// Office is a row of the offices table.
type Office struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	OwnerID       int       `db:"owner_id" json:"owner_id"`
	IsOwnerOffice bool      `db:"is_owner_office" json:"is_owner_office"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// OfficeUser is a membership row linking a user to an office.
type OfficeUser struct {
	ID       int    `db:"id" json:"id"`
	OfficeID int    `db:"office_id" json:"office_id"`
	UserID   int    `db:"user_id" json:"user_id"`
	Role     string `db:"role" json:"role"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// User is the subset of the users table the subsystem reads.
type User struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Phone    string `db:"phone" json:"phone"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// UserProfile is the self-service view of a user account.
type UserProfile struct {
	ID        int        `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     *string    `db:"email" json:"email"`
	CreatedAt *time.Time `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

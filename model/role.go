// api/model/role.go
package model

import "strings"

// Role is the canonical role tag used by all internal logic. Raw role
// strings (including the legacy Arabic aliases) are normalized at the
// system boundary and never compared directly.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleOffice          Role = "office"
	RoleOfficeAdmin     Role = "office_admin"
	RoleSelfOfficeAdmin Role = "self_office_admin"
	RoleOwner           Role = "owner"
	RoleTenant          Role = "tenant"
)

// officeAliases are the raw role names that collapse into the office
// class for telemetry policy purposes.
var officeAliases = map[string]bool{
	"office":            true,
	"office_admin":      true,
	"office_user":       true,
	"self_office_admin": true,
}

// NormalizeRole maps a raw role string to its canonical tag. Unrecognized
// input is lower-cased and passed through unchanged so future roles do not
// break the pipeline; empty input normalizes to "".
func NormalizeRole(raw string) Role {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}
	if officeAliases[normalized] {
		return RoleOffice
	}
	switch normalized {
	case "owner", "مالك":
		return RoleOwner
	case "tenant", "مستأجر":
		return RoleTenant
	case "admin", "super_admin":
		return RoleAdmin
	}
	return Role(normalized)
}

// IsOfficeClass reports whether the raw role belongs to the office family
// before normalization collapses it.
func IsOfficeClass(raw string) bool {
	return officeAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// Actor is the verified identity a request acts under. It is built by the
// auth middleware from the token claims and the role check against the
// database; downstream components trust it as-is.
type Actor struct {
	UserID     int      `json:"id"`
	Phone      string   `json:"phone"`
	Roles      []string `json:"roles"`
	ActiveRole string   `json:"activeRole"`
	RoleID     int      `json:"role_id"`
}

// EffectiveRole returns the canonical tag of the actor's active role.
func (a Actor) EffectiveRole() Role {
	return NormalizeRole(a.ActiveRole)
}

// HoldsRole reports whether the raw role name is in the actor's held set.
func (a Actor) HoldsRole(name string) bool {
	for _, r := range a.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

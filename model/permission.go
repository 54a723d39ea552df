// api/model/permission.go
package model

// PermissionEntry is one row of the role/page permission matrix.
type PermissionEntry struct {
	ID        int    `db:"id" json:"id"`
	RoleID    int    `db:"role_id" json:"role_id"`
	Page      string `db:"page" json:"page"`
	CanView   bool   `db:"can_view" json:"can_view"`
	CanEdit   bool   `db:"can_edit" json:"can_edit"`
	CanDelete bool   `db:"can_delete" json:"can_delete"`
}

// Action is one of the three permission flags a page carries.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// RoleRecord is a row of the roles table.
type RoleRecord struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

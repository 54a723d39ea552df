// api/dao/permission_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
)

// actionColumns is the closed map from permission actions to matrix
// columns. Column names never come from request input.
var actionColumns = map[model.Action]string{
	model.ActionView:   "can_view",
	model.ActionEdit:   "can_edit",
	model.ActionDelete: "can_delete",
}

type PermissionDAO struct {
	DB *sqlx.DB
}

func NewPermissionDAO(db *sqlx.DB) *PermissionDAO {
	return &PermissionDAO{DB: db}
}

// HasPermissionByRoleID checks one cell of the permission matrix. A
// missing row means no grant, not an error.
func (dao *PermissionDAO) HasPermissionByRoleID(ctx context.Context, roleID int, page string, action model.Action) (bool, error) {
	column, ok := actionColumns[action]
	if !ok {
		return false, aqari_errors.ErrUnknownAction
	}

	query := fmt.Sprintf(`SELECT %s FROM permissions WHERE role_id = $1 AND LOWER(page) = LOWER($2)`, column)

	var allowed bool
	err := dao.DB.GetContext(ctx, &allowed, query, roleID, page)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check permission",
			zap.Error(err),
			zap.Int("roleID", roleID),
			zap.String("page", page))
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return allowed, nil
}

// HasPermissionByRoleName checks the matrix through the roles table for
// callers that only hold the role name.
func (dao *PermissionDAO) HasPermissionByRoleName(ctx context.Context, roleName string, page string, action model.Action) (bool, error) {
	column, ok := actionColumns[action]
	if !ok {
		return false, aqari_errors.ErrUnknownAction
	}

	query := fmt.Sprintf(`
		SELECT p.%s FROM permissions p
		JOIN roles r ON p.role_id = r.id
		WHERE LOWER(r.name) = LOWER($1) AND LOWER(p.page) = LOWER($2)`, column)

	var allowed bool
	err := dao.DB.GetContext(ctx, &allowed, query, roleName, page)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check permission by role name",
			zap.Error(err),
			zap.String("roleName", roleName),
			zap.String("page", page))
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return allowed, nil
}

// ListByRoleID returns every matrix row for a role, for the permission
// listing endpoint and the token refresh on role switch.
func (dao *PermissionDAO) ListByRoleID(ctx context.Context, roleID int) ([]model.PermissionEntry, error) {
	query := `
		SELECT id, role_id, page, can_view, can_edit, can_delete
		FROM permissions
		WHERE role_id = $1
		ORDER BY page ASC`

	entries := []model.PermissionEntry{}
	if err := dao.DB.SelectContext(ctx, &entries, query, roleID); err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return entries, nil
}

// seedPages is the page set every deployment carries.
var seedPages = []string{
	"Dashboard", "Contracts", "Properties", "Units", "Payments", "Receipts",
	"Expenses", "Maintenance", "Reports", "Audit", "AdminPanel",
}

// seedGrants maps role names to the flags they receive on every page.
var seedGrants = []struct {
	roleName  string
	canView   bool
	canEdit   bool
	canDelete bool
}{
	{"admin", true, true, true},
	{"office_manager", true, true, false},
	{"office", true, true, false},
	{"owner", true, false, false},
	{"tenant", true, false, false},
}

// Seed upserts the default permission matrix. Roles absent from the roles
// table are skipped; existing rows are overwritten with the defaults.
func (dao *PermissionDAO) Seed(ctx context.Context) (int, error) {
	start := time.Now()
	seeded := 0

	for _, grant := range seedGrants {
		var roleID int
		err := dao.DB.GetContext(ctx, &roleID, `SELECT id FROM roles WHERE LOWER(name) = LOWER($1)`, grant.roleName)
		if err == sql.ErrNoRows {
			logger.Warn("Skipping permission seed for missing role", zap.String("roleName", grant.roleName))
			continue
		}
		if err != nil {
			return seeded, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
		}

		for _, page := range seedPages {
			_, err := dao.DB.ExecContext(ctx, `
				INSERT INTO permissions (role_id, page, can_view, can_edit, can_delete)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (role_id, page)
				DO UPDATE SET can_view = $3, can_edit = $4, can_delete = $5`,
				roleID, page, grant.canView, grant.canEdit, grant.canDelete)
			if err != nil {
				return seeded, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
			}
			seeded++
		}
	}

	logger.Info("Permission matrix seeded",
		zap.Int("rows", seeded),
		zap.Duration("duration", time.Since(start)))
	return seeded, nil
}

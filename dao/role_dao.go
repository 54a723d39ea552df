// api/dao/role_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
)

type RoleDAO struct {
	DB *sqlx.DB
}

func NewRoleDAO(db *sqlx.DB) *RoleDAO {
	return &RoleDAO{DB: db}
}

// GetRoleByName looks up a role row by case-insensitive name.
func (dao *RoleDAO) GetRoleByName(ctx context.Context, name string) (*model.RoleRecord, error) {
	var role model.RoleRecord
	err := dao.DB.GetContext(ctx, &role, `SELECT id, name FROM roles WHERE LOWER(name) = LOWER($1)`, name)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &role, nil
}

// GetRolesForUser returns every role the user holds through user_roles.
func (dao *RoleDAO) GetRolesForUser(ctx context.Context, userID int) ([]model.RoleRecord, error) {
	roles := []model.RoleRecord{}
	err := dao.DB.SelectContext(ctx, &roles, `
		SELECT r.id, r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return roles, nil
}

// UserHoldsRole reports whether the user holds the named role.
func (dao *RoleDAO) UserHoldsRole(ctx context.Context, userID int, roleName string) (*model.RoleRecord, error) {
	var role model.RoleRecord
	err := dao.DB.GetContext(ctx, &role, `
		SELECT r.id, r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND LOWER(r.name) = LOWER($2)`, userID, roleName)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRoleNotHeld
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &role, nil
}

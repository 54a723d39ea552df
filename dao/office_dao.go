// api/dao/office_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
)

type OfficeDAO struct {
	DB *sqlx.DB
}

func NewOfficeDAO(db *sqlx.DB) *OfficeDAO {
	return &OfficeDAO{DB: db}
}

// ResolveOfficeID finds the office a user acts for, in priority order:
// the personal office they own, then an active membership, then any other
// office they own. One query, lowest priority number wins.
func (dao *OfficeDAO) ResolveOfficeID(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT office_id FROM (
			SELECT id AS office_id, 1 AS priority FROM offices
			WHERE owner_id = $1 AND is_owner_office = true
			UNION ALL
			SELECT office_id, 2 AS priority FROM office_users
			WHERE user_id = $1 AND is_active = true
			UNION ALL
			SELECT id AS office_id, 3 AS priority FROM offices
			WHERE owner_id = $1 AND is_owner_office = false
		) candidates
		ORDER BY priority ASC
		LIMIT 1`

	var officeID int
	err := dao.DB.GetContext(ctx, &officeID, query, userID)
	if err == sql.ErrNoRows {
		return 0, aqari_errors.ErrNoLinkedOffice
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return officeID, nil
}

// GetOfficeByID returns an office row.
func (dao *OfficeDAO) GetOfficeByID(ctx context.Context, officeID int) (*model.Office, error) {
	var office model.Office
	err := dao.DB.GetContext(ctx, &office, `
		SELECT id, name, owner_id, is_owner_office, status, created_at
		FROM offices WHERE id = $1`, officeID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &office, nil
}

// GetMembership returns the office_users row for a user in an office, or
// ErrRecordNotFound when the user is not a member.
func (dao *OfficeDAO) GetMembership(ctx context.Context, officeID int, userID int) (*model.OfficeUser, error) {
	var membership model.OfficeUser
	err := dao.DB.GetContext(ctx, &membership, `
		SELECT id, office_id, user_id, role, is_active
		FROM office_users WHERE office_id = $1 AND user_id = $2`, officeID, userID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &membership, nil
}

// GetOwnedOffice returns the office a user owns, preferring the personal
// office when both kinds exist.
func (dao *OfficeDAO) GetOwnedOffice(ctx context.Context, userID int) (*model.Office, error) {
	var office model.Office
	err := dao.DB.GetContext(ctx, &office, `
		SELECT id, name, owner_id, is_owner_office, status, created_at
		FROM offices WHERE owner_id = $1
		ORDER BY is_owner_office DESC, id ASC
		LIMIT 1`, userID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &office, nil
}

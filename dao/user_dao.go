// api/dao/user_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
)

type UserDAO struct {
	DB *sqlx.DB
}

func NewUserDAO(db *sqlx.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	var user model.User
	err := dao.DB.GetContext(ctx, &user, `SELECT id, name, phone, is_active FROM users WHERE id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &user, nil
}

// GetProfile returns the self-service profile fields.
func (dao *UserDAO) GetProfile(ctx context.Context, userID int) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := dao.DB.GetContext(ctx, &profile, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM users WHERE id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update; nil fields keep their
// stored value. Returns false when the user row does not exist.
func (dao *UserDAO) UpdateProfile(ctx context.Context, userID int, input model.ProfileInput) (bool, error) {
	result, err := dao.DB.ExecContext(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			updated_at = NOW()
		WHERE id = $3`, input.Name, input.Email, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return affected > 0, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/dao"
	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/middleware"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

// fakePermissions is a canned PermissionService for auth tests.
type fakePermissions struct {
	entries []model.PermissionEntry
}

func (f *fakePermissions) Can(ctx context.Context, actor model.Actor, page string, action model.Action) bool {
	return true
}

func (f *fakePermissions) ListForRole(ctx context.Context, roleID int) ([]model.PermissionEntry, error) {
	return f.entries, nil
}

func (f *fakePermissions) Seed(ctx context.Context) (int, error) {
	return 0, nil
}

func newAuthFixture(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	viper.Set("auth.jwtSecret", "test-secret")

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	perms := &fakePermissions{entries: []model.PermissionEntry{
		{RoleID: 4, Page: "Payments", CanView: true},
	}}
	svc := NewAuthService(dao.NewUserDAO(db), dao.NewRoleDAO(db), dao.NewOfficeDAO(db), perms, util.NewEventBus())
	return svc, mock
}

func TestSwitchRoleNotHeld(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery(`JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs(42, "admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := svc.SwitchRole(context.Background(), model.Actor{UserID: 42}, "admin")

	assert.ErrorIs(t, err, aqari_errors.ErrRoleNotHeld)
}

func TestSwitchRoleInactiveUser(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery(`JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs(42, "owner").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "owner"))
	mock.ExpectQuery(`SELECT id, name, phone, is_active FROM users`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_active"}).
			AddRow(42, "Sara", "0501234567", false))

	_, err := svc.SwitchRole(context.Background(), model.Actor{UserID: 42}, "owner")

	assert.ErrorIs(t, err, aqari_errors.ErrUserInactive)
}

func TestSwitchRoleSuspendedOffice(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery(`JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs(42, "office_admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "office_admin"))
	mock.ExpectQuery(`SELECT id, name, phone, is_active FROM users`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_active"}).
			AddRow(42, "Sara", "0501234567", true))
	mock.ExpectQuery(`ORDER BY priority ASC`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"office_id"}).AddRow(7))
	mock.ExpectQuery(`FROM offices WHERE id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "is_owner_office", "status", "created_at"}).
			AddRow(7, "North Office", 9, false, "موقوف", time.Now()))

	_, err := svc.SwitchRole(context.Background(), model.Actor{UserID: 42}, "office_admin")

	assert.ErrorIs(t, err, aqari_errors.ErrOfficeSuspended)
}

func TestUpdateProfileRequiresAField(t *testing.T) {
	svc, mock := newAuthFixture(t)

	err := svc.UpdateProfile(context.Background(), model.Actor{UserID: 42}, model.ProfileInput{})

	assert.ErrorIs(t, err, aqari_errors.ErrInvalidRequestData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileKeepsAbsentFields(t *testing.T) {
	svc, mock := newAuthFixture(t)

	name := "Sara"
	mock.ExpectExec(`SET name = COALESCE\(\$1, name\)`).
		WithArgs(&name, nil, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.UpdateProfile(context.Background(), model.Actor{UserID: 42}, model.ProfileInput{Name: &name})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwitchRoleSuccessIssuesScopedToken(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery(`JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs(42, "owner").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "owner"))
	mock.ExpectQuery(`SELECT id, name, phone, is_active FROM users`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_active"}).
			AddRow(42, "Sara", "+966 50 123 4567", true))
	mock.ExpectQuery(`JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(4, "owner").AddRow(5, "tenant"))

	result, err := svc.SwitchRole(context.Background(), model.Actor{UserID: 42}, "owner")

	require.NoError(t, err)
	assert.Equal(t, "owner", result.ActiveRole)
	assert.Equal(t, 4, result.RoleID)
	require.Len(t, result.Permissions, 1)

	claims, err := middleware.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "owner", claims.ActiveRole)
	assert.Equal(t, 4, claims.RoleID)
	assert.Equal(t, []string{"owner", "tenant"}, claims.Roles)
}

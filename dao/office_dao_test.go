package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
)

func TestResolveOfficeID(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewOfficeDAO(db)

	mock.ExpectQuery(`ORDER BY priority ASC`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"office_id"}).AddRow(7))

	officeID, err := dao.ResolveOfficeID(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, 7, officeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveOfficeIDNoLink(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewOfficeDAO(db)

	mock.ExpectQuery(`ORDER BY priority ASC`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"office_id"}))

	_, err := dao.ResolveOfficeID(context.Background(), 42)

	assert.ErrorIs(t, err, aqari_errors.ErrNoLinkedOffice)
}

func TestGetMembershipNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewOfficeDAO(db)

	mock.ExpectQuery(`FROM office_users`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "office_id", "user_id", "role", "is_active"}))

	_, err := dao.GetMembership(context.Background(), 7, 42)

	assert.ErrorIs(t, err, aqari_errors.ErrRecordNotFound)
}

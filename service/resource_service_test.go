package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/dao"
	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/scope"
	"github.com/f4lcon-tech/aqari/api/util"
)

func newResourceServiceFixture(t *testing.T) (ResourceService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	svc := NewResourceService(dao.NewResourceDAO(db), dao.NewOfficeDAO(db),
		scope.NewBuilder(), util.NewValidationUtil())
	return svc, mock
}

func TestListPaymentsUnknownRoleDenied(t *testing.T) {
	svc, mock := newResourceServiceFixture(t)
	actor := model.Actor{UserID: 3, ActiveRole: "auditor"}

	rows, total, err := svc.ListPayments(context.Background(), actor, 10, 0)

	assert.ErrorIs(t, err, aqari_errors.ErrAuthorizationDenied)
	assert.Nil(t, rows)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContractsUnknownRoleDenied(t *testing.T) {
	svc, mock := newResourceServiceFixture(t)
	actor := model.Actor{UserID: 3, ActiveRole: ""}

	_, _, err := svc.ListContracts(context.Background(), actor, 10, 0)

	assert.ErrorIs(t, err, aqari_errors.ErrAuthorizationDenied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

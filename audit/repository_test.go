package audit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/model"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPostgresRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestInsertAuditRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := 42
	recordID := 9

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), model.AuditRecord{
		UserID:     &userID,
		Action:     model.AuditActionUpdate,
		TableName:  "contracts",
		RecordID:   &recordID,
		OldData:    model.JSONMap{"status": "draft"},
		NewData:    model.JSONMap{"status": "active"},
		IPAddress:  "10.0.0.1",
		Endpoint:   "/contracts/9",
		DurationMs: 12,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryFiltersAndPaginates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM audit_log`).
		WithArgs("payments", "DELETE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM audit_log`).
		WithArgs("payments", "DELETE", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "table_name"}).
			AddRow(3, "DELETE", "payments"))

	records, total, err := repo.Query(context.Background(), model.AuditQuery{
		TableName: "payments",
		Action:    "delete",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "DELETE", records[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

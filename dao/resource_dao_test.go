package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/scope"
)

func TestListPaymentsAppliesPredicate(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewResourceDAO(db)

	p := scope.Predicate{
		Joins: []string{"JOIN contracts c ON pay.contract_id = c.id"},
		Where: "c.office_id = ?",
		Args:  []interface{}{7},
	}

	due := time.Now()
	mock.ExpectQuery(`FROM payments pay JOIN contracts c ON pay.contract_id = c.id WHERE c.office_id = \$1 ORDER BY pay.due_date ASC NULLS LAST, pay.id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs(7, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "due_date", "amount", "paid_amount", "remaining", "status"}).
			AddRow(1, 3, due, 1500.0, 500.0, 1000.0, "pending"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments pay JOIN contracts c`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows, total, err := dao.ListPayments(context.Background(), p, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, 1000.0, rows[0].Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpensesDistinctCount(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewResourceDAO(db)

	p := scope.Predicate{
		Joins:    []string{"JOIN contracts c ON e.contract_id = c.id", "JOIN contract_parties cp ON cp.contract_id = c.id", "JOIN parties pt ON pt.id = cp.party_id"},
		Where:    "pt.phone = ?",
		Args:     []interface{}{"0501234567"},
		Distinct: true,
	}

	mock.ExpectQuery(`SELECT DISTINCT e.id`).
		WithArgs("0501234567", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "expense_scope", "paid_by", "amount"}).
			AddRow(4, "عام", "مالك", 250.0))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT e.id\) FROM expenses e`).
		WithArgs("0501234567").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows, total, err := dao.ListExpenses(context.Background(), p, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "عام", rows[0].ExpenseScope)
}

func TestDeletePredicateBlocksForeignRows(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewResourceDAO(db)

	p := scope.Predicate{Where: "FALSE"}

	mock.ExpectExec(`DELETE FROM maintenance WHERE id IN`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := dao.DeleteMaintenance(context.Background(), p, 9)

	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestSnapshotUnknownResource(t *testing.T) {
	db, _ := newMockDB(t)
	dao := NewResourceDAO(db)

	_, err := dao.Snapshot(context.Background(), "unknown", 1)

	assert.Error(t, err)
}

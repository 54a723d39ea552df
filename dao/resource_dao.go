// api/dao/resource_dao.go
package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/scope"
)

type ResourceDAO struct {
	DB *sqlx.DB
}

func NewResourceDAO(db *sqlx.DB) *ResourceDAO {
	return &ResourceDAO{DB: db}
}

// assemble renders one scoped listing query. Predicate fragments use ?
// bindvars; the final query is rebound for Postgres.
func (dao *ResourceDAO) assemble(p scope.Predicate, columns string, table string, alias string, orderBy string, limit int, offset int) (string, []interface{}) {
	query := fmt.Sprintf("%s %s FROM %s %s%s WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		p.SelectClause(), columns, table, alias, p.JoinClause(), p.Where, orderBy)
	args := append(append([]interface{}{}, p.Args...), limit, offset)
	return dao.DB.Rebind(query), args
}

// assembleCount renders the matching COUNT query for a listing.
func (dao *ResourceDAO) assembleCount(p scope.Predicate, pk string, table string, alias string) (string, []interface{}) {
	countExpr := "COUNT(*)"
	if p.Distinct {
		countExpr = fmt.Sprintf("COUNT(DISTINCT %s)", pk)
	}
	query := fmt.Sprintf("SELECT %s FROM %s %s%s WHERE %s",
		countExpr, table, alias, p.JoinClause(), p.Where)
	return dao.DB.Rebind(query), append([]interface{}{}, p.Args...)
}

// ListPayments returns the payments visible under the predicate, ordered
// by due date with open-ended rows last. Amounts are coalesced so
// arithmetic never sees NULL.
func (dao *ResourceDAO) ListPayments(ctx context.Context, p scope.Predicate, limit int, offset int) ([]model.Payment, int, error) {
	columns := `pay.id, pay.contract_id, pay.due_date,
		COALESCE(pay.amount, 0) AS amount,
		COALESCE(pay.paid_amount, 0) AS paid_amount,
		COALESCE(pay.amount, 0) - COALESCE(pay.paid_amount, 0) AS remaining,
		pay.status`

	query, args := dao.assemble(p, columns, "payments", "pay", "pay.due_date ASC NULLS LAST, pay.id ASC", limit, offset)
	rows := []model.Payment{}
	if err := dao.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	total, err := dao.count(ctx, p, "pay.id", "payments", "pay")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListExpenses returns the expenses visible under the predicate, newest
// first.
func (dao *ResourceDAO) ListExpenses(ctx context.Context, p scope.Predicate, limit int, offset int) ([]model.Expense, int, error) {
	columns := `e.id, e.office_id, e.property_id, e.unit_id, e.contract_id,
		e.expense_scope, e.paid_by,
		COALESCE(e.amount, 0) AS amount,
		e.description, e.date`

	query, args := dao.assemble(p, columns, "expenses", "e", "e.date DESC, e.id DESC", limit, offset)
	rows := []model.Expense{}
	if err := dao.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	total, err := dao.count(ctx, p, "e.id", "expenses", "e")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListContracts returns the contracts visible under the predicate.
func (dao *ResourceDAO) ListContracts(ctx context.Context, p scope.Predicate, limit int, offset int) ([]model.Contract, int, error) {
	columns := `c.id, c.office_id, c.property_id, c.unit_id, c.start_date, c.end_date, c.status`

	query, args := dao.assemble(p, columns, "contracts", "c", "c.start_date DESC NULLS LAST, c.id DESC", limit, offset)
	rows := []model.Contract{}
	if err := dao.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	total, err := dao.count(ctx, p, "c.id", "contracts", "c")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListMaintenance returns the maintenance requests visible under the
// predicate, newest first.
func (dao *ResourceDAO) ListMaintenance(ctx context.Context, p scope.Predicate, limit int, offset int) ([]model.MaintenanceRequest, int, error) {
	columns := `m.id, m.office_id, m.property_id, m.unit_id, m.title, m.description,
		m.status, COALESCE(m.cost, 0) AS cost, m.created_at`

	query, args := dao.assemble(p, columns, "maintenance", "m", "m.created_at DESC, m.id DESC", limit, offset)
	rows := []model.MaintenanceRequest{}
	if err := dao.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	total, err := dao.count(ctx, p, "m.id", "maintenance", "m")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (dao *ResourceDAO) count(ctx context.Context, p scope.Predicate, pk string, table string, alias string) (int, error) {
	query, args := dao.assembleCount(p, pk, table, alias)
	var total int
	if err := dao.DB.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return total, nil
}

// Snapshot fetches one row as a JSON document for audit snapshots. The
// table name must come from the closed resource registry.
func (dao *ResourceDAO) Snapshot(ctx context.Context, resource model.ResourceType, recordID int) (model.JSONMap, error) {
	desc, ok := model.Descriptor(resource)
	if !ok {
		return nil, aqari_errors.ErrUnknownResource
	}

	query := fmt.Sprintf(`SELECT row_to_json(t) FROM %s t WHERE id = $1`, desc.Table)
	var snapshot model.JSONMap
	err := dao.DB.GetContext(ctx, &snapshot, query, recordID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return snapshot, nil
}

// ContractOffice returns the office a contract belongs to, falling back
// to the property's office when the contract carries none.
func (dao *ResourceDAO) ContractOffice(ctx context.Context, contractID int) (*int, error) {
	var officeID *int
	err := dao.DB.GetContext(ctx, &officeID, `
		SELECT COALESCE(c.office_id, p.office_id)
		FROM contracts c
		LEFT JOIN properties p ON c.property_id = p.id
		WHERE c.id = $1`, contractID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return officeID, nil
}

// PropertyOffice returns the office a property belongs to.
func (dao *ResourceDAO) PropertyOffice(ctx context.Context, propertyID int) (*int, error) {
	var officeID *int
	err := dao.DB.GetContext(ctx, &officeID, `SELECT office_id FROM properties WHERE id = $1`, propertyID)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return officeID, nil
}

// CreateExpense inserts one expense inside a transaction and returns the
// stored row.
func (dao *ResourceDAO) CreateExpense(ctx context.Context, expense model.Expense) (*model.Expense, error) {
	tx, err := dao.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	defer tx.Rollback()

	var created model.Expense
	err = tx.GetContext(ctx, &created, `
		INSERT INTO expenses (office_id, property_id, unit_id, contract_id,
			expense_scope, paid_by, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
		RETURNING id, office_id, property_id, unit_id, contract_id,
			expense_scope, paid_by, COALESCE(amount, 0) AS amount, description, date`,
		expense.OfficeID, expense.PropertyID, expense.UnitID, expense.ContractID,
		expense.ExpenseScope, expense.PaidBy, expense.Amount, expense.Description, expense.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &created, nil
}

// CreateMaintenance inserts a maintenance request and returns the stored
// row.
func (dao *ResourceDAO) CreateMaintenance(ctx context.Context, request model.MaintenanceRequest) (*model.MaintenanceRequest, error) {
	var created model.MaintenanceRequest
	err := dao.DB.GetContext(ctx, &created, `
		INSERT INTO maintenance (office_id, property_id, unit_id, title, description, status, cost)
		VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'open'), $7)
		RETURNING id, office_id, property_id, unit_id, title, description,
			status, COALESCE(cost, 0) AS cost, created_at`,
		request.OfficeID, request.PropertyID, request.UnitID, request.Title,
		request.Description, request.Status, request.Cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &created, nil
}

// GetMaintenance returns one maintenance request when the predicate
// admits it.
func (dao *ResourceDAO) GetMaintenance(ctx context.Context, p scope.Predicate, requestID int) (*model.MaintenanceRequest, error) {
	query := fmt.Sprintf(`%s m.id, m.office_id, m.property_id, m.unit_id, m.title, m.description,
		m.status, COALESCE(m.cost, 0) AS cost, m.created_at
		FROM maintenance m%s WHERE m.id = ? AND %s`,
		p.SelectClause(), p.JoinClause(), p.Where)
	args := append([]interface{}{requestID}, p.Args...)

	var request model.MaintenanceRequest
	err := dao.DB.GetContext(ctx, &request, dao.DB.Rebind(query), args...)
	if err == sql.ErrNoRows {
		return nil, aqari_errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	return &request, nil
}

// UpdateMaintenance updates the mutable fields of a request the predicate
// admits, and reports whether a row changed.
func (dao *ResourceDAO) UpdateMaintenance(ctx context.Context, p scope.Predicate, requestID int, input model.MaintenanceInput) (bool, error) {
	if len(p.Joins) > 0 {
		// Narrow the predicate to ids first; UPDATE cannot carry joins.
		sub := fmt.Sprintf("SELECT m.id FROM maintenance m%s WHERE m.id = ? AND %s", p.JoinClause(), p.Where)
		query := fmt.Sprintf(`UPDATE maintenance SET
				title = ?, description = ?, status = COALESCE(NULLIF(?, ''), status), cost = ?
			WHERE id IN (%s)`, sub)
		args := append([]interface{}{input.Title, input.Description, input.Status, input.Cost, requestID}, p.Args...)
		res, err := dao.DB.ExecContext(ctx, dao.DB.Rebind(query), args...)
		if err != nil {
			return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
		}
		affected, _ := res.RowsAffected()
		return affected > 0, nil
	}

	query := fmt.Sprintf(`UPDATE maintenance m SET
			title = ?, description = ?, status = COALESCE(NULLIF(?, ''), m.status), cost = ?
		WHERE m.id = ? AND %s`, p.Where)
	args := append([]interface{}{input.Title, input.Description, input.Status, input.Cost, requestID}, p.Args...)
	res, err := dao.DB.ExecContext(ctx, dao.DB.Rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// DeleteMaintenance removes a request the predicate admits, and reports
// whether a row was removed.
func (dao *ResourceDAO) DeleteMaintenance(ctx context.Context, p scope.Predicate, requestID int) (bool, error) {
	sub := fmt.Sprintf("SELECT m.id FROM maintenance m%s WHERE m.id = ? AND %s", p.JoinClause(), p.Where)
	query := fmt.Sprintf("DELETE FROM maintenance WHERE id IN (%s)", sub)
	args := append([]interface{}{requestID}, p.Args...)

	res, err := dao.DB.ExecContext(ctx, dao.DB.Rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("%w: %v", aqari_errors.ErrDatabaseOperation, err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

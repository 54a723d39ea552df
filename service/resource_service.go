// api/service/resource_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/dao"
	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/scope"
	"github.com/f4lcon-tech/aqari/api/util"
)

// ResourceService serves the scoped data listings and writes. Every read
// goes through the predicate builder; a caller can never widen their own
// scope through parameters.
type ResourceService interface {
	ListPayments(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Payment, int, error)
	ListExpenses(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Expense, int, error)
	ListContracts(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Contract, int, error)
	ListMaintenance(ctx context.Context, actor model.Actor, limit, offset int) ([]model.MaintenanceRequest, int, error)
	CreateExpense(ctx context.Context, actor model.Actor, input model.ExpenseInput) (*model.Expense, error)
	CreateMaintenance(ctx context.Context, actor model.Actor, input model.MaintenanceInput) (*model.MaintenanceRequest, error)
	GetMaintenance(ctx context.Context, actor model.Actor, requestID int) (*model.MaintenanceRequest, error)
	UpdateMaintenance(ctx context.Context, actor model.Actor, requestID int, input model.MaintenanceInput) error
	DeleteMaintenance(ctx context.Context, actor model.Actor, requestID int) error
}

type resourceService struct {
	resourceDAO *dao.ResourceDAO
	officeDAO   *dao.OfficeDAO
	builder     *scope.Builder
	validator   *util.ValidationUtil
}

func NewResourceService(resourceDAO *dao.ResourceDAO, officeDAO *dao.OfficeDAO,
	builder *scope.Builder, validator *util.ValidationUtil) ResourceService {
	return &resourceService{
		resourceDAO: resourceDAO,
		officeDAO:   officeDAO,
		builder:     builder,
		validator:   validator,
	}
}

// listPredicate builds the scoping predicate for a listing. A deny
// predicate means the role has no listing rule at all, which is an
// authorization failure, not an empty page.
func (s *resourceService) listPredicate(actor model.Actor, resource model.ResourceType) (scope.Predicate, error) {
	p, err := s.builder.Build(actor, resource)
	if err != nil {
		return p, err
	}
	if p.IsDeny() {
		return p, aqari_errors.ErrAuthorizationDenied
	}
	return p, nil
}

func (s *resourceService) ListPayments(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Payment, int, error) {
	p, err := s.listPredicate(actor, model.ResourcePayments)
	if err != nil {
		return nil, 0, err
	}
	return s.resourceDAO.ListPayments(ctx, p, limit, offset)
}

func (s *resourceService) ListExpenses(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Expense, int, error) {
	p, err := s.listPredicate(actor, model.ResourceExpenses)
	if err != nil {
		return nil, 0, err
	}
	return s.resourceDAO.ListExpenses(ctx, p, limit, offset)
}

func (s *resourceService) ListContracts(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Contract, int, error) {
	p, err := s.listPredicate(actor, model.ResourceContracts)
	if err != nil {
		return nil, 0, err
	}
	return s.resourceDAO.ListContracts(ctx, p, limit, offset)
}

func (s *resourceService) ListMaintenance(ctx context.Context, actor model.Actor, limit, offset int) ([]model.MaintenanceRequest, int, error) {
	p, err := s.listPredicate(actor, model.ResourceMaintenance)
	if err != nil {
		return nil, 0, err
	}
	return s.resourceDAO.ListMaintenance(ctx, p, limit, offset)
}

// payerForRole maps the actor's role class to the default paying party
// label when the request names none.
func payerForRole(role model.Role) string {
	switch role {
	case model.RoleOffice, model.RoleAdmin:
		return "مكتب"
	case model.RoleOwner:
		return "مالك"
	case model.RoleTenant:
		return "مستأجر"
	}
	return "غير محدد"
}

func (s *resourceService) CreateExpense(ctx context.Context, actor model.Actor, input model.ExpenseInput) (*model.Expense, error) {
	if err := s.validator.ValidateExpense(input); err != nil {
		return nil, err
	}

	paidBy := input.PayerRole
	if paidBy == "" {
		paidBy = payerForRole(actor.EffectiveRole())
	}

	officeID, err := s.resolveExpenseOffice(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	var date *time.Time
	if input.Date != nil {
		parsed, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			return nil, aqari_errors.ErrInvalidRequestData
		}
		date = &parsed
	}

	expense := model.Expense{
		OfficeID:     officeID,
		PropertyID:   input.PropertyID,
		UnitID:       input.UnitID,
		ContractID:   input.ContractID,
		ExpenseScope: input.LinkType,
		PaidBy:       paidBy,
		Amount:       input.Amount,
		Description:  input.Description,
		Date:         date,
	}

	created, err := s.resourceDAO.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	logger.Info("Expense created",
		zap.Int("expenseID", created.ID),
		zap.Int("userID", actor.UserID),
		zap.String("scope", created.ExpenseScope))
	return created, nil
}

// resolveExpenseOffice attaches the expense to an office, trying the
// actor's own office first, then the contract's, then the property's. An
// unlinked general expense is allowed through without one.
func (s *resourceService) resolveExpenseOffice(ctx context.Context, actor model.Actor, input model.ExpenseInput) (*int, error) {
	if officeID, err := s.officeDAO.ResolveOfficeID(ctx, actor.UserID); err == nil {
		return &officeID, nil
	} else if !errors.Is(err, aqari_errors.ErrNoLinkedOffice) {
		return nil, err
	}

	if input.ContractID != nil {
		officeID, err := s.resourceDAO.ContractOffice(ctx, *input.ContractID)
		if err == nil && officeID != nil {
			return officeID, nil
		}
	}
	if input.PropertyID != nil {
		officeID, err := s.resourceDAO.PropertyOffice(ctx, *input.PropertyID)
		if err == nil && officeID != nil {
			return officeID, nil
		}
	}
	return nil, nil
}

func (s *resourceService) CreateMaintenance(ctx context.Context, actor model.Actor, input model.MaintenanceInput) (*model.MaintenanceRequest, error) {
	if err := s.validator.ValidateMaintenance(input); err != nil {
		return nil, err
	}

	var officeID *int
	if id, err := s.officeDAO.ResolveOfficeID(ctx, actor.UserID); err == nil {
		officeID = &id
	}

	request := model.MaintenanceRequest{
		OfficeID:    officeID,
		PropertyID:  input.PropertyID,
		UnitID:      input.UnitID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Cost:        input.Cost,
	}
	return s.resourceDAO.CreateMaintenance(ctx, request)
}

func (s *resourceService) GetMaintenance(ctx context.Context, actor model.Actor, requestID int) (*model.MaintenanceRequest, error) {
	p, err := s.builder.Build(actor, model.ResourceMaintenance)
	if err != nil {
		return nil, err
	}
	return s.resourceDAO.GetMaintenance(ctx, p, requestID)
}

func (s *resourceService) UpdateMaintenance(ctx context.Context, actor model.Actor, requestID int, input model.MaintenanceInput) error {
	if err := s.validator.ValidateMaintenance(input); err != nil {
		return err
	}
	p, err := s.builder.Build(actor, model.ResourceMaintenance)
	if err != nil {
		return err
	}
	updated, err := s.resourceDAO.UpdateMaintenance(ctx, p, requestID, input)
	if err != nil {
		return err
	}
	if !updated {
		return aqari_errors.ErrRecordNotFound
	}
	return nil
}

func (s *resourceService) DeleteMaintenance(ctx context.Context, actor model.Actor, requestID int) error {
	p, err := s.builder.Build(actor, model.ResourceMaintenance)
	if err != nil {
		return err
	}
	deleted, err := s.resourceDAO.DeleteMaintenance(ctx, p, requestID)
	if err != nil {
		return err
	}
	if !deleted {
		return aqari_errors.ErrRecordNotFound
	}
	return nil
}

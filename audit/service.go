// api/audit/service.go
package audit

import (
	"context"

	"github.com/f4lcon-tech/aqari/api/model"
)

type Service interface {
	Record(ctx context.Context, record model.AuditRecord) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditRecord, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, record model.AuditRecord) error {
	return s.repo.Insert(ctx, record)
}

func (s *service) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditRecord, int, error) {
	return s.repo.Query(ctx, query)
}

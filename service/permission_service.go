// api/service/permission_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/dao"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
)

// PermissionService answers permission matrix questions. Decisions are
// fail-closed: any storage or cache trouble reads as a denial, never as
// an error surfaced to the caller.
type PermissionService interface {
	Can(ctx context.Context, actor model.Actor, page string, action model.Action) bool
	ListForRole(ctx context.Context, roleID int) ([]model.PermissionEntry, error)
	Seed(ctx context.Context) (int, error)
}

// PermissionCache is the cache surface the service needs. util.CacheService
// provides the production implementation.
type PermissionCache interface {
	GetPermission(ctx context.Context, roleID int, page string, action string) (bool, bool, error)
	SetPermission(ctx context.Context, roleID int, page string, action string, allowed bool) error
	InvalidatePermissions(ctx context.Context, roleID int) error
	GetPermissionSet(ctx context.Context, roleID int) ([]model.PermissionEntry, error)
	SetPermissionSet(ctx context.Context, roleID int, entries []model.PermissionEntry) error
}

type permissionService struct {
	permissionDAO *dao.PermissionDAO
	roleDAO       *dao.RoleDAO
	cache         PermissionCache
}

func NewPermissionService(permissionDAO *dao.PermissionDAO, roleDAO *dao.RoleDAO, cache PermissionCache) PermissionService {
	return &permissionService{permissionDAO: permissionDAO, roleDAO: roleDAO, cache: cache}
}

func (s *permissionService) Can(ctx context.Context, actor model.Actor, page string, action model.Action) bool {
	roleID := actor.RoleID
	if roleID == 0 {
		// Older tokens carry only the role name.
		role, err := s.roleDAO.GetRoleByName(ctx, actor.ActiveRole)
		if err != nil {
			logger.Warn("Permission check failed to resolve role",
				zap.Error(err),
				zap.String("activeRole", actor.ActiveRole))
			return false
		}
		roleID = role.ID
	}

	if allowed, found, err := s.cache.GetPermission(ctx, roleID, page, string(action)); err == nil && found {
		return allowed
	}

	allowed, err := s.permissionDAO.HasPermissionByRoleID(ctx, roleID, page, action)
	if err != nil {
		logger.Warn("Permission check failed, denying",
			zap.Error(err),
			zap.Int("roleID", roleID),
			zap.String("page", page),
			zap.String("action", string(action)))
		return false
	}

	if err := s.cache.SetPermission(ctx, roleID, page, string(action), allowed); err != nil {
		logger.Debug("Failed to cache permission decision", zap.Error(err))
	}
	return allowed
}

func (s *permissionService) ListForRole(ctx context.Context, roleID int) ([]model.PermissionEntry, error) {
	if cached, err := s.cache.GetPermissionSet(ctx, roleID); err == nil && cached != nil {
		return cached, nil
	}

	entries, err := s.permissionDAO.ListByRoleID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPermissionSet(ctx, roleID, entries); err != nil {
		logger.Debug("Failed to cache permission set", zap.Error(err), zap.Int("roleID", roleID))
	}
	return entries, nil
}

func (s *permissionService) Seed(ctx context.Context) (int, error) {
	seeded, err := s.permissionDAO.Seed(ctx)
	if err != nil {
		return seeded, err
	}

	// Stale cached decisions must not outlive a reseed.
	roles := []string{"admin", "office_manager", "office", "owner", "tenant"}
	for _, name := range roles {
		role, err := s.roleDAO.GetRoleByName(ctx, name)
		if err != nil {
			continue
		}
		if err := s.cache.InvalidatePermissions(ctx, role.ID); err != nil {
			logger.Debug("Failed to invalidate cached permissions", zap.Error(err), zap.Int("roleID", role.ID))
		}
	}
	return seeded, nil
}

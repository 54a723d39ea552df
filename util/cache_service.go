// api/util/cache_service.go

package util

import (
	"context"

	"github.com/f4lcon-tech/aqari/api/db"
	"github.com/f4lcon-tech/aqari/api/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetPermission(ctx context.Context, roleID int, page string, action string) (bool, bool, error) {
	return db.GetCachedPermission(ctx, roleID, page, action)
}

func (c *CacheService) SetPermission(ctx context.Context, roleID int, page string, action string, allowed bool) error {
	return db.CachePermission(ctx, roleID, page, action, allowed)
}

func (c *CacheService) InvalidatePermissions(ctx context.Context, roleID int) error {
	return db.DeleteCachedPermissions(ctx, roleID)
}

func (c *CacheService) GetPermissionSet(ctx context.Context, roleID int) ([]model.PermissionEntry, error) {
	return db.GetCachedPermissionSet(ctx, roleID)
}

func (c *CacheService) SetPermissionSet(ctx context.Context, roleID int, entries []model.PermissionEntry) error {
	return db.CachePermissionSet(ctx, roleID, entries)
}

func (c *CacheService) GetOfficeID(ctx context.Context, userID int) (int, bool, error) {
	return db.GetCachedOfficeID(ctx, userID)
}

func (c *CacheService) SetOfficeID(ctx context.Context, userID int, officeID int) error {
	return db.CacheOfficeID(ctx, userID, officeID)
}

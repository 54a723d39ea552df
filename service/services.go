// api/service/services.go
package service

import (
	"github.com/jmoiron/sqlx"

	"github.com/f4lcon-tech/aqari/api/audit"
	"github.com/f4lcon-tech/aqari/api/dao"
	"github.com/f4lcon-tech/aqari/api/scope"
	"github.com/f4lcon-tech/aqari/api/telemetry"
	"github.com/f4lcon-tech/aqari/api/util"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	Auth       AuthService
	Permission PermissionService
	Resource   ResourceService
	Analytics  AnalyticsService
	Telemetry  *telemetry.Service
	Audit      audit.Service
}

// DAOs bundles the data access objects built over one connection pool.
type DAOs struct {
	User       *dao.UserDAO
	Role       *dao.RoleDAO
	Office     *dao.OfficeDAO
	Permission *dao.PermissionDAO
	Resource   *dao.ResourceDAO
	Event      *dao.EventDAO
}

func InitializeDAOs(db *sqlx.DB) *DAOs {
	return &DAOs{
		User:       dao.NewUserDAO(db),
		Role:       dao.NewRoleDAO(db),
		Office:     dao.NewOfficeDAO(db),
		Permission: dao.NewPermissionDAO(db),
		Resource:   dao.NewResourceDAO(db),
		Event:      dao.NewEventDAO(db),
	}
}

func InitializeServices(db *sqlx.DB, daos *DAOs, eventBus *util.EventBus, cache *util.CacheService) *Services {
	validator := util.NewValidationUtil()
	builder := scope.NewBuilder()

	permissionService := NewPermissionService(daos.Permission, daos.Role, cache)
	auditService := audit.NewService(audit.NewPostgresRepository(db))

	return &Services{
		Auth:       NewAuthService(daos.User, daos.Role, daos.Office, permissionService, eventBus),
		Permission: permissionService,
		Resource:   NewResourceService(daos.Resource, daos.Office, builder, validator),
		Analytics:  NewAnalyticsService(daos.Event, daos.Office),
		Telemetry:  telemetry.NewService(daos.Event, daos.Office, cache),
		Audit:      auditService,
	}
}

// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/f4lcon-tech/aqari/api/controller"
	"github.com/f4lcon-tech/aqari/api/middleware"
	"github.com/f4lcon-tech/aqari/api/service"
)

func SetupRouter(
	controllers *controller.Controllers,
	services *service.Services,
	daos *service.DAOs,
	auditRecorder *middleware.AuditRecorder,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Auth(daos.User, daos.Role, daos.Office))
	router.Use(auditRecorder.Handler())

	api := router.Group("/")

	controllers.Auth.RegisterRoutes(api)
	controllers.Event.RegisterRoutes(api)

	// Each data page sits behind its permission matrix row; the required
	// action follows from the HTTP method.
	pages := map[string]func(*gin.RouterGroup){
		"Contracts":   controllers.Contract.RegisterRoutes,
		"Payments":    controllers.Payment.RegisterRoutes,
		"Expenses":    controllers.Expense.RegisterRoutes,
		"Maintenance": controllers.Maintenance.RegisterRoutes,
	}
	for page, register := range pages {
		group := api.Group("")
		group.Use(middleware.RequirePageAccess(services.Permission, page))
		register(group)
	}

	auditGroup := api.Group("")
	auditGroup.Use(middleware.RequirePageAccess(services.Permission, "Audit"))
	controllers.Audit.RegisterRoutes(auditGroup)

	admin := api.Group("/admin")
	admin.Use(middleware.RequirePageAccess(services.Permission, "AdminPanel"))
	controllers.Analytics.RegisterRoutes(admin)
	controllers.Permission.RegisterRoutes(admin)

	return router
}

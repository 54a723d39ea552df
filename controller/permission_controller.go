// api/controller/permission_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
)

type PermissionController struct {
	permissionService service.PermissionService
}

func NewPermissionController(permissionService service.PermissionService) *PermissionController {
	return &PermissionController{permissionService: permissionService}
}

// RegisterRoutes registers the admin permission management routes
func (pc *PermissionController) RegisterRoutes(r *gin.RouterGroup) {
	permissions := r.Group("/permissions")
	{
		permissions.POST("/seed", pc.SeedPermissions)
	}
}

// SeedPermissions endpoint upserts the default permission matrix
func (pc *PermissionController) SeedPermissions(c *gin.Context) {
	seeded, err := pc.permissionService.Seed(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to seed permissions", err)
		return
	}
	util.RespondWithData(c, http.StatusOK, gin.H{"seeded": seeded})
}

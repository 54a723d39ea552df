// api/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/service"
	"github.com/f4lcon-tech/aqari/api/util"
)

type AuthController struct {
	authService       service.AuthService
	permissionService service.PermissionService
}

func NewAuthController(authService service.AuthService, permissionService service.PermissionService) *AuthController {
	return &AuthController{
		authService:       authService,
		permissionService: permissionService,
	}
}

// RegisterRoutes registers the API routes for identity and role switching
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/switch-role", ac.SwitchRole)
		auth.GET("/permissions", ac.ListPermissions)
	}
	users := r.Group("/users")
	{
		users.GET("/me", ac.Profile)
		users.PUT("/me", ac.UpdateProfile)
	}
}

// SwitchRole endpoint
func (ac *AuthController) SwitchRole(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	var input model.SwitchRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role switch data", err)
		return
	}

	result, err := ac.authService.SwitchRole(c, actor, input.Role)
	if err != nil {
		switch {
		case errors.Is(err, aqari_errors.ErrRoleNotHeld):
			util.RespondWithError(c, http.StatusForbidden, "Role not held", err)
		case errors.Is(err, aqari_errors.ErrUserInactive):
			util.RespondWithError(c, http.StatusForbidden, "Account is inactive", err)
		case errors.Is(err, aqari_errors.ErrOfficeSuspended):
			util.RespondWithError(c, http.StatusForbidden, "Office is suspended", err)
		case errors.Is(err, aqari_errors.ErrOfficeMemberInactive):
			util.RespondWithError(c, http.StatusForbidden, "Office membership is inactive", err)
		case errors.Is(err, aqari_errors.ErrNoLinkedOffice):
			util.RespondWithError(c, http.StatusForbidden, "No office linked to account", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to switch role", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"activeRole":  result.ActiveRole,
		"role_id":     result.RoleID,
		"permissions": result.Permissions,
		"token":       result.Token,
	})
}

// Profile endpoint
func (ac *AuthController) Profile(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	user, roles, err := ac.authService.Profile(c, actor)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, gin.H{
		"user":       user,
		"roles":      roles,
		"activeRole": actor.ActiveRole,
	})
}

// UpdateProfile endpoint applies a partial update to the caller's account
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}

	var input model.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid profile data", err)
		return
	}

	if err := ac.authService.UpdateProfile(c, actor, input); err != nil {
		switch {
		case errors.Is(err, aqari_errors.ErrInvalidRequestData):
			util.RespondWithError(c, http.StatusBadRequest, "Nothing to update", err)
		case errors.Is(err, aqari_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile", err)
		}
		return
	}
	util.RespondWithData(c, http.StatusOK, gin.H{"id": actor.UserID})
}

// ListPermissions endpoint returns the matrix rows for the active role
func (ac *AuthController) ListPermissions(c *gin.Context) {
	actor, ok := util.GetActor(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", aqari_errors.ErrUnauthorized)
		return
	}
	if actor.RoleID == 0 {
		util.RespondWithError(c, http.StatusForbidden, "No active role", aqari_errors.ErrNoActiveRole)
		return
	}

	entries, err := ac.permissionService.ListForRole(c, actor.RoleID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to load permissions", err)
		return
	}
	util.RespondWithData(c, http.StatusOK, entries)
}

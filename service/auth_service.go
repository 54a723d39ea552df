// api/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/dao"
	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/middleware"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

// SwitchRoleResult is what a successful role switch hands back: a fresh
// token scoped to the new role plus that role's permission listing.
type SwitchRoleResult struct {
	ActiveRole  string                  `json:"activeRole"`
	RoleID      int                     `json:"role_id"`
	Permissions []model.PermissionEntry `json:"permissions"`
	Token       string                  `json:"token"`
}

type AuthService interface {
	SwitchRole(ctx context.Context, actor model.Actor, desiredRole string) (*SwitchRoleResult, error)
	Profile(ctx context.Context, actor model.Actor) (*model.UserProfile, []model.RoleRecord, error)
	UpdateProfile(ctx context.Context, actor model.Actor, input model.ProfileInput) error
}

type authService struct {
	userDAO           *dao.UserDAO
	roleDAO           *dao.RoleDAO
	officeDAO         *dao.OfficeDAO
	permissionService PermissionService
	eventBus          *util.EventBus
}

func NewAuthService(userDAO *dao.UserDAO, roleDAO *dao.RoleDAO, officeDAO *dao.OfficeDAO,
	permissionService PermissionService, eventBus *util.EventBus) AuthService {
	return &authService{
		userDAO:           userDAO,
		roleDAO:           roleDAO,
		officeDAO:         officeDAO,
		permissionService: permissionService,
		eventBus:          eventBus,
	}
}

func (s *authService) SwitchRole(ctx context.Context, actor model.Actor, desiredRole string) (*SwitchRoleResult, error) {
	role, err := s.roleDAO.UserHoldsRole(ctx, actor.UserID, desiredRole)
	if err != nil {
		return nil, err
	}

	user, err := s.userDAO.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, aqari_errors.ErrUserInactive
	}

	if model.IsOfficeClass(role.Name) {
		if err := s.checkOfficeAccess(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	heldRoles, err := s.roleDAO.GetRolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roleNames := make([]string, len(heldRoles))
	for i, r := range heldRoles {
		roleNames[i] = r.Name
	}

	token, err := s.issueToken(user, roleNames, role.Name, role.ID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.permissionService.ListForRole(ctx, role.ID)
	if err != nil {
		logger.Warn("Role switch could not load permissions",
			zap.Error(err),
			zap.Int("roleID", role.ID))
		permissions = []model.PermissionEntry{}
	}

	s.eventBus.Publish(ctx, util.EventRoleSwitched, map[string]interface{}{
		"userID":     user.ID,
		"activeRole": role.Name,
	})

	logger.Info("Role switched",
		zap.Int("userID", user.ID),
		zap.String("activeRole", role.Name))

	return &SwitchRoleResult{
		ActiveRole:  role.Name,
		RoleID:      role.ID,
		Permissions: permissions,
		Token:       token,
	}, nil
}

// checkOfficeAccess verifies the user's office is operational and, when
// access comes through a membership, that the membership is active.
func (s *authService) checkOfficeAccess(ctx context.Context, userID int) error {
	officeID, err := s.officeDAO.ResolveOfficeID(ctx, userID)
	if err != nil {
		return err
	}

	office, err := s.officeDAO.GetOfficeByID(ctx, officeID)
	if err != nil {
		return err
	}
	if model.IsSuspendedStatus(office.Status) {
		return aqari_errors.ErrOfficeSuspended
	}

	if office.OwnerID != userID {
		membership, err := s.officeDAO.GetMembership(ctx, officeID, userID)
		if err != nil {
			return err
		}
		if !membership.IsActive {
			return aqari_errors.ErrOfficeMemberInactive
		}
	}
	return nil
}

func (s *authService) issueToken(user *model.User, roles []string, activeRole string, roleID int) (string, error) {
	ttl := viper.GetDuration("auth.tokenTTL")
	if ttl == 0 {
		ttl = 168 * time.Hour
	}

	claims := middleware.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
		UserID:     user.ID,
		Phone:      user.Phone,
		Roles:      roles,
		ActiveRole: activeRole,
		RoleID:     roleID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(viper.GetString("auth.jwtSecret")))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) Profile(ctx context.Context, actor model.Actor) (*model.UserProfile, []model.RoleRecord, error) {
	profile, err := s.userDAO.GetProfile(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.roleDAO.GetRolesForUser(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	return profile, roles, nil
}

// UpdateProfile changes the caller's own name or email; absent fields
// keep their stored value.
func (s *authService) UpdateProfile(ctx context.Context, actor model.Actor, input model.ProfileInput) error {
	if input.Name == nil && input.Email == nil {
		return aqari_errors.ErrInvalidRequestData
	}
	updated, err := s.userDAO.UpdateProfile(ctx, actor.UserID, input)
	if err != nil {
		return err
	}
	if !updated {
		return aqari_errors.ErrUserNotFound
	}
	logger.Info("Profile updated", zap.Int("userID", actor.UserID))
	return nil
}

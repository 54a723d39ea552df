// api/middleware/auth.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/config"
	"github.com/f4lcon-tech/aqari/api/dao"
	aqari_errors "github.com/f4lcon-tech/aqari/api/errors"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

// TokenClaims is the JWT payload issued at login and role switch.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID     int      `json:"id"`
	Phone      string   `json:"phone"`
	Roles      []string `json:"roles"`
	ActiveRole string   `json:"activeRole"`
	RoleID     int      `json:"role_id"`
}

// Auth verifies the bearer token, confirms the user is still active,
// re-checks the active role against the held set in the database, gates
// office-class roles on office status, and places the verified actor on
// the request context. The database checks keep revocations and office
// suspensions effective before the token expires.
func Auth(userDAO *dao.UserDAO, roleDAO *dao.RoleDAO, officeDAO *dao.OfficeDAO) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := userDAO.GetUserByID(c, claims.UserID)
		if err != nil {
			logger.Warn("Token user lookup failed", zap.Error(err), zap.Int("userID", claims.UserID))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Account is inactive"})
			c.Abort()
			return
		}

		heldRoles, err := roleDAO.GetRolesForUser(c, claims.UserID)
		if err != nil {
			logger.Warn("Held role lookup failed", zap.Error(err), zap.Int("userID", claims.UserID))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}
		roleNames := make([]string, len(heldRoles))
		held := false
		for i, r := range heldRoles {
			roleNames[i] = r.Name
			if strings.EqualFold(r.Name, claims.ActiveRole) {
				held = true
			}
		}
		if !held {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Role not held"})
			c.Abort()
			return
		}

		if model.IsOfficeClass(claims.ActiveRole) {
			if err := checkOfficeStatus(c, officeDAO, claims.UserID); err != nil {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Office is suspended"})
				c.Abort()
				return
			}
		}

		util.SetActor(c, model.Actor{
			UserID:     claims.UserID,
			Phone:      util.NormalizePhone(claims.Phone),
			Roles:      roleNames,
			ActiveRole: claims.ActiveRole,
			RoleID:     claims.RoleID,
		})
		c.Next()
	}
}

// checkOfficeStatus rejects office-class access through a suspended
// office. A user with no office link passes; the office requirement
// itself is enforced at role switch, not per request.
func checkOfficeStatus(ctx context.Context, officeDAO *dao.OfficeDAO, userID int) error {
	officeID, err := officeDAO.ResolveOfficeID(ctx, userID)
	if err != nil {
		if errors.Is(err, aqari_errors.ErrNoLinkedOffice) {
			return nil
		}
		return err
	}
	office, err := officeDAO.GetOfficeByID(ctx, officeID)
	if err != nil {
		return err
	}
	if model.IsSuspendedStatus(office.Status) {
		return aqari_errors.ErrOfficeSuspended
	}
	return nil
}

// ParseToken validates a bearer token string and returns its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetString("auth.jwtSecret")), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aqari_errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, aqari_errors.ErrInvalidToken
	}
	return claims, nil
}

// PermissionChecker is the decision interface the permission middleware
// depends on.
type PermissionChecker interface {
	Can(ctx context.Context, actor model.Actor, page string, action model.Action) bool
}

// RequirePageAccess gates a page's route group, deriving the action from
// the HTTP method: reads need view, writes need edit, deletes need delete.
func RequirePageAccess(checker PermissionChecker, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var action model.Action
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			action = model.ActionView
		case http.MethodDelete:
			action = model.ActionDelete
		default:
			action = model.ActionEdit
		}

		actor, ok := util.GetActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}

		if !checker.Can(c, actor, page, action) {
			c.Error(aqari_errors.ErrAuthorizationDenied)
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/dao"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

func newAuthFixture(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *model.Actor) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	viper.Set("auth.jwtSecret", "test-secret")

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	router := gin.New()
	router.Use(Auth(dao.NewUserDAO(db), dao.NewRoleDAO(db), dao.NewOfficeDAO(db)))

	var seen model.Actor
	router.GET("/ping", func(c *gin.Context) {
		actor, _ := util.GetActor(c)
		seen = actor
		c.Status(http.StatusOK)
	})
	return router, mock, &seen
}

func signTestToken(t *testing.T, claims TokenClaims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + token
}

func expectActiveUser(mock sqlmock.Sqlmock, userID int, phone string) {
	mock.ExpectQuery(`SELECT id, name, phone, is_active FROM users`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "is_active"}).
			AddRow(userID, "sara", phone, true))
}

func TestAuthRejectsRoleNoLongerHeld(t *testing.T) {
	router, mock, _ := newAuthFixture(t)
	token := signTestToken(t, TokenClaims{UserID: 9, Phone: "0501234567", Roles: []string{"owner"}, ActiveRole: "owner"})

	expectActiveUser(mock, 9, "0501234567")
	mock.ExpectQuery(`FROM roles r`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "tenant"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRejectsSuspendedOffice(t *testing.T) {
	router, mock, _ := newAuthFixture(t)
	token := signTestToken(t, TokenClaims{UserID: 9, Phone: "0501234567", ActiveRole: "office_admin"})

	expectActiveUser(mock, 9, "0501234567")
	mock.ExpectQuery(`FROM roles r`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "office_admin"))
	mock.ExpectQuery(`ORDER BY priority ASC`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"office_id"}).AddRow(7))
	mock.ExpectQuery(`FROM offices WHERE id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "is_owner_office", "status", "created_at"}).
			AddRow(7, "makkah office", 9, false, "موقوف", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthBuildsActorFromDatabaseRoles(t *testing.T) {
	router, mock, seen := newAuthFixture(t)
	token := signTestToken(t, TokenClaims{UserID: 9, Phone: "+966 50 123 4567", Roles: []string{"stale"}, ActiveRole: "owner", RoleID: 4})

	expectActiveUser(mock, 9, "+966 50 123 4567")
	mock.ExpectQuery(`FROM roles r`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(3, "tenant").
			AddRow(4, "owner"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, seen.UserID)
	assert.Equal(t, "0501234567", seen.Phone)
	assert.Equal(t, []string{"tenant", "owner"}, seen.Roles)
	assert.Equal(t, "owner", seen.ActiveRole)
}

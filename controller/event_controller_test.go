package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/dao"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/telemetry"
	"github.com/f4lcon-tech/aqari/api/util"
)

type eventCacheStub struct{}

func (eventCacheStub) GetOfficeID(ctx context.Context, userID int) (int, bool, error) {
	return 0, false, nil
}

func (eventCacheStub) SetOfficeID(ctx context.Context, userID int, officeID int) error {
	return nil
}

func newEventRouter(t *testing.T, actor model.Actor) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	svc := telemetry.NewService(dao.NewEventDAO(db), dao.NewOfficeDAO(db), eventCacheStub{})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		util.SetActor(c, actor)
		c.Next()
	})
	NewEventController(svc).RegisterRoutes(router.Group("/"))
	return router, mock
}

func TestRecordEventStorageFailureStaysSuccessful(t *testing.T) {
	actor := model.Actor{UserID: 9, ActiveRole: "owner"}
	router, mock := newEventRouter(t, actor)

	mock.ExpectExec(`INSERT INTO system_events`).
		WillReturnError(errors.New("insert failed"))

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"event_type":"payment_view"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success  bool `json:"success"`
		Recorded bool `json:"recorded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Recorded)
}

func TestWithRequestMetadataMergesDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/events", nil)
	c.Request.Header.Set("User-Agent", "test-agent")

	merged := withRequestMetadata(c, model.JSONMap{"route": "custom", "plan": "basic"})

	assert.Equal(t, "custom", merged["route"])
	assert.Equal(t, "POST", merged["method"])
	assert.Equal(t, "test-agent", merged["user_agent"])
	assert.Equal(t, "basic", merged["plan"])
}

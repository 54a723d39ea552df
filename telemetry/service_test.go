package telemetry

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4lcon-tech/aqari/api/dao"
	"github.com/f4lcon-tech/aqari/api/model"
)

type fakeOfficeCache struct {
	offices map[int]int
}

func (f *fakeOfficeCache) GetOfficeID(ctx context.Context, userID int) (int, bool, error) {
	id, ok := f.offices[userID]
	return id, ok, nil
}

func (f *fakeOfficeCache) SetOfficeID(ctx context.Context, userID int, officeID int) error {
	f.offices[userID] = officeID
	return nil
}

func newTelemetryFixture(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeOfficeCache) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	cache := &fakeOfficeCache{offices: map[int]int{}}
	svc := NewService(dao.NewEventDAO(db), dao.NewOfficeDAO(db), cache)
	return svc, mock, cache
}

func TestRecordPolicyDropsSilently(t *testing.T) {
	svc, mock, _ := newTelemetryFixture(t)
	actor := model.Actor{UserID: 9, ActiveRole: "tenant"}

	recorded, err := svc.Record(context.Background(), actor, model.EventInput{EventType: "contract_view"})

	assert.NoError(t, err)
	assert.False(t, recorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordMissingIdentityDrops(t *testing.T) {
	svc, _, _ := newTelemetryFixture(t)

	recorded, err := svc.Record(context.Background(), model.Actor{}, model.EventInput{EventType: "login"})

	assert.NoError(t, err)
	assert.False(t, recorded)
}

func TestRecordStoresRawEventTypeWithOffice(t *testing.T) {
	svc, mock, cache := newTelemetryFixture(t)
	cache.offices[9] = 7
	actor := model.Actor{UserID: 9, ActiveRole: "office_admin"}

	mock.ExpectExec(`INSERT INTO system_events`).
		WithArgs(9, 7, "office", "contract_open", nil, nil, "web", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorded, err := svc.Record(context.Background(), actor, model.EventInput{
		EventType: "contract_open",
		Source:    "web",
	})

	assert.NoError(t, err)
	assert.True(t, recorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResolvesOfficeOnCacheMiss(t *testing.T) {
	svc, mock, cache := newTelemetryFixture(t)
	actor := model.Actor{UserID: 9, ActiveRole: "self_office_admin"}

	mock.ExpectQuery(`ORDER BY priority ASC`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"office_id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO system_events`).
		WithArgs(9, 5, "office", "login", nil, nil, "mobile", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorded, err := svc.Record(context.Background(), actor, model.EventInput{
		EventType: "login",
		Source:    "mobile",
	})

	assert.NoError(t, err)
	assert.True(t, recorded)
	assert.Equal(t, 5, cache.offices[9])
}

func TestRecordSkipsOfficeLookupOutsideOfficeClass(t *testing.T) {
	svc, mock, _ := newTelemetryFixture(t)
	entityType := "payment"
	entityID := 14
	actor := model.Actor{UserID: 9, ActiveRole: "owner"}

	mock.ExpectExec(`INSERT INTO system_events`).
		WithArgs(9, nil, "owner", "payment_view", &entityType, &entityID, "web", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorded, err := svc.Record(context.Background(), actor, model.EventInput{
		EventType:  "payment_view",
		EntityType: &entityType,
		EntityID:   &entityID,
		Source:     "web",
	})

	assert.NoError(t, err)
	assert.True(t, recorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

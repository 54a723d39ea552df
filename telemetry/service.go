// api/telemetry/service.go
package telemetry

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f4lcon-tech/aqari/api/dao"
	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
	"github.com/f4lcon-tech/aqari/api/util"
)

// OfficeCache is the cache surface the service needs. util.CacheService
// provides the production implementation.
type OfficeCache interface {
	GetOfficeID(ctx context.Context, userID int) (int, bool, error)
	SetOfficeID(ctx context.Context, userID int, officeID int) error
}

// Service records policy-filtered telemetry events. Recording never
// affects the primary request: policy denials drop the event quietly and
// storage failures only reach the logs.
type Service struct {
	eventDAO  *dao.EventDAO
	officeDAO *dao.OfficeDAO
	cache     OfficeCache
}

func NewService(eventDAO *dao.EventDAO, officeDAO *dao.OfficeDAO, cache OfficeCache) *Service {
	return &Service{eventDAO: eventDAO, officeDAO: officeDAO, cache: cache}
}

// Record applies the role policy and appends the event. It reports
// whether the event was stored; a false return with nil error means the
// policy dropped it.
func (s *Service) Record(ctx context.Context, actor model.Actor, input model.EventInput) (bool, error) {
	if actor.UserID == 0 || actor.ActiveRole == "" {
		return false, nil
	}

	role := actor.EffectiveRole()
	if !IsAllowed(role, input.EventType) {
		logger.Debug("Telemetry event dropped by role policy",
			zap.String("role", string(role)),
			zap.String("eventType", input.EventType))
		return false, nil
	}

	source := input.Source
	if source == "" {
		source = viper.GetString("telemetry.source")
	}

	// Only office-class actors carry an office id; the remapped canonical
	// name is for the policy check only, the stored type stays raw so the
	// usage-score weights see the original names.
	var officeID *int
	if model.IsOfficeClass(actor.ActiveRole) {
		officeID = s.resolveOffice(ctx, actor.UserID)
	}

	event := model.SystemEvent{
		UserID:     actor.UserID,
		OfficeID:   officeID,
		Role:       string(role),
		EventType:  input.EventType,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Source:     source,
		Metadata:   input.Metadata,
	}

	if err := s.eventDAO.InsertEvent(ctx, event); err != nil {
		logger.Error("Failed to store telemetry event",
			zap.Error(err),
			zap.String("eventType", event.EventType),
			zap.Int("userID", actor.UserID))
		return false, err
	}
	return true, nil
}

// HandleBusEvent lets the service consume events published on the
// in-process bus by other components.
func (s *Service) HandleBusEvent(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(BusEvent)
	if !ok {
		return nil
	}
	_, err := s.Record(ctx, payload.Actor, payload.Input)
	return err
}

// BusEvent is the payload shape for telemetry events on the bus.
type BusEvent struct {
	Actor model.Actor
	Input model.EventInput
}

// resolveOffice finds the actor's office, consulting the cache first.
// A user with no office link records events without one.
func (s *Service) resolveOffice(ctx context.Context, userID int) *int {
	if officeID, found, err := s.cache.GetOfficeID(ctx, userID); err == nil && found {
		return &officeID
	}

	officeID, err := s.officeDAO.ResolveOfficeID(ctx, userID)
	if err != nil {
		return nil
	}
	if err := s.cache.SetOfficeID(ctx, userID, officeID); err != nil {
		logger.Debug("Failed to cache office id", zap.Error(err), zap.Int("userID", userID))
	}
	return &officeID
}

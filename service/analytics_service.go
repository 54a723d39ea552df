// api/service/analytics_service.go
package service

import (
	"context"

	"github.com/f4lcon-tech/aqari/api/dao"
	"github.com/f4lcon-tech/aqari/api/model"
)

// OfficeDetails bundles one office's profile, activity score and recent
// event timeline for the admin panel.
type OfficeDetails struct {
	Office   *model.Office       `json:"office"`
	Activity *dao.OfficeActivity `json:"activity"`
	Timeline []model.SystemEvent `json:"timeline"`
}

// AnalyticsService serves the admin usage dashboards built on the
// telemetry stream.
type AnalyticsService interface {
	Overview(ctx context.Context) (*dao.UsageOverview, error)
	OfficesActivity(ctx context.Context) ([]dao.OfficeActivity, error)
	TopFeatures(ctx context.Context, limit int) ([]dao.FeatureUsage, error)
	OfficeDetails(ctx context.Context, officeID int) (*OfficeDetails, error)
}

type analyticsService struct {
	eventDAO  *dao.EventDAO
	officeDAO *dao.OfficeDAO
}

func NewAnalyticsService(eventDAO *dao.EventDAO, officeDAO *dao.OfficeDAO) AnalyticsService {
	return &analyticsService{eventDAO: eventDAO, officeDAO: officeDAO}
}

func (s *analyticsService) Overview(ctx context.Context) (*dao.UsageOverview, error) {
	return s.eventDAO.GetUsageOverview(ctx)
}

func (s *analyticsService) OfficesActivity(ctx context.Context) ([]dao.OfficeActivity, error) {
	return s.eventDAO.ListOfficeActivity(ctx)
}

func (s *analyticsService) TopFeatures(ctx context.Context, limit int) ([]dao.FeatureUsage, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.eventDAO.ListTopFeatures(ctx, limit)
}

func (s *analyticsService) OfficeDetails(ctx context.Context, officeID int) (*OfficeDetails, error) {
	office, err := s.officeDAO.GetOfficeByID(ctx, officeID)
	if err != nil {
		return nil, err
	}
	activity, err := s.eventDAO.GetOfficeActivity(ctx, officeID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.eventDAO.GetOfficeTimeline(ctx, officeID)
	if err != nil {
		return nil, err
	}
	return &OfficeDetails{Office: office, Activity: activity, Timeline: timeline}, nil
}

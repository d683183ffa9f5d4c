package services

import (
	"context"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/alert"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

// AlertService implements alert.Service
type AlertService struct {
	resources resource.Repository
	logger    *logger.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(resources resource.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		resources: resources,
		logger:    log,
	}
}

// List returns one warning per resource whose stored status is neither
// Running nor Stopped. Statuses are not refreshed.
func (s *AlertService) List(ctx context.Context) ([]*alert.Alert, error) {
	stored, err := s.resources.List(ctx, resource.Filter{})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list resources for alerts")
		return nil, err
	}

	alerts := []*alert.Alert{}
	for _, res := range stored {
		if res.Status.Healthy() {
			continue
		}
		alerts = append(alerts, &alert.Alert{
			ID:       alert.StatusAlertID(res.ID),
			Title:    alert.StatusAlertTitle(res.Name, string(res.Status)),
			Severity: alert.SeverityWarning,
			Time:     res.UpdatedAt,
		})
	}

	return alerts, nil
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/metric"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudmgr/internal/providers"
)

// UtilisationReader returns measured utilisation of an EC2 instance in its region
type UtilisationReader interface {
	EC2Utilisation(ctx context.Context, instanceID, region string, end time.Time) ([]metric.Point, error)
}

// MetricsService implements metric.Service. Measured data is used for AWS
// VMs when available; everything else gets a synthetic series.
type MetricsService struct {
	resources resource.Repository
	reader    UtilisationReader
	timeout   time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(resources resource.Repository, reader UtilisationReader, timeout time.Duration, log *logger.Logger) *MetricsService {
	return &MetricsService{
		resources: resources,
		reader:    reader,
		timeout:   timeout,
		now:       time.Now,
		logger:    log,
	}
}

// ForResource returns the recent utilisation series of a resource
func (s *MetricsService) ForResource(ctx context.Context, resourceID int64) ([]metric.Point, error) {
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC().Truncate(time.Minute)

	if res.Provider == resource.ProviderAWS && res.Type == resource.TypeVM && s.reader != nil {
		if points := s.measured(ctx, res, end); len(points) > 0 {
			return points, nil
		}
	}

	return metric.GenerateSeries(profileFor(res), end, metric.DefaultPoints), nil
}

func (s *MetricsService) measured(ctx context.Context, res *resource.Resource, end time.Time) []metric.Point {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	points, err := s.reader.EC2Utilisation(ctx, res.ExternalID, res.Region, end)
	outcome := "ok"
	switch {
	case errors.Is(err, providers.ErrOffline):
		outcome = "offline"
	case err != nil:
		outcome = "error"
		s.logger.With("resource_id", res.ID).WithError(err).Warn("CloudWatch read failed, using synthetic series")
	}
	metrics.RecordProviderCall(string(res.Provider), string(res.Type), "metrics", outcome, time.Since(start))

	return points
}

func profileFor(res *resource.Resource) metric.Profile {
	if res.Type != resource.TypeVM {
		return metric.ProfileGeneric
	}
	switch res.Provider {
	case resource.ProviderGCP:
		return metric.ProfileGCP
	case resource.ProviderAzure:
		return metric.ProfileAzure
	default:
		return metric.ProfileGeneric
	}
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudmgr/internal/providers"
)

// ResourceService implements resource.Service
type ResourceService struct {
	repo     resource.Repository
	registry *providers.Registry
	cfg      *config.Config
	logger   *logger.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(repo resource.Repository, registry *providers.Registry, cfg *config.Config, log *logger.Logger) resource.Service {
	return &ResourceService{
		repo:     repo,
		registry: registry,
		cfg:      cfg,
		logger:   log,
	}
}

// Create provisions the resource and stores it with its create entry.
// Provider failures do not fail the request: the adapter degrades to a
// logical resource, and an unexpected adapter error leaves a Failed resource.
func (s *ResourceService) Create(ctx context.Context, input resource.CreateInput) (*resource.Resource, error) {
	adapter, ok := s.registry.Lookup(input.Provider, input.Type)
	if !ok {
		return nil, errors.BadRequest(fmt.Sprintf("Unsupported provider and type: %s %s", input.Provider, input.Type))
	}

	region := input.Region
	if input.Provider == resource.ProviderAWS && s.cfg.AWS.LockRegion {
		region = s.cfg.AWS.Region
	}

	res := &resource.Resource{
		Name:         input.Name,
		Provider:     input.Provider,
		Type:         input.Type,
		Region:       region,
		Status:       resource.StatusCreating,
		CostPerMonth: resource.MonthlyCost(input.Provider, input.Type),
		Uptime:       100,
		Tags:         []string{},
	}

	outcome, err := s.provision(ctx, adapter, res)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"provider": res.Provider,
			"type":     res.Type,
			"name":     res.Name,
		}).WithError(err).Error("Resource creation failed")
		res.Status = resource.StatusFailed
	} else {
		res.ExternalID = outcome.ExternalID
		res.CPU = outcome.Spec.CPU
		res.Memory = outcome.Spec.Memory
		res.Storage = outcome.Spec.Storage
		res.Status = resource.Normalize(res.Provider, res.Type, outcome.NativeStatus, resource.StatusCreating)
	}

	details := map[string]interface{}{
		"external_id": res.ExternalID,
		"logical":     outcome.Logical,
	}
	if err != nil {
		details["error"] = err.Error()
	}
	entry := audit.NewEntry(audit.ActionCreate, audit.StatusFor(res.Status == resource.StatusFailed),
		string(res.Provider), res.Name, details)

	// the provider may already hold the resource; record it even if the caller left
	if err := s.repo.Create(context.WithoutCancel(ctx), res, entry); err != nil {
		s.logger.ErrorWithErr(err, "Failed to store resource")
		return nil, err
	}

	metrics.RecordLifecycle(string(audit.ActionCreate), entry.Status)
	s.syncResourceGauge(ctx)

	s.logger.WithFields(map[string]interface{}{
		"resource_id": res.ID,
		"external_id": res.ExternalID,
		"provider":    res.Provider,
		"type":        res.Type,
		"status":      res.Status,
		"logical":     outcome.Logical,
	}).Info("Resource created")

	return res, nil
}

func (s *ResourceService) provision(ctx context.Context, adapter providers.Adapter, res *resource.Resource) (out providers.Outcome, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = providers.Outcome{}
			err = fmt.Errorf("%s %s adapter panic: %v", res.Provider, res.Type, r)
		}
		metrics.RecordProviderCall(string(res.Provider), string(res.Type), "create", callOutcome(out.Logical, err), time.Since(start))
	}()

	return adapter.Create(ctx, res.Name, res.Region)
}

// GetByID returns one resource after refreshing its status
func (s *ResourceService) GetByID(ctx context.Context, id int64) (*resource.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, []*resource.Resource{res})
	return res, nil
}

// List returns the stored resources after refreshing live statuses
func (s *ResourceService) List(ctx context.Context, filter resource.Filter) ([]*resource.Resource, error) {
	stored, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, stored)

	resources := make([]*resource.Resource, 0, len(stored))
	for _, res := range stored {
		if filter.Matches(res) {
			resources = append(resources, res)
		}
	}
	return resources, nil
}

// refresh reads live statuses in parallel and persists the changed ones
// serially. A failed read is an absent status for that resource only.
func (s *ResourceService) refresh(ctx context.Context, resources []*resource.Resource) {
	natives := make([]string, len(resources))
	eligible := make([]bool, len(resources))

	sem := make(chan struct{}, s.refreshConcurrency())
	var wg sync.WaitGroup

	for i, res := range resources {
		if !needsRefresh(res) {
			continue
		}
		if res.Type == resource.TypeStorage {
			eligible[i] = true
			natives[i] = string(resource.StatusRunning)
			continue
		}

		adapter, ok := s.registry.Lookup(res.Provider, res.Type)
		if !ok {
			continue
		}
		reader, ok := adapter.(providers.StatusReader)
		if !ok {
			continue
		}

		eligible[i] = true
		wg.Add(1)
		go func(i int, res *resource.Resource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			natives[i] = s.readStatus(ctx, reader, res)
		}(i, res)
	}
	wg.Wait()

	for i, res := range resources {
		if !eligible[i] {
			continue
		}

		next := resource.Normalize(res.Provider, res.Type, natives[i], res.Status)
		if next == res.Status {
			metrics.RecordRefresh(string(res.Provider), "unchanged")
			continue
		}

		if err := s.repo.UpdateStatus(ctx, res.ID, next); err != nil {
			s.logger.With("resource_id", res.ID).WithError(err).Warn("Failed to persist refreshed status")
			metrics.RecordRefresh(string(res.Provider), "error")
			continue
		}

		s.logger.WithFields(map[string]interface{}{
			"resource_id": res.ID,
			"from":        res.Status,
			"to":          next,
		}).Debug("Resource status changed")

		res.Status = next
		res.UpdatedAt = time.Now().UTC()
		metrics.RecordRefresh(string(res.Provider), "changed")
	}
}

func needsRefresh(res *resource.Resource) bool {
	return res.Provider == resource.ProviderAWS && res.ExternalID != "" && !res.Status.IsTerminal()
}

// readStatus returns the native status, or "" when it could not be read
func (s *ResourceService) readStatus(ctx context.Context, reader providers.StatusReader, res *resource.Resource) (native string) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Provider.CallTimeout)
	defer cancel()

	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			native = ""
			err = fmt.Errorf("status read panic: %v", r)
		}
		if err != nil {
			s.logger.With("resource_id", res.ID).WithError(err).Debug("Status read failed")
		}
		metrics.RecordProviderCall(string(res.Provider), string(res.Type), "status", callOutcome(false, err), time.Since(start))
	}()

	native, err = reader.Status(ctx, res.ExternalID, res.Region)
	if err != nil {
		return ""
	}
	return native
}

func (s *ResourceService) refreshConcurrency() int {
	if s.cfg.Provider.RefreshConcurrency < 1 {
		return 1
	}
	return s.cfg.Provider.RefreshConcurrency
}

// Update applies a partial patch. The provider is not called.
func (s *ResourceService) Update(ctx context.Context, id int64, patch resource.Patch) (*resource.Resource, error) {
	if patch.Status != nil {
		if _, ok := resource.ParseStatus(string(*patch.Status)); !ok {
			return nil, errors.ValidationError("Invalid status", map[string]string{"status": string(*patch.Status)})
		}
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(res)

	fields := patch.Fields()
	if fields == nil {
		fields = []string{}
	}
	entry := audit.NewEntry(audit.ActionUpdate, audit.StatusSuccess, string(res.Provider), res.Name,
		map[string]interface{}{"updated_fields": fields})

	if err := s.repo.Update(ctx, res, entry); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update resource")
		return nil, err
	}

	metrics.RecordLifecycle(string(audit.ActionUpdate), entry.Status)

	s.logger.WithFields(map[string]interface{}{
		"resource_id": res.ID,
		"fields":      fields,
	}).Info("Resource updated")

	return res, nil
}

// Delete terminates the resource in its provider, best effort, then removes
// it and its history. The delete entry outlives the resource.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	terminated := s.terminate(ctx, res)

	entry := audit.NewEntry(audit.ActionDelete, audit.StatusSuccess, string(res.Provider), res.Name,
		map[string]interface{}{
			"resource_id": res.ID,
			"external_id": res.ExternalID,
			"terminated":  terminated,
		})

	if err := s.repo.Delete(ctx, id, entry); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete resource")
		return err
	}

	metrics.RecordLifecycle(string(audit.ActionDelete), entry.Status)
	s.syncResourceGauge(ctx)

	s.logger.WithFields(map[string]interface{}{
		"resource_id": id,
		"provider":    res.Provider,
		"type":        res.Type,
	}).Info("Resource deleted")

	return nil
}

// terminate reports whether the provider accepted the delete
func (s *ResourceService) terminate(ctx context.Context, res *resource.Resource) (ok bool) {
	if res.ExternalID == "" {
		return false
	}
	adapter, found := s.registry.Lookup(res.Provider, res.Type)
	if !found {
		return false
	}

	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terminate panic: %v", r)
			ok = false
		}
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"resource_id": res.ID,
				"external_id": res.ExternalID,
			}).WithError(err).Warn("Provider terminate failed, removing record anyway")
		}
		metrics.RecordProviderCall(string(res.Provider), string(res.Type), "terminate", callOutcome(false, err), time.Since(start))
	}()

	err = adapter.Terminate(ctx, res.ExternalID, res.Region)
	return err == nil
}

func (s *ResourceService) syncResourceGauge(ctx context.Context) {
	counts, err := s.repo.CountByProviderType(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to count resources")
		return
	}

	metrics.ResetResourcesCount()
	for p, byType := range counts {
		for t, n := range byType {
			metrics.SetResourcesCount(string(p), string(t), float64(n))
		}
	}
}

func callOutcome(logical bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case logical:
		return "logical"
	default:
		return "ok"
	}
}

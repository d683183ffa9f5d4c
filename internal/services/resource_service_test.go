package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	apperrors "github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/providers"
	"github.com/pratik-mahalle/cloudmgr/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{Region: "ap-south-1", LockRegion: true},
		Provider: config.ProviderConfig{
			CallTimeout:        time.Second,
			RefreshConcurrency: 2,
		},
	}
}

func newTestResourceService(repo resource.Repository, registry *providers.Registry) resource.Service {
	return NewResourceService(repo, registry, testConfig(), logger.Nop())
}

func TestResourceService_CreateStorageWithoutCredentials(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	registry := providers.NewDefaultRegistry(nil, testConfig().AWS, logger.Nop())
	service := newTestResourceService(repo, registry)

	res, err := service.Create(context.Background(), resource.CreateInput{
		Name: "logs", Provider: resource.ProviderAWS, Type: resource.TypeStorage, Region: "ap-south-1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !regexp.MustCompile(`^aws-s3-local-[0-9a-f]{8}$`).MatchString(res.ExternalID) {
		t.Errorf("external id = %s, want logical bucket id", res.ExternalID)
	}
	if res.Status != resource.StatusRunning {
		t.Errorf("status = %s, want Running", res.Status)
	}
	if res.CostPerMonth != 50 {
		t.Errorf("cost = %v, want 50", res.CostPerMonth)
	}
	if res.Uptime != 100 || len(res.Tags) != 0 {
		t.Errorf("uptime = %v tags = %v, want 100 and no tags", res.Uptime, res.Tags)
	}

	if len(repo.Entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(repo.Entries))
	}
	entry := repo.Entries[0]
	if entry.Action != audit.ActionCreate || entry.Status != audit.StatusSuccess {
		t.Errorf("entry = %s/%s, want create/Success", entry.Action, entry.Status)
	}
	if entry.Details["logical"] != true {
		t.Errorf("entry details = %v, want logical=true", entry.Details)
	}
}

func TestResourceService_CreateOutcomes(t *testing.T) {
	tests := []struct {
		name           string
		input          resource.CreateInput
		createFn       func(ctx context.Context, name, region string) (providers.Outcome, error)
		wantStatus     resource.Status
		wantExternalID string
		wantAudit      string
		wantCPU        string
	}{
		{
			name:  "VM launched pending",
			input: resource.CreateInput{Name: "web", Provider: resource.ProviderAWS, Type: resource.TypeVM, Region: "ap-south-1"},
			createFn: func(context.Context, string, string) (providers.Outcome, error) {
				return providers.Outcome{
					ExternalID:   "i-0abc",
					NativeStatus: "pending",
					Spec:         resource.Spec{CPU: "1 vCPU", Memory: "1 GB"},
				}, nil
			},
			wantStatus:     resource.StatusRunning,
			wantExternalID: "i-0abc",
			wantAudit:      audit.StatusSuccess,
			wantCPU:        "1 vCPU",
		},
		{
			name:  "VM falls back to logical",
			input: resource.CreateInput{Name: "web", Provider: resource.ProviderAWS, Type: resource.TypeVM, Region: "ap-south-1"},
			createFn: func(context.Context, string, string) (providers.Outcome, error) {
				return providers.Outcome{
					ExternalID:   "aws-ec2-local-0badc0de",
					NativeStatus: providers.StatusNotCreatedInAWS,
					Logical:      true,
				}, nil
			},
			wantStatus:     resource.StatusNotCreatedInProvider,
			wantExternalID: "aws-ec2-local-0badc0de",
			wantAudit:      audit.StatusSuccess,
		},
		{
			name:  "unexpected adapter error",
			input: resource.CreateInput{Name: "db", Provider: resource.ProviderAWS, Type: resource.TypeDatabase, Region: "ap-south-1"},
			createFn: func(context.Context, string, string) (providers.Outcome, error) {
				return providers.Outcome{}, errors.New("adapter broke")
			},
			wantStatus:     resource.StatusFailed,
			wantExternalID: "",
			wantAudit:      audit.StatusFailure,
		},
		{
			name:  "adapter panic",
			input: resource.CreateInput{Name: "fn", Provider: resource.ProviderAWS, Type: resource.TypeServerless, Region: "ap-south-1"},
			createFn: func(context.Context, string, string) (providers.Outcome, error) {
				panic("nil pointer")
			},
			wantStatus:     resource.StatusFailed,
			wantExternalID: "",
			wantAudit:      audit.StatusFailure,
		},
		{
			name:  "load balancer not supported",
			input: resource.CreateInput{Name: "edge", Provider: resource.ProviderAWS, Type: resource.TypeLoadBalancer, Region: "ap-south-1"},
			createFn: func(ctx context.Context, name, region string) (providers.Outcome, error) {
				return providers.LoadBalancerAdapter{}.Create(ctx, name, region)
			},
			wantStatus:     resource.StatusNotSupportedInFreeTier,
			wantExternalID: "aws-lb-edge",
			wantAudit:      audit.StatusSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockResourceRepository()
			adapter := &testutil.MockAdapter{CreateFn: tt.createFn}
			service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))

			res, err := service.Create(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if res.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", res.Status, tt.wantStatus)
			}
			if res.ExternalID != tt.wantExternalID {
				t.Errorf("external id = %q, want %q", res.ExternalID, tt.wantExternalID)
			}
			if res.CPU != tt.wantCPU {
				t.Errorf("cpu = %q, want %q", res.CPU, tt.wantCPU)
			}
			if len(repo.Entries) != 1 || repo.Entries[0].Status != tt.wantAudit {
				t.Errorf("audit entries = %+v, want one %s entry", repo.Entries, tt.wantAudit)
			}
			if _, err := repo.GetByID(context.Background(), res.ID); err != nil {
				t.Errorf("resource not stored: %v", err)
			}
		})
	}
}

func TestResourceService_CreateLocksAWSRegion(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	adapter := &testutil.MockAdapter{}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))
	ctx := context.Background()

	aws, _ := service.Create(ctx, resource.CreateInput{Name: "a", Provider: resource.ProviderAWS, Type: resource.TypeVM, Region: "us-west-2"})
	gcp, _ := service.Create(ctx, resource.CreateInput{Name: "g", Provider: resource.ProviderGCP, Type: resource.TypeVM, Region: "us-central1"})

	if aws.Region != "ap-south-1" || adapter.Regions[0] != "ap-south-1" {
		t.Errorf("AWS region = %s (adapter saw %s), want ap-south-1", aws.Region, adapter.Regions[0])
	}
	if gcp.Region != "us-central1" {
		t.Errorf("GCP region = %s, want us-central1", gcp.Region)
	}
	if gcp.CostPerMonth != 900 {
		t.Errorf("GCP cost = %v, want 900", gcp.CostPerMonth)
	}
}

func TestResourceService_UnlockedRegionFollowsResource(t *testing.T) {
	cfg := testConfig()
	cfg.AWS.LockRegion = false

	repo := testutil.NewMockResourceRepository()
	adapter := &testutil.MockAdapter{}
	service := NewResourceService(repo, testutil.NewMockRegistry(adapter), cfg, logger.Nop())
	ctx := context.Background()

	res, err := service.Create(ctx, resource.CreateInput{Name: "web", Provider: resource.ProviderAWS, Type: resource.TypeVM, Region: "us-west-2"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if res.Region != "us-west-2" {
		t.Fatalf("region = %s, want us-west-2", res.Region)
	}

	if _, err := service.GetByID(ctx, res.ID); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if err := service.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(adapter.StatusRegions) != 1 || adapter.StatusRegions[0] != "us-west-2" {
		t.Errorf("status read regions = %v, want [us-west-2]", adapter.StatusRegions)
	}
	if len(adapter.TerminateRegions) != 1 || adapter.TerminateRegions[0] != "us-west-2" {
		t.Errorf("terminate regions = %v, want [us-west-2]", adapter.TerminateRegions)
	}
}

func TestResourceService_CreateUnsupportedPair(t *testing.T) {
	service := newTestResourceService(testutil.NewMockResourceRepository(), providers.NewRegistry())

	_, err := service.Create(context.Background(), resource.CreateInput{Name: "x", Provider: resource.ProviderAWS, Type: resource.TypeVM})
	appErr, ok := apperrors.As(err)
	if !ok || appErr.StatusCode != 400 {
		t.Errorf("Create() error = %v, want bad request", err)
	}
}

func TestResourceService_ListRefresh(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	failing := repo.Seed(&resource.Resource{Name: "orders", Provider: resource.ProviderAWS, Type: resource.TypeDatabase, ExternalID: "orders_abc123", Status: resource.StatusCreating})
	steady := repo.Seed(&resource.Resource{Name: "api", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-flaky", Status: resource.StatusRunning})
	stopped := repo.Seed(&resource.Resource{Name: "batch", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-stopped", Status: resource.StatusRunning})
	gone := repo.Seed(&resource.Resource{Name: "old", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-old", Status: resource.StatusTerminated})
	bucket := repo.Seed(&resource.Resource{Name: "logs", Provider: resource.ProviderAWS, Type: resource.TypeStorage, ExternalID: "logs-12345678", Status: resource.StatusUnknown})
	failed := repo.Seed(&resource.Resource{Name: "broken", Provider: resource.ProviderAWS, Type: resource.TypeVM, Status: resource.StatusFailed})
	simulated := repo.Seed(&resource.Resource{Name: "vm", Provider: resource.ProviderGCP, Type: resource.TypeVM, ExternalID: "gcp-vm-1", Status: resource.StatusRunning})

	adapter := &testutil.MockAdapter{StatusFn: func(_ context.Context, id string) (string, error) {
		switch id {
		case "i-stopped":
			return "stopped", nil
		default:
			return "", errors.New("throttled")
		}
	}}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))

	list, err := service.List(context.Background(), resource.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 7 {
		t.Fatalf("List() returned %d resources, want 7", len(list))
	}

	want := map[int64]resource.Status{
		failing.ID:   resource.StatusFailed,
		steady.ID:    resource.StatusRunning,
		stopped.ID:   resource.StatusStopped,
		gone.ID:      resource.StatusTerminated,
		bucket.ID:    resource.StatusRunning,
		failed.ID:    resource.StatusFailed,
		simulated.ID: resource.StatusRunning,
	}
	for _, res := range list {
		if res.Status != want[res.ID] {
			t.Errorf("%s status = %s, want %s", res.Name, res.Status, want[res.ID])
		}
	}

	if adapter.StatusCalls() != 3 {
		t.Errorf("status reads = %d (%v), want 3", adapter.StatusCalls(), adapter.StatusIDs)
	}
	for _, id := range []int64{steady.ID, gone.ID, failed.ID, simulated.ID} {
		if repo.StatusUpdates[id] != 0 {
			t.Errorf("resource %d was written %d times, want 0", id, repo.StatusUpdates[id])
		}
	}
	for _, id := range []int64{failing.ID, stopped.ID, bucket.ID} {
		if repo.StatusUpdates[id] != 1 {
			t.Errorf("resource %d was written %d times, want 1", id, repo.StatusUpdates[id])
		}
	}
}

func TestResourceService_ListFilterAppliesAfterRefresh(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	repo.Seed(&resource.Resource{Name: "a", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-a", Status: resource.StatusRunning})

	adapter := &testutil.MockAdapter{StatusFn: func(context.Context, string) (string, error) { return "stopped", nil }}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))

	list, err := service.List(context.Background(), resource.Filter{Status: resource.StatusRunning})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() returned %d resources, want 0 after the status changed", len(list))
	}
}

func TestResourceService_ListRefreshPanicIsAbsent(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	res := repo.Seed(&resource.Resource{Name: "a", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-a", Status: resource.StatusRunning})

	adapter := &testutil.MockAdapter{StatusFn: func(context.Context, string) (string, error) { panic("boom") }}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))

	got, err := service.GetByID(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != resource.StatusRunning {
		t.Errorf("status = %s, want Running kept", got.Status)
	}
}

func TestResourceService_Update(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	res := repo.Seed(&resource.Resource{Name: "web", Provider: resource.ProviderAWS, Type: resource.TypeVM, ExternalID: "i-1", Status: resource.StatusRunning, Tags: []string{}})
	adapter := &testutil.MockAdapter{}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))
	ctx := context.Background()

	name := "web-2"
	stopped := resource.StatusStopped
	updated, err := service.Update(ctx, res.ID, resource.Patch{Name: &name, Status: &stopped})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "web-2" || updated.Status != resource.StatusStopped {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.ExternalID != "i-1" {
		t.Errorf("external id = %s, want i-1", updated.ExternalID)
	}
	if len(adapter.Created)+len(adapter.Terminated) != 0 {
		t.Error("Update() must not call the provider")
	}

	if len(repo.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(repo.Entries))
	}
	fields, _ := repo.Entries[0].Details["updated_fields"].([]string)
	if len(fields) != 2 || fields[0] != "name" || fields[1] != "status" {
		t.Errorf("updated_fields = %v, want [name status]", fields)
	}

	bogus := resource.Status("Exploded")
	if _, err := service.Update(ctx, res.ID, resource.Patch{Status: &bogus}); err == nil {
		t.Error("Update() with unknown status should fail")
	}

	if _, err := service.Update(ctx, 999, resource.Patch{Name: &name}); !apperrors.IsNotFound(err) {
		t.Errorf("Update() missing error = %v, want not found", err)
	}
}

func TestResourceService_Delete(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	adapter := &testutil.MockAdapter{TerminateErr: errors.New("access denied")}
	service := newTestResourceService(repo, testutil.NewMockRegistry(adapter))
	ctx := context.Background()

	res, err := service.Create(ctx, resource.CreateInput{Name: "web", Provider: resource.ProviderAWS, Type: resource.TypeVM})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	name := "web-2"
	for i := 0; i < 2; i++ {
		if _, err := service.Update(ctx, res.ID, resource.Patch{Name: &name}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}
	if len(repo.Entries) != 3 {
		t.Fatalf("got %d entries before delete, want 3", len(repo.Entries))
	}

	if err := service.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(adapter.Terminated) != 1 || adapter.Terminated[0] != res.ExternalID {
		t.Errorf("terminated = %v, want [%s]", adapter.Terminated, res.ExternalID)
	}
	if len(repo.Entries) != 1 {
		t.Fatalf("got %d entries after delete, want 1", len(repo.Entries))
	}
	final := repo.Entries[0]
	if final.Action != audit.ActionDelete || final.ResourceID != nil || final.ResourceName != "web-2" {
		t.Errorf("final entry = %+v", final)
	}
	if final.Details["terminated"] != false {
		t.Errorf("details = %v, want terminated=false", final.Details)
	}

	list, _ := service.List(ctx, resource.Filter{})
	for _, r := range list {
		if r.ID == res.ID {
			t.Error("deleted resource still listed")
		}
	}

	if err := service.Delete(ctx, res.ID); !apperrors.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}

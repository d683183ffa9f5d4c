package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/alert"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/metric"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/services"
	"github.com/pratik-mahalle/cloudmgr/internal/testutil"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		call           func(h *HealthHandler) http.HandlerFunc
		expectedStatus int
	}{
		{"liveness", nil, func(h *HealthHandler) http.HandlerFunc { return h.Healthz }, http.StatusOK},
		{"ready", nil, func(h *HealthHandler) http.HandlerFunc { return h.Readyz }, http.StatusOK},
		{"database down", errors.New("closed"), func(h *HealthHandler) http.HandlerFunc { return h.Readyz }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(stubPinger{err: tt.pingErr}, logger.Nop())
			rr := httptest.NewRecorder()
			tt.call(h)(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestAlertHandler_List(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	repo.Seed(&resource.Resource{Name: "ok", Status: resource.StatusRunning})
	repo.Seed(&resource.Resource{Name: "broken", Status: resource.StatusFailed})

	handler := NewAlertHandler(services.NewAlertService(repo, logger.Nop()), logger.Nop())
	rr := httptest.NewRecorder()
	handler.List(rr, httptest.NewRequest(http.MethodGet, "/alerts", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var alerts []alert.Alert
	if err := json.NewDecoder(rr.Body).Decode(&alerts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ID != alert.StatusAlertID(2) {
		t.Errorf("alerts = %+v, want one alert for resource 2", alerts)
	}
}

func TestLogHandler_List(t *testing.T) {
	repo := &testutil.MockAuditRepository{}
	for _, name := range []string{"a", "b", "c"} {
		repo.Entries = append(repo.Entries, audit.NewEntry(audit.ActionCreate, audit.StatusSuccess, "AWS", name, nil))
	}
	handler := NewLogHandler(services.NewAuditService(repo, logger.Nop()), logger.Nop())

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedFirst  string
		expectedCount  int
	}{
		{"all entries newest first", "", http.StatusOK, "c", 3},
		{"limited", "?limit=2", http.StatusOK, "c", 2},
		{"invalid limit", "?limit=many", http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.List(rr, httptest.NewRequest(http.MethodGet, "/logs"+tt.query, nil))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if rr.Code != http.StatusOK {
				return
			}
			var logs []dto.LogEntryDTO
			if err := json.NewDecoder(rr.Body).Decode(&logs); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(logs) != tt.expectedCount {
				t.Fatalf("got %d entries, want %d", len(logs), tt.expectedCount)
			}
			if logs[0].Resource != tt.expectedFirst || logs[0].User != audit.SystemActor {
				t.Errorf("first entry = %+v, want resource %s by system", logs[0], tt.expectedFirst)
			}
		})
	}
}

func TestLogHandler_ForResource(t *testing.T) {
	repo := &testutil.MockAuditRepository{}
	id := int64(4)
	e := audit.NewEntry(audit.ActionCreate, audit.StatusSuccess, "AWS", "db", nil)
	e.ResourceID = &id
	repo.Entries = append(repo.Entries, e, audit.NewEntry(audit.ActionCreate, audit.StatusSuccess, "AWS", "other", nil))

	handler := NewLogHandler(services.NewAuditService(repo, logger.Nop()), logger.Nop())
	rr := httptest.NewRecorder()
	handler.ForResource(rr, withID(httptest.NewRequest(http.MethodGet, "/resources/4/logs", nil), "4"))

	var logs []dto.LogEntryDTO
	if err := json.NewDecoder(rr.Body).Decode(&logs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(logs) != 1 || logs[0].Resource != "db" {
		t.Errorf("history = %+v, want the db entry only", logs)
	}
}

func TestUserHandler_ListSeedsAdmin(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	handler := NewUserHandler(services.NewUserService(repo, logger.Nop()), logger.Nop())

	rr := httptest.NewRecorder()
	handler.List(rr, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var raw []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(raw) != 1 || raw[0]["email"] != user.SeedEmail {
		t.Fatalf("users = %+v, want the seeded admin", raw)
	}
	if _, leaked := raw[0]["passwordHash"]; leaked {
		t.Error("password hash exposed")
	}
}

func TestMetricHandler_ForResource(t *testing.T) {
	repo := testutil.NewMockResourceRepository()
	repo.Seed(&resource.Resource{Name: "web", Provider: resource.ProviderAzure, Type: resource.TypeVM})
	handler := NewMetricHandler(services.NewMetricsService(repo, nil, time.Second, logger.Nop()), logger.Nop())

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"synthetic series", "1", http.StatusOK},
		{"missing resource", "2", http.StatusNotFound},
		{"bad id", "x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ForResource(rr, withID(httptest.NewRequest(http.MethodGet, "/resources/"+tt.id+"/metrics", nil), tt.id))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if rr.Code != http.StatusOK {
				return
			}
			var points []metric.Point
			if err := json.NewDecoder(rr.Body).Decode(&points); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(points) != metric.DefaultPoints+1 {
				t.Errorf("got %d points, want %d", len(points), metric.DefaultPoints+1)
			}
		})
	}
}

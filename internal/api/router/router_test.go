package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/api/handlers"
	"github.com/pratik-mahalle/cloudmgr/internal/api/middleware"
	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/validator"
	"github.com/pratik-mahalle/cloudmgr/internal/services"
	"github.com/pratik-mahalle/cloudmgr/internal/testutil"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Nop()
	cfg := &config.Config{
		Server:   config.ServerConfig{FrontendURL: "http://localhost:5173"},
		AWS:      config.AWSConfig{Region: "ap-south-1", LockRegion: true},
		Provider: config.ProviderConfig{CallTimeout: time.Second, RefreshConcurrency: 2},
	}

	resources := testutil.NewMockResourceRepository()
	resources.Seed(&resource.Resource{Name: "vm", Provider: resource.ProviderGCP, Type: resource.TypeVM,
		ExternalID: "gcp-vm-1", Status: resource.StatusRunning})

	val := validator.New()
	if err := dto.RegisterRules(val); err != nil {
		t.Fatalf("RegisterRules() error = %v", err)
	}

	registry := testutil.NewMockRegistry(&testutil.MockAdapter{})
	h := &Handlers{
		Health:   handlers.NewHealthHandler(okPinger{}, log),
		Resource: handlers.NewResourceHandler(services.NewResourceService(resources, registry, cfg, log), log, val),
		Metric:   handlers.NewMetricHandler(services.NewMetricsService(resources, nil, time.Second, log), log),
		Alert:    handlers.NewAlertHandler(services.NewAlertService(resources, log), log),
		Log:      handlers.NewLogHandler(services.NewAuditService(&testutil.MockAuditRepository{}, log), log),
		User:     handlers.NewUserHandler(services.NewUserService(testutil.NewMockUserRepository(), log), log),
	}

	return New(cfg, log, middleware.NewRateLimiter(1000, 1000), h)
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/resources", http.StatusOK},
		{http.MethodGet, "/api/v1/resources", http.StatusOK},
		{http.MethodGet, "/resources/1", http.StatusOK},
		{http.MethodGet, "/api/v1/resources/1/metrics", http.StatusOK},
		{http.MethodGet, "/resources/1/logs", http.StatusOK},
		{http.MethodGet, "/resources/42", http.StatusNotFound},
		{http.MethodGet, "/alerts", http.StatusOK},
		{http.MethodGet, "/logs", http.StatusOK},
		{http.MethodGet, "/users", http.StatusOK},
		{http.MethodPatch, "/resources/1", http.StatusMethodNotAllowed},
		{http.MethodGet, "/providers", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestRouterCreateAndHeaders(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resources",
		strings.NewReader(`{"name":"api","provider":"AWS","type":"Serverless","region":"us-east-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q, want frontend origin", got)
	}
	if !strings.Contains(rr.Body.String(), `"region":"ap-south-1"`) {
		t.Errorf("AWS region should be locked to ap-south-1, got %s", rr.Body.String())
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/api/handlers"
	"github.com/pratik-mahalle/cloudmgr/internal/api/middleware"
	"github.com/pratik-mahalle/cloudmgr/internal/api/router"
	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/validator"
	"github.com/pratik-mahalle/cloudmgr/internal/providers"
	"github.com/pratik-mahalle/cloudmgr/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudmgr/internal/services"
	"github.com/pratik-mahalle/cloudmgr/internal/worker"
	"github.com/pratik-mahalle/cloudmgr/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	if err := run(cfg, log); err != nil {
		log.ErrorWithErr(err, "Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	migrationsFS, err := migrations.For(db.Driver())
	if err != nil {
		return err
	}
	applied, err := postgres.RunMigrations(db, migrationsFS)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  db.Driver(),
		"applied": applied,
	}).Info("Database ready")

	clients := awsClients(ctx, cfg.AWS, log)
	registry := providers.NewDefaultRegistry(clients, cfg.AWS, log)

	// Repositories
	resourceRepo := postgres.NewResourceRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	resourceService := services.NewResourceService(resourceRepo, registry, cfg, log)
	metricsService := services.NewMetricsService(resourceRepo, providers.NewCloudWatchMetrics(clients.CloudWatch), cfg.Provider.CallTimeout, log)
	alertService := services.NewAlertService(resourceRepo, log)
	auditService := services.NewAuditService(auditRepo, log)
	userService := services.NewUserService(userRepo, log)

	if err := userService.EnsureSeed(ctx); err != nil {
		log.WithError(err).Warn("Failed to seed default user")
	}

	val := validator.New()
	if err := dto.RegisterRules(val); err != nil {
		return fmt.Errorf("failed to register validation rules: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	scheduler := worker.NewScheduler(log,
		worker.RateLimiterCleanup(limiter, cfg.RateLimit.CleanupSchedule, cfg.RateLimit.IdleTTL, log),
	)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(db, log),
		Resource: handlers.NewResourceHandler(resourceService, log, val),
		Metric:   handlers.NewMetricHandler(metricsService, log),
		Alert:    handlers.NewAlertHandler(alertService, log),
		Log:      handlers.NewLogHandler(auditService, log),
		User:     handlers.NewUserHandler(userService, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, limiter, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"aws_region":  cfg.AWS.Region,
		}).Info("Starting HTTP server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// awsClients builds the SDK clients, falling back to an offline bundle so
// AWS resources are still created as logical placeholders.
func awsClients(ctx context.Context, cfg config.AWSConfig, log *logger.Logger) *providers.AWSClients {
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clients, err := providers.NewAWSClients(loadCtx, cfg)
	if err != nil {
		log.WithError(err).Warn("AWS unavailable, AWS resources will be logical")
		return providers.OfflineAWSClients(cfg.Region)
	}

	log.WithFields(map[string]interface{}{
		"region":             clients.Region,
		"static_credentials": cfg.HasStaticCredentials(),
		"endpoint":           cfg.EndpointURL,
	}).Info("AWS clients configured")
	return clients
}

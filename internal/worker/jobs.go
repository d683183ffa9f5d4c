package worker

import (
	"context"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

// LimiterStore is a per-client rate limiter that can forget idle clients
type LimiterStore interface {
	Cleanup(idle time.Duration) int
}

// RateLimiterCleanup drops limiters of clients idle for longer than idle
func RateLimiterCleanup(store LimiterStore, schedule string, idle time.Duration, log *logger.Logger) Job {
	return Job{
		Name:     "rate_limiter_cleanup",
		Schedule: schedule,
		Run: func(ctx context.Context) {
			if removed := store.Cleanup(idle); removed > 0 {
				log.With("removed", removed).Debug("Dropped idle rate limiters")
			}
		},
	}
}

package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job is a named housekeeping task run on a cron schedule
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context)
}

// Scheduler runs housekeeping jobs in the background
type Scheduler struct {
	jobs      []Job
	scheduler *cron.Cron
	isRunning bool
	mu        sync.Mutex
	logger    *logger.Logger
}

// NewScheduler creates a scheduler for the given jobs
func NewScheduler(log *logger.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		logger: log,
	}
}

// Start registers every job and starts the cron loop. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger)))
	for _, j := range s.jobs {
		job := j
		if _, err := c.AddFunc(job.Schedule, func() { s.run(ctx, job) }); err != nil {
			return fmt.Errorf("invalid schedule %q for job %s: %w", job.Schedule, job.Name, err)
		}
	}

	s.scheduler = c
	s.scheduler.Start()
	s.isRunning = true

	s.logger.WithFields(map[string]interface{}{
		"jobs": len(s.jobs),
	}).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.scheduler.Stop().Done()
	s.isRunning = false

	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}
	s.logger.With("job", job.Name).Debug("Running scheduled job")
	job.Run(ctx)
}

// Package scheduler runs the bot's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Default job intervals. The session sweep interval comes from the session
// store settings.
const (
	FlushInterval       = time.Minute
	ChatCleanupInterval = 10 * time.Minute
	AIExpiryInterval    = 5 * time.Minute
)

// Job is one periodic task
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
	// Immediately runs the job once on Start as well
	Immediately bool
}

// Scheduler owns the gocron scheduler and its jobs
type Scheduler struct {
	sched  gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// New registers the jobs. Nothing runs until Start.
func New(jobs []Job, logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		sched:  sched,
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With(slog.String("component", "scheduler")),
	}

	for _, job := range jobs {
		opts := []gocron.JobOption{
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		}
		if job.Immediately {
			opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
		}
		if _, err := sched.NewJob(gocron.DurationJob(job.Every), gocron.NewTask(s.wrap(job)), opts...); err != nil {
			cancel()
			_ = sched.Shutdown()
			return nil, fmt.Errorf("register job %s: %w", job.Name, err)
		}
	}
	return s, nil
}

func (s *Scheduler) wrap(job Job) func() {
	return func() {
		start := time.Now()
		if err := job.Run(s.ctx); err != nil {
			s.logger.Error("job failed", slog.String("job", job.Name), slog.String("error", err.Error()))
			return
		}
		s.logger.Debug("job done", slog.String("job", job.Name), slog.Duration("took", time.Since(start)))
	}
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.sched.Jobs())))
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.sched.Shutdown()
}

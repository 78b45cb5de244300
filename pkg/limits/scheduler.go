package limits

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler prunes stale quota counters on a cron schedule, typically
// at midnight UTC so counters never accumulate beyond the current day.
type Scheduler struct {
	tracker  *Tracker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for the given tracker. The schedule
// uses standard five-field cron syntax (e.g., "0 0 * * *" for daily at
// midnight).
func NewScheduler(tracker *Tracker, schedule string) *Scheduler {
	return &Scheduler{
		tracker:  tracker,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "limits.scheduler"),
	}
}

// Start begins scheduled pruning. An empty schedule disables the
// scheduler; the per-day counter keys still keep quotas correct.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("reset schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid reset schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runReset(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule quota reset: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("quota reset scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runReset(ctx context.Context) {
	if err := s.tracker.Reset(ctx); err != nil {
		s.logger.Error("scheduled quota reset failed", "error", err)
		return
	}
	s.logger.Info("quota counters reset")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("quota reset scheduler stopped")
	}
}

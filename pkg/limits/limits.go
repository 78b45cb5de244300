package limits

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store persists per-client usage counters. Implementations must be
// safe for concurrent use.
type Store interface {
	// Increment adds one use for (client, tool, day) and returns the
	// new count, including this use.
	Increment(ctx context.Context, client, tool, day string) (int, error)

	// Prune removes counters for days other than the given day.
	Prune(ctx context.Context, keepDay string) error

	// Close releases store resources.
	Close() error
}

// ExceededError is returned by Tracker.Consume when a client has used
// up its daily allowance for a tool.
type ExceededError struct {
	// Tool is the tool whose quota was exhausted.
	Tool string

	// Limit is the configured daily allowance.
	Limit int
}

// Error returns the client-facing message.
func (e *ExceededError) Error() string {
	return fmt.Sprintf("Daily usage limit reached for %s (%d per day)", e.Tool, e.Limit)
}

// Tracker applies configured daily limits against a counter store.
type Tracker struct {
	store  Store
	daily  map[string]int
	logger *slog.Logger

	// now is overridable in tests.
	now func() time.Time
}

// NewTracker creates a tracker. Tools absent from daily are unlimited.
func NewTracker(store Store, daily map[string]int) *Tracker {
	return &Tracker{
		store:  store,
		daily:  daily,
		logger: slog.Default().With("component", "limits.tracker"),
		now:    time.Now,
	}
}

// Consume records one use of tool by client and returns an
// *ExceededError if that use goes over the daily allowance.
//
// A store failure admits the request: quota accounting is a product
// control, and losing the counter backend must not take the proxy down
// with it.
func (t *Tracker) Consume(ctx context.Context, client, tool string) error {
	limit, limited := t.daily[tool]
	if !limited {
		return nil
	}

	day := t.currentDay()
	count, err := t.store.Increment(ctx, client, tool, day)
	if err != nil {
		t.logger.ErrorContext(ctx, "quota store unavailable, admitting request",
			"tool", tool,
			"error", err,
		)
		return nil
	}

	if count > limit {
		return &ExceededError{Tool: tool, Limit: limit}
	}
	return nil
}

// Reset prunes counters from previous days. Invoked by the scheduler at
// the configured reset time.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.store.Prune(ctx, t.currentDay())
}

// Close closes the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}

func (t *Tracker) currentDay() string {
	return t.now().UTC().Format("2006-01-02")
}

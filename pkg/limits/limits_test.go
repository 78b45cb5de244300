package limits

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestTrackerConsume(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), map[string]int{"seo-write": 2})
	ctx := context.Background()

	if err := tracker.Consume(ctx, "client-a", "seo-write"); err != nil {
		t.Fatalf("first use should be admitted: %v", err)
	}
	if err := tracker.Consume(ctx, "client-a", "seo-write"); err != nil {
		t.Fatalf("second use should be admitted: %v", err)
	}

	err := tracker.Consume(ctx, "client-a", "seo-write")
	var exceeded *ExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("third use should exceed the quota, got %v", err)
	}
	if exceeded.Tool != "seo-write" || exceeded.Limit != 2 {
		t.Errorf("ExceededError = %+v, want tool seo-write limit 2", exceeded)
	}
}

func TestTrackerUnlimitedTool(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), map[string]int{"seo-write": 1})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := tracker.Consume(ctx, "client-a", "grammar"); err != nil {
			t.Fatalf("unconfigured tool should never be limited: %v", err)
		}
	}
}

func TestTrackerIsolatesClients(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), map[string]int{"detect": 1})
	ctx := context.Background()

	if err := tracker.Consume(ctx, "client-a", "detect"); err != nil {
		t.Fatalf("client-a first use: %v", err)
	}
	if err := tracker.Consume(ctx, "client-b", "detect"); err != nil {
		t.Fatalf("client-b should have its own budget: %v", err)
	}
	if err := tracker.Consume(ctx, "client-a", "detect"); err == nil {
		t.Error("client-a second use should exceed the quota")
	}
}

func TestTrackerNewDayResetsBudget(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), map[string]int{"improve": 1})
	ctx := context.Background()

	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return day }

	if err := tracker.Consume(ctx, "client-a", "improve"); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := tracker.Consume(ctx, "client-a", "improve"); err == nil {
		t.Fatal("second use on the same day should exceed the quota")
	}

	tracker.now = func() time.Time { return day.Add(24 * time.Hour) }
	if err := tracker.Consume(ctx, "client-a", "improve"); err != nil {
		t.Errorf("new day should start a fresh budget: %v", err)
	}
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, string, string) (int, error) {
	return 0, errors.New("store down")
}
func (failingStore) Prune(context.Context, string) error { return errors.New("store down") }
func (failingStore) Close() error                        { return nil }

func TestTrackerAdmitsOnStoreFailure(t *testing.T) {
	tracker := NewTracker(failingStore{}, map[string]int{"grammar": 1})

	for i := 0; i < 3; i++ {
		if err := tracker.Consume(context.Background(), "client-a", "grammar"); err != nil {
			t.Fatalf("store failure must not reject requests: %v", err)
		}
	}
}

func TestMemoryStorePrune(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Increment(ctx, "client-a", "grammar", "2026-08-28"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Increment(ctx, "client-a", "grammar", "2026-08-29"); err != nil {
		t.Fatal(err)
	}

	if err := store.Prune(ctx, "2026-08-29"); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	count, err := store.Increment(ctx, "client-a", "grammar", "2026-08-29")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("current day counter = %d, want 2 (kept across prune)", count)
	}

	count, err = store.Increment(ctx, "client-a", "grammar", "2026-08-28")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("pruned day counter = %d, want 1 (restarted)", count)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quota.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, err := store.Increment(ctx, "client-a", "paraphrase", "2026-08-29")
		if err != nil {
			t.Fatalf("Increment returned error: %v", err)
		}
		if count != want {
			t.Errorf("Increment = %d, want %d", count, want)
		}
	}

	if _, err := store.Increment(ctx, "client-a", "paraphrase", "2026-08-28"); err != nil {
		t.Fatal(err)
	}
	if err := store.Prune(ctx, "2026-08-29"); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	count, err := store.Increment(ctx, "client-a", "paraphrase", "2026-08-29")
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("current day counter = %d, want 4", count)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quota.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Increment(ctx, "client-a", "humanize", "2026-08-29"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	count, err := reopened.Increment(ctx, "client-a", "humanize", "2026-08-29")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("counter after reopen = %d, want 2", count)
	}
}

func TestSQLiteStoreAppliesPragmas(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "quota.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var mode string
	if err := store.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var busyTimeout int
	if err := store.db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatal(err)
	}
	if busyTimeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", busyTimeout)
	}
}

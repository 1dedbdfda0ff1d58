package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.db")
	ctx := context.Background()
	now := fixedClock(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.UsageStore(now).Increment(ctx, 420)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	used, err := reopened.UsageStore(now).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 420, used)
	assert.Equal(t, path, reopened.Path())
}

func TestUsageStore_IncrementAndGet(t *testing.T) {
	store := setupTestStore(t)
	usage := store.UsageStore(fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	used, err := usage.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, used)

	total, err := usage.Increment(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, total)

	total, err = usage.Increment(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 150, total)
}

func TestUsageStore_NewMonthStartsAtZero(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	march := store.UsageStore(fixedClock(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)))
	_, err := march.Increment(ctx, 9000)
	require.NoError(t, err)

	april := store.UsageStore(fixedClock(time.Date(2025, 4, 1, 0, 0, 1, 0, time.UTC)))
	used, err := april.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, used)

	history, err := april.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, MonthUsage{Month: "2025-03", Characters: 9000}, history[0])
}

func TestUsageStore_Reset(t *testing.T) {
	store := setupTestStore(t)
	usage := store.UsageStore(fixedClock(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	// Reset before any usage creates a zero row.
	require.NoError(t, usage.Reset(ctx))

	_, err := usage.Increment(ctx, 700)
	require.NoError(t, err)
	require.NoError(t, usage.Reset(ctx))

	used, err := usage.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestUsageStore_ConcurrentIncrements(t *testing.T) {
	store := setupTestStore(t)
	usage := store.UsageStore(fixedClock(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := usage.Increment(ctx, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	used, err := usage.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, used)
}

func TestUsageStore_CanceledContext(t *testing.T) {
	store := setupTestStore(t)
	usage := store.UsageStore(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := usage.Get(ctx)
	assert.Error(t, err)
}

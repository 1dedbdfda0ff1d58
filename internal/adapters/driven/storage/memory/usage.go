// Package memory provides in-memory implementations of driven port interfaces.
// State lives only for the lifetime of the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.UsageTracker = (*UsageTracker)(nil)

// UsageTracker counts voice characters per calendar month in memory.
type UsageTracker struct {
	mu     sync.RWMutex
	counts map[string]int
	now    func() time.Time
}

// NewUsageTracker creates a tracker. now selects the calendar month; nil
// means time.Now.
func NewUsageTracker(now func() time.Time) *UsageTracker {
	if now == nil {
		now = time.Now
	}
	return &UsageTracker{
		counts: make(map[string]int),
		now:    now,
	}
}

func (u *UsageTracker) month() string {
	return u.now().UTC().Format("2006-01")
}

// Get returns the characters used in the current month.
func (u *UsageTracker) Get(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.counts[u.month()], nil
}

// Increment adds n characters to the current month and returns the new total.
func (u *UsageTracker) Increment(ctx context.Context, n int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	m := u.month()
	u.counts[m] += n
	return u.counts[m], nil
}

// Reset zeroes the current month's counter.
func (u *UsageTracker) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.counts, u.month())
	return nil
}

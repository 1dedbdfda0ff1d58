package driven

import "context"

// UsageTracker owns the monthly voice character counter.
// Implementations are safe for concurrent use; accounting may be
// approximate under concurrent load.
type UsageTracker interface {
	// Get returns the characters used in the current month.
	Get(ctx context.Context) (int, error)

	// Increment adds n characters and returns the new total.
	Increment(ctx context.Context, n int) (int, error)

	// Reset sets the current month's counter to zero.
	Reset(ctx context.Context) error
}

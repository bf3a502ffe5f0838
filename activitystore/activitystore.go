package activitystore

import (
	"context"
	"time"
)

const (
	// how long message timestamps are retained for rate checks
	RetentionWindow = 60 * time.Second
	// how many raw message bodies are kept for repetition/brevity checks
	RecentMessageMax = 5
)

// ActivityStore tracks recent per-user chat activity: a trailing window of
// message timestamps, and the last few raw message bodies. Entries older than
// the retention window are evicted lazily.
type ActivityStore interface {
	RecordMessage(ctx context.Context, userID, text string, at time.Time) error
	RecentMessages(ctx context.Context, userID string, n int) ([]string, error)
	CountWithin(ctx context.Context, userID string, at time.Time, window time.Duration) (int, error)
}

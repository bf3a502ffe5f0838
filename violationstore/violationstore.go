package violationstore

import (
	"context"
	"time"
)

// window anchored at the first violation; the counter resets once more than
// this much time has elapsed since that first breach
const ViolationWindow = 5 * time.Minute

// ViolationStore tracks consecutive rate-limit breaches per user. Each Record
// call bumps the counter and returns the count inside the current window; a
// breach arriving after the window has elapsed starts a fresh one.
type ViolationStore interface {
	Record(ctx context.Context, userID string, at time.Time) (int, error)
	Reset(ctx context.Context, userID string) error
}

package flagstore

import (
	"context"
)

// moderation flag values attached to accounts by detection rules
const (
	FlagAutomatedPattern   = "automated-pattern"
	FlagRepetitiveMessages = "repetitive-messages"
	FlagShortMessages      = "short-messages"
	FlagHighFrequency      = "high-frequency"
	FlagRateLimitAbuse     = "rate-limit-abuse"
)

// FlagStore records private moderation flags per account. Unlike the blocked
// state (which lives in the account store), flags are advisory annotations
// for the admin surface.
type FlagStore interface {
	Get(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID string, flags []string) error
	Remove(ctx context.Context, userID string, flags []string) error
}

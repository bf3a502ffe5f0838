// Package accountstore is the boundary to the durable user-account record.
// The blocked flag is the only piece of engine state that must survive a
// process restart, so it lives here rather than in the counter stores.
package accountstore

import (
	"context"
	"time"
)

type Account struct {
	ID          uint   `gorm:"primarykey"`
	UserID      string `gorm:"uniqueIndex;size:64"`
	DisplayName string
	Email       string
	Blocked     bool
	BlockReason string
	BlockedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AbuseEvent is an audit log row: one per detection rule hit which raised
// suspicion, and one per block transition.
type AbuseEvent struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          string    `gorm:"index;size:64" json:"user_id"`
	EventType       string    `json:"event_type"`
	Score           int       `json:"score"`
	TriggerMessage  string    `json:"trigger_message"`
	ResultedInBlock bool      `json:"resulted_in_block"`
	CreatedAt       time.Time `json:"created_at"`
}

type AccountStore interface {
	// GetAccount returns nil (not an error) for unknown users; an account
	// record is only required once moderation state needs to be durable.
	GetAccount(ctx context.Context, userID string) (*Account, error)
	IsBlocked(ctx context.Context, userID string) (bool, error)
	// SetBlocked marks the account blocked, creating the record if needed.
	// The transition is one-way; blocking an already-blocked account is a no-op.
	SetBlocked(ctx context.Context, userID, reason string) error
	RecordAbuseEvent(ctx context.Context, ev *AbuseEvent) error
	ListAbuseEvents(ctx context.Context, userID string, limit int) ([]AbuseEvent, error)
}

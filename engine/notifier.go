package engine

import (
	"context"
)

// Interface for a type that can deliver owner alerts
type Notifier interface {
	NotifyOwner(ctx context.Context, title, content string) error
}

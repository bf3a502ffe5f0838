// Package cooldown implements a keyed check-and-set marker with a TTL,
// used to suppress repeat owner notifications for the same user.
package cooldown

import (
	"context"
)

type Store interface {
	// Allow reports whether the key is currently outside its cooldown, and
	// if so starts a new cooldown for it. The check and the set are a single
	// operation so concurrent callers can't both pass.
	Allow(ctx context.Context, key string) (bool, error)
}

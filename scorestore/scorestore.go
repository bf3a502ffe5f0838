package scorestore

import (
	"context"
)

// scores saturate here; no rule hit can push a user past this
const MaxScore = 10

// ScoreStore holds the per-user suspicion score: a bounded integer counter,
// raised by detection rule hits and clamped to [0, MaxScore]. Scores never
// decay; they live only as long as the backing store.
type ScoreStore interface {
	Increment(ctx context.Context, userID string, points int) (int, error)
	Get(ctx context.Context, userID string) (int, error)
}

func clampScore(v int) int {
	if v > MaxScore {
		return MaxScore
	}
	if v < 0 {
		return 0
	}
	return v
}

package scorestore

import (
	"context"
	"sync"
)

type MemScoreStore struct {
	mu     sync.Mutex
	scores map[string]int
}

var _ ScoreStore = (*MemScoreStore)(nil)

func NewMemScoreStore() *MemScoreStore {
	return &MemScoreStore{
		scores: make(map[string]int),
	}
}

func (s *MemScoreStore) Increment(ctx context.Context, userID string, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := clampScore(s.scores[userID] + points)
	s.scores[userID] = v
	return v, nil
}

func (s *MemScoreStore) Get(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[userID], nil
}

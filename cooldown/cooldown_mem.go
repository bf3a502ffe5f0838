package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type MemStore struct {
	mu   sync.Mutex
	data *expirable.LRU[string, time.Time]
}

var _ Store = (*MemStore)(nil)

func NewMemStore(capacity int, ttl time.Duration) *MemStore {
	return &MemStore{
		data: expirable.NewLRU[string, time.Time](capacity, nil, ttl),
	}
}

func (s *MemStore) Allow(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Contains(key) {
		return false, nil
	}
	s.data.Add(key, time.Now())
	return true, nil
}

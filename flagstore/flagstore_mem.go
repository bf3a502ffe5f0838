package flagstore

import (
	"context"
	"sort"
	"sync"
)

type MemFlagStore struct {
	mu   sync.Mutex
	data map[string]map[string]bool
}

var _ FlagStore = (*MemFlagStore)(nil)

func NewMemFlagStore() *MemFlagStore {
	return &MemFlagStore{
		data: make(map[string]map[string]bool),
	}
}

func (s *MemFlagStore) Get(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.data[userID]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemFlagStore) Add(ctx context.Context, userID string, flags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.data[userID]
	if !ok {
		set = make(map[string]bool)
		s.data[userID] = set
	}
	for _, f := range flags {
		set[f] = true
	}
	return nil
}

// does not error if flags are not present
func (s *MemFlagStore) Remove(ctx context.Context, userID string, flags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.data[userID]
	if !ok {
		return nil
	}
	for _, f := range flags {
		delete(set, f)
	}
	return nil
}

package violationstore

import (
	"context"
	"sync"
	"time"
)

type violationWindow struct {
	count   int
	firstAt time.Time
}

type MemViolationStore struct {
	mu    sync.Mutex
	users map[string]*violationWindow
}

var _ ViolationStore = (*MemViolationStore)(nil)

func NewMemViolationStore() *MemViolationStore {
	return &MemViolationStore{
		users: make(map[string]*violationWindow),
	}
}

func (s *MemViolationStore) Record(ctx context.Context, userID string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vw, ok := s.users[userID]
	if !ok || at.Sub(vw.firstAt) > ViolationWindow {
		vw = &violationWindow{firstAt: at}
		s.users[userID] = vw
	}
	vw.count++
	return vw.count, nil
}

func (s *MemViolationStore) Reset(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

package accountstore

import (
	"context"
	"sync"
	"time"
)

type MemAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*Account
	events   []AbuseEvent
}

var _ AccountStore = (*MemAccountStore)(nil)

func NewMemAccountStore() *MemAccountStore {
	return &MemAccountStore{
		accounts: make(map[string]*Account),
	}
}

func (s *MemAccountStore) GetAccount(ctx context.Context, userID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[userID]
	if !ok {
		return nil, nil
	}
	cp := *acct
	return &cp, nil
}

func (s *MemAccountStore) IsBlocked(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[userID]
	if !ok {
		return false, nil
	}
	return acct.Blocked, nil
}

func (s *MemAccountStore) SetBlocked(ctx context.Context, userID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[userID]
	if !ok {
		acct = &Account{UserID: userID, CreatedAt: time.Now()}
		s.accounts[userID] = acct
	}
	if acct.Blocked {
		return nil
	}
	now := time.Now()
	acct.Blocked = true
	acct.BlockReason = reason
	acct.BlockedAt = &now
	acct.UpdatedAt = now
	return nil
}

func (s *MemAccountStore) RecordAbuseEvent(ctx context.Context, ev *AbuseEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ev
	cp.ID = uint(len(s.events) + 1)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.events = append(s.events, cp)
	return nil
}

func (s *MemAccountStore) ListAbuseEvents(ctx context.Context, userID string, limit int) ([]AbuseEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []AbuseEvent{}
	// newest first
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if userID == "" || s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

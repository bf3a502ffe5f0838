package activitystore

import (
	"context"
	"sync"
	"time"
)

type userActivity struct {
	stamps []time.Time
	recent []string
}

type MemActivityStore struct {
	mu    sync.Mutex
	users map[string]*userActivity
}

var _ ActivityStore = (*MemActivityStore)(nil)

func NewMemActivityStore() *MemActivityStore {
	return &MemActivityStore{
		users: make(map[string]*userActivity),
	}
}

func (s *MemActivityStore) RecordMessage(ctx context.Context, userID, text string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.users[userID]
	if !ok {
		ua = &userActivity{}
		s.users[userID] = ua
	}
	ua.stamps = append(ua.stamps, at)
	ua.evict(at)

	ua.recent = append(ua.recent, text)
	if len(ua.recent) > RecentMessageMax {
		ua.recent = ua.recent[len(ua.recent)-RecentMessageMax:]
	}
	return nil
}

func (s *MemActivityStore) RecentMessages(ctx context.Context, userID string, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.users[userID]
	if !ok {
		return []string{}, nil
	}
	msgs := ua.recent
	if n < len(msgs) {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemActivityStore) CountWithin(ctx context.Context, userID string, at time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.users[userID]
	if !ok {
		return 0, nil
	}
	ua.evict(at)
	cutoff := at.Add(-window)
	count := 0
	for _, t := range ua.stamps {
		if !t.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// drop timestamps which have aged out of the retention window. caller must hold the lock.
func (ua *userActivity) evict(at time.Time) {
	cutoff := at.Add(-RetentionWindow)
	idx := 0
	for idx < len(ua.stamps) && ua.stamps[idx].Before(cutoff) {
		idx++
	}
	if idx > 0 {
		ua.stamps = ua.stamps[idx:]
	}
}

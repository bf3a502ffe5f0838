// Package quota enforces the coarse per-minute request quota in front of the
// detection engine. It only answers allow/deny; escalating repeated denials
// is the engine's violation tracker's job.
package quota

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	mu     sync.Mutex
	users  map[string]*rate.Limiter
	perMin int
	// bound on tracked users; the map is cleared when hit, trading a brief
	// quota reset for bounded memory
	maxUsers int
}

func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		users:    make(map[string]*rate.Limiter),
		perMin:   perMinute,
		maxUsers: 100_000,
	}
}

// Allow reports whether the user is inside their per-minute quota, consuming
// one request if so.
func (l *Limiter) Allow(userID string) bool {
	l.mu.Lock()
	lim, ok := l.users[userID]
	if !ok {
		if len(l.users) >= l.maxUsers {
			l.users = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)
		l.users[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// AllowN is Allow at a specific instant; test hook.
func (l *Limiter) AllowN(userID string, at time.Time, n int) bool {
	l.mu.Lock()
	lim, ok := l.users[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)
		l.users[userID] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(at, n)
}

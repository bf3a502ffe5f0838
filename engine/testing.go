package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sixoracle/sentinel/accountstore"
	"github.com/sixoracle/sentinel/activitystore"
	"github.com/sixoracle/sentinel/cooldown"
	"github.com/sixoracle/sentinel/flagstore"
	"github.com/sixoracle/sentinel/scorestore"
	"github.com/sixoracle/sentinel/violationstore"
)

// CaptureNotifier records owner alerts instead of delivering them. Intended
// for tests; pair with Engine.WaitForAlerts before asserting.
type CaptureNotifier struct {
	mu     sync.Mutex
	Alerts []OwnerAlert
	// when non-nil, returned from every NotifyOwner call
	Err error
}

var _ Notifier = (*CaptureNotifier)(nil)

func (n *CaptureNotifier) NotifyOwner(ctx context.Context, title, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Alerts = append(n.Alerts, OwnerAlert{Title: title, Content: content})
	return nil
}

func (n *CaptureNotifier) Captured() []OwnerAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]OwnerAlert, len(n.Alerts))
	copy(out, n.Alerts)
	return out
}

// EngineTestFixture returns an engine wired entirely to in-memory stores and
// a capturing notifier, with an empty rule set. Tests append the rules they
// exercise.
func EngineTestFixture() (*Engine, *CaptureNotifier) {
	notifier := &CaptureNotifier{}
	eng := &Engine{
		Logger:     slog.Default(),
		Rules:      RuleSet{},
		Activity:   activitystore.NewMemActivityStore(),
		Scores:     scorestore.NewMemScoreStore(),
		Violations: violationstore.NewMemViolationStore(),
		Cooldowns:  cooldown.NewMemStore(100, time.Hour),
		Flags:      flagstore.NewMemFlagStore(),
		Accounts:   accountstore.NewMemAccountStore(),
		Notifier:   notifier,
	}
	return eng, notifier
}

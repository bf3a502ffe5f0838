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

var (
	// cumulative suspicion score at which the account is blocked
	SuspicionThreshold = 5
	// consecutive rate-limit breaches (inside the violation window) before escalation
	RateViolationThreshold = 10
)

// detection type labels, as persisted to the audit log and shown in alerts
const (
	TypeBotDetected    = "bot_detected"
	TypeRateLimitAbuse = "rate_limit_abuse"
	TypeHighUsage      = "high_usage"
)

// Runtime for executing detection rules, managing per-user counters, and
// recording moderation actions.
//
// All stores are expected to be non-nil; Notifier may be nil (alerts are then
// only logged).
type Engine struct {
	Logger     *slog.Logger
	Rules      RuleSet
	Activity   activitystore.ActivityStore
	Scores     scorestore.ScoreStore
	Violations violationstore.ViolationStore
	Cooldowns  cooldown.Store
	Flags      flagstore.FlagStore
	Accounts   accountstore.AccountStore
	Notifier   Notifier

	alertWG sync.WaitGroup
}

// ProcessMessage evaluates one incoming chat message. It records the message
// into the activity window, runs every detection rule, and applies the
// accumulated effects; crossing the suspicion threshold blocks the account
// and dispatches an owner alert. Returns whether the user is blocked after
// this message.
//
// Already-blocked users are not re-evaluated; rejecting their messages is the
// ingestion path's job.
func (eng *Engine) ProcessMessage(ctx context.Context, userID, text string, receivedAt time.Time) (blocked bool, outErr error) {
	start := time.Now()
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("abuse rule execution exception", "err", r, "user", userID)
			messageEventErrors.Inc()
			outErr = nil
		}
		messageEventDuration.Observe(time.Since(start).Seconds())
	}()
	messageEventsProcessed.Inc()

	meta, err := eng.getAccountMeta(ctx, userID)
	if err != nil {
		return false, err
	}
	if meta.Blocked {
		return true, nil
	}

	if err := eng.Activity.RecordMessage(ctx, userID, text, receivedAt); err != nil {
		return false, err
	}

	c := NewMessageContext(ctx, eng, meta, text, receivedAt)
	if err := eng.Rules.CallMessageRules(&c); err != nil {
		return false, err
	}
	if c.Err != nil {
		eng.Logger.Warn("store access failed during rule evaluation", "err", c.Err, "user", userID)
	}
	return eng.persistMessageEffects(&c)
}

// ReportRateLimitViolation records one breach of the external per-minute
// request quota. Ten breaches inside a trailing five-minute window escalate
// to the same block-and-alert path as bot detection, after which the counter
// resets. Returns whether the user is blocked after this violation.
func (eng *Engine) ReportRateLimitViolation(ctx context.Context, userID string, at time.Time) (blocked bool, outErr error) {
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("violation tracker exception", "err", r, "user", userID)
			outErr = nil
		}
	}()
	rateViolationsReported.Inc()

	count, err := eng.Violations.Record(ctx, userID, at)
	if err != nil {
		return false, err
	}
	if count < RateViolationThreshold {
		return eng.Accounts.IsBlocked(ctx, userID)
	}

	eng.Logger.Warn("rate limit abuse detected", "user", userID, "violations", count)
	if err := eng.Violations.Reset(ctx, userID); err != nil {
		eng.Logger.Error("resetting violation counter", "err", err, "user", userID)
	}
	eng.recordAbuseEvent(ctx, &accountstore.AbuseEvent{
		UserID:          userID,
		EventType:       TypeRateLimitAbuse,
		ResultedInBlock: true,
	})
	if err := eng.blockAccount(ctx, userID, TypeRateLimitAbuse); err != nil {
		return false, err
	}
	eng.dispatchOwnerAlert(userID, rateAbuseAlert(userID, count))
	return true, nil
}

// Suspicion returns the user's current suspicion score.
func (eng *Engine) Suspicion(ctx context.Context, userID string) (int, error) {
	return eng.Scores.Get(ctx, userID)
}

// WaitForAlerts blocks until all in-flight owner alert dispatches have
// finished. Shutdown and test helper; callers on the message path never wait.
func (eng *Engine) WaitForAlerts() {
	eng.alertWG.Wait()
}

func (eng *Engine) getAccountMeta(ctx context.Context, userID string) (AccountMeta, error) {
	acct, err := eng.Accounts.GetAccount(ctx, userID)
	if err != nil {
		return AccountMeta{}, err
	}
	if acct == nil {
		return AccountMeta{UserID: userID}, nil
	}
	return AccountMeta{
		UserID:      acct.UserID,
		DisplayName: acct.DisplayName,
		Blocked:     acct.Blocked,
	}, nil
}

package engine

import (
	"context"
	"time"

	"github.com/sixoracle/sentinel/accountstore"
)

// Applies the side-effects accumulated during rule execution: suspicion
// increments first (with audit rows), then flags, then the block transition
// if the threshold was crossed.
func (eng *Engine) persistMessageEffects(c *MessageContext) (bool, error) {
	ctx := c.Ctx
	userID := c.Account.UserID

	score := 0
	for _, ref := range c.effects.SuspicionIncrements {
		v, err := eng.Scores.Increment(ctx, userID, ref.Points)
		if err != nil {
			return false, err
		}
		score = v
		ruleHitCount.WithLabelValues(ref.Reason).Inc()
		eng.recordAbuseEvent(ctx, &accountstore.AbuseEvent{
			UserID:         userID,
			EventType:      ref.Reason,
			Score:          v,
			TriggerMessage: c.Message.Text,
		})
	}

	newFlags := dedupeStrings(c.effects.AccountFlags)
	if len(newFlags) > 0 {
		if err := eng.Flags.Add(ctx, userID, newFlags); err != nil {
			eng.Logger.Error("persisting account flags", "err", err, "user", userID)
		}
	}

	eng.canonicalLogLine(c, score)

	if len(c.effects.SuspicionIncrements) == 0 || score < SuspicionThreshold {
		return false, nil
	}

	eng.recordAbuseEvent(ctx, &accountstore.AbuseEvent{
		UserID:          userID,
		EventType:       TypeBotDetected,
		Score:           score,
		TriggerMessage:  c.Message.Text,
		ResultedInBlock: true,
	})
	if err := eng.blockAccount(ctx, userID, TypeBotDetected); err != nil {
		return false, err
	}
	eng.dispatchOwnerAlert(userID, botDetectedAlert(userID, score, c.Message.Text))
	return true, nil
}

// blockAccount performs the one-way block transition. Blocking a user who is
// already blocked is a no-op at the store level, so the transition is
// reported at most once.
func (eng *Engine) blockAccount(ctx context.Context, userID, reason string) error {
	blocked, err := eng.Accounts.IsBlocked(ctx, userID)
	if err != nil {
		return err
	}
	if blocked {
		return nil
	}
	if err := eng.Accounts.SetBlocked(ctx, userID, reason); err != nil {
		return err
	}
	accountBlockCount.WithLabelValues(reason).Inc()
	eng.Logger.Warn("account blocked", "user", userID, "reason", reason)
	return nil
}

// dispatchOwnerAlert sends the alert on a detached goroutine, gated by the
// per-user notification cooldown. At-most-once, best-effort: a failed or
// suppressed alert never surfaces to the message path.
func (eng *Engine) dispatchOwnerAlert(userID string, alert OwnerAlert) {
	ok, err := eng.Cooldowns.Allow(context.Background(), userID)
	if err != nil {
		eng.Logger.Error("notification cooldown check failed", "err", err, "user", userID)
		return
	}
	if !ok {
		eng.Logger.Debug("owner alert suppressed by cooldown", "user", userID)
		ownerAlertCount.WithLabelValues("suppressed").Inc()
		return
	}
	if eng.Notifier == nil {
		eng.Logger.Info("no notifier configured, skipping owner alert", "user", userID, "title", alert.Title)
		return
	}

	eng.alertWG.Add(1)
	go func() {
		defer eng.alertWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eng.Notifier.NotifyOwner(ctx, alert.Title, alert.Content); err != nil {
			eng.Logger.Error("owner alert dispatch failed", "err", err, "user", userID)
			ownerAlertCount.WithLabelValues("failed").Inc()
			return
		}
		ownerAlertCount.WithLabelValues("sent").Inc()
	}()
}

func (eng *Engine) recordAbuseEvent(ctx context.Context, ev *accountstore.AbuseEvent) {
	if err := eng.Accounts.RecordAbuseEvent(ctx, ev); err != nil {
		// audit rows degrade silently; the decision itself is unaffected
		eng.Logger.Error("recording abuse event", "err", err, "user", ev.UserID, "type", ev.EventType)
	}
}

func (eng *Engine) canonicalLogLine(c *MessageContext, score int) {
	c.Logger.Info("message processed",
		"ruleHits", len(c.effects.SuspicionIncrements),
		"newFlags", c.effects.AccountFlags,
		"score", score,
	)
}

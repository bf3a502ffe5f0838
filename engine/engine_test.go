package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scriptedRule(points int, reason string) MessageRuleFunc {
	return func(c *MessageContext) error {
		if strings.Contains(c.Message.Text, "spam") {
			c.AddAccountFlag("scripted")
			c.IncrementSuspicion(points, reason)
		}
		return nil
	}
}

func TestEngineBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{scriptedRule(2, "test_rule")}
	now := time.Now()

	blocked, err := eng.ProcessMessage(ctx, "user1", "ordinary question", now)
	assert.NoError(err)
	assert.False(blocked)

	blocked, err = eng.ProcessMessage(ctx, "user1", "spam one", now.Add(time.Second))
	assert.NoError(err)
	assert.False(blocked)
	score, err := eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(2, score)

	flags, err := eng.Flags.Get(ctx, "user1")
	assert.NoError(err)
	assert.Equal([]string{"scripted"}, flags)

	evs, err := eng.Accounts.ListAbuseEvents(ctx, "user1", 10)
	assert.NoError(err)
	assert.Len(evs, 1)
	assert.Equal("test_rule", evs[0].EventType)
	assert.False(evs[0].ResultedInBlock)

	eng.WaitForAlerts()
	assert.Empty(notifier.Captured())
}

func TestEngineThresholdBlocks(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{scriptedRule(3, "test_rule")}
	now := time.Now()

	blocked, err := eng.ProcessMessage(ctx, "user1", "spam one", now)
	assert.NoError(err)
	assert.False(blocked)

	// second hit pushes the score to 6, over the threshold of 5
	blocked, err = eng.ProcessMessage(ctx, "user1", "spam two", now.Add(time.Second))
	assert.NoError(err)
	assert.True(blocked)

	isBlocked, err := eng.Accounts.IsBlocked(ctx, "user1")
	assert.NoError(err)
	assert.True(isBlocked)

	acct, err := eng.Accounts.GetAccount(ctx, "user1")
	assert.NoError(err)
	assert.Equal(TypeBotDetected, acct.BlockReason)

	eng.WaitForAlerts()
	alerts := notifier.Captured()
	assert.Len(alerts, 1)
	assert.Contains(alerts[0].Title, "Bot検出")
	assert.Contains(alerts[0].Content, "ユーザーID: user1")
	assert.Contains(alerts[0].Content, "spam two")
}

func TestEngineBlockedUserNotReevaluated(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{scriptedRule(5, "test_rule")}
	now := time.Now()

	blocked, err := eng.ProcessMessage(ctx, "user1", "spam", now)
	assert.NoError(err)
	assert.True(blocked)

	score, err := eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(5, score)

	// further messages short-circuit: no rule runs, score stays put
	blocked, err = eng.ProcessMessage(ctx, "user1", "spam again", now.Add(time.Second))
	assert.NoError(err)
	assert.True(blocked)
	score, err = eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(5, score)

	eng.WaitForAlerts()
	assert.Len(notifier.Captured(), 1)
}

func TestEngineScoreClamped(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := EngineTestFixture()
	// huge increment still saturates at the score ceiling
	eng.Rules.MessageRules = []MessageRuleFunc{scriptedRule(100, "test_rule")}

	blocked, err := eng.ProcessMessage(ctx, "user1", "spam", time.Now())
	assert.NoError(err)
	assert.True(blocked)

	score, err := eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(10, score)
}

func TestEngineViolationEscalation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	now := time.Now()

	for i := 1; i <= 9; i++ {
		blocked, err := eng.ReportRateLimitViolation(ctx, "user1", now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
		assert.False(blocked)
	}

	// tenth consecutive violation inside the window escalates
	blocked, err := eng.ReportRateLimitViolation(ctx, "user1", now.Add(10*time.Second))
	assert.NoError(err)
	assert.True(blocked)

	acct, err := eng.Accounts.GetAccount(ctx, "user1")
	assert.NoError(err)
	assert.Equal(TypeRateLimitAbuse, acct.BlockReason)

	eng.WaitForAlerts()
	alerts := notifier.Captured()
	assert.Len(alerts, 1)
	assert.Contains(alerts[0].Title, "レート制限")
	assert.Contains(alerts[0].Content, "10回")

	evs, err := eng.Accounts.ListAbuseEvents(ctx, "user1", 10)
	assert.NoError(err)
	assert.Len(evs, 1)
	assert.True(evs[0].ResultedInBlock)
}

func TestEngineViolationWindowReset(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	now := time.Now()

	// nine violations, then a gap longer than the window
	for i := 1; i <= 9; i++ {
		_, err := eng.ReportRateLimitViolation(ctx, "user1", now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
	}
	blocked, err := eng.ReportRateLimitViolation(ctx, "user1", now.Add(6*time.Minute))
	assert.NoError(err)
	assert.False(blocked)

	isBlocked, err := eng.Accounts.IsBlocked(ctx, "user1")
	assert.NoError(err)
	assert.False(isBlocked)

	eng.WaitForAlerts()
	assert.Empty(notifier.Captured())
}

func TestEngineAlertCooldown(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	now := time.Now()

	// two escalations back to back; the second alert lands inside the
	// one-hour cooldown and is suppressed silently
	for round := 0; round < 2; round++ {
		base := now.Add(time.Duration(round) * time.Minute)
		for i := 0; i < 10; i++ {
			_, err := eng.ReportRateLimitViolation(ctx, "user1", base.Add(time.Duration(i)*time.Second))
			assert.NoError(err)
		}
	}

	eng.WaitForAlerts()
	assert.Len(notifier.Captured(), 1)
}

func TestEngineRulePanicRecovered(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := EngineTestFixture()
	eng.Rules.MessageRules = []MessageRuleFunc{
		func(c *MessageContext) error {
			panic("rule exploded")
		},
	}

	blocked, err := eng.ProcessMessage(ctx, "user1", "anything", time.Now())
	assert.NoError(err)
	assert.False(blocked)
}

func TestEngineNotifierFailureNonFatal(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := EngineTestFixture()
	notifier.Err = errors.New("webhook down")
	eng.Rules.MessageRules = []MessageRuleFunc{scriptedRule(5, "test_rule")}

	// block proceeds even though the alert cannot be delivered
	blocked, err := eng.ProcessMessage(ctx, "user1", "spam", time.Now())
	assert.NoError(err)
	assert.True(blocked)

	eng.WaitForAlerts()
	assert.Empty(notifier.Captured())
}

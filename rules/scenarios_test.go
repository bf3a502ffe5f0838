package rules

import (
	"context"
	"testing"
	"time"

	"github.com/sixoracle/sentinel/engine"

	"github.com/stretchr/testify/assert"
)

// End-to-end runs of the full default rule set against realistic traffic.

func TestScenarioAutomatedPatternFlood(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := engine.EngineTestFixture()
	eng.Rules = DefaultRules()
	now := time.Now()

	// every one of these matches an automation signature
	msgs := []string{"test", "test1", "12345", "a", "aaaa"}
	blocked := false
	for i, m := range msgs {
		var err error
		blocked, err = eng.ProcessMessage(ctx, "bot-user", m, now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
	}
	assert.True(blocked)

	isBlocked, err := eng.Accounts.IsBlocked(ctx, "bot-user")
	assert.NoError(err)
	assert.True(isBlocked)

	score, err := eng.Suspicion(ctx, "bot-user")
	assert.NoError(err)
	assert.GreaterOrEqual(score, engine.SuspicionThreshold)

	// exactly one owner alert for the whole burst
	eng.WaitForAlerts()
	assert.Len(notifier.Captured(), 1)
}

func TestScenarioMessageFlood(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := engine.EngineTestFixture()
	eng.Rules = DefaultRules()
	now := time.Now()

	// same natural-language question, 100 times inside a minute
	blocked := false
	for i := 0; i < 100; i++ {
		var err error
		blocked, err = eng.ProcessMessage(ctx, "flood-user", "今日の運勢を教えてください", now.Add(time.Duration(i)*500*time.Millisecond))
		assert.NoError(err)
		if blocked {
			break
		}
	}
	assert.True(blocked)

	isBlocked, err := eng.Accounts.IsBlocked(ctx, "flood-user")
	assert.NoError(err)
	assert.True(isBlocked)

	eng.WaitForAlerts()
	assert.Len(notifier.Captured(), 1)
}

func TestScenarioNormalConversation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, notifier := engine.EngineTestFixture()
	eng.Rules = DefaultRules()
	now := time.Now()

	msgs := []string{
		"今日の運勢を教えてください",
		"仕事のことで悩んでいます",
		"来月の恋愛運はどうでしょうか",
		"ありがとうございます、安心しました",
		"また明日も占ってもらえますか",
	}
	for i, m := range msgs {
		blocked, err := eng.ProcessMessage(ctx, "human-user", m, now.Add(time.Duration(i)*10*time.Second))
		assert.NoError(err)
		assert.False(blocked)
	}

	score, err := eng.Suspicion(ctx, "human-user")
	assert.NoError(err)
	assert.Equal(0, score)

	flags, err := eng.Flags.Get(ctx, "human-user")
	assert.NoError(err)
	assert.Empty(flags)

	eng.WaitForAlerts()
	assert.Empty(notifier.Captured())
}

package rules

import (
	"context"
	"testing"
	"time"

	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"

	"github.com/stretchr/testify/assert"
)

func TestRepetitiveMessageRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := engine.EngineTestFixture()
	eng.Rules.MessageRules = []engine.MessageRuleFunc{RepetitiveMessageRule}
	now := time.Now()

	// case and whitespace variations of the same message still count as repeats
	msgs := []string{"こんにちは元気ですか", "  こんにちは元気ですか ", "こんにちは元気ですか"}
	for i, m := range msgs {
		_, err := eng.ProcessMessage(ctx, "user1", m, now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
	}
	score, err := eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(2, score)

	flags, err := eng.Flags.Get(ctx, "user1")
	assert.NoError(err)
	assert.Contains(flags, flagstore.FlagRepetitiveMessages)

	// five distinct natural messages never trip the rule
	distinct := []string{
		"今日の運勢を教えてください",
		"恋愛運はどうですか",
		"仕事運を見てほしいです",
		"健康運が気になります",
		"金運について教えて",
	}
	for i, m := range distinct {
		_, err := eng.ProcessMessage(ctx, "user2", m, now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
	}
	score, err = eng.Suspicion(ctx, "user2")
	assert.NoError(err)
	assert.Equal(0, score)
}

func TestRepetitiveMessageRuleMinimumSample(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := engine.EngineTestFixture()
	eng.Rules.MessageRules = []engine.MessageRuleFunc{RepetitiveMessageRule}
	now := time.Now()

	// two identical messages are not enough evidence
	for i := 0; i < 2; i++ {
		_, err := eng.ProcessMessage(ctx, "user1", "占いお願いします", now.Add(time.Duration(i)*time.Second))
		assert.NoError(err)
	}
	score, err := eng.Suspicion(ctx, "user1")
	assert.NoError(err)
	assert.Equal(0, score)
}

package rules

import (
	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"
)

var _ engine.MessageRuleFunc = RepetitiveMessageRule

var (
	repetitionWeight = 2
	// evaluate over this many trailing messages
	repetitionSampleSize = 5
	// minimum sample before the rule can fire
	repetitionMinMessages = 3
	// at most this many distinct normalized strings counts as repetitive
	repetitionMaxDistinct = 2
)

// Flags users who keep sending the same message over and over. Comparison is
// case-insensitive and whitespace-trimmed.
func RepetitiveMessageRule(c *engine.MessageContext) error {
	recent := c.RecentMessages(repetitionSampleSize)
	if len(recent) < repetitionMinMessages {
		return nil
	}
	if distinctNormalized(recent) <= repetitionMaxDistinct {
		c.AddAccountFlag(flagstore.FlagRepetitiveMessages)
		c.IncrementSuspicion(repetitionWeight, "repetitive_messages")
	}
	return nil
}

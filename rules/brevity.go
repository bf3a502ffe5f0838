package rules

import (
	"unicode/utf8"

	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"
)

var _ engine.MessageRuleFunc = ShortMessageRule

var (
	brevityWeight = 1
	// evaluate over this many trailing messages
	brevitySampleSize = 5
	// messages below this many characters count as suspiciously short
	brevityMinLength = 5
	// rule fires at this many short messages in the sample
	brevityThreshold = 4
)

// Flags bursts of very short messages, a common shape of scripted input.
// Empty and whitespace-only messages count as short.
func ShortMessageRule(c *engine.MessageContext) error {
	recent := c.RecentMessages(brevitySampleSize)
	short := 0
	for _, m := range recent {
		if utf8.RuneCountInString(m) < brevityMinLength {
			short++
		}
	}
	if short >= brevityThreshold {
		c.AddAccountFlag(flagstore.FlagShortMessages)
		c.IncrementSuspicion(brevityWeight, "short_messages")
	}
	return nil
}

package rules

import (
	"time"

	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"
)

var _ engine.MessageRuleFunc = MessageRateRule

var (
	rateWeight = 3
	// trailing window for burst detection
	rateWindow = 60 * time.Second
	// rule fires above this many messages in the window
	rateMaxMessages = 20
)

// Flags message bursts beyond what a human plausibly types: more than 20
// messages inside a trailing minute.
func MessageRateRule(c *engine.MessageContext) error {
	count := c.MessageCountWithin(rateWindow)
	if count > rateMaxMessages {
		c.Logger.Info("high-frequency messaging", "count", count)
		c.AddAccountFlag(flagstore.FlagHighFrequency)
		c.IncrementSuspicion(rateWeight, "high_frequency")
	}
	return nil
}

package engine

// Holds configuration of which detection rules should be run, and dispatches
// events to them. Only dispatches execution; no de-dupe or pre/post processing.
type RuleSet struct {
	MessageRules []MessageRuleFunc
}

func (r *RuleSet) CallMessageRules(c *MessageContext) error {
	for _, f := range r.MessageRules {
		if err := f(c); err != nil {
			return err
		}
	}
	return nil
}

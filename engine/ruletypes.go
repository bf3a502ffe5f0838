package engine

// MessageRuleFunc is the signature for a detection rule evaluated against a
// single incoming chat message. Rules read state through the context and
// declare side-effects on it; they never mutate stores directly.
type MessageRuleFunc func(c *MessageContext) error

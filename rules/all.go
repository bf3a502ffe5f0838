package rules

import (
	"github.com/sixoracle/sentinel/engine"
)

func DefaultRules() engine.RuleSet {
	rules := engine.RuleSet{
		MessageRules: []engine.MessageRuleFunc{
			AutomatedPatternRule,
			RepetitiveMessageRule,
			ShortMessageRule,
			MessageRateRule,
		},
	}
	return rules
}

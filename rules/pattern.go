package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"
)

var _ engine.MessageRuleFunc = AutomatedPatternRule

var automatedPatternWeight = 2

// automation signatures: purely numeric, a single letter, or a "testNNN" token
var automatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[0-9]+$`),
	regexp.MustCompile(`^[a-zA-Z]$`),
	regexp.MustCompile(`(?i)^test[0-9]*$`),
}

// MatchesAutomatedPattern reports whether a message body looks like bot
// output. Safe for any byte sequence, including malformed UTF-8; natural
// language in any script never matches.
func MatchesAutomatedPattern(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, p := range automatedPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return isRepeatedRune(text)
}

// the original signature here was the backreference regex `^(.)\1+$`, which
// RE2 can't express; a rune-equality scan matches the same strings
func isRepeatedRune(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || size == len(s) {
		return false
	}
	for _, r := range s[size:] {
		if r != first {
			return false
		}
	}
	return true
}

// Flags messages matching known automation signatures.
func AutomatedPatternRule(c *engine.MessageContext) error {
	if MatchesAutomatedPattern(c.Message.Text) {
		c.AddAccountFlag(flagstore.FlagAutomatedPattern)
		c.IncrementSuspicion(automatedPatternWeight, "automated_pattern")
	}
	return nil
}

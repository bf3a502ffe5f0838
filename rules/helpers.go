package rules

import (
	"strings"
)

// normalization for repetition comparison: case-insensitive and
// whitespace-trimmed only, no stemming or locale folding
func normalizeMessage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func distinctNormalized(msgs []string) int {
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		seen[normalizeMessage(m)] = true
	}
	return len(seen)
}

// Package guard screens user queries before they reach the engine:
// blank input, oversized input, and obvious prompt-injection attempts.
package guard

import (
	"fmt"
	"strings"
)

// DefaultMaxQueryLen caps query length in characters.
const DefaultMaxQueryLen = 500

// injectionPatterns are matched case-insensitively as substrings.
var injectionPatterns = []string{
	"ignore previous instructions",
	"ignore all instructions",
	"disregard the above",
	"you are now",
	"new instructions:",
	"forget everything",
	"system:",
	"override",
	"jailbreak",
}

// Guard validates queries against a length limit and a fixed pattern list.
type Guard struct {
	maxQueryLen int
}

// New creates a guard. maxQueryLen <= 0 means DefaultMaxQueryLen.
func New(maxQueryLen int) *Guard {
	if maxQueryLen <= 0 {
		maxQueryLen = DefaultMaxQueryLen
	}
	return &Guard{maxQueryLen: maxQueryLen}
}

// Check returns an error describing why the query is unacceptable, or
// nil when it may proceed.
func (g *Guard) Check(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("empty query")
	}
	if n := len([]rune(query)); n > g.maxQueryLen {
		return fmt.Errorf("query too long: %d characters (limit %d)", n, g.maxQueryLen)
	}
	lower := strings.ToLower(query)
	for _, p := range injectionPatterns {
		if strings.Contains(lower, p) {
			return fmt.Errorf("query rejected: looks like a prompt-injection attempt")
		}
	}
	return nil
}

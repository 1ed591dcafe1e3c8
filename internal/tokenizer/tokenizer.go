package tokenizer

import (
	"regexp"
	"strings"
)

// minTokenLen filters out stubs like "a", "of", "is" without a stopword list.
const minTokenLen = 3

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lowercases text, splits it on any run of characters that are
// not ASCII letters or digits, and drops tokens shorter than three
// characters. Duplicates are preserved in order; callers that want set
// semantics deduplicate themselves (see Set).
func Tokenize(text string) []string {
	parts := nonAlnum.Split(strings.ToLower(text), -1)
	var tokens []string
	for _, p := range parts {
		if len(p) >= minTokenLen {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Set collapses a token sequence into its unique-token set.
func Set(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

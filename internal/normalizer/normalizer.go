package normalizer

import (
	"regexp"
	"strings"
)

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// Normalize canonicalizes raw document text before chunking: CRLF and
// bare CR become LF, runs of spaces and tabs collapse to a single space,
// and leading/trailing whitespace is trimmed. Whitespace-only input
// yields "".
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

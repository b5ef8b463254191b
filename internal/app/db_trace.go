package app

import (
	"regexp"
	"strings"
)

// maxTracedQueryLength bounds the db.statement attribute on repository spans.
const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens querybuilder output onto one line for the
// otelsql spans of the pick, result and survivor repositories. Values stay
// as $n placeholders, so user picks never reach the trace backend.
func formatDBQueryForTrace(query string) string {
	normalized := queryWhitespaceRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

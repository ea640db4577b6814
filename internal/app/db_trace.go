package app

import (
	"regexp"
	"strings"
)

// Traced statements collapse to one line and truncate so span
// attributes stay readable; the stat upserts run to dozens of
// placeholders per row.
const tracedQueryLimit = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	flat := collapseWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}

	return flat
}

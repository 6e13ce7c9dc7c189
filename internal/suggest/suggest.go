// Package suggest ranks previously submitted queries against the text in
// the search prompt.
package suggest

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Rank returns the queries that fuzzily match input, best match first.
// An empty input keeps the given order, which callers keep newest first.
// limit <= 0 means no limit.
func Rank(input string, queries []string, limit int) []string {
	input = strings.TrimSpace(input)

	var out []string
	if input == "" {
		out = append(out, queries...)
	} else {
		for _, m := range fuzzy.Find(input, queries) {
			out = append(out, m.Str)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Dedupe drops repeated queries keeping the first occurrence
func Dedupe(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

package convert

import (
	"regexp"
	"strings"
)

// separatorCandidates is the fixed candidate set, in priority order.
// Ties, empty lines and lines containing no candidate at all resolve to
// the earliest entry, so detection is deterministic for any input.
var separatorCandidates = []string{"|", ",", ";", "\t"}

// DetectSeparator inspects a single sample line and returns the candidate
// separator with the highest raw occurrence count. The result is advisory
// only; the caller may override it with any pattern before it reaches the
// transformer.
func DetectSeparator(line string) string {
	best := separatorCandidates[0]
	maxCount := 0

	for _, cand := range separatorCandidates {
		if count := strings.Count(line, cand); count > maxCount {
			maxCount = count
			best = cand
		}
	}

	return best
}

// SuggestedExpr returns the pattern-syntax form of a detected separator,
// suitable as the default answer of the confirmation prompt.
func SuggestedExpr(sep string) string {
	if sep == "\t" {
		return `\t`
	}
	return regexp.QuoteMeta(sep)
}

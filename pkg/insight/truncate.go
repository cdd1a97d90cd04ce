// Package insight implements the extraction deduplication and insight
// synthesis engine: it merges duplicate entity mentions, reconciles their
// attributes, and synthesizes a document-type-aware report from the
// merged result. Everything in this package is a pure, synchronous
// computation over in-memory data; no function here performs I/O or
// retains state between calls.
package insight

import (
	"unicode"
)

// Default truncation bounds applied before extraction. Documents longer
// than the threshold are shortened to the target so extraction cost and
// latency stay bounded; the opening of a document typically carries the
// densest information.
const (
	DefaultTruncateThreshold = 8000
	DefaultTruncateTarget    = 4000
)

// Truncate returns a prefix of text no longer than target characters,
// cut at the nearest preceding whitespace so no word is split. When no
// whitespace exists within the last ~5% of the target, it falls back to
// a hard cut at exactly target characters. Text at or under the
// threshold is returned unchanged.
//
// Lengths are measured in runes. The function is pure and total: empty
// input yields empty output.
func Truncate(text string, threshold, target int) string {
	if text == "" || target <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= threshold || len(runes) <= target {
		return text
	}

	prefix := runes[:target]
	lastSpace := -1
	for i := len(prefix) - 1; i >= 0; i-- {
		if unicode.IsSpace(prefix[i]) {
			lastSpace = i
			break
		}
	}

	window := target / 20
	if lastSpace > target-window {
		return string(prefix[:lastSpace])
	}
	return string(prefix)
}

package insight

import (
	"strings"
	"testing"
	"unicode"
)

func TestTruncateShortInputUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short", "a brief note"},
		{"at threshold", strings.Repeat("word ", 1600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, DefaultTruncateThreshold, DefaultTruncateTarget)
			if got != tt.input {
				t.Fatalf("input under threshold was modified: got %d chars, want %d", len(got), len(tt.input))
			}
		})
	}
}

func TestTruncateCutsOnWordBoundary(t *testing.T) {
	// 10,000 chars of 5-char words; must come back as a <=4000 char
	// prefix ending exactly at a word boundary.
	text := strings.Repeat("word ", 2000)

	got := Truncate(text, DefaultTruncateThreshold, DefaultTruncateTarget)

	if len(got) > DefaultTruncateTarget {
		t.Fatalf("truncated text too long: %d chars", len(got))
	}
	if len(got) == 0 {
		t.Fatal("truncated text is empty")
	}
	last := rune(got[len(got)-1])
	if unicode.IsSpace(last) {
		t.Fatalf("truncated text ends in whitespace: %q", got[len(got)-10:])
	}
	if !strings.HasPrefix(text, got) {
		t.Fatal("truncated text is not a prefix of the input")
	}
	// The cut position in the original must be whitespace, i.e. no word
	// was split.
	if next := rune(text[len(got)]); !unicode.IsSpace(next) {
		t.Fatalf("cut splits a word: next rune is %q", next)
	}
}

func TestTruncateHardCutWithoutWhitespace(t *testing.T) {
	// No whitespace anywhere: falls back to a hard cut at exactly the
	// target length.
	text := strings.Repeat("x", 10000)

	got := Truncate(text, DefaultTruncateThreshold, DefaultTruncateTarget)

	if len(got) != DefaultTruncateTarget {
		t.Fatalf("hard cut length = %d, want %d", len(got), DefaultTruncateTarget)
	}
}

func TestTruncateHardCutWhenWhitespaceOutsideWindow(t *testing.T) {
	// Single space early in the text, far outside the last 5% of the
	// target: the boundary search must give up and hard-cut.
	text := "ab " + strings.Repeat("x", 10000)

	got := Truncate(text, DefaultTruncateThreshold, DefaultTruncateTarget)

	if len(got) != DefaultTruncateTarget {
		t.Fatalf("hard cut length = %d, want %d", len(got), DefaultTruncateTarget)
	}
}

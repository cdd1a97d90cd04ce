package insight

import (
	"reflect"
	"testing"

	"github.com/docsight/docsight/pkg/common"
)

func TestDeduplicateIdentityRule(t *testing.T) {
	tests := []struct {
		name      string
		input     []common.Entity
		wantCount int
	}{
		{
			name:      "empty stream",
			input:     nil,
			wantCount: 0,
		},
		{
			name: "case folded text collapses",
			input: []common.Entity{
				{Class: "speaker", Text: "John"},
				{Class: "speaker", Text: "john"},
				{Class: "speaker", Text: "JOHN"},
			},
			wantCount: 1,
		},
		{
			name: "surrounding whitespace collapses",
			input: []common.Entity{
				{Class: "topic", Text: "budget"},
				{Class: "topic", Text: "  budget  "},
			},
			wantCount: 1,
		},
		{
			name: "class is case sensitive",
			input: []common.Entity{
				{Class: "Speaker", Text: "John"},
				{Class: "speaker", Text: "John"},
			},
			wantCount: 2,
		},
		{
			name: "same text different class stays distinct",
			input: []common.Entity{
				{Class: "speaker", Text: "Friday"},
				{Class: "deadline", Text: "Friday"},
			},
			wantCount: 2,
		},
		{
			name: "attributes never affect identity",
			input: []common.Entity{
				{Class: "party", Text: "Vendor", Attributes: common.Attributes{"role": common.StringValue("seller")}},
				{Class: "party", Text: "Vendor", Attributes: common.Attributes{"role": common.StringValue("supplier")}},
			},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.input)
			if len(got) != tt.wantCount {
				t.Fatalf("deduplicated to %d entities, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestDeduplicateKeepsFirstSeenRepresentative(t *testing.T) {
	input := []common.Entity{
		{Class: "speaker", Text: "JOHN"},
		{Class: "speaker", Text: "john"},
	}

	got := Deduplicate(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(got))
	}
	if got[0].Text != "JOHN" {
		t.Fatalf("representative text = %q, want first-seen casing %q", got[0].Text, "JOHN")
	}
}

func TestDeduplicateMentionCount(t *testing.T) {
	input := []common.Entity{
		{Class: "speaker", Text: "John"},
		{Class: "speaker", Text: "john"},
		{Class: "decision", Text: "Approve budget"},
	}

	got := Deduplicate(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}

	// Collapsed group carries the raw count.
	if got[0].MentionCount() != 2 {
		t.Fatalf("mention count = %d, want 2", got[0].MentionCount())
	}
	if _, ok := got[0].Attributes[common.MentionCountAttr]; !ok {
		t.Fatal("collapsed entity must carry the mention_count attribute")
	}

	// A single mention must NOT get the attribute; consumers branch on
	// its presence.
	if _, ok := got[1].Attributes[common.MentionCountAttr]; ok {
		t.Fatal("single-mention entity must not carry mention_count")
	}
	if got[1].MentionCount() != 1 {
		t.Fatalf("default mention count = %d, want 1", got[1].MentionCount())
	}
}

func TestDeduplicatePreservesFirstSeenOrder(t *testing.T) {
	input := []common.Entity{
		{Class: "topic", Text: "roadmap"},
		{Class: "entity", Text: "TechCorp"},
		{Class: "topic", Text: "Roadmap"},
		{Class: "key_point", Text: "merger"},
	}

	got := Deduplicate(input)

	wantOrder := []string{"roadmap", "TechCorp", "merger"}
	for i, want := range wantOrder {
		if got[i].Text != want {
			t.Fatalf("position %d = %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestDeduplicateMergesGroupAttributes(t *testing.T) {
	input := []common.Entity{
		{Class: "speaker", Text: "John", Attributes: common.Attributes{"role": common.StringValue("PM")}},
		{Class: "speaker", Text: "john", Attributes: common.Attributes{"role": common.StringValue("Project Manager")}},
		{Class: "speaker", Text: "JOHN"},
	}

	got := Deduplicate(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(got))
	}

	attrs := got[0].Attributes
	if attrs["role"].String() != "PM" {
		t.Fatalf("role = %q, want first non-empty %q", attrs["role"].String(), "PM")
	}
	if attrs["role_variations"].String() != "PM, Project Manager" {
		t.Fatalf("role_variations = %q", attrs["role_variations"].String())
	}
	if got[0].MentionCount() != 3 {
		t.Fatalf("mention count = %d, want 3", got[0].MentionCount())
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	input := []common.Entity{
		{Class: "speaker", Text: "John", Attributes: common.Attributes{"role": common.StringValue("PM")}},
		{Class: "speaker", Text: "john", Attributes: common.Attributes{"role": common.StringValue("Lead")}},
		{Class: "decision", Text: "Approve budget"},
		{Class: "action_item", Text: "prepare analysis", Attributes: common.Attributes{"owner": common.StringValue("Sarah")}},
		{Class: "speaker", Text: " JOHN "},
	}

	once := Deduplicate(input)
	twice := Deduplicate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedupe is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestDeduplicateCountMatchesDistinctIdentities(t *testing.T) {
	input := []common.Entity{
		{Class: "a", Text: "x"},
		{Class: "a", Text: "X "},
		{Class: "a", Text: "y"},
		{Class: "b", Text: "x"},
		{Class: "b", Text: " x"},
		{Class: "c", Text: "z"},
	}

	distinct := make(map[string]struct{})
	for _, e := range input {
		distinct[identityKey(e.Class, e.Text)] = struct{}{}
	}

	got := Deduplicate(input)
	if len(got) != len(distinct) {
		t.Fatalf("got %d merged entities, want %d distinct identities", len(got), len(distinct))
	}
}

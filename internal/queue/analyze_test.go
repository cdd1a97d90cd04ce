package queue

import (
	"testing"

	"github.com/docsight/docsight/pkg/common"
)

func TestBuildSummary(t *testing.T) {
	entities := []common.Entity{
		{Class: "speaker", Text: "John"},
		{Class: "speaker", Text: "Sarah"},
		{Class: "decision", Text: "Ship v2 on Friday"},
	}

	got := buildSummary(common.DocumentTypeMeeting, entities)
	want := "Analyzed as MEETING document. Extracted 3 entities: • 2 speaker(s) • 1 decision(s)"
	if got != want {
		t.Fatalf("buildSummary() = %q, want %q", got, want)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	got := buildSummary(common.DocumentTypeGeneral, nil)
	if got != "No significant insights were extracted from the document." {
		t.Fatalf("buildSummary() = %q", got)
	}
}

func TestBuildSummaryOrdersByFrequency(t *testing.T) {
	entities := []common.Entity{
		{Class: "topic", Text: "go"},
		{Class: "entity", Text: "ACME"},
		{Class: "entity", Text: "Initech"},
		{Class: "entity", Text: "Globex"},
		{Class: "topic", Text: "rust"},
	}

	got := buildSummary(common.DocumentTypeGeneral, entities)
	want := "Analyzed as GENERAL document. Extracted 5 entities: • 3 entity(s) • 2 topic(s)"
	if got != want {
		t.Fatalf("buildSummary() = %q, want %q", got, want)
	}
}

package insight

import (
	"testing"

	"github.com/docsight/docsight/pkg/common"
)

func TestMergeAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input []common.Attributes
		want  map[string]string
	}{
		{
			name:  "empty input yields empty map",
			input: nil,
			want:  map[string]string{},
		},
		{
			name: "conflicting values produce variations",
			input: []common.Attributes{
				{"a": common.StringValue("x")},
				{"a": common.StringValue("y")},
			},
			want: map[string]string{
				"a":            "x",
				"a_variations": "x, y",
			},
		},
		{
			name: "single distinct value has no variations key",
			input: []common.Attributes{
				{},
				{"a": common.StringValue("x")},
			},
			want: map[string]string{"a": "x"},
		},
		{
			name: "repeated identical values collapse",
			input: []common.Attributes{
				{"role": common.StringValue("PM")},
				{"role": common.StringValue("PM")},
			},
			want: map[string]string{"role": "PM"},
		},
		{
			name: "empty value never overrides",
			input: []common.Attributes{
				{"role": common.StringValue("PM")},
				{"role": common.StringValue("")},
			},
			want: map[string]string{"role": "PM"},
		},
		{
			name: "empty value never becomes representative",
			input: []common.Attributes{
				{"role": common.StringValue("")},
				{"role": common.StringValue("lead")},
			},
			want: map[string]string{"role": "lead"},
		},
		{
			name: "key with only empty values is dropped",
			input: []common.Attributes{
				{"role": common.StringValue(""), "title": common.StringValue("CEO")},
				{"role": {}},
			},
			want: map[string]string{"title": "CEO"},
		},
		{
			name: "variations sorted lexicographically",
			input: []common.Attributes{
				{"deadline": common.StringValue("Friday")},
				{"deadline": common.StringValue("ASAP")},
				{"deadline": common.StringValue("Monday")},
			},
			want: map[string]string{
				"deadline":            "Friday",
				"deadline_variations": "ASAP, Friday, Monday",
			},
		},
		{
			name: "typed values compare by canonical string",
			input: []common.Attributes{
				{"priority": common.NumberValue(1)},
				{"priority": common.StringValue("1")},
			},
			want: map[string]string{"priority": "1"},
		},
		{
			name: "false and zero are not empty",
			input: []common.Attributes{
				{"required": common.BoolValue(false)},
				{"required": common.BoolValue(true)},
			},
			want: map[string]string{
				"required":            "false",
				"required_variations": "false, true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeAttributes(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("merged %d keys, want %d: %v", len(got), len(tt.want), got)
			}
			for key, want := range tt.want {
				value, ok := got[key]
				if !ok {
					t.Fatalf("missing key %q in %v", key, got)
				}
				if value.String() != want {
					t.Fatalf("key %q = %q, want %q", key, value.String(), want)
				}
			}
		})
	}
}

func TestMergeAttributesKeepsRepresentativeType(t *testing.T) {
	merged := MergeAttributes([]common.Attributes{
		{"count": common.NumberValue(3)},
		{"count": common.StringValue("three")},
	})

	if _, isNum := merged["count"].Number(); !isNum {
		t.Fatalf("representative lost its numeric type: %v", merged["count"])
	}
	if merged["count_variations"].String() != "3, three" {
		t.Fatalf("unexpected variations: %q", merged["count_variations"].String())
	}
}

func TestMergeAttributesVariationSetOrderIndependent(t *testing.T) {
	forward := MergeAttributes([]common.Attributes{
		{"a": common.StringValue("x")},
		{"a": common.StringValue("y")},
	})
	backward := MergeAttributes([]common.Attributes{
		{"a": common.StringValue("y")},
		{"a": common.StringValue("x")},
	})

	if forward["a_variations"].String() != backward["a_variations"].String() {
		t.Fatalf("variation set depends on input order: %q vs %q",
			forward["a_variations"].String(), backward["a_variations"].String())
	}
	if forward["a"].String() != "x" || backward["a"].String() != "y" {
		t.Fatal("representative value must favor first-seen")
	}
}

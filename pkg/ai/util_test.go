package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type classification struct {
		DocumentType string  `json:"document_type"`
		Confidence   float64 `json:"confidence,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  classification
	}{
		{
			name:  "valid json object",
			input: `{"document_type":"meeting"}`,
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{document_type: 'meeting'}`,
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "trailing comma",
			input: `{"document_type":"meeting",}`,
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "missing endbracket",
			input: `{"document_type":"meeting`,
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{document_type: 'meeting'}"`,
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"document_type\": \"meeting\"\n}\n",
			want:  classification{DocumentType: "meeting"},
		},
		{
			name:  "duplicate leading brace no newlines",
			input: `{ { "document_type": "meeting" }`,
			want:  classification{DocumentType: "meeting"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got classification
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.DocumentType != tc.want.DocumentType || got.Confidence != tc.want.Confidence {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type span struct {
		Class string `json:"class"`
		Text  string `json:"text"`
	}

	input := `[{class:'speaker',text:'John'},{class:'decision',text:'Approve budget',}]`
	var got []span
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Text != "John" || got[1].Class != "decision" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want two spans", got)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type span struct {
		Class string `json:"class"`
	}

	var got span
	if err := UnmarshalFlexible("hello", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestUnmarshalFlexible_StringifiedWithNewlines(t *testing.T) {
	type result struct {
		DocumentType string   `json:"document_type"`
		Reasoning    string   `json:"reasoning"`
		Topics       []string `json:"topics"`
	}

	input := `"{\n  \"document_type\": \"research\",\n  \"reasoning\": \"Contains citations (e.g., p<0.05)\",\n  \"topics\": [\"AI\", \"productivity\"]\n  }\n"`
	var got result
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if got.DocumentType != "research" || len(got.Topics) != 2 {
		t.Fatalf("UnmarshalFlexible() got = %+v", got)
	}
}

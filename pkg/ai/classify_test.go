package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docsight/docsight/pkg/common"
)

// stubClient returns a canned response for structured generation.
type stubClient struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...GenerateOption,
) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...GenerateOption,
) error {
	s.lastPrompt = prompt
	if s.err != nil {
		return s.err
	}
	return UnmarshalFlexible(s.response, out)
}

func (s *stubClient) LoadModel(ctx context.Context, opts ...GenerateOption) error {
	return nil
}

func (s *stubClient) ResetMetrics() {}

func (s *stubClient) GetMetrics() ModelMetrics {
	return ModelMetrics{}
}

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantType       common.DocumentType
		wantConfidence float64
	}{
		{
			name:           "meeting transcript",
			response:       `{"document_type":"meeting","confidence":0.92,"reasoning":"Speaker turns and action items."}`,
			wantType:       common.DocumentTypeMeeting,
			wantConfidence: 0.92,
		},
		{
			name:           "unknown tag resolves to general",
			response:       `{"document_type":"spreadsheet","confidence":0.8,"reasoning":"Tabular."}`,
			wantType:       common.DocumentTypeGeneral,
			wantConfidence: 0.8,
		},
		{
			name:           "confidence clamped to one",
			response:       `{"document_type":"legal","confidence":1.4,"reasoning":"Contract language."}`,
			wantType:       common.DocumentTypeLegal,
			wantConfidence: 1,
		},
		{
			name:           "negative confidence clamped to zero",
			response:       `{"document_type":"story","confidence":-0.2,"reasoning":"Narrative."}`,
			wantType:       common.DocumentTypeStory,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{response: tt.response}
			got := ClassifyDocument(context.Background(), client, "some document text")

			if got.DocumentType != tt.wantType {
				t.Fatalf("document type = %q, want %q", got.DocumentType, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Fatalf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyDocumentFallbackOnError(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}

	got := ClassifyDocument(context.Background(), client, "some document text")

	if got.DocumentType != common.DocumentTypeGeneral {
		t.Fatalf("fallback type = %q, want general", got.DocumentType)
	}
	if got.Confidence != 0.5 {
		t.Fatalf("fallback confidence = %v, want 0.5", got.Confidence)
	}
	if !strings.Contains(got.Reasoning, "fallback") {
		t.Fatalf("fallback reasoning = %q", got.Reasoning)
	}
}

func TestClassifyDocumentSamplesOpening(t *testing.T) {
	client := &stubClient{
		response: `{"document_type":"general","confidence":0.7,"reasoning":"ok"}`,
	}

	marker := "UNIQUE-TAIL-MARKER"
	text := strings.Repeat("a", classificationSampleLimit+100) + marker

	ClassifyDocument(context.Background(), client, text)

	if strings.Contains(client.lastPrompt, marker) {
		t.Fatal("classification prompt must only contain the document opening")
	}
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsight/docsight/pkg/common"
)

type extractionPayload struct {
	Extractions []extractedSpan `json:"extractions"`
}

type extractedSpan struct {
	Class      string            `json:"class"`
	Text       string            `json:"text"`
	Attributes common.Attributes `json:"attributes,omitempty"`
}

// ExtractEntities runs structured entity extraction over the document
// text using the template for the classified document type. The classes
// parameter restricts what the model may label; it comes from the
// document type's schema.
//
// The returned entities are raw mentions in model output order. They
// still need deduplication before synthesis.
func ExtractEntities(
	ctx context.Context,
	client DocAIClient,
	text string,
	docType common.DocumentType,
	classes []string,
	opts ...GenerateOption,
) ([]common.Entity, error) {
	template := TemplateFor(docType)
	prompt := buildExtractionPrompt(template, classes, text)

	var payload extractionPayload
	err := client.GenerateCompletionWithFormat(
		ctx,
		"document_extractions",
		"Labeled text spans extracted from the document with scalar attributes",
		prompt,
		&payload,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	entities := make([]common.Entity, 0, len(payload.Extractions))
	for _, span := range payload.Extractions {
		if strings.TrimSpace(span.Text) == "" || strings.TrimSpace(span.Class) == "" {
			continue
		}
		entities = append(entities, common.Entity{
			Class:      span.Class,
			Text:       span.Text,
			Attributes: span.Attributes,
		})
	}
	return entities, nil
}

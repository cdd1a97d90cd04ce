package ai

import (
	"context"
	"fmt"

	"github.com/docsight/docsight/pkg/common"
	"github.com/docsight/docsight/pkg/logger"
)

// classificationSampleLimit caps how much of the document is sent for
// classification. The opening of a document is enough to identify its
// type.
const classificationSampleLimit = 2000

type classificationResult struct {
	DocumentType string  `json:"document_type" jsonschema:"enum=story,enum=meeting,enum=research,enum=technical,enum=legal,enum=general"`
	Confidence   float64 `json:"confidence" jsonschema_description:"Confidence between 0.0 and 1.0"`
	Reasoning    string  `json:"reasoning" jsonschema_description:"Brief explanation for the classification"`
}

// ClassifyDocument determines the document type from the opening of the
// text. Classification never fails the pipeline: on any model error the
// result degrades to the general type with 0.5 confidence.
func ClassifyDocument(
	ctx context.Context,
	client DocAIClient,
	text string,
	opts ...GenerateOption,
) common.Classification {
	sample := []rune(text)
	if len(sample) > classificationSampleLimit {
		sample = sample[:classificationSampleLimit]
	}

	prompt := fmt.Sprintf(classificationPrompt, string(sample))

	var result classificationResult
	err := client.GenerateCompletionWithFormat(
		ctx,
		"document_classification",
		"Document type classification with confidence and reasoning",
		prompt,
		&result,
		opts...,
	)
	if err != nil {
		logger.Warn("document classification failed, falling back to general", "error", err)
		return common.Classification{
			DocumentType: common.DocumentTypeGeneral,
			Confidence:   0.5,
			Reasoning:    fmt.Sprintf("Classification failed, using fallback: %v", err),
		}
	}

	confidence := result.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	classification := common.Classification{
		DocumentType: common.ParseDocumentType(result.DocumentType),
		Confidence:   confidence,
		Reasoning:    result.Reasoning,
	}
	if classification.Reasoning == "" {
		classification.Reasoning = "Unable to determine specific category"
	}
	return classification
}

// Package openai implements ai.DocAIClient against any OpenAI-compatible
// chat completion endpoint.
package openai

import (
	"sync"

	"github.com/docsight/docsight/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DocOpenAIClient is an OpenAI-backed AI client for document analysis.
// It uses separate default models for classification and extraction.
//
// A DocOpenAIClient should be created using NewDocOpenAIClient.
type DocOpenAIClient struct {
	classificationModel string
	extractionModel     string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewDocOpenAIClientParams defines the configuration for creating a new
// DocOpenAIClient.
//
// ClassificationModel is the default model for document classification.
// ExtractionModel is the default model for structured entity extraction.
// ChatURL and ChatKey configure the chat/completion API endpoint; an
// empty ChatURL targets the OpenAI platform.
type NewDocOpenAIClientParams struct {
	ClassificationModel string
	ExtractionModel     string

	ChatURL string
	ChatKey string
}

// NewDocOpenAIClient creates a new DocOpenAIClient configured with the
// provided parameters.
//
// Example:
//
//	params := openai.NewDocOpenAIClientParams{
//		ClassificationModel: "gpt-4o-mini",
//		ExtractionModel:     "gpt-4o-mini",
//		ChatKey:             os.Getenv("OPENAI_API_KEY"),
//	}
//	client := openai.NewDocOpenAIClient(params)
func NewDocOpenAIClient(
	params NewDocOpenAIClientParams,
) *DocOpenAIClient {
	return &DocOpenAIClient{
		classificationModel: params.ClassificationModel,
		extractionModel:     params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

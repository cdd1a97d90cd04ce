package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docsight/docsight/pkg/common"
)

// ExampleExtraction is one labeled span in a few-shot extraction example.
type ExampleExtraction struct {
	Class      string            `json:"class"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// PromptExample pairs a short source text with the extractions a model
// should produce for it.
type PromptExample struct {
	Text        string
	Extractions []ExampleExtraction
}

// ExtractionTemplate carries the per-document-type extraction
// instructions and few-shot examples.
type ExtractionTemplate struct {
	Description string
	Examples    []PromptExample
}

var storyTemplate = ExtractionTemplate{
	Description: "Extract key narrative elements from this story in order of appearance. " +
		"Focus on: characters with their traits, major plot points, themes/morals, and setting details. " +
		"Use exact text for extractions. Provide meaningful attributes for context.",
	Examples: []PromptExample{
		{
			Text: "ROMEO. But soft! What light through yonder window breaks? It is the east, and Juliet is the sun.",
			Extractions: []ExampleExtraction{
				{Class: "character", Text: "ROMEO", Attributes: map[string]string{"emotional_state": "wonder", "role": "protagonist"}},
				{Class: "plot_point", Text: "What light through yonder window breaks?", Attributes: map[string]string{"significance": "Romeo sees Juliet"}},
				{Class: "theme", Text: "Juliet is the sun", Attributes: map[string]string{"type": "metaphor", "meaning": "love and admiration"}},
			},
		},
	},
}

var meetingTemplate = ExtractionTemplate{
	Description: "Extract meeting elements in order of discussion. " +
		"Focus on: speakers with roles, agenda items, action items with owners, decisions made, and key discussion points. " +
		"Use exact text. Include deadlines and responsibilities in attributes.",
	Examples: []PromptExample{
		{
			Text: "John (PM): We need to finalize the Q4 roadmap by Friday. Sarah, can you prepare the budget analysis?",
			Extractions: []ExampleExtraction{
				{Class: "speaker", Text: "John", Attributes: map[string]string{"role": "PM", "title": "Project Manager"}},
				{Class: "agenda_item", Text: "finalize the Q4 roadmap", Attributes: map[string]string{"deadline": "Friday", "priority": "high"}},
				{Class: "action_item", Text: "prepare the budget analysis", Attributes: map[string]string{"owner": "Sarah", "deadline": "implied"}},
			},
		},
	},
}

var researchTemplate = ExtractionTemplate{
	Description: "Extract research paper elements systematically. " +
		"Focus on: authors, research questions, methodology, key findings, conclusions, and important citations. " +
		"Use exact text. Include statistical data and significance in attributes.",
	Examples: []PromptExample{
		{
			Text: "Dr. Smith et al. investigated the impact of AI on productivity. Results showed a 35% improvement (p<0.05).",
			Extractions: []ExampleExtraction{
				{Class: "author", Text: "Dr. Smith et al.", Attributes: map[string]string{"role": "lead researcher"}},
				{Class: "research_question", Text: "impact of AI on productivity", Attributes: map[string]string{"domain": "AI applications"}},
				{Class: "finding", Text: "35% improvement", Attributes: map[string]string{"significance": "p<0.05", "type": "quantitative"}},
			},
		},
	},
}

var technicalTemplate = ExtractionTemplate{
	Description: "Extract technical documentation elements. " +
		"Focus on: components/modules, APIs/functions, configuration parameters, dependencies, and usage examples. " +
		"Use exact text. Include technical specifications in attributes.",
	Examples: []PromptExample{
		{
			Text: "The authenticate() function requires an API key parameter. Returns a JWT token valid for 24 hours.",
			Extractions: []ExampleExtraction{
				{Class: "function", Text: "authenticate()", Attributes: map[string]string{"type": "authentication", "return_type": "JWT token"}},
				{Class: "parameter", Text: "API key parameter", Attributes: map[string]string{"required": "true", "type": "string"}},
				{Class: "specification", Text: "valid for 24 hours", Attributes: map[string]string{"component": "JWT token", "duration": "24 hours"}},
			},
		},
	},
}

var legalTemplate = ExtractionTemplate{
	Description: "Extract legal document elements carefully. " +
		"Focus on: parties involved, key clauses, obligations, dates/deadlines, and important terms. " +
		"Use exact text. Include legal implications in attributes.",
	Examples: []PromptExample{
		{
			Text: "The Vendor shall deliver the goods by December 31, 2024. Failure to comply results in a 10% penalty.",
			Extractions: []ExampleExtraction{
				{Class: "party", Text: "The Vendor", Attributes: map[string]string{"role": "service provider"}},
				{Class: "obligation", Text: "deliver the goods", Attributes: map[string]string{"deadline": "December 31, 2024", "responsible_party": "Vendor"}},
				{Class: "clause", Text: "Failure to comply results in a 10% penalty", Attributes: map[string]string{"type": "penalty clause", "amount": "10%"}},
			},
		},
	},
}

var generalTemplate = ExtractionTemplate{
	Description: "Extract key information from this document. " +
		"Focus on: main topics, key points, important entities (people, organizations, dates), and significant statements. " +
		"Use exact text. Provide context in attributes.",
	Examples: []PromptExample{
		{
			Text: "The company announced a merger with TechCorp on March 15th. CEO Jane Doe stated this will increase market share by 20%.",
			Extractions: []ExampleExtraction{
				{Class: "entity", Text: "TechCorp", Attributes: map[string]string{"type": "organization", "context": "merger partner"}},
				{Class: "key_point", Text: "merger with TechCorp", Attributes: map[string]string{"date": "March 15th", "significance": "major business event"}},
				{Class: "entity", Text: "Jane Doe", Attributes: map[string]string{"role": "CEO", "type": "person"}},
				{Class: "key_point", Text: "increase market share by 20%", Attributes: map[string]string{"type": "projection", "metric": "market share"}},
			},
		},
	},
}

var extractionTemplates = map[common.DocumentType]ExtractionTemplate{
	common.DocumentTypeStory:     storyTemplate,
	common.DocumentTypeMeeting:   meetingTemplate,
	common.DocumentTypeResearch:  researchTemplate,
	common.DocumentTypeTechnical: technicalTemplate,
	common.DocumentTypeLegal:     legalTemplate,
	common.DocumentTypeGeneral:   generalTemplate,
}

// TemplateFor returns the extraction template for the document type,
// falling back to the general template.
func TemplateFor(docType common.DocumentType) ExtractionTemplate {
	if template, ok := extractionTemplates[docType]; ok {
		return template
	}
	return generalTemplate
}

const classificationPrompt = `Analyze the following document excerpt and classify it into ONE of these categories:

1. STORY - Narrative fiction, novels, short stories, creative writing
2. MEETING - Meeting transcripts, minutes, discussion notes
3. RESEARCH - Research papers, academic articles, scientific studies
4. TECHNICAL - Technical documentation, API docs, user manuals, how-to guides
5. LEGAL - Legal documents, contracts, agreements, terms of service
6. GENERAL - Any other type of document

Document excerpt:
---
%s
---

Classify the document, estimate your confidence between 0.0 and 1.0, and give a brief reasoning.`

func buildExtractionPrompt(template ExtractionTemplate, classes []string, text string) string {
	var b strings.Builder

	b.WriteString(template.Description)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Only use these extraction classes: %s.\n", strings.Join(classes, ", "))

	for _, example := range template.Examples {
		b.WriteString("\nExample text:\n")
		b.WriteString(example.Text)
		b.WriteString("\nExample extractions:\n")
		encoded, err := json.Marshal(example.Extractions)
		if err != nil {
			continue
		}
		b.Write(encoded)
		b.WriteString("\n")
	}

	b.WriteString("\nDocument:\n---\n")
	b.WriteString(text)
	b.WriteString("\n---\n")

	return b.String()
}

package insight

import (
	"github.com/docsight/docsight/pkg/common"
)

// Schema is the per-document-type configuration the synthesizer pivots
// on. CategoryPriority orders entity classes in the detailed listing
// (lower ranks first; unranked classes sort after all ranked ones, in
// first-encounter order among themselves). ReportSections names the
// canonical sections of a rendered report; it is descriptive and does
// not constrain content. ExpectedClasses lists the classes extraction is
// prompted for; unexpected classes are still processed normally.
// SummaryClasses are the classes whose counts the executive summary's
// per-type paragraph references; they are always drawn from
// ExpectedClasses so prose never names a class the schema does not
// declare.
type Schema struct {
	DocumentType     common.DocumentType
	CategoryPriority map[string]int
	ReportSections   []string
	ExpectedClasses  []string
	SummaryClasses   []string
}

// Registry is the immutable document-type schema table. It is built once
// at startup and passed explicitly to the synthesizer; concurrent reads
// need no synchronization because it is never mutated after construction.
type Registry struct {
	schemas map[common.DocumentType]Schema
}

// Lookup resolves the schema for a document type. Unknown tags resolve
// to the general schema; Lookup never fails.
func (r *Registry) Lookup(docType common.DocumentType) Schema {
	if schema, ok := r.schemas[docType]; ok {
		return schema
	}
	return r.schemas[common.DocumentTypeGeneral]
}

// NewRegistry builds the schema table for all supported document types.
func NewRegistry() *Registry {
	schemas := []Schema{
		{
			DocumentType: common.DocumentTypeStory,
			CategoryPriority: map[string]int{
				"character":  1,
				"plot_point": 2,
				"theme":      3,
				"setting":    4,
				"moral":      5,
			},
			ReportSections:  []string{"Characters", "Plot Summary", "Themes & Morals", "Setting"},
			ExpectedClasses: []string{"character", "plot_point", "theme", "setting", "moral"},
			SummaryClasses:  []string{"character", "theme"},
		},
		{
			DocumentType: common.DocumentTypeMeeting,
			CategoryPriority: map[string]int{
				"speaker":          1,
				"decision":         2,
				"action_item":      3,
				"agenda_item":      4,
				"discussion_point": 5,
			},
			ReportSections:  []string{"Participants", "Agenda", "Decisions", "Action Items", "Key Discussions"},
			ExpectedClasses: []string{"speaker", "agenda_item", "action_item", "decision", "discussion_point"},
			SummaryClasses:  []string{"speaker", "decision", "action_item"},
		},
		{
			DocumentType: common.DocumentTypeResearch,
			CategoryPriority: map[string]int{
				"author":            1,
				"research_question": 2,
				"finding":           3,
				"methodology":       4,
				"conclusion":        5,
				"citation":          6,
			},
			ReportSections:  []string{"Authors", "Research Questions", "Methodology", "Key Findings", "Conclusions"},
			ExpectedClasses: []string{"author", "research_question", "methodology", "finding", "conclusion", "citation"},
			SummaryClasses:  []string{"finding", "conclusion"},
		},
		{
			DocumentType: common.DocumentTypeTechnical,
			CategoryPriority: map[string]int{
				"component":     1,
				"function":      2,
				"parameter":     3,
				"configuration": 4,
				"dependency":    5,
				"example":       6,
			},
			ReportSections:  []string{"Components", "APIs/Functions", "Configuration", "Dependencies", "Usage Examples"},
			ExpectedClasses: []string{"component", "function", "parameter", "dependency", "configuration", "example"},
			SummaryClasses:  []string{"component", "function"},
		},
		{
			DocumentType: common.DocumentTypeLegal,
			CategoryPriority: map[string]int{
				"party":      1,
				"obligation": 2,
				"clause":     3,
				"deadline":   4,
				"term":       5,
				"penalty":    6,
			},
			ReportSections:  []string{"Parties", "Key Clauses", "Obligations", "Important Dates", "Terms & Conditions"},
			ExpectedClasses: []string{"party", "clause", "obligation", "deadline", "term", "penalty"},
			SummaryClasses:  []string{"party", "obligation"},
		},
		{
			DocumentType: common.DocumentTypeGeneral,
			CategoryPriority: map[string]int{
				"entity":    1,
				"key_point": 2,
				"topic":     3,
				"statement": 4,
				"date":      5,
			},
			ReportSections:  []string{"Key Topics", "Important Entities", "Main Points", "Significant Statements"},
			ExpectedClasses: []string{"entity", "key_point", "topic", "statement", "date"},
			SummaryClasses:  nil,
		},
	}

	table := make(map[common.DocumentType]Schema, len(schemas))
	for _, schema := range schemas {
		table[schema.DocumentType] = schema
	}
	return &Registry{schemas: table}
}

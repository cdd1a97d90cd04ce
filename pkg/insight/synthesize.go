package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docsight/docsight/pkg/common"
)

// NoInsightsMessage is the explanatory paragraph used when synthesis
// receives no entities at all.
const NoInsightsMessage = "No significant insights were extracted from the document."

// Synthesizer turns a deduplicated entity list into a structured report,
// consulting the schema registry for the applicable document type. It is
// stateless beyond the read-only registry and safe for concurrent use.
type Synthesizer struct {
	registry *Registry
}

// NewSynthesizer creates a synthesizer over the given schema registry.
func NewSynthesizer(registry *Registry) *Synthesizer {
	return &Synthesizer{registry: registry}
}

// classGroups carries the by-class partition of the entity list, with
// classes in the order they were first encountered. The explicit order
// slice is the documented invariant; the map is only a lookup.
type classGroups struct {
	order   []string
	byClass map[string][]common.Entity
}

func groupByClass(entities []common.Entity) classGroups {
	groups := classGroups{byClass: make(map[string][]common.Entity)}
	for _, entity := range entities {
		if _, ok := groups.byClass[entity.Class]; !ok {
			groups.order = append(groups.order, entity.Class)
		}
		groups.byClass[entity.Class] = append(groups.byClass[entity.Class], entity)
	}
	return groups
}

// Synthesize produces the report for a deduplicated entity list. It is
// total over its input domain: an empty entity list yields a degenerate
// but well-formed report, and an unknown document type falls back to the
// general schema.
func (s *Synthesizer) Synthesize(entities []common.Entity, classification common.Classification) common.Report {
	schema := s.registry.Lookup(classification.DocumentType)
	groups := groupByClass(entities)

	return common.Report{
		DocumentType:     schema.DocumentType,
		ExecutiveSummary: s.executiveSummary(entities, groups, schema, classification),
		KeyInsights:      keyInsights(groups),
		DetailedSections: detailedSections(groups, schema),
		TotalEntities:    len(entities),
		DistinctClasses:  len(groups.order),
	}
}

func (s *Synthesizer) executiveSummary(
	entities []common.Entity,
	groups classGroups,
	schema Schema,
	classification common.Classification,
) []string {
	paragraphs := make([]string, 0, 3)

	opening := fmt.Sprintf(
		"This document has been classified as a %s with %.0f%% confidence.",
		strings.ToUpper(string(schema.DocumentType)),
		classification.Confidence*100,
	)
	if reasoning := strings.TrimSpace(classification.Reasoning); reasoning != "" {
		opening += " " + reasoning
	}
	paragraphs = append(paragraphs, opening)

	if len(entities) == 0 {
		paragraphs = append(paragraphs, NoInsightsMessage)
	} else {
		paragraphs = append(paragraphs, typeParagraph(entities, groups, schema))
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"In total, %d unique entities were identified across %d categories, "+
			"providing a comprehensive understanding of the document's content.",
		len(entities), len(groups.order),
	))

	return paragraphs
}

// typeParagraph renders the document-type-specific summary sentence from
// the counts of the schema's summary classes. Classes not present in the
// input degrade to a count of zero. Schemas without summary classes (the
// general fallback) get a generic sentence over the totals instead.
func typeParagraph(entities []common.Entity, groups classGroups, schema Schema) string {
	if len(schema.SummaryClasses) == 0 {
		return fmt.Sprintf(
			"The document contains %d key entities and insights across %d categories.",
			len(entities), len(groups.order),
		)
	}

	counts := make([]string, 0, len(schema.SummaryClasses))
	for _, class := range schema.SummaryClasses {
		counts = append(counts, fmt.Sprintf(
			"%d %s(s)",
			len(groups.byClass[class]),
			strings.ToLower(DisplayClassName(class)),
		))
	}

	return fmt.Sprintf(
		"The %s analysis identified %s.",
		schema.DocumentType, joinList(counts),
	)
}

// keyInsights renders one line per class, in first-encounter order. A
// single member is shown verbatim; up to three members are listed in
// full; beyond that the top three by mention count are listed with an
// "and others" marker and the total count in the label.
func keyInsights(groups classGroups) []string {
	insights := make([]string, 0, len(groups.order))

	for _, class := range groups.order {
		members := groups.byClass[class]
		display := DisplayClassName(class)

		switch {
		case len(members) == 1:
			insights = append(insights, fmt.Sprintf("%s: %s", display, members[0].Text))
		case len(members) <= 3:
			insights = append(insights, fmt.Sprintf("%s: %s", display, joinTexts(members)))
		default:
			top := topByMentions(members, 3)
			insights = append(insights, fmt.Sprintf(
				"%s (%d total): %s, and others",
				display, len(members), joinTexts(top),
			))
		}
	}

	return insights
}

// detailedSections orders classes by schema priority (unranked classes
// after all ranked ones, stable by first encounter) and, within a class,
// entities by descending mention count with stable original order on
// ties. The mention_count attribute is surfaced structurally and
// stripped from the generic attribute map.
func detailedSections(groups classGroups, schema Schema) []common.ReportSection {
	const unranked = 1 << 30

	ordered := make([]string, len(groups.order))
	copy(ordered, groups.order)
	rank := func(class string) int {
		if priority, ok := schema.CategoryPriority[class]; ok {
			return priority
		}
		return unranked
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})

	sections := make([]common.ReportSection, 0, len(ordered))
	for _, class := range ordered {
		members := topByMentions(groups.byClass[class], len(groups.byClass[class]))

		entries := make([]common.ReportEntry, 0, len(members))
		for _, entity := range members {
			entries = append(entries, common.ReportEntry{
				Text:         entity.Text,
				Attributes:   withoutMentionCount(entity.Attributes),
				MentionCount: entity.MentionCount(),
			})
		}

		sections = append(sections, common.ReportSection{
			ClassDisplayName: DisplayClassName(class),
			Entities:         entries,
		})
	}

	return sections
}

// topByMentions returns the first n entities ordered by descending
// mention count, stable on ties, without mutating the input slice.
func topByMentions(entities []common.Entity, n int) []common.Entity {
	sorted := make([]common.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MentionCount() > sorted[j].MentionCount()
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func withoutMentionCount(attrs common.Attributes) common.Attributes {
	if len(attrs) == 0 {
		return nil
	}
	filtered := make(common.Attributes, len(attrs))
	for key, value := range attrs {
		if key == common.MentionCountAttr {
			continue
		}
		filtered[key] = value
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// DisplayClassName turns a class label like "action_item" into its
// display form "Action Item".
func DisplayClassName(class string) string {
	words := strings.Fields(strings.ReplaceAll(class, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func joinTexts(entities []common.Entity) string {
	texts := make([]string, 0, len(entities))
	for _, entity := range entities {
		texts = append(texts, entity.Text)
	}
	return strings.Join(texts, ", ")
}

// joinList joins items with commas and a final "and".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

package common

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// DocumentType identifies the schema applied when synthesizing a report.
type DocumentType string

const (
	DocumentTypeStory     DocumentType = "story"
	DocumentTypeMeeting   DocumentType = "meeting"
	DocumentTypeResearch  DocumentType = "research"
	DocumentTypeTechnical DocumentType = "technical"
	DocumentTypeLegal     DocumentType = "legal"
	DocumentTypeGeneral   DocumentType = "general"
)

// ParseDocumentType maps an arbitrary tag to a known DocumentType.
// Unknown tags resolve to DocumentTypeGeneral, never an error.
func ParseDocumentType(tag string) DocumentType {
	switch DocumentType(strings.ToLower(strings.TrimSpace(tag))) {
	case DocumentTypeStory:
		return DocumentTypeStory
	case DocumentTypeMeeting:
		return DocumentTypeMeeting
	case DocumentTypeResearch:
		return DocumentTypeResearch
	case DocumentTypeTechnical:
		return DocumentTypeTechnical
	case DocumentTypeLegal:
		return DocumentTypeLegal
	default:
		return DocumentTypeGeneral
	}
}

// AttrKind enumerates the scalar kinds an attribute value can hold.
type AttrKind int

const (
	AttrAbsent AttrKind = iota
	AttrString
	AttrNumber
	AttrBool
)

// AttrValue is a closed scalar sum type (string | number | bool | absent)
// for entity attributes. Extraction output carries heterogeneous scalar
// types; AttrValue preserves the original typed value while providing a
// canonical string form for comparison.
//
// The zero value is the absent value.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	bool bool
}

// StringValue returns an AttrValue holding a string.
func StringValue(s string) AttrValue {
	return AttrValue{kind: AttrString, str: s}
}

// NumberValue returns an AttrValue holding a number.
func NumberValue(n float64) AttrValue {
	return AttrValue{kind: AttrNumber, num: n}
}

// BoolValue returns an AttrValue holding a boolean.
func BoolValue(b bool) AttrValue {
	return AttrValue{kind: AttrBool, bool: b}
}

// Kind reports the scalar kind held by the value.
func (v AttrValue) Kind() AttrKind {
	return v.kind
}

// IsEmpty reports whether the value carries no information. Absent values
// and empty strings are empty; zero numbers and false booleans are not.
func (v AttrValue) IsEmpty() bool {
	switch v.kind {
	case AttrAbsent:
		return true
	case AttrString:
		return v.str == ""
	default:
		return false
	}
}

// String returns the canonical string form of the value, used for
// variation comparison. Absent values render as the empty string.
func (v AttrValue) String() string {
	switch v.kind {
	case AttrString:
		return v.str
	case AttrNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case AttrBool:
		return strconv.FormatBool(v.bool)
	default:
		return ""
	}
}

// Number returns the numeric value and whether the value holds a number.
func (v AttrValue) Number() (float64, bool) {
	if v.kind != AttrNumber {
		return 0, false
	}
	return v.num, true
}

// MarshalJSON encodes the value as its underlying scalar. Absent values
// encode as null.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrString:
		return json.Marshal(v.str)
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrBool:
		return json.Marshal(v.bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON scalar into the matching kind. Non-scalar
// values (arrays, objects) are coerced to their compact JSON text rather
// than rejected, so malformed extraction output never fails ingestion.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = AttrValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		*v = StringValue(trimmed)
		return nil
	}
	*v = StringValue(compact.String())
	return nil
}

// JSONSchema declares the scalar shape of an attribute value for
// structured model output.
func (AttrValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
		},
	}
}

// Attributes maps attribute names to scalar values.
type Attributes map[string]AttrValue

// Entity is one extracted mention: a class label, the literal extracted
// text span, and free-form scalar attributes. Two entities share an
// identity iff their class is equal and their text, trimmed and
// case-folded, is equal; attribute content never affects identity.
type Entity struct {
	Class      string     `json:"class"`
	Text       string     `json:"text"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// MentionCountAttr is the attribute key carrying the number of raw
// mentions collapsed into a merged entity. It is only present when more
// than one mention was collapsed.
const MentionCountAttr = "mention_count"

// MentionCount returns the entity's mention count, defaulting to 1 when
// the attribute is absent or unreadable.
func (e Entity) MentionCount() int {
	v, ok := e.Attributes[MentionCountAttr]
	if !ok {
		return 1
	}
	if n, isNum := v.Number(); isNum && n >= 1 {
		return int(n)
	}
	if parsed, err := strconv.Atoi(strings.TrimSpace(v.String())); err == nil && parsed >= 1 {
		return parsed
	}
	return 1
}

// Classification is the document classification consumed by the report
// pipeline: a document type tag, a confidence in [0,1], and a free-form
// rationale included in the report as prose.
type Classification struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
	Reasoning    string       `json:"reasoning"`
}

// ReportEntry is one merged entity as it appears in a report section.
// The mention count is surfaced structurally and excluded from Attributes.
type ReportEntry struct {
	Text         string     `json:"text"`
	Attributes   Attributes `json:"attributes,omitempty"`
	MentionCount int        `json:"mention_count"`
}

// ReportSection groups a class's entities under its display name,
// ordered by descending mention count.
type ReportSection struct {
	ClassDisplayName string        `json:"class_display_name"`
	Entities         []ReportEntry `json:"entities"`
}

// Report is the structured, renderer-agnostic output of insight
// synthesis.
type Report struct {
	DocumentType     DocumentType    `json:"document_type"`
	ExecutiveSummary []string        `json:"executive_summary"`
	KeyInsights      []string        `json:"key_insights"`
	DetailedSections []ReportSection `json:"detailed_sections"`
	TotalEntities    int             `json:"total_entities"`
	DistinctClasses  int             `json:"distinct_classes"`
}

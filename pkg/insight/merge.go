package insight

import (
	"sort"
	"strings"

	"github.com/docsight/docsight/pkg/common"
)

// VariationsSuffix is appended to an attribute key to form the companion
// key listing all distinct values observed for it across merged mentions.
const VariationsSuffix = "_variations"

// MergeAttributes reconciles an ordered list of attribute maps into one.
//
// For each key the merged value is the value from the first map, in input
// order, holding a non-empty value for it. Empty values never override an
// earlier value and are never chosen as representative; a key appears in
// the result only if some map supplied a non-empty value for it.
//
// When a key has more than one distinct non-empty value across the inputs
// (compared by canonical string form), a companion "<key>_variations" key
// is added holding the sorted, comma-joined list of all distinct values.
// The variation set is independent of input ordering; only the choice of
// representative value favors first-seen.
func MergeAttributes(maps []common.Attributes) common.Attributes {
	merged := common.Attributes{}
	if len(maps) == 0 {
		return merged
	}

	valueSets := make(map[string]map[string]struct{})
	for _, attrs := range maps {
		for key, value := range attrs {
			if value.IsEmpty() {
				continue
			}
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
			set, ok := valueSets[key]
			if !ok {
				set = make(map[string]struct{})
				valueSets[key] = set
			}
			set[value.String()] = struct{}{}
		}
	}

	for key, set := range valueSets {
		if len(set) < 2 {
			continue
		}
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		merged[key+VariationsSuffix] = common.StringValue(strings.Join(values, ", "))
	}

	return merged
}

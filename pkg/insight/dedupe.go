package insight

import (
	"strings"

	"github.com/docsight/docsight/pkg/common"
)

// identityKey builds the identity of an entity: class (case-sensitive)
// joined with its text, trimmed and case-folded. Attribute content never
// participates in identity.
func identityKey(class, text string) string {
	return class + "\x00" + strings.ToLower(strings.TrimSpace(text))
}

type dedupeGroup struct {
	representative common.Entity
	count          int
	attrs          []common.Attributes
}

// Deduplicate partitions the raw entity stream into identity groups,
// preserving the order in which each distinct identity was first seen,
// and collapses each group into one merged entity. The representative
// keeps the first-seen casing and text; its attributes are replaced by
// the reconciled merge of all non-empty attribute maps in the group, and
// a mention_count attribute is added when more than one mention
// collapsed. Groups of one get no mention_count key; downstream
// consumers branch on its presence.
//
// Running Deduplicate on its own output is a no-op: identities cannot
// collide again, and a folded mention_count survives as an ordinary
// attribute through the merge.
func Deduplicate(entities []common.Entity) []common.Entity {
	groups := make(map[string]*dedupeGroup, len(entities))
	order := make([]string, 0, len(entities))

	for _, entity := range entities {
		key := identityKey(entity.Class, entity.Text)
		group, ok := groups[key]
		if !ok {
			group = &dedupeGroup{representative: entity}
			groups[key] = group
			order = append(order, key)
		}
		group.count++
		if len(entity.Attributes) > 0 {
			group.attrs = append(group.attrs, entity.Attributes)
		}
	}

	deduplicated := make([]common.Entity, 0, len(order))
	for _, key := range order {
		group := groups[key]

		merged := MergeAttributes(group.attrs)
		if group.count > 1 {
			merged[common.MentionCountAttr] = common.NumberValue(float64(group.count))
		}

		entity := group.representative
		entity.Attributes = merged
		deduplicated = append(deduplicated, entity)
	}

	return deduplicated
}

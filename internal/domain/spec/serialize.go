package spec

import (
	"sort"
	"strings"
)

// Selections holds the user's current choices per group key. Single-choice
// groups carry one value, multi-choice groups carry values in selection
// order.
type Selections map[string][]string

// Tag is an ad hoc key/value attribute attached alongside group selections
// (packaging size, minimum order quantity, delivery time and the like).
type Tag struct {
	Key   string
	Value string
}

// Serialize flattens the current selections into the stored tag list:
// one "key=value" string per single-choice group, "key=v1,v2,..." per
// multi-choice group, in template order, followed by the ad hoc tags.
//
// Selections whose group is not part of the template (left over from an
// earlier category choice) are still emitted, in sorted key order. The
// original flow never cleared them on a template change and stored records
// depend on that, so the behavior is kept rather than fixed here.
func Serialize(groups []Group, sel Selections, extras []Tag) []string {
	var tags []string
	seen := make(map[string]bool, len(sel))

	for _, g := range groups {
		values := sel[g.Key]
		if len(values) == 0 {
			continue
		}
		seen[g.Key] = true
		tags = append(tags, g.Key+"="+strings.Join(values, ","))
	}

	var stale []string
	for key, values := range sel {
		if seen[key] || len(values) == 0 {
			continue
		}
		stale = append(stale, key+"="+strings.Join(values, ","))
	}
	sort.Strings(stale)
	tags = append(tags, stale...)

	for _, t := range extras {
		if t.Value == "" {
			continue
		}
		tags = append(tags, t.Key+"="+t.Value)
	}
	return tags
}

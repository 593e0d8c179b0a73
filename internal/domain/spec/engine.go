// Package spec selects, filters and serializes the category-driven product
// specification templates shown during product registration.
package spec

import "strings"

// Template is a resolved schema: the variant key plus its ordered groups.
// RequiresMapping is set for the rice family, where no groups are shown
// until at least one sub-category has been mapped.
type Template struct {
	Key             TemplateKey `json:"key"`
	Groups          []Group     `json:"groups"`
	RequiresMapping bool        `json:"requires_mapping,omitempty"`
}

// riceVariantPriority decides which rice template wins when several
// sub-categories are mapped at once.
var riceVariantPriority = []struct {
	subCategory string
	key         TemplateKey
}{
	{SubCategoryPolishedRice, TemplatePolishedRice},
	{SubCategoryBrownBasmatiRice, TemplateBrownBasmatiRice},
	{SubCategorySwarnaRice, TemplateSwarnaRice},
}

// Resolve derives the template for a category, sub-type and the mapped
// sub-categories. Cereals with sub-type "wheat" resolves to the wheat
// template, "rice" to the rice family; any other category resolves to its
// own template, and unknown categories to the explicit Unknown variant.
func Resolve(category, subType string, mapped []string) Template {
	key := TemplateKey(category)
	if category == "cereals" {
		switch subType {
		case "wheat":
			key = TemplateWheat
		case "rice":
			return resolveRice(mapped)
		default:
			key = TemplateCereals
		}
	}
	groups, ok := registry[key]
	if !ok {
		return Template{Key: TemplateUnknown}
	}
	return Template{Key: key, Groups: groups}
}

func resolveRice(mapped []string) Template {
	for _, variant := range riceVariantPriority {
		if containsFold(mapped, variant.subCategory) {
			return Template{Key: variant.key, Groups: registry[variant.key]}
		}
	}
	t := Template{Key: TemplateRice, Groups: registry[TemplateRice]}
	if len(mapped) == 0 {
		t.RequiresMapping = true
	}
	return t
}

// Visible returns the groups the form should render. Nil when the template
// still requires a sub-category mapping.
func (t Template) Visible() []Group {
	if t.RequiresMapping {
		return nil
	}
	return t.Groups
}

// Filter narrows groups by a case-insensitive substring match on the group
// label. It never mutates stored selections; it only hides groups.
func Filter(groups []Group, query string) []Group {
	query = strings.TrimSpace(query)
	if query == "" {
		return groups
	}
	needle := strings.ToLower(query)
	var out []Group
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Label), needle) {
			out = append(out, g)
		}
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

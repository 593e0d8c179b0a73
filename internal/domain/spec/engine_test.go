package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CerealsSubTypes(t *testing.T) {
	tests := []struct {
		name     string
		category string
		subType  string
		want     TemplateKey
	}{
		{"wheat sub-type", "cereals", "wheat", TemplateWheat},
		{"rice sub-type", "cereals", "rice", TemplateRice},
		{"maize falls back to generic cereals", "cereals", "maize", TemplateCereals},
		{"no sub-type falls back to generic cereals", "cereals", "", TemplateCereals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.category, tt.subType, nil)
			assert.Equal(t, tt.want, got.Key)
		})
	}
}

func TestResolve_UnknownCategoryIsExplicit(t *testing.T) {
	got := Resolve("electronics", "", nil)
	assert.Equal(t, TemplateUnknown, got.Key)
	assert.Empty(t, got.Groups)
}

func TestResolve_RiceMappingPriority(t *testing.T) {
	tests := []struct {
		name   string
		mapped []string
		want   TemplateKey
	}{
		{"polished wins over everything", []string{SubCategorySwarnaRice, SubCategoryPolishedRice, SubCategoryBrownBasmatiRice}, TemplatePolishedRice},
		{"brown basmati beats swarna", []string{SubCategorySwarnaRice, SubCategoryBrownBasmatiRice}, TemplateBrownBasmatiRice},
		{"swarna alone", []string{SubCategorySwarnaRice}, TemplateSwarnaRice},
		{"basmati alone falls back to generic rice", []string{SubCategoryBasmatiRice}, TemplateRice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve("cereals", "rice", tt.mapped)
			assert.Equal(t, tt.want, got.Key)
			assert.NotEmpty(t, got.Visible())
		})
	}
}

func TestResolve_RiceWithoutMappingShowsNothing(t *testing.T) {
	got := Resolve("cereals", "rice", nil)
	assert.Equal(t, TemplateRice, got.Key)
	assert.True(t, got.RequiresMapping)
	assert.Nil(t, got.Visible())
}

func TestResolve_DeterministicAndNoDuplicateKeys(t *testing.T) {
	cases := []struct {
		category string
		subType  string
		mapped   []string
	}{
		{"cereals", "wheat", nil},
		{"cereals", "rice", []string{SubCategoryPolishedRice}},
		{"cereals", "rice", []string{SubCategoryBrownBasmatiRice}},
		{"cereals", "rice", []string{SubCategorySwarnaRice}},
		{"cereals", "rice", []string{SubCategoryBasmatiRice}},
		{"cereals", "maize", nil},
	}
	for _, c := range cases {
		first := Resolve(c.category, c.subType, c.mapped)
		second := Resolve(c.category, c.subType, c.mapped)
		require.Equal(t, first, second)

		keys := make(map[string]bool)
		for _, g := range first.Groups {
			assert.False(t, keys[g.Key], "duplicate group key %q in template %s", g.Key, first.Key)
			keys[g.Key] = true
		}
	}
}

func TestFilter_CaseInsensitiveLabelMatch(t *testing.T) {
	groups := Resolve("cereals", "wheat", nil).Groups

	got := Filter(groups, "grade")
	require.Len(t, got, 1)
	assert.Equal(t, "grade", got[0].Key)

	got = Filter(groups, "PACKAGING")
	require.Len(t, got, 1)
	assert.Equal(t, "packagingType", got[0].Key)

	assert.Equal(t, groups, Filter(groups, "  "), "blank query hides nothing")
	assert.Empty(t, Filter(groups, "no such label"))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	groups := Resolve("cereals", "wheat", nil).Groups
	before := len(groups)
	_ = Filter(groups, "moisture")
	assert.Len(t, groups, before)
}

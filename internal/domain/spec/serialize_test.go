package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_SingleChoice(t *testing.T) {
	groups := []Group{{Key: "grade", Label: "Grade", Kind: SingleChoice}}
	tags := Serialize(groups, Selections{"grade": {"food-grade"}}, nil)
	assert.Equal(t, []string{"grade=food-grade"}, tags)
}

func TestSerialize_MultiChoicePreservesSelectionOrder(t *testing.T) {
	groups := []Group{{Key: "usage", Label: "Usage", Kind: MultiChoice}}
	tags := Serialize(groups, Selections{"usage": {"bakery", "chakki-atta"}}, nil)
	assert.Equal(t, []string{"usage=bakery,chakki-atta"}, tags)
}

func TestSerialize_TemplateOrderThenExtras(t *testing.T) {
	groups := Resolve("cereals", "wheat", nil).Groups
	sel := Selections{
		"moisture":  {"12"},
		"wheatType": {"sharbati"},
		"usage":     {"chakki-atta", "bakery"},
	}
	extras := []Tag{
		{Key: "packagingSize", Value: "25 kg"},
		{Key: "minOrderQty", Value: "100 Kg"},
		{Key: "deliveryTime", Value: ""}, // empty values dropped
	}
	tags := Serialize(groups, sel, extras)
	assert.Equal(t, []string{
		"wheatType=sharbati",
		"usage=chakki-atta,bakery",
		"moisture=12",
		"packagingSize=25 kg",
		"minOrderQty=100 Kg",
	}, tags)
}

func TestSerialize_StaleSelectionsAreKept(t *testing.T) {
	// A selection left over from a previous category is still emitted;
	// the flow never cleared hidden selections.
	groups := Resolve("cereals", "maize", nil).Groups
	sel := Selections{
		"grade":     {"premium"},
		"wheatType": {"sharbati"}, // not in the cereals template
	}
	tags := Serialize(groups, sel, nil)
	require.Contains(t, tags, "grade=premium")
	assert.Contains(t, tags, "wheatType=sharbati")
}

func TestSerialize_EmptySelectionsSkipped(t *testing.T) {
	groups := []Group{{Key: "grade", Label: "Grade", Kind: SingleChoice}}
	tags := Serialize(groups, Selections{"grade": nil}, nil)
	assert.Empty(t, tags)
}

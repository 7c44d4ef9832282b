package filter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matst80/skill-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schema = types.NewFilterSchema(
	types.FilterCategory{Name: "Level", Values: []string{"Max"}},
	types.FilterCategory{Name: "Class", Values: []string{"Warrior", "Paladin", "Archer"}},
)

func entries() []types.Entry[string] {
	return []types.Entry[string]{
		{Tags: types.TagSet{"Level": "Max", "Class": "Warrior"}, Text: "Shield Bash", Item: "A"},
		{Tags: types.TagSet{"Level": "", "Class": "Warrior"}, Text: "Shield Wall", Item: "B"},
		{Tags: types.TagSet{"Level": "Max", "Class": "Archer"}, Text: "Arrow Rain", Item: "C"},
		{Tags: types.TagSet{"Class": "Paladin"}, Text: "Holy Shield", Item: "D"},
	}
}

func TestCategoryLaw(t *testing.T) {
	data := entries()[:3]
	base := types.NewCheckboxState(schema)

	assert.Equal(t, []string{"A", "C"}, Apply(data, "", base.With("Level", "Max", true)))
	assert.Equal(t, []string{"A", "B"}, Apply(data, "", base.With("Class", "Warrior", true)))
	assert.Equal(t, []string{"A"}, Apply(data, "", base.With("Level", "Max", true).With("Class", "Warrior", true)))
}

func TestNoActiveFiltersIsIdentity(t *testing.T) {
	data := entries()
	want := []string{"A", "B", "C", "D"}
	assert.Equal(t, want, Apply(data, "", types.NewCheckboxState(schema)))
	assert.Equal(t, want, Apply(data, "", nil))
	assert.Equal(t, want, NewCatalogue(schema, data).Filter(types.NewFilterState(schema)))
}

func TestTextStage(t *testing.T) {
	data := entries()
	got := Apply(data, "SHIELD", nil)
	assert.Equal(t, []string{"A", "B", "D"}, got)

	for _, e := range data {
		if strings.Contains(strings.ToLower(e.Text), "shield") {
			assert.Contains(t, got, e.Item)
		}
	}
	assert.Empty(t, Apply(data, "fireball", nil))
}

func TestTextThenCategory(t *testing.T) {
	data := entries()
	state := types.NewCheckboxState(schema).With("Class", "Warrior", true)
	assert.Equal(t, []string{"A", "B"}, Apply(data, "shield", state))
	assert.Equal(t, []string{"B"}, Apply(data, "wall", state))
}

func TestEmptyTagOnlyMatchesWhenChecked(t *testing.T) {
	data := entries()
	state := types.CheckboxState{"Level": {"Max": true}}
	assert.Equal(t, []string{"A", "C"}, Apply(data, "", state))

	state = state.With("Level", "", true)
	assert.Equal(t, []string{"A", "B", "C", "D"}, Apply(data, "", state))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	data := entries()
	state := types.NewCheckboxState(schema).With("Class", "Warrior", true)
	before := state.Clone()
	Apply(data, "shield", state)
	assert.Equal(t, entries(), data)
	assert.Equal(t, before, state)
}

func TestCatalogueIgnoresUnknownCategories(t *testing.T) {
	c := NewCatalogue(schema, entries())
	state := types.FilterState{
		Checkboxes: types.CheckboxState{"Rarity": {"Epic": true}, "Class": {"Mage": true}},
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, c.Filter(state))
	assert.Empty(t, Apply(entries(), "", state.Checkboxes), "Apply has no schema to ignore them with")
	assert.Equal(t, []string{"A", "B", "C", "D"}, Apply(entries(), "", c.Restrict(state.Checkboxes)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ApplySchema(schema, entries(), "", state.Checkboxes))
}

func TestApplySchemaKeepsKnownFilters(t *testing.T) {
	checked := types.CheckboxState{"Rarity": {"Epic": true}}.With("Level", "Max", true)
	assert.Equal(t, Apply(entries(), "", types.CheckboxState{"Level": {"Max": true}}), ApplySchema(schema, entries(), "", checked))
	assert.Equal(t, Apply(entries(), "", checked), ApplySchema(nil, entries(), "", checked))
}

func TestCatalogueMatchesApply(t *testing.T) {
	data := make([]types.Entry[string], 0, 60)
	classes := []string{"Warrior", "Paladin", "Archer", ""}
	for i := range 60 {
		level := ""
		if i%3 == 0 {
			level = "Max"
		}
		data = append(data, types.Entry[string]{
			Tags: types.TagSet{"Level": level, "Class": classes[i%len(classes)]},
			Text: fmt.Sprintf("Skill %d %s", i, classes[(i/2)%len(classes)]),
			Item: fmt.Sprintf("s%d", i),
		})
	}
	c := NewCatalogue(schema, data)
	base := types.NewCheckboxState(schema)
	states := []types.CheckboxState{
		base,
		base.With("Level", "Max", true),
		base.With("Class", "Archer", true).With("Class", "Paladin", true),
		base.With("Level", "Max", true).With("Class", "Warrior", true),
	}
	for _, q := range []string{"", "1", "skill 2", "ARCHER", "nope"} {
		for _, s := range states {
			want := Apply(data, q, s)
			got := c.Filter(types.FilterState{Query: q, Checkboxes: s})
			require.Equal(t, want, got, "query %q state %v", q, s)

			res := c.Search(types.FilterState{Query: q, Checkboxes: s})
			require.Equal(t, want, res.Items)
			require.Equal(t, len(want), res.Total)
		}
	}
}

func TestCatalogueCopiesEntries(t *testing.T) {
	data := entries()
	c := NewCatalogue(schema, data)
	data[0].Item = "changed"
	assert.Equal(t, "A", c.Filter(types.NewFilterState(schema))[0])
	assert.Equal(t, 4, c.Len())
}

func TestSearchFacets(t *testing.T) {
	c := NewCatalogue(schema, entries())
	res := c.Search(types.FilterState{Query: "shield"})
	require.Len(t, res.Facets, 2)
	assert.Equal(t, "Class", res.Facets[1].Name)
	assert.Equal(t, uint64(2), res.Facets[1].Values[0].Count)
	assert.Equal(t, uint64(1), res.Facets[1].Values[1].Count)
	assert.Equal(t, uint64(0), res.Facets[1].Values[2].Count)
}

func TestCatalogueSuggest(t *testing.T) {
	c := NewCatalogue(schema, entries())
	assert.Equal(t, []string{"Holy Shield", "Shield Bash", "Shield Wall"}, c.Suggest("sheild", 5))
	assert.Equal(t, []string{"Holy Shield"}, c.Suggest("sheild", 1))
	assert.Equal(t, []string{"Arrow Rain"}, c.Suggest("rainn", 5))
	assert.Empty(t, c.Suggest("zzzzzz", 5))
}

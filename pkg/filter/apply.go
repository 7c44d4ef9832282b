package filter

import (
	"github.com/matst80/skill-finder/pkg/facet"
	"github.com/matst80/skill-finder/pkg/search"
	"github.com/matst80/skill-finder/pkg/types"
)

// Apply reduces entries to the items matching query and checkboxes, keeping
// input order. The text stage runs first, then the category stage. Every
// checked category of checkboxes constrains the result; use ApplySchema or a
// Catalogue to have categories outside a schema ignored.
//
// Cost is O(N × C); Catalogue answers the category stage from an inverted
// index instead.
func Apply[T any](entries []types.Entry[T], query string, checkboxes types.CheckboxState) []T {
	return apply(entries, query, facet.ActiveFilters(nil, checkboxes))
}

// ApplySchema is Apply where checked categories and values unknown to schema
// are ignored.
func ApplySchema[T any](schema *types.FilterSchema, entries []types.Entry[T], query string, checkboxes types.CheckboxState) []T {
	if schema == nil {
		return Apply(entries, query, checkboxes)
	}
	return apply(entries, query, facet.ActiveFilters(schema, checkboxes))
}

func apply[T any](entries []types.Entry[T], query string, filters []facet.ActiveFilter) []T {
	text := search.NewTextMatcher(query)

	ret := make([]T, 0, len(entries))
	for _, e := range entries {
		if !text.Match(e.Text) {
			continue
		}
		if !facet.MatchTags(e.Tags, filters) {
			continue
		}
		ret = append(ret, e.Item)
	}
	return ret
}

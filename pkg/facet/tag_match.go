package facet

import (
	"slices"

	"github.com/matst80/skill-finder/pkg/types"
)

// ActiveFilter is a category with at least one checked value.
type ActiveFilter struct {
	Category string
	Values   []string
}

// ActiveFilters collects the categories of state that constrain the result.
// With a schema, categories and values unknown to it are dropped and the
// output follows schema order. Without one every checked value counts and
// the output is sorted by category.
func ActiveFilters(schema *types.FilterSchema, state types.CheckboxState) []ActiveFilter {
	var names []string
	if schema != nil {
		names = schema.Names()
	} else {
		names = make([]string, 0, len(state))
		for category := range state {
			names = append(names, category)
		}
		slices.Sort(names)
	}
	ret := make([]ActiveFilter, 0, len(names))
	for _, category := range names {
		values := state.Active(category, schema)
		if len(values) == 0 {
			continue
		}
		ret = append(ret, ActiveFilter{Category: category, Values: values})
	}
	return ret
}

// MatchTags is the linear category check: AND across filters, OR within the
// values of one filter. A missing tag reads as "".
func MatchTags(tags types.TagSet, filters []ActiveFilter) bool {
	for _, f := range filters {
		if !slices.Contains(f.Values, tags.Get(f.Category)) {
			return false
		}
	}
	return true
}

package filter

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/skill-finder/pkg/facet"
	"github.com/matst80/skill-finder/pkg/search"
	"github.com/matst80/skill-finder/pkg/types"
)

// Catalogue is the normalized item set of one page, built once at startup
// and shared read-only by everything that filters it.
type Catalogue[T any] struct {
	schema  *types.FilterSchema
	entries []types.Entry[T]
	folded  []string
	facets  *facet.FacetIndex
	suggest *search.Suggester
}

func NewCatalogue[T any](schema *types.FilterSchema, entries []types.Entry[T]) *Catalogue[T] {
	c := &Catalogue[T]{
		schema:  schema,
		entries: make([]types.Entry[T], len(entries)),
		folded:  make([]string, len(entries)),
		facets:  facet.NewFacetIndex(schema),
	}
	copy(c.entries, entries)
	texts := make([]string, len(entries))
	for i, e := range c.entries {
		texts[i] = e.Text
		c.folded[i] = search.Fold(e.Text)
		c.facets.HandleTags(uint32(i), e.Tags)
	}
	c.suggest = search.NewSuggester(texts)
	return c
}

func (c *Catalogue[T]) Schema() *types.FilterSchema {
	return c.schema
}

func (c *Catalogue[T]) Len() int {
	return len(c.entries)
}

func (c *Catalogue[T]) Entries() []types.Entry[T] {
	ret := make([]types.Entry[T], len(c.entries))
	copy(ret, c.entries)
	return ret
}

// Suggest returns entry texts close to query, for queries with no hits.
func (c *Catalogue[T]) Suggest(query string, limit int) []string {
	return c.suggest.Suggest(query, limit)
}

// Restrict drops categories and values of state that the schema does not
// know about.
func (c *Catalogue[T]) Restrict(state types.CheckboxState) types.CheckboxState {
	ret := types.NewCheckboxState(c.schema)
	for category, values := range ret {
		for v := range values {
			values[v] = state.IsChecked(category, v)
		}
	}
	return ret
}

// match returns the positions of matching entries in ascending order.
func (c *Catalogue[T]) match(state types.FilterState) (*roaring.Bitmap, []facet.ActiveFilter) {
	filters := facet.ActiveFilters(c.schema, state.Checkboxes)

	candidates := c.facets.All()
	text := search.NewTextMatcher(state.Query)
	if !text.MatchesAll() {
		textIds := roaring.New()
		for i, folded := range c.folded {
			if text.MatchFolded(folded) {
				textIds.Add(uint32(i))
			}
		}
		candidates = textIds
	}
	return candidates, filters
}

// Filter returns the same items as Apply on the restricted state.
func (c *Catalogue[T]) Filter(state types.FilterState) []T {
	candidates, filters := c.match(state)
	if m := c.facets.Match(filters); m != nil {
		candidates.And(m)
	}
	return c.collect(candidates)
}

func (c *Catalogue[T]) collect(ids *roaring.Bitmap) []T {
	ret := make([]T, 0, ids.GetCardinality())
	it := ids.Iterator()
	for it.HasNext() {
		ret = append(ret, c.entries[it.Next()].Item)
	}
	return ret
}

// Result is a filtered page of the catalogue together with the per value
// counts for rendering checkbox labels.
type Result[T any] struct {
	Items  []T                    `json:"items"`
	Total  int                    `json:"total"`
	Facets []facet.CategoryCounts `json:"facets"`
}

func (c *Catalogue[T]) Search(state types.FilterState) Result[T] {
	candidates, filters := c.match(state)
	counts := c.facets.Counts(candidates, filters)
	if m := c.facets.Match(filters); m != nil {
		candidates.And(m)
	}
	items := c.collect(candidates)
	return Result[T]{
		Items:  items,
		Total:  len(items),
		Facets: counts,
	}
}

package facet

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/skill-finder/pkg/types"
)

// FacetIndex holds one KeyField per schema category. Ids are entry
// positions in the catalogue.
type FacetIndex struct {
	schema *types.FilterSchema
	fields map[string]*KeyField
	all    *roaring.Bitmap
}

func NewFacetIndex(schema *types.FilterSchema) *FacetIndex {
	idx := &FacetIndex{
		schema: schema,
		fields: make(map[string]*KeyField),
		all:    roaring.New(),
	}
	for _, name := range schema.Names() {
		idx.fields[name] = EmptyKeyField(name)
	}
	return idx
}

// HandleTags links every schema category of tags to id. Categories outside
// the schema are not indexed; a missing category is indexed as "".
func (idx *FacetIndex) HandleTags(id uint32, tags types.TagSet) {
	idx.all.Add(id)
	for name, field := range idx.fields {
		field.AddValueLink(tags.Get(name), id)
	}
}

func (idx *FacetIndex) GetKeyField(category string) (*KeyField, bool) {
	f, ok := idx.fields[category]
	return f, ok
}

func (idx *FacetIndex) All() *roaring.Bitmap {
	return idx.all.Clone()
}

// Match intersects the per-category unions of filters. It returns nil when
// filters is empty, meaning no constraint.
func (idx *FacetIndex) Match(filters []ActiveFilter) *roaring.Bitmap {
	merger := NewMerger()
	for _, f := range filters {
		field, ok := idx.fields[f.Category]
		if !ok {
			continue
		}
		merger.Add(field.Match(f.Values))
	}
	return merger.Result()
}

// ValueCount is the number of candidates carrying a value.
type ValueCount struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

// CategoryCounts lists the values of one category with their hit counts.
type CategoryCounts struct {
	Name   string       `json:"name"`
	Values []ValueCount `json:"values"`
}

// Counts computes, per schema category, how many candidates each value
// would match if toggled on. The category's own filter is left out so
// sibling values keep their counts, the same way a filter is evaluated
// without itself when facets are generated.
func (idx *FacetIndex) Counts(candidates *roaring.Bitmap, filters []ActiveFilter) []CategoryCounts {
	ret := make([]CategoryCounts, 0, len(idx.fields))
	for _, c := range idx.schema.Categories() {
		field := idx.fields[c.Name]
		base := candidates
		if others := withOut(filters, c.Name); len(others) > 0 {
			if m := idx.Match(others); m != nil {
				base = roaring.And(candidates, m)
			}
		}
		counts := CategoryCounts{Name: c.Name, Values: make([]ValueCount, 0, len(c.Values))}
		for _, v := range c.Values {
			var n uint64
			if ids, ok := field.Keys[v]; ok {
				n = roaring.And(base, ids).GetCardinality()
			}
			counts.Values = append(counts.Values, ValueCount{Value: v, Count: n})
		}
		ret = append(ret, counts)
	}
	return ret
}

func withOut(filters []ActiveFilter, category string) []ActiveFilter {
	ret := make([]ActiveFilter, 0, len(filters))
	for _, f := range filters {
		if f.Category != category {
			ret = append(ret, f)
		}
	}
	return ret
}

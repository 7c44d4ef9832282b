package types

import "slices"

// FilterCategory is one checkbox group: its name and the tag values it
// offers, in rendering order.
type FilterCategory struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FilterSchema enumerates which checkboxes exist. It is immutable once built.
type FilterSchema struct {
	categories []FilterCategory
	byName     map[string]int
}

func NewFilterSchema(categories ...FilterCategory) *FilterSchema {
	s := &FilterSchema{
		categories: make([]FilterCategory, 0, len(categories)),
		byName:     make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		if idx, ok := s.byName[c.Name]; ok {
			// later definitions of the same category win
			s.categories[idx].Values = dedupe(c.Values)
			continue
		}
		s.byName[c.Name] = len(s.categories)
		s.categories = append(s.categories, FilterCategory{
			Name:   c.Name,
			Values: dedupe(c.Values),
		})
	}
	return s
}

func dedupe(values []string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// Categories returns a copy of the categories in schema order.
func (s *FilterSchema) Categories() []FilterCategory {
	if s == nil {
		return nil
	}
	ret := make([]FilterCategory, len(s.categories))
	for i, c := range s.categories {
		ret[i] = FilterCategory{Name: c.Name, Values: slices.Clone(c.Values)}
	}
	return ret
}

func (s *FilterSchema) Names() []string {
	if s == nil {
		return nil
	}
	ret := make([]string, len(s.categories))
	for i, c := range s.categories {
		ret[i] = c.Name
	}
	return ret
}

func (s *FilterSchema) Values(category string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	idx, ok := s.byName[category]
	if !ok {
		return nil, false
	}
	return slices.Clone(s.categories[idx].Values), true
}

func (s *FilterSchema) HasCategory(category string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byName[category]
	return ok
}

func (s *FilterSchema) Has(category, value string) bool {
	if s == nil {
		return false
	}
	idx, ok := s.byName[category]
	if !ok {
		return false
	}
	return slices.Contains(s.categories[idx].Values, value)
}

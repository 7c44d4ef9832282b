package types

// TagSet maps a category name to the single tag value an item carries in
// that category. An empty value means no tag.
type TagSet map[string]string

func (t TagSet) Get(category string) string {
	return t[category]
}

// Entry is a normalized catalogue record: its tags, the text the free text
// stage matches against and the caller's item.
type Entry[T any] struct {
	Tags TagSet
	Text string
	Item T
}

// FilterState is the unit round-tripped through the URL.
type FilterState struct {
	Query      string        `json:"query"`
	Checkboxes CheckboxState `json:"checkboxes"`
}

func NewFilterState(schema *FilterSchema) FilterState {
	return FilterState{
		Query:      "",
		Checkboxes: NewCheckboxState(schema),
	}
}

func (s FilterState) Clone() FilterState {
	return FilterState{
		Query:      s.Query,
		Checkboxes: s.Checkboxes.Clone(),
	}
}

func (s FilterState) Equal(other FilterState) bool {
	return s.Query == other.Query && s.Checkboxes.Equal(other.Checkboxes)
}

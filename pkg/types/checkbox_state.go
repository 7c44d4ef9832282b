package types

import "maps"

// CheckboxState maps category -> tag value -> checked. Missing entries read
// as unchecked. Treat values as immutable; use With to derive a new state.
type CheckboxState map[string]map[string]bool

// NewCheckboxState returns the default-shaped state for a schema with every
// known value present and unchecked.
func NewCheckboxState(schema *FilterSchema) CheckboxState {
	ret := make(CheckboxState)
	for _, c := range schema.Categories() {
		values := make(map[string]bool, len(c.Values))
		for _, v := range c.Values {
			values[v] = false
		}
		ret[c.Name] = values
	}
	return ret
}

func (s CheckboxState) Clone() CheckboxState {
	if s == nil {
		return nil
	}
	ret := make(CheckboxState, len(s))
	for category, values := range s {
		ret[category] = maps.Clone(values)
	}
	return ret
}

// With returns a copy of s where category/value is set to checked. The
// receiver is left untouched.
func (s CheckboxState) With(category, value string, checked bool) CheckboxState {
	ret := s.Clone()
	if ret == nil {
		ret = make(CheckboxState)
	}
	values, ok := ret[category]
	if !ok || values == nil {
		values = make(map[string]bool)
		ret[category] = values
	}
	values[value] = checked
	return ret
}

func (s CheckboxState) IsChecked(category, value string) bool {
	return s[category][value]
}

// Active returns the checked values of a category. The order follows the
// schema when one is given, otherwise it is unspecified.
func (s CheckboxState) Active(category string, schema *FilterSchema) []string {
	values := s[category]
	if len(values) == 0 {
		return nil
	}
	ret := make([]string, 0, len(values))
	if known, ok := schema.Values(category); ok {
		for _, v := range known {
			if values[v] {
				ret = append(ret, v)
			}
		}
		return ret
	}
	for v, checked := range values {
		if checked {
			ret = append(ret, v)
		}
	}
	return ret
}

// HasActive reports whether any category has at least one checked value.
func (s CheckboxState) HasActive() bool {
	for _, values := range s {
		for _, checked := range values {
			if checked {
				return true
			}
		}
	}
	return false
}

// Equal compares checked values only; an explicit false and a missing entry
// are the same thing.
func (s CheckboxState) Equal(other CheckboxState) bool {
	return s.containsChecked(other) && other.containsChecked(s)
}

func (s CheckboxState) containsChecked(other CheckboxState) bool {
	for category, values := range s {
		for v, checked := range values {
			if checked && !other[category][v] {
				return false
			}
		}
	}
	return true
}

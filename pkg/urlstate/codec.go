package urlstate

import (
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/skill-finder/pkg/types"
)

// TextKey is the query key carrying the free text filter.
const TextKey = "q"

// DefaultCategoryPrefix namespaces category keys, "f.Class=Warrior,Paladin".
const DefaultCategoryPrefix = "f."

const valueSeparator = ","

type textParams struct {
	Query string `schema:"q,omitempty"`
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

var valueEscaper = strings.NewReplacer("%", "%25", valueSeparator, "%2C")

// Codec maps a FilterState to a URL query and back. It holds no state
// besides its key naming and is safe for concurrent use.
type Codec struct {
	CategoryPrefix string
}

var Default = Codec{CategoryPrefix: DefaultCategoryPrefix}

func (c Codec) prefix() string {
	if c.CategoryPrefix == "" {
		return DefaultCategoryPrefix
	}
	return c.CategoryPrefix
}

// CategoryKey is the query key of a category.
func (c Codec) CategoryKey(category string) string {
	return c.prefix() + category
}

// Values renders the state as query values. Unchecked categories and an
// empty query are left out; checked values are sorted.
func (c Codec) Values(state types.FilterState) url.Values {
	values := url.Values{}
	if err := encoder.Encode(textParams{Query: state.Query}, values); err != nil {
		// a plain string field cannot fail to encode, keep the text anyway
		values.Set(TextKey, state.Query)
	}
	for category, checked := range state.Checkboxes {
		active := make([]string, 0, len(checked))
		for v, on := range checked {
			if on {
				active = append(active, valueEscaper.Replace(v))
			}
		}
		if len(active) == 0 {
			continue
		}
		slices.Sort(active)
		values.Set(c.CategoryKey(category), strings.Join(active, valueSeparator))
	}
	return values
}

// Encode returns the canonical query string for state. Keys are sorted, so
// equal states always produce the same string.
func (c Codec) Encode(state types.FilterState) string {
	return c.Values(state).Encode()
}

// Decode parses a raw query (with or without the leading "?") into a state
// shaped by fs. It never fails: what cannot be parsed is dropped and
// everything missing falls back to unchecked and empty text.
func (c Codec) Decode(fs *types.FilterSchema, rawQuery string) types.FilterState {
	// ParseQuery keeps every pair it managed to parse, the error is only
	// about the ones it skipped
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return c.DecodeValues(fs, values)
}

func (c Codec) DecodeValues(fs *types.FilterSchema, values url.Values) types.FilterState {
	state := types.NewFilterState(fs)

	// the decoder matches aliases case-insensitively, only hand it the exact
	// key so a host key like "Q" is never read as the text
	text := url.Values{}
	if v := values[TextKey]; len(v) > 0 {
		text[TextKey] = v[:1]
	}
	params := textParams{}
	if err := decoder.Decode(&params, text); err == nil {
		state.Query = params.Query
	} else {
		state.Query = values.Get(TextKey)
	}

	for category, known := range state.Checkboxes {
		for _, raw := range values[c.CategoryKey(category)] {
			for _, part := range strings.Split(raw, valueSeparator) {
				v, err := url.PathUnescape(part)
				if err != nil {
					continue
				}
				if _, ok := known[v]; ok {
					known[v] = true
				}
			}
		}
	}
	return state
}

// DecodeURL decodes the query portion of u.
func (c Codec) DecodeURL(fs *types.FilterSchema, u *url.URL) types.FilterState {
	if u == nil {
		return types.NewFilterState(fs)
	}
	return c.Decode(fs, u.RawQuery)
}

// IsFilterKey reports whether key belongs to the codec.
func (c Codec) IsFilterKey(key string) bool {
	return key == TextKey || strings.HasPrefix(key, c.prefix())
}

// Merge returns a copy of u where the filter keys are replaced by state.
// Keys the hosting page uses for other things are kept.
func (c Codec) Merge(u *url.URL, state types.FilterState) *url.URL {
	ret := url.URL{}
	if u != nil {
		ret = *u
	}
	existing, _ := url.ParseQuery(ret.RawQuery)
	for key := range existing {
		if c.IsFilterKey(key) {
			delete(existing, key)
		}
	}
	for key, v := range c.Values(state) {
		existing[key] = v
	}
	ret.RawQuery = existing.Encode()
	ret.ForceQuery = false
	return &ret
}

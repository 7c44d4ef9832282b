package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggester proposes known names that are close to a query, for queries
// that did not match anything.
type Suggester struct {
	names  []string
	folded [][]string
}

// NewSuggester keeps the first occurrence of each name.
func NewSuggester(names []string) *Suggester {
	s := &Suggester{}
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		s.names = append(s.names, name)
		s.folded = append(s.folded, candidates(Fold(name)))
	}
	return s
}

// candidates are the whole folded name and each of its words.
func candidates(folded string) []string {
	words := strings.Fields(folded)
	if len(words) <= 1 {
		return []string{folded}
	}
	return append([]string{folded}, words...)
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

type suggestion struct {
	name     string
	distance int
}

// Suggest returns up to limit names within edit distance of query, closest
// first. Queries shorter than three characters get no suggestions.
func (s *Suggester) Suggest(query string, limit int) []string {
	q := Fold(strings.TrimSpace(query))
	if len([]rune(q)) < 3 || limit <= 0 {
		return nil
	}
	found := []suggestion{}
	for i, words := range s.folded {
		best := -1
		for _, w := range words {
			d := levenshtein.ComputeDistance(q, w)
			if d <= distanceLimit(len([]rune(w))) && (best < 0 || d < best) {
				best = d
			}
		}
		if best >= 0 {
			found = append(found, suggestion{name: s.names[i], distance: best})
		}
	}
	slices.SortStableFunc(found, func(a, b suggestion) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.name, b.name))
	})
	ret := make([]string, 0, min(limit, len(found)))
	for _, f := range found[:min(limit, len(found))] {
		ret = append(ret, f.name)
	}
	return ret
}

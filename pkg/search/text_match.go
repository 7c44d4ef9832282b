package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold normalizes text for caseless comparison. A fresh caser is used per
// call since cases.Caser is not safe for concurrent use.
func Fold(text string) string {
	return cases.Fold().String(text)
}

// TextMatcher holds a folded query. The zero value matches everything.
type TextMatcher struct {
	query string
}

func NewTextMatcher(query string) TextMatcher {
	if query == "" {
		return TextMatcher{}
	}
	return TextMatcher{query: Fold(query)}
}

func (m TextMatcher) MatchesAll() bool {
	return m.query == ""
}

// Match folds text and reports whether it contains the query.
func (m TextMatcher) Match(text string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(Fold(text), m.query)
}

// MatchFolded is Match for text that was already passed through Fold.
func (m TextMatcher) MatchFolded(folded string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(folded, m.query)
}

package facet

import "github.com/RoaringBitmap/roaring/v2"

// Merger folds constraint sets into one result.
//
//	First Add -> seed the result with that set.
//	Subsequent Adds -> result = result ∩ next
//	Add with nil -> no restriction.
//
// A merger that never received a set reports nil.
type Merger struct {
	result *roaring.Bitmap
}

func NewMerger() *Merger {
	return &Merger{}
}

func (m *Merger) Add(next *roaring.Bitmap) {
	if next == nil {
		return
	}
	if m.result == nil {
		m.result = next.Clone()
		return
	}
	m.result.And(next)
}

func (m *Merger) Result() *roaring.Bitmap {
	return m.result
}

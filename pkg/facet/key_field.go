package facet

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// KeyField is the posting list of one category: tag value -> positions of
// the entries carrying it. The empty tag gets its own list so "" can be
// matched when it is checked.
type KeyField struct {
	Category string
	Keys     map[string]*roaring.Bitmap
}

func EmptyKeyField(category string) *KeyField {
	return &KeyField{
		Category: category,
		Keys:     map[string]*roaring.Bitmap{},
	}
}

func (f *KeyField) AddValueLink(value string, id uint32) {
	if ids, ok := f.Keys[value]; ok {
		ids.Add(id)
		return
	}
	f.Keys[value] = roaring.BitmapOf(id)
}

// Match returns the union of the lists for values. Unknown values
// contribute nothing.
func (f *KeyField) Match(values []string) *roaring.Bitmap {
	ret := roaring.New()
	for _, v := range values {
		if ids, ok := f.Keys[v]; ok {
			ret.Or(ids)
		}
	}
	return ret
}

func (f *KeyField) Count(value string) uint64 {
	if ids, ok := f.Keys[value]; ok {
		return ids.GetCardinality()
	}
	return 0
}

func (f *KeyField) UniqueCount() int {
	return len(f.Keys)
}

package controller

import (
	"testing"
	"time"

	"github.com/matst80/skill-finder/pkg/common"
	"github.com/matst80/skill-finder/pkg/filter"
	"github.com/matst80/skill-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schema = types.NewFilterSchema(
	types.FilterCategory{Name: "Level", Values: []string{"Max"}},
	types.FilterCategory{Name: "Class", Values: []string{"Warrior", "Paladin"}},
)

func catalogue() *filter.Catalogue[string] {
	return filter.NewCatalogue(schema, []types.Entry[string]{
		{Tags: types.TagSet{"Level": "Max", "Class": "Warrior"}, Text: "Shield Bash", Item: "A"},
		{Tags: types.TagSet{"Level": "", "Class": "Warrior"}, Text: "Shield Wall", Item: "B"},
		{Tags: types.TagSet{"Level": "Max", "Class": "Archer"}, Text: "Arrow Rain", Item: "C"},
	})
}

type recorder struct {
	clock   *common.ManualClock
	urls    []string
	updates []Update[string]
	at      []time.Duration
}

func newController(t *testing.T, rawQuery string) (*Controller[string], *recorder) {
	t.Helper()
	rec := &recorder{clock: common.NewManualClock()}
	c := New(catalogue(), rawQuery,
		WithClock[string](rec.clock),
		WithReplaceURL[string](func(q string) { rec.urls = append(rec.urls, q) }),
		WithOnUpdate[string](func(u Update[string]) {
			rec.updates = append(rec.updates, u)
			rec.at = append(rec.at, rec.clock.Now())
		}),
	)
	t.Cleanup(c.Close)
	return c, rec
}

func TestInitialStateFromURL(t *testing.T) {
	c, rec := newController(t, "q=shield&f.Class=Warrior&unrelated=1")
	assert.Equal(t, "shield", c.State().Query)
	assert.Equal(t, "shield", c.Text())
	assert.True(t, c.State().Checkboxes.IsChecked("Class", "Warrior"))
	assert.Equal(t, []string{"A", "B"}, c.Items())
	assert.Equal(t, "f.Class=Warrior&q=shield", c.Query())
	assert.Empty(t, rec.urls, "seeding does not rewrite the url")
}

func TestTextIsDebounced(t *testing.T) {
	c, rec := newController(t, "")

	rec.clock.AdvanceTo(0)
	require.True(t, c.TextChanged("s"))
	rec.clock.AdvanceTo(100 * time.Millisecond)
	require.True(t, c.TextChanged("sh"))
	rec.clock.AdvanceTo(200 * time.Millisecond)
	require.True(t, c.TextChanged("wall"))

	rec.clock.AdvanceTo(699 * time.Millisecond)
	assert.Empty(t, rec.updates)
	assert.Equal(t, "", c.State().Query)
	assert.True(t, c.Pending())

	rec.clock.AdvanceTo(5 * time.Second)
	require.Len(t, rec.updates, 1)
	assert.Equal(t, []time.Duration{700 * time.Millisecond}, rec.at)
	assert.Equal(t, "wall", rec.updates[0].State.Query)
	assert.Equal(t, []string{"B"}, rec.updates[0].Items)
	assert.Equal(t, []string{"q=wall"}, rec.urls)
}

func TestNewlineIsRejected(t *testing.T) {
	c, rec := newController(t, "q=bash")
	assert.False(t, c.TextChanged("bash\n"))
	assert.False(t, c.TextChanged("a\nb"))
	assert.Equal(t, "bash", c.Text())
	assert.False(t, c.Pending())
	assert.Equal(t, 0, rec.clock.Pending())
	rec.clock.Advance(time.Second)
	assert.Empty(t, rec.updates)
}

func TestToggleIsImmediate(t *testing.T) {
	c, rec := newController(t, "")
	before := c.State()

	require.True(t, c.Toggle("Level", "Max", true))
	require.Len(t, rec.updates, 1)
	assert.Equal(t, time.Duration(0), rec.at[0])
	assert.Equal(t, []string{"A", "C"}, c.Items())
	assert.Equal(t, []string{"f.Level=Max"}, rec.urls)

	require.True(t, c.Toggle("Class", "Warrior", true))
	assert.Equal(t, []string{"A"}, c.Items())
	assert.Equal(t, "f.Class=Warrior&f.Level=Max", rec.urls[1])

	require.True(t, c.Toggle("Level", "Max", false))
	assert.Equal(t, []string{"A", "B"}, c.Items())

	assert.False(t, before.Checkboxes.IsChecked("Level", "Max"), "earlier snapshots are never mutated")
	assert.False(t, rec.updates[0].State.Checkboxes.IsChecked("Class", "Warrior"))
}

func TestToggleUnknownIsIgnored(t *testing.T) {
	c, rec := newController(t, "")
	assert.False(t, c.Toggle("Class", "Archer", true))
	assert.False(t, c.Toggle("Rarity", "Epic", true))
	assert.Empty(t, rec.updates)
	assert.Equal(t, []string{"A", "B", "C"}, c.Items())
}

func TestToggleAppliesPendingText(t *testing.T) {
	c, rec := newController(t, "")
	c.TextChanged("bash")
	c.Toggle("Class", "Warrior", true)
	assert.False(t, c.Pending())
	assert.Equal(t, []string{"A"}, c.Items())

	rec.clock.Advance(time.Second)
	assert.Len(t, rec.updates, 1)
}

func TestFlush(t *testing.T) {
	c, rec := newController(t, "")
	c.Flush()
	assert.Empty(t, rec.updates)

	c.TextChanged("rain")
	c.Flush()
	require.Len(t, rec.updates, 1)
	assert.Equal(t, []string{"C"}, c.Items())
	assert.False(t, c.Pending())
}

func TestCloseCancelsPendingText(t *testing.T) {
	c, rec := newController(t, "")
	c.TextChanged("bash")
	c.Close()
	rec.clock.Advance(time.Second)
	assert.Empty(t, rec.updates)
	assert.False(t, c.Toggle("Level", "Max", true))
	assert.False(t, c.TextChanged("more"))
}

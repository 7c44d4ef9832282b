package controller

import (
	"strings"
	"sync"
	"time"

	"github.com/matst80/skill-finder/pkg/common"
	"github.com/matst80/skill-finder/pkg/types"
	"github.com/matst80/skill-finder/pkg/urlstate"
)

// DefaultDebounce is the quiet period after the last keystroke before the
// text filter is applied.
const DefaultDebounce = 500 * time.Millisecond

// Source is what the controller filters, usually a *filter.Catalogue.
type Source[T any] interface {
	Schema() *types.FilterSchema
	Filter(state types.FilterState) []T
}

// Update is produced on every recompute.
type Update[T any] struct {
	State types.FilterState
	Query string
	Items []T
}

type options[T any] struct {
	clock      common.Clock
	debounce   time.Duration
	codec      urlstate.Codec
	replaceURL func(query string)
	onUpdate   func(Update[T])
}

type Option[T any] func(*options[T])

func WithClock[T any](clock common.Clock) Option[T] {
	return func(o *options[T]) { o.clock = clock }
}

func WithDebounce[T any](d time.Duration) Option[T] {
	return func(o *options[T]) { o.debounce = d }
}

func WithCodec[T any](codec urlstate.Codec) Option[T] {
	return func(o *options[T]) { o.codec = codec }
}

// WithReplaceURL sets the hook receiving the encoded query after every
// recompute. It must replace the current location, not push a new one.
func WithReplaceURL[T any](fn func(query string)) Option[T] {
	return func(o *options[T]) { o.replaceURL = fn }
}

func WithOnUpdate[T any](fn func(Update[T])) Option[T] {
	return func(o *options[T]) { o.onUpdate = fn }
}

// Controller owns the mutable filter state of one catalogue page. Text
// changes are debounced, checkbox toggles apply at once. Recomputes are
// serialized; hooks run inside that order and must not call Toggle or Flush.
type Controller[T any] struct {
	commitMu  sync.Mutex
	mu        sync.Mutex
	closed    bool
	source    Source[T]
	codec     urlstate.Codec
	debouncer *common.Debouncer
	// text is what the input shows, state.Query what was last applied
	text       string
	state      types.FilterState
	items      []T
	replaceURL func(string)
	onUpdate   func(Update[T])
}

// New seeds the state from rawQuery and computes the first result. The
// URL is not rewritten for the initial state.
func New[T any](source Source[T], rawQuery string, opts ...Option[T]) *Controller[T] {
	o := options[T]{
		clock:    common.SystemClock,
		debounce: DefaultDebounce,
		codec:    urlstate.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	state := o.codec.Decode(source.Schema(), rawQuery)
	return &Controller[T]{
		source:     source,
		codec:      o.codec,
		debouncer:  common.NewDebouncer(o.debounce, o.clock),
		text:       state.Query,
		state:      state,
		items:      source.Filter(state.Clone()),
		replaceURL: o.replaceURL,
		onUpdate:   o.onUpdate,
	}
}

// TextChanged records a new text input value. Values containing a newline
// are rejected: nothing changes and no timer starts.
func (c *Controller[T]) TextChanged(value string) bool {
	if strings.Contains(value, "\n") {
		return false
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.text = value
	c.mu.Unlock()
	return c.debouncer.Trigger(c.applyText)
}

func (c *Controller[T]) applyText() {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	next := c.state.Clone()
	next.Query = c.text
	c.mu.Unlock()
	c.commit(next)
}

// Toggle checks or unchecks one checkbox and recomputes right away.
// Checkboxes the schema does not define are ignored. Pending text input is
// applied along with the toggle.
func (c *Controller[T]) Toggle(category, value string, checked bool) bool {
	if !c.source.Schema().Has(category, value) {
		return false
	}
	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	next := types.FilterState{
		Query:      c.text,
		Checkboxes: c.state.Checkboxes.With(category, value, checked),
	}
	c.mu.Unlock()
	c.debouncer.Cancel()
	c.commit(next)
	return true
}

// Flush applies pending text input immediately.
func (c *Controller[T]) Flush() {
	if c.debouncer.Cancel() {
		c.applyText()
	}
}

func (c *Controller[T]) commit(next types.FilterState) {
	items := c.source.Filter(next.Clone())
	query := c.codec.Encode(next)

	c.mu.Lock()
	c.state = next
	c.items = items
	replaceURL, onUpdate := c.replaceURL, c.onUpdate
	c.mu.Unlock()

	if replaceURL != nil {
		replaceURL(query)
	}
	if onUpdate != nil {
		onUpdate(Update[T]{State: next.Clone(), Query: query, Items: items})
	}
}

// State returns a copy of the applied state.
func (c *Controller[T]) State() types.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Text is the current input value, which may not be applied yet.
func (c *Controller[T]) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Query is the encoded form of the applied state.
func (c *Controller[T]) Query() string {
	return c.codec.Encode(c.State())
}

func (c *Controller[T]) Pending() bool {
	return c.debouncer.Pending()
}

// Close releases the pending timer. No update fires afterwards.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.debouncer.Close()
}

package selection

import (
	"sync"

	"github.com/dshills/multipick/internal/option"
)

// ValuesFunc receives the selection and the remaining candidates after
// every selection change.
type ValuesFunc func(selected, remaining []option.Option)

// Config holds the optional settings of an Engine.
type Config struct {
	// Initial is the selection the engine starts with and returns to on
	// Reset. Duplicate labels are dropped and the list is cut to Limit.
	Initial []option.Option

	// Limit caps the selection size. Zero or negative means unbounded.
	Limit int

	// Query is the initial search text.
	Query string

	// InputAttrs are passed through untouched to whatever renders the
	// search input (placeholder, id, ...).
	InputAttrs map[string]string
}

// Engine is the selection state machine.
type Engine struct {
	mu       sync.RWMutex
	options  []option.Option
	selected []option.Option
	query    string
	initial  []option.Option
	limit    int
	attrs    map[string]string

	values   ValuesFunc
	onChange []func(option.Option)
	onRemove []func(target option.Option, prior []option.Option)
	onQuery  []func(string)
}

// New creates an engine over the full option list and announces the
// initial state through values. values may be nil.
func New(options []option.Option, cfg Config, values ValuesFunc) *Engine {
	e := NewQuiet(options, cfg, values)
	e.Announce()
	return e
}

// NewQuiet is New without the initial announcement. Call Announce once the
// engine is reachable from wherever values may look for it.
func NewQuiet(options []option.Option, cfg Config, values ValuesFunc) *Engine {
	limit := cfg.Limit
	if limit < 0 {
		limit = 0
	}

	initial := dedupe(cfg.Initial)
	if limit > 0 && len(initial) > limit {
		initial = initial[:limit]
	}

	attrs := make(map[string]string, len(cfg.InputAttrs))
	for k, v := range cfg.InputAttrs {
		attrs[k] = v
	}

	e := &Engine{
		options:  option.Clone(options),
		selected: option.Clone(initial),
		query:    cfg.Query,
		initial:  initial,
		limit:    limit,
		attrs:    attrs,
		values:   values,
	}
	return e
}

// Announce reports the current selection and candidate view through
// ValuesFunc.
func (e *Engine) Announce() {
	e.mu.RLock()
	selected, remaining := e.snapshotLocked()
	e.mu.RUnlock()
	e.notify(selected, remaining)
}

// SetOptions replaces the full option list. It does not notify.
func (e *Engine) SetOptions(options []option.Option) {
	e.mu.Lock()
	e.options = option.Clone(options)
	e.mu.Unlock()
}

// SetQuery sets the search text. The text is stored verbatim; matching
// uses its trimmed, lower-cased form. The selection is unchanged and
// ValuesFunc is not called.
func (e *Engine) SetQuery(text string) {
	e.mu.Lock()
	e.query = text
	hooks := make([]func(string), len(e.onQuery))
	copy(hooks, e.onQuery)
	e.mu.Unlock()

	for _, fn := range hooks {
		fn(text)
	}
}

// Select appends opt to the selection and clears the query. It is a no-op
// returning false when the limit is reached or the label is already
// selected.
func (e *Engine) Select(opt option.Option) bool {
	e.mu.Lock()
	if e.limit > 0 && len(e.selected) >= e.limit {
		e.mu.Unlock()
		return false
	}
	if indexOf(e.selected, opt.Label) >= 0 {
		e.mu.Unlock()
		return false
	}

	e.selected = append(option.Clone(e.selected), opt)
	e.query = ""
	selected, remaining := e.snapshotLocked()
	hooks := make([]func(option.Option), len(e.onChange))
	copy(hooks, e.onChange)
	e.mu.Unlock()

	e.notify(selected, remaining)
	for _, fn := range hooks {
		fn(opt)
	}
	return true
}

// Remove drops the selected option sharing opt's label, clears the query,
// notifies, and runs the OnRemove hooks with the selection as it was
// before. When no option with that label is selected the selection is left
// as is, but the query is still cleared and the notification and hooks
// still run, with opt as the target. Returns whether an option was removed.
func (e *Engine) Remove(opt option.Option) bool {
	e.mu.Lock()
	prior := option.Clone(e.selected)
	idx := indexOf(prior, opt.Label)

	target := opt
	if idx >= 0 {
		target = prior[idx]
		next := make([]option.Option, 0, len(prior)-1)
		next = append(next, prior[:idx]...)
		next = append(next, prior[idx+1:]...)
		e.selected = next
	}
	e.query = ""
	selected, remaining := e.snapshotLocked()
	hooks := make([]func(option.Option, []option.Option), len(e.onRemove))
	copy(hooks, e.onRemove)
	e.mu.Unlock()

	e.notify(selected, remaining)
	for _, fn := range hooks {
		fn(target, option.Clone(prior))
	}
	return idx >= 0
}

// Reset restores the initial selection. The host is told that nothing is
// selected and that every option remains available.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.selected = option.Clone(e.initial)
	remaining := append(make([]option.Option, 0, len(e.options)), e.options...)
	e.mu.Unlock()

	e.notify([]option.Option{}, remaining)
}

// Handle returns the imperative reset capability for the host.
func (e *Engine) Handle() ResetHandle {
	return resetHandle{engine: e}
}

// Selected returns a copy of the current selection.
func (e *Engine) Selected() []option.Option {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return option.Clone(e.selected)
}

// Candidates computes the candidate view against the current state.
func (e *Engine) Candidates() []option.Option {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Filter(e.options, e.selected, option.NormalizeQuery(e.query))
}

// Options returns a copy of the full option list.
func (e *Engine) Options() []option.Option {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return option.Clone(e.options)
}

// Initial returns a copy of the selection Reset returns to.
func (e *Engine) Initial() []option.Option {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return option.Clone(e.initial)
}

// Query returns the search text as entered.
func (e *Engine) Query() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query
}

// Limit returns the selection cap, zero when unbounded.
func (e *Engine) Limit() int {
	return e.limit
}

// Full reports whether the selection has reached the limit.
func (e *Engine) Full() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.limit > 0 && len(e.selected) >= e.limit
}

// InputAttrs returns a copy of the pass-through input attributes.
func (e *Engine) InputAttrs() map[string]string {
	attrs := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		attrs[k] = v
	}
	return attrs
}

// OnChange registers a hook called with each option after it is selected.
func (e *Engine) OnChange(fn func(option.Option)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// OnRemove registers a hook called after an option is removed, with the
// selection as it was before the removal.
func (e *Engine) OnRemove(fn func(target option.Option, prior []option.Option)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRemove = append(e.onRemove, fn)
}

// OnQuery registers a hook called with the raw text on each SetQuery.
func (e *Engine) OnQuery(fn func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onQuery = append(e.onQuery, fn)
}

// snapshotLocked copies the selection and computes the view.
// Must be called with the lock held.
func (e *Engine) snapshotLocked() (selected, remaining []option.Option) {
	selected = option.Clone(e.selected)
	if selected == nil {
		selected = []option.Option{}
	}
	remaining = Filter(e.options, e.selected, option.NormalizeQuery(e.query))
	return selected, remaining
}

func (e *Engine) notify(selected, remaining []option.Option) {
	if e.values != nil {
		e.values(selected, remaining)
	}
}

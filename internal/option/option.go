// Package option defines the selectable Option value and its JSON codec.
//
// An Option is identified by its Label. Value is a secondary field that
// participates in search. Every other attribute of the source record is kept
// in the option's extras and passes through untouched.
package option

import (
	"sort"
	"strings"
)

// Option is a labeled, valued candidate eligible for selection.
// Options are values; the extras map is never shared with callers.
type Option struct {
	// Value is the secondary matchable field (the coin symbol).
	Value string

	// Label is the identity used for uniqueness and display (the coin id).
	Label string

	extra map[string]any
}

// New creates an option with no extra attributes.
func New(label, value string) Option {
	return Option{Label: label, Value: value}
}

// With returns a copy of o with an extra attribute set.
func (o Option) With(key string, value any) Option {
	extra := make(map[string]any, len(o.extra)+1)
	for k, v := range o.extra {
		extra[k] = v
	}
	extra[key] = value
	o.extra = extra
	return o
}

// Extra returns the extra attribute stored under key.
func (o Option) Extra(key string) (any, bool) {
	v, ok := o.extra[key]
	return v, ok
}

// Extras returns a copy of all extra attributes.
func (o Option) Extras() map[string]any {
	extra := make(map[string]any, len(o.extra))
	for k, v := range o.extra {
		extra[k] = v
	}
	return extra
}

// ExtraKeys returns the extra attribute names in sorted order.
func (o Option) ExtraKeys() []string {
	keys := make([]string, 0, len(o.extra))
	for k := range o.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SameAs reports whether two options share an identity.
func (o Option) SameAs(other Option) bool {
	return o.Label == other.Label
}

// Matches reports whether the label or value contains query.
// The query must already be trimmed and lower-cased; an empty query matches.
func (o Option) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Label), query) ||
		strings.Contains(strings.ToLower(o.Value), query)
}

// String returns the label.
func (o Option) String() string {
	return o.Label
}

// NormalizeQuery converts raw input into the form Matches expects.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Labels returns the labels of opts in order.
func Labels(opts []Option) []string {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	return labels
}

// Find returns the first option in opts with the given label.
func Find(opts []Option, label string) (Option, bool) {
	for _, o := range opts {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// Clone returns a shallow copy of the slice. A nil slice stays nil.
func Clone(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

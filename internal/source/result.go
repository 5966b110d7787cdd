package source

import "github.com/dshills/multipick/internal/option"

// Status tags the outcome of a fetch.
type Status uint8

const (
	// StatusUnavailable means the fetch failed and no live cached list exists.
	StatusUnavailable Status = iota

	// StatusFresh means the list came from a successful fetch.
	StatusFresh

	// StatusCached means the list came from the cache.
	StatusCached

	// StatusCanceled means the context was canceled before the result
	// could be applied. Nothing was mutated.
	StatusCanceled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusFresh:
		return "fresh"
	case StatusCached:
		return "cached"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is the outcome of Fetch or Resolve.
type Result struct {
	// Status tags the outcome.
	Status Status

	// Options is the sampled prefix. Non-nil (possibly empty) when OK.
	Options []option.Option

	// RequestID identifies the fetch attempt in logs. Empty when the
	// network was not consulted.
	RequestID string

	// Err is the fetch error behind a Cached fallback, an Unavailable
	// result, or a cancellation.
	Err error
}

// OK reports whether Options holds a usable list.
func (r Result) OK() bool {
	return r.Status == StatusFresh || r.Status == StatusCached
}

// Package selection implements the state machine behind the multi-value
// selection control.
//
// An Engine owns the ordered list of selected options and the active search
// query, and derives the candidate view from the full option list: options
// not already selected whose label or value contains the query,
// case-insensitively, in their original order.
//
// # Transitions
//
//   - SetQuery updates the search text.
//   - Select appends an option unless it is already selected or the limit
//     is reached, then clears the query.
//   - Remove drops the selected option with the same label, then clears
//     the query.
//   - Reset restores the configured initial selection.
//
// Select, Remove and Reset report (selected, remaining) to the host's
// ValuesFunc exactly once, after the change is committed. Reset reports an
// empty selection and the full option list while the engine itself returns
// to the initial selection, so the initial list seeds the next interaction
// without being announced again.
//
// # Reset Handle
//
// Hosts that must clear the control from outside its own interaction flow
// hold a ResetHandle:
//
//	h := engine.Handle()
//	h.CleanValues()
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Callbacks are invoked
// without holding the engine lock, so they may call back into the engine.
package selection

// Package term draws the selection control on a terminal.
//
// Terminal wraps a tcell.Screen behind a mutex so the fetch goroutine can
// post results while the event loop draws. View lays out a Frame (picked
// chips and search input on the first row, the candidate list below it,
// and a status line at the bottom) and keeps the list scrolled so the
// highlighted candidate stays visible.
//
// Tests construct a Terminal over tcell.NewSimulationScreen and read the
// drawn cells back with Row.
package term

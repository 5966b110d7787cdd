// Package app runs the multipick selection control against a terminal or
// in list mode.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the user asked to leave the picker.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called while a run is active.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrShutdown indicates the application was shut down.
	ErrShutdown = errors.New("application shut down")

	// ErrUnavailable indicates no option list could be obtained.
	ErrUnavailable = errors.New("option list unavailable")
)

// InitError represents an error during application initialization.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

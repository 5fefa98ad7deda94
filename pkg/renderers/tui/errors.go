package tui

import "errors"

var (
	// ErrAborted signals the user aborted the pager (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when an interactive render has no prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
)

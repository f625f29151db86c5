package timer

import "errors"

var (
	// ErrAlreadyRunning is returned by Start on a running timer.
	ErrAlreadyRunning = errors.New("timer is running, use Stop to stop it")

	// ErrNotRunning is returned by Stop, and by Report's fallback, on an idle timer.
	ErrNotRunning = errors.New("timer is not running, use Start to start it")

	// ErrUnknownTimer is returned when a named report finds no registry entry.
	ErrUnknownTimer = errors.New("no timer with that name")
)

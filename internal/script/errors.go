package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when running on a closed runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script execution timeout")

	// ErrScript wraps errors raised by the Lua code itself.
	ErrScript = errors.New("script error")
)

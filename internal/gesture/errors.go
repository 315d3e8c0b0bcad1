package gesture

import "errors"

// Errors returned by gesture operations.
var (
	// ErrNoHandle indicates no rendered handle is registered for the element.
	ErrNoHandle = errors.New("no handle for element")

	// ErrGestureEnded indicates End or Cancel was called on a finished gesture.
	ErrGestureEnded = errors.New("gesture already ended")

	// ErrGestureActive indicates a gesture is already in progress.
	ErrGestureActive = errors.New("gesture already in progress")

	// ErrUnknownKind indicates an unrecognized gesture kind.
	ErrUnknownKind = errors.New("unknown gesture kind")
)

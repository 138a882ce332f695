package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoManager is returned when a session is built without form state.
	ErrNoManager = errors.New("prompt: form state manager is required")
)

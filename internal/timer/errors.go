package timer

import "errors"

// Timer state and validation errors. The state errors mark idempotent
// no-ops, not failures; callers surface them as notices.
var (
	ErrAlreadyRunning  = errors.New("timer is already running for this task")
	ErrNotRunning      = errors.New("no timer running for this task")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidDuration = errors.New("duration must be greater than zero")
)

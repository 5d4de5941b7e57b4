package task

import "errors"

// Domain errors for task service
var (
	ErrEmptyTitle        = errors.New("task title cannot be empty")
	ErrTitleTooLong      = errors.New("task title cannot exceed 255 characters")
	ErrInvalidID         = errors.New("invalid task ID")
	ErrInvalidProjectID  = errors.New("invalid project ID")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidHours      = errors.New("task hours must be positive")
	ErrOperationInFlight = errors.New("another operation on this task is in flight")
)

package requirement

import "errors"

// Domain errors for requirement service
var (
	ErrEmptyTitle        = errors.New("requirement title cannot be empty")
	ErrTitleTooLong      = errors.New("requirement title cannot exceed 255 characters")
	ErrInvalidID         = errors.New("invalid requirement ID")
	ErrInvalidProjectID  = errors.New("invalid project ID")
	ErrInvalidType       = errors.New("invalid requirement type")
	ErrInvalidStatus     = errors.New("invalid requirement status")
	ErrInvalidPriority   = errors.New("invalid requirement priority")
	ErrOperationInFlight = errors.New("another operation on this requirement is in flight")
)

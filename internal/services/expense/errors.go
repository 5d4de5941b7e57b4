package expense

import "errors"

// Domain errors for expense service
var (
	ErrEmptyDescription  = errors.New("expense description cannot be empty")
	ErrInvalidID         = errors.New("invalid expense ID")
	ErrInvalidProjectID  = errors.New("invalid project ID")
	ErrInvalidAmount     = errors.New("expense amount must be positive")
	ErrInvalidCategory   = errors.New("invalid expense category")
	ErrInvalidStatus     = errors.New("invalid expense status")
	ErrOperationInFlight = errors.New("another operation on this expense is in flight")
)

package project

import "errors"

// Domain errors for project service
var (
	ErrEmptyName         = errors.New("project name cannot be empty")
	ErrNameTooLong       = errors.New("project name cannot exceed 255 characters")
	ErrInvalidID         = errors.New("invalid project ID")
	ErrInvalidStatus     = errors.New("invalid project status")
	ErrNegativeBudget    = errors.New("project budget cannot be negative")
	ErrInvalidDateRange  = errors.New("project end date must be after start date")
	ErrOperationInFlight = errors.New("another operation on this project is in flight")
)

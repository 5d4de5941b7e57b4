package tag

import "errors"

// Domain errors for tag service
var (
	ErrEmptyName    = errors.New("tag name cannot be empty")
	ErrNameTooLong  = errors.New("tag name cannot exceed 50 characters")
	ErrInvalidID    = errors.New("invalid tag ID")
	ErrInvalidColor = errors.New("tag color must be a #RRGGBB hex value")
)

package database

import "errors"

var (
	// ErrNotFound reports that the targeted row does not exist
	ErrNotFound = errors.New("record not found")
)

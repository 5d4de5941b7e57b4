package models

// Tag is a free-form label attached to tasks (many-to-many)
type Tag struct {
	ID    int
	Name  string
	Color string
}

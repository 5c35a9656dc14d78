package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameRequired     = errors.New("category name cannot be empty")
	ErrCategoryInUse    = errors.New("category still has products")
)

package packages

import "errors"

var (
	ErrPackageNotFound   = errors.New("package not found")
	ErrProductNotFound   = errors.New("package product not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNameRequired      = errors.New("package name is required")
	ErrInvalidPrice      = errors.New("package price must be greater than zero")
	ErrEmptyPackage      = errors.New("package must contain at least one product")
	ErrInvalidItemAmount = errors.New("package item quantity must be at least 1")
)

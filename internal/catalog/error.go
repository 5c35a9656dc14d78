package catalog

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOfferNotFound     = errors.New("offer not found")
	ErrColorNotFound     = errors.New("color not found")
	ErrSizeNotFound      = errors.New("size not found")
	ErrNameRequired      = errors.New("product name is required")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidStock      = errors.New("stock cannot be negative")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrInvalidOfferRange = errors.New("offer quantity range is invalid")
	ErrOptionNameEmpty   = errors.New("option name cannot be empty")
)

package governorate

import "errors"

var (
	ErrGovernorateNotFound = errors.New("governorate not found")
	ErrNameRequired        = errors.New("governorate name is required")
	ErrNegativeShipping    = errors.New("shipping cost cannot be negative")
)

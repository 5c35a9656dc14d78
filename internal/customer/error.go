package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNameRequired     = errors.New("customer name is required")
	ErrPhoneRequired    = errors.New("a valid phone number is required")
	ErrAddressRequired  = errors.New("shipping address is required")
)

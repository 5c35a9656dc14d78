package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrGovernorateRequired = errors.New("please choose a governorate")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderIncomplete     = errors.New("a previous submission of this order did not finish")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidTransition   = errors.New("order status change not allowed")
	ErrDuplicateSubmission = errors.New("order with this idempotency key already exists")
	ErrIdempotencyKeyInUse = errors.New("idempotency key belongs to another cart")
)

package domain

import "errors"

// Shared error kinds. Business services wrap these with context via
// fmt.Errorf("...: %w", err); handlers map them to HTTP statuses with
// errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	ErrOutOfRange         = errors.New("quantity outside service bounds")
	ErrServiceUnavailable = errors.New("service is not active")
	ErrBelowMinimum       = errors.New("amount below minimum top-up")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidState       = errors.New("entity is not in a state that permits this operation")
	ErrUnauthorized       = errors.New("caller is not allowed to perform this operation")
)

package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidOrderID = errors.New("invalid order id")
	ErrUnauthorized   = errors.New("unauthorized")
)

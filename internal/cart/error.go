package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidItemID     = errors.New("cart item id is required")
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInvalidPrice      = errors.New("invalid cart item price")
	ErrInvalidOrderType  = errors.New("invalid order type")
	ErrRestaurantMissing = errors.New("food items must belong to a restaurant")

	// -- Resource State --
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")
	ErrCheckoutInProgress   = errors.New("a checkout is already in progress for this cart")
)

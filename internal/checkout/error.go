package checkout

import (
	"errors"
	"fmt"

	"bazaar-be/internal/inventory"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrAddressIncomplete   = errors.New("delivery address incomplete")
	ErrDeliveryUnavailable = errors.New("delivery not available")
	ErrMinimumOrderNotMet  = errors.New("minimum order not met")
	ErrStockUnavailable    = errors.New("stock unavailable")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

// Code identifies a validation failure for clients.
type Code string

const (
	CodeEmptyCart           Code = "empty_cart"
	CodeAddressIncomplete   Code = "address_incomplete"
	CodeDeliveryUnavailable Code = "delivery_unavailable"
	CodeMinimumOrderNotMet  Code = "minimum_order_not_met"
	CodeOutOfStock          Code = "out_of_stock"
	CodeQuantityExceeded    Code = "quantity_exceeded"
)

// Action is the next step offered to the user.
type Action string

const (
	ActionBrowse      Action = "browse"
	ActionEditAddress Action = "edit_address"
	ActionAddItems    Action = "add_items"
	ActionUpdateCart  Action = "update_cart"
)

// ValidationError is a user-fixable checkout failure. Message is shown
// verbatim.
type ValidationError struct {
	Code       Code                  `json:"code"`
	Message    string                `json:"message"`
	Action     Action                `json:"action"`
	Fields     []string              `json:"fields,omitempty"`
	Violations []inventory.Violation `json:"violations,omitempty"`
	Err        error                 `json:"-"`
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// CommitError means the order write failed. Nothing was committed and the
// cart is intact, so the checkout can be retried.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("order could not be placed, please try again: %v", e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// ReconcileWarning is shown when the order stands but inventory could not
// be brought in line with it.
const ReconcileWarning = "Your order was placed, but the inventory update failed. Please contact support."

// DegradedConfigWarning is shown when the order was priced with the
// standard fees because delivery settings could not be loaded.
const DegradedConfigWarning = "Your order was placed using standard delivery fees because delivery settings were unavailable."

func unavailable(collaborator string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, collaborator, err)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

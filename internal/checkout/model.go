package checkout

import (
	"strings"

	"bazaar-be/internal/address"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/inventory"
	"bazaar-be/internal/order"
	"bazaar-be/internal/pricing"
	"bazaar-be/internal/zone"
)

// Quote is a side-effect free preview of what a checkout would charge.
type Quote struct {
	Zone                 *zone.DeliveryZone         `json:"zone"`
	MatchType            zone.MatchType             `json:"matchType"`
	AddressSelected      bool                       `json:"addressSelected"`
	DeliveryAvailable    bool                       `json:"deliveryAvailable"`
	DeliveryTimeEstimate string                     `json:"deliveryTimeEstimate,omitempty"`
	Pricing              pricing.Breakdown          `json:"pricing"`
	MinimumOrder         pricing.MinOrderValidation `json:"minimumOrder"`
	ConfigDegraded       bool                       `json:"configDegraded"`
}

// Request is one checkout attempt. Cart is a snapshot owned by the caller
// and is never modified.
type Request struct {
	UserID  string
	Cart    cart.Cart
	Address address.Address
}

// Result is a committed checkout. Cart is the caller's cart after the
// order: always empty. StockIssue is set when the order stands but the
// inventory update did not fully succeed.
type Result struct {
	Order          *order.Order
	Cart           cart.Cart
	StockIssue     *inventory.ReconcileError
	ConfigDegraded bool
}

// Warning is the user-facing notice for a result, empty when none.
func (r *Result) Warning() string {
	var notes []string
	if r.StockIssue != nil {
		notes = append(notes, ReconcileWarning)
	}
	if r.ConfigDegraded {
		notes = append(notes, DegradedConfigWarning)
	}
	return strings.Join(notes, " ")
}

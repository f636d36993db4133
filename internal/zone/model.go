package zone

import "bazaar-be/internal/cart"

// DeliveryZone is a named service area with its own fee and minimum
// order parameters. Zones are loaded from the configuration store and
// are immutable for the duration of a checkout.
type DeliveryZone struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	ZipCodes             []string `json:"zipCodes"`
	DeliveryFeeGrocery   float64  `json:"deliveryFeeGrocery"`
	DeliveryFeeFood      float64  `json:"deliveryFeeFood"`
	MinOrderGrocery      float64  `json:"minOrderGrocery"`
	MinOrderFood         float64  `json:"minOrderFood"`
	DeliveryTimeEstimate string   `json:"deliveryTimeEstimate"`
	IsActive             bool     `json:"isActive"`
}

func (z DeliveryZone) FeeFor(t cart.OrderType) float64 {
	if t == cart.OrderTypeFood {
		return z.DeliveryFeeFood
	}
	return z.DeliveryFeeGrocery
}

func (z DeliveryZone) MinOrderFor(t cart.OrderType) float64 {
	if t == cart.OrderTypeFood {
		return z.MinOrderFood
	}
	return z.MinOrderGrocery
}

// MatchType names the tier that produced a ZoneMatch.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchVillage MatchType = "village"
	MatchPincode MatchType = "pincode"
	MatchCity    MatchType = "city"
	MatchDefault MatchType = "default"
	MatchNone    MatchType = "none"
)

// Match is the resolver output. Zone is nil exactly when MatchType is
// MatchDefault or MatchNone.
type Match struct {
	Zone      *DeliveryZone `json:"zone"`
	MatchType MatchType     `json:"matchType"`
}

// Deliverable reports whether delivery can be offered for the match.
// MatchDefault means no zones are configured, so service is not restricted.
func (m Match) Deliverable() bool {
	return m.Zone != nil || m.MatchType == MatchDefault
}

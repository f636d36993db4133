package pricing

import (
	"bazaar-be/internal/cart"
	"bazaar-be/internal/settings"
	"bazaar-be/internal/zone"
)

// Breakdown is the priced view of a cart. GrandTotal is the exact sum of
// the three components; rounding happens only when presented.
type Breakdown struct {
	ItemsTotal    float64 `json:"itemsTotal" bson:"itemsTotal"`
	DeliveryFee   float64 `json:"deliveryFee" bson:"deliveryFee"`
	TaxAmount     float64 `json:"taxAmount" bson:"taxAmount"`
	TaxPercentage float64 `json:"taxPercentage" bson:"taxPercentage"`
	GrandTotal    float64 `json:"grandTotal" bson:"grandTotal"`
	Currency      string  `json:"currency" bson:"currency"`
}

// Engine derives fee, tax and total for a cart.
type Engine struct {
	defaults settings.Defaults
	currency string
}

func NewEngine(defaults settings.Defaults) *Engine {
	return &Engine{defaults: defaults, currency: CurrencyINR}
}

// Price uses the matched zone's fee when a zone was resolved and the
// configured per-type fee otherwise. An unset tax percentage falls back
// to the static default.
func (e *Engine) Price(c cart.Cart, match zone.Match, s settings.Settings) Breakdown {
	orderType := c.OrderType()
	itemsTotal := c.TotalAmount()

	fee := e.fallbackFee(orderType, s)
	if match.Zone != nil {
		fee = match.Zone.FeeFor(orderType)
	}

	taxPct := e.defaults.TaxPercentage
	if s.TaxPercentage != nil {
		taxPct = *s.TaxPercentage
	}
	tax := itemsTotal * taxPct / 100

	return Breakdown{
		ItemsTotal:    itemsTotal,
		DeliveryFee:   fee,
		TaxAmount:     tax,
		TaxPercentage: taxPct,
		GrandTotal:    itemsTotal + fee + tax,
		Currency:      e.currency,
	}
}

func (e *Engine) fallbackFee(orderType cart.OrderType, s settings.Settings) float64 {
	if orderType == cart.OrderTypeFood {
		return s.DeliveryFeeFood
	}
	return s.DeliveryFeeGrocery
}

package pricing

import (
	"testing"

	"bazaar-be/internal/cart"
	"bazaar-be/internal/settings"
	"bazaar-be/internal/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCart(t *testing.T, orderType cart.OrderType, items ...cart.Item) cart.Cart {
	t.Helper()
	restaurant := ""
	if orderType == cart.OrderTypeFood {
		restaurant = "r1"
	}
	c, err := cart.FromItems(orderType, restaurant, items)
	require.NoError(t, err)
	return c
}

func taxPtr(v float64) *float64 { return &v }

func TestEngine_Price(t *testing.T) {
	engine := NewEngine(settings.ReferenceDefaults())
	cfg := settings.Settings{DeliveryFeeGrocery: 20, DeliveryFeeFood: 30, TaxPercentage: taxPtr(5)}

	t.Run("Zone fee for grocery", func(t *testing.T) {
		c := mustCart(t, cart.OrderTypeGrocery, cart.Item{ID: "a", Price: 50, Quantity: 1})
		match := zone.Match{Zone: &zone.DeliveryZone{DeliveryFeeGrocery: 20, DeliveryFeeFood: 35}, MatchType: zone.MatchExact}

		p := engine.Price(c, match, cfg)

		assert.Equal(t, 50.0, p.ItemsTotal)
		assert.Equal(t, 20.0, p.DeliveryFee)
		assert.Equal(t, 2.5, p.TaxAmount)
		assert.Equal(t, 5.0, p.TaxPercentage)
		assert.Equal(t, 72.5, p.GrandTotal)
		assert.Equal(t, CurrencyINR, p.Currency)
	})

	t.Run("Zone fee for food", func(t *testing.T) {
		c := mustCart(t, cart.OrderTypeFood, cart.Item{ID: "a", Price: 200, Quantity: 2})
		match := zone.Match{Zone: &zone.DeliveryZone{DeliveryFeeGrocery: 20, DeliveryFeeFood: 35}, MatchType: zone.MatchCity}

		p := engine.Price(c, match, cfg)
		assert.Equal(t, 35.0, p.DeliveryFee)
		assert.Equal(t, 20.0, p.TaxAmount)
		assert.Equal(t, 455.0, p.GrandTotal)
	})

	t.Run("Configured fallback fee without zone", func(t *testing.T) {
		c := mustCart(t, cart.OrderTypeFood, cart.Item{ID: "a", Price: 100, Quantity: 1})

		p := engine.Price(c, zone.Match{MatchType: zone.MatchDefault}, settings.Settings{DeliveryFeeFood: 45, TaxPercentage: taxPtr(0)})
		assert.Equal(t, 45.0, p.DeliveryFee)
		assert.Equal(t, 0.0, p.TaxAmount)
		assert.Equal(t, 145.0, p.GrandTotal)
	})

	t.Run("Degraded defaults", func(t *testing.T) {
		c := mustCart(t, cart.OrderTypeGrocery, cart.Item{ID: "a", Price: 100, Quantity: 1})

		p := engine.Price(c, zone.Match{MatchType: zone.MatchNone}, settings.ReferenceDefaults().Settings())
		assert.Equal(t, 20.0, p.DeliveryFee)
		assert.Equal(t, 5.0, p.TaxAmount)
	})

	t.Run("Unset tax defaults to static percentage", func(t *testing.T) {
		c := mustCart(t, cart.OrderTypeGrocery, cart.Item{ID: "a", Price: 40, Quantity: 5})

		p := engine.Price(c, zone.Match{MatchType: zone.MatchNone}, settings.Settings{DeliveryFeeGrocery: 20})
		assert.Equal(t, 5.0, p.TaxPercentage)
		assert.Equal(t, 10.0, p.TaxAmount)
	})
}

func TestEngine_GrandTotalIsSumOfParts(t *testing.T) {
	engine := NewEngine(settings.ReferenceDefaults())
	prices := []float64{0, 0.1, 9.99, 33.33, 149.5, 1234.56}
	taxes := []float64{0, 2.5, 5, 12, 18}

	for _, price := range prices {
		for _, tax := range taxes {
			for qty := 1; qty <= 3; qty++ {
				c := mustCart(t, cart.OrderTypeGrocery, cart.Item{ID: "x", Price: price, Quantity: qty})
				p := engine.Price(c, zone.Match{MatchType: zone.MatchNone}, settings.Settings{DeliveryFeeGrocery: 20, TaxPercentage: taxPtr(tax)})

				assert.Equal(t, p.ItemsTotal+p.DeliveryFee+p.TaxAmount, p.GrandTotal)
			}
		}
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 72.5, Round2(72.5))
	assert.Equal(t, 10.13, Round2(10.125))
	assert.Equal(t, 0.33, Round2(1.0/3))
	assert.Equal(t, "₹72.50", FormatAmount(72.5))
	assert.Equal(t, "₹0.00", FormatAmount(0))
}

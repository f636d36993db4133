package pricing

import (
	"fmt"
	"math"

	"bazaar-be/internal/cart"
	"bazaar-be/internal/settings"
	"bazaar-be/internal/zone"
)

// MinOrderValidation is recomputed on every cart, zone or configuration
// change and never cached.
type MinOrderValidation struct {
	Valid     bool    `json:"valid"`
	IsEnabled bool    `json:"isEnabled"`
	MinValue  float64 `json:"minValue"`
	ShortBy   float64 `json:"shortBy"`
	Message   string  `json:"message"`
}

// ValidateMinimumOrder checks itemsTotal against the threshold selected
// by orderType. When the check is disabled for that type it always
// passes with a zero threshold.
func ValidateMinimumOrder(
	orderType cart.OrderType,
	itemsTotal float64,
	isFoodMinEnabled, isGroceryMinEnabled bool,
	foodMinValue, groceryMinValue float64,
) MinOrderValidation {
	enabled, minValue := isGroceryMinEnabled, groceryMinValue
	if orderType == cart.OrderTypeFood {
		enabled, minValue = isFoodMinEnabled, foodMinValue
	}

	if !enabled {
		return MinOrderValidation{Valid: true}
	}

	shortBy := math.Max(0, minValue-itemsTotal)
	v := MinOrderValidation{
		Valid:     itemsTotal >= minValue,
		IsEnabled: true,
		MinValue:  minValue,
		ShortBy:   shortBy,
	}
	if !v.Valid {
		v.Message = fmt.Sprintf(
			"Minimum order value for %s orders is %s. Add %s more to place your order.",
			orderType, FormatAmount(minValue), FormatAmount(shortBy),
		)
	}
	return v
}

// MinimumOrderFor validates against the configuration, letting a
// resolved zone's own positive threshold override the global one.
func MinimumOrderFor(orderType cart.OrderType, itemsTotal float64, s settings.Settings, match zone.Match) MinOrderValidation {
	foodMin, groceryMin := s.FoodMinOrderValue, s.GroceryMinOrderValue
	if match.Zone != nil {
		if v := match.Zone.MinOrderFood; v > 0 {
			foodMin = v
		}
		if v := match.Zone.MinOrderGrocery; v > 0 {
			groceryMin = v
		}
	}

	return ValidateMinimumOrder(
		orderType, itemsTotal,
		s.IsFoodMinOrderEnabled, s.IsGroceryMinOrderEnabled,
		foodMin, groceryMin,
	)
}

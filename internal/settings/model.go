package settings

import (
	"bazaar-be/internal/config"
	"bazaar-be/internal/zone"
)

// Settings is the checkout configuration document. DeliveryZones keep
// the order in which the store returned them.
type Settings struct {
	DeliveryZones            []zone.DeliveryZone `json:"deliveryZones"`
	DeliveryFeeGrocery       float64             `json:"deliveryFeeGrocery"`
	DeliveryFeeFood          float64             `json:"deliveryFeeFood"`
	TaxPercentage            *float64            `json:"taxPercentage,omitempty"`
	GroceryMinOrderValue     float64             `json:"groceryMinOrderValue"`
	FoodMinOrderValue        float64             `json:"foodMinOrderValue"`
	IsGroceryMinOrderEnabled bool                `json:"isGroceryMinOrderEnabled"`
	IsFoodMinOrderEnabled    bool                `json:"isFoodMinOrderEnabled"`
}

// Defaults are the static values used when the store cannot be read.
type Defaults struct {
	DeliveryFeeGrocery float64
	DeliveryFeeFood    float64
	TaxPercentage      float64
}

func DefaultsFromConfig(cfg *config.Config) Defaults {
	return Defaults{
		DeliveryFeeGrocery: cfg.DefaultDeliveryFeeGrocery,
		DeliveryFeeFood:    cfg.DefaultDeliveryFeeFood,
		TaxPercentage:      cfg.DefaultTaxPercentage,
	}
}

// ReferenceDefaults mirrors the reference configuration.
func ReferenceDefaults() Defaults {
	return Defaults{
		DeliveryFeeGrocery: config.DefaultDeliveryFeeGrocery,
		DeliveryFeeFood:    config.DefaultDeliveryFeeFood,
		TaxPercentage:      config.DefaultTaxPercentage,
	}
}

// Settings builds the fallback document: no zones, static fees and no
// minimum order.
func (d Defaults) Settings() Settings {
	tax := d.TaxPercentage
	return Settings{
		DeliveryFeeGrocery: d.DeliveryFeeGrocery,
		DeliveryFeeFood:    d.DeliveryFeeFood,
		TaxPercentage:      &tax,
	}
}

// Snapshot is the result of a provider load. Err wraps
// ErrConfigUnavailable when Degraded is set.
type Snapshot struct {
	Settings Settings
	Degraded bool
	Err      error
}

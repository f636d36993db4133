package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bazaar-be/internal/logger"
	"bazaar-be/internal/zone"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Source loads the checkout configuration.
type Source interface {
	Load(ctx context.Context) (*Settings, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository returns a Source backed by the app_settings and
// delivery_zones tables.
func NewRepository(db *sql.DB) Source {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context) (*Settings, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Settings"),
		zap.String("method", "Load"),
	)

	const settingsQ = `
		SELECT
			delivery_fee_grocery, delivery_fee_food, tax_percentage,
			grocery_min_order_value, food_min_order_value,
			is_grocery_min_order_enabled, is_food_min_order_enabled
		FROM app_settings
		WHERE id = 1
	`

	var (
		s   Settings
		tax sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, settingsQ).Scan(
		&s.DeliveryFeeGrocery, &s.DeliveryFeeFood, &tax,
		&s.GroceryMinOrderValue, &s.FoodMinOrderValue,
		&s.IsGroceryMinOrderEnabled, &s.IsFoodMinOrderEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("settings row missing")
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		log.Error("settings query failed", zap.Error(err))
		return nil, fmt.Errorf("load app settings: %w", err)
	}
	if tax.Valid {
		s.TaxPercentage = &tax.Float64
	}

	zones, err := r.loadZones(ctx)
	if err != nil {
		log.Error("zones query failed", zap.Error(err))
		return nil, err
	}
	s.DeliveryZones = zones

	log.Debug("settings loaded", zap.Int("zone_count", len(zones)))
	return &s, nil
}

// loadZones returns zones in sort_order, then name, so resolver tie-breaks
// are reproducible.
func (r *repository) loadZones(ctx context.Context) ([]zone.DeliveryZone, error) {
	const q = `
		SELECT
			id, name, zip_codes,
			delivery_fee_grocery, delivery_fee_food,
			min_order_grocery, min_order_food,
			delivery_time_estimate, is_active
		FROM delivery_zones
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load delivery zones: %w", err)
	}
	defer rows.Close()

	var zones []zone.DeliveryZone
	for rows.Next() {
		var z zone.DeliveryZone
		if err := rows.Scan(
			&z.ID, &z.Name, pq.Array(&z.ZipCodes),
			&z.DeliveryFeeGrocery, &z.DeliveryFeeFood,
			&z.MinOrderGrocery, &z.MinOrderFood,
			&z.DeliveryTimeEstimate, &z.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan delivery zone: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery zones: %w", err)
	}

	return zones, nil
}

package settings

import (
	"context"
	"fmt"
	"time"

	"bazaar-be/internal/logger"

	"go.uber.org/zap"
)

// Provider loads settings with a deadline and never fails: when the
// source is unreachable it hands out the static defaults and marks the
// snapshot as degraded.
type Provider struct {
	source   Source
	defaults Defaults
	timeout  time.Duration
}

func NewProvider(source Source, defaults Defaults, timeout time.Duration) *Provider {
	return &Provider{source: source, defaults: defaults, timeout: timeout}
}

func (p *Provider) Defaults() Defaults {
	return p.defaults
}

func (p *Provider) Load(ctx context.Context) Snapshot {
	if p.source == nil {
		return p.degraded(ctx, fmt.Errorf("%w: no source configured", ErrConfigUnavailable))
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	s, err := p.source.Load(ctx)
	if err != nil {
		return p.degraded(ctx, fmt.Errorf("%w: %w", ErrConfigUnavailable, err))
	}

	return Snapshot{Settings: *s}
}

func (p *Provider) degraded(ctx context.Context, err error) Snapshot {
	logger.FromCtx(ctx).Warn("configuration unavailable, using static defaults",
		zap.Error(err),
		zap.Float64("fee_grocery", p.defaults.DeliveryFeeGrocery),
		zap.Float64("fee_food", p.defaults.DeliveryFeeFood),
		zap.Float64("tax_percentage", p.defaults.TaxPercentage),
	)
	return Snapshot{Settings: p.defaults.Settings(), Degraded: true, Err: err}
}

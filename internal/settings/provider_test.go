package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"bazaar-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type blockingSource struct{}

func (blockingSource) Load(ctx context.Context) (*Settings, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProvider_Load(t *testing.T) {
	defaults := ReferenceDefaults()

	t.Run("Returns source settings", func(t *testing.T) {
		src := new(MockSource)
		src.On("Load", mock.Anything).Return(sampleSettings(), nil)

		snap := NewProvider(src, defaults, time.Second).Load(context.Background())

		assert.False(t, snap.Degraded)
		assert.NoError(t, snap.Err)
		assert.Len(t, snap.Settings.DeliveryZones, 1)
	})

	t.Run("Falls back to defaults on error", func(t *testing.T) {
		src := new(MockSource)
		src.On("Load", mock.Anything).Return(nil, errors.New("connection refused"))

		snap := NewProvider(src, defaults, time.Second).Load(context.Background())

		assert.True(t, snap.Degraded)
		assert.ErrorIs(t, snap.Err, ErrConfigUnavailable)
		assert.Empty(t, snap.Settings.DeliveryZones)
		assert.Equal(t, 20.0, snap.Settings.DeliveryFeeGrocery)
		assert.Equal(t, 30.0, snap.Settings.DeliveryFeeFood)
		require.NotNil(t, snap.Settings.TaxPercentage)
		assert.Equal(t, 5.0, *snap.Settings.TaxPercentage)
		assert.False(t, snap.Settings.IsGroceryMinOrderEnabled)
		assert.False(t, snap.Settings.IsFoodMinOrderEnabled)
	})

	t.Run("Timeout counts as unavailable", func(t *testing.T) {
		start := time.Now()
		snap := NewProvider(blockingSource{}, defaults, 20*time.Millisecond).Load(context.Background())

		assert.True(t, snap.Degraded)
		assert.ErrorIs(t, snap.Err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("Nil source is degraded", func(t *testing.T) {
		snap := NewProvider(nil, defaults, 0).Load(context.Background())
		assert.True(t, snap.Degraded)
		assert.ErrorIs(t, snap.Err, ErrConfigUnavailable)
	})
}

func TestDefaultsFromConfig(t *testing.T) {
	d := DefaultsFromConfig(&config.Config{
		DefaultDeliveryFeeGrocery: 11,
		DefaultDeliveryFeeFood:    22,
		DefaultTaxPercentage:      18,
	})

	s := d.Settings()
	assert.Equal(t, 11.0, s.DeliveryFeeGrocery)
	assert.Equal(t, 22.0, s.DeliveryFeeFood)
	assert.Equal(t, 18.0, *s.TaxPercentage)
}

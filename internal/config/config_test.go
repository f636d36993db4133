package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("MONGO_URI", "mongodb://mongo:27017")
		t.Setenv("MONGO_DB", "orders_test")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("SETTINGS_CACHE_TTL", "2m")
		t.Setenv("COLLABORATOR_TIMEOUT", "1500ms")
		t.Setenv("STOCK_CAS_MAX_ATTEMPTS", "5")
		t.Setenv("DEFAULT_DELIVERY_FEE_GROCERY", "25")
		t.Setenv("DEFAULT_DELIVERY_FEE_FOOD", "35.5")
		t.Setenv("DEFAULT_TAX_PERCENTAGE", "12")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
		assert.Equal(t, "orders_test", cfg.MongoDB)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 2*time.Minute, cfg.SettingsCacheTTL)
		assert.Equal(t, 1500*time.Millisecond, cfg.CollaboratorTimeout)
		assert.Equal(t, 5, cfg.StockCASMaxAttempts)
		assert.Equal(t, 25.0, cfg.DefaultDeliveryFeeGrocery)
		assert.Equal(t, 35.5, cfg.DefaultDeliveryFeeFood)
		assert.Equal(t, 12.0, cfg.DefaultTaxPercentage)
	})

	t.Run("Falls back to reference defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("MONGO_URI", "")
		t.Setenv("MONGO_DB", "")
		t.Setenv("SETTINGS_CACHE_TTL", "not-a-duration")
		t.Setenv("COLLABORATOR_TIMEOUT", "")
		t.Setenv("STOCK_CAS_MAX_ATTEMPTS", "-1")
		t.Setenv("DEFAULT_DELIVERY_FEE_GROCERY", "abc")
		t.Setenv("DEFAULT_DELIVERY_FEE_FOOD", "")
		t.Setenv("DEFAULT_TAX_PERCENTAGE", "-3")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Equal(t, "bazaar", cfg.MongoDB)
		assert.Equal(t, DefaultSettingsCacheTTL, cfg.SettingsCacheTTL)
		assert.Equal(t, DefaultCollaboratorTimeout, cfg.CollaboratorTimeout)
		assert.Equal(t, DefaultStockCASMaxAttempts, cfg.StockCASMaxAttempts)
		assert.Equal(t, DefaultDeliveryFeeGrocery, cfg.DefaultDeliveryFeeGrocery)
		assert.Equal(t, DefaultDeliveryFeeFood, cfg.DefaultDeliveryFeeFood)
		assert.Equal(t, DefaultTaxPercentage, cfg.DefaultTaxPercentage)
	})
}

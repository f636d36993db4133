package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Reference fallbacks used when the environment does not override them.
const (
	DefaultDeliveryFeeGrocery  = 20.0
	DefaultDeliveryFeeFood     = 30.0
	DefaultTaxPercentage       = 5.0
	DefaultCollaboratorTimeout = 3 * time.Second
	DefaultSettingsCacheTTL    = 60 * time.Second
	DefaultStockCASMaxAttempts = 3
)

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	MongoURI string
	MongoDB  string

	RedisAddr        string
	SettingsCacheTTL time.Duration

	CollaboratorTimeout time.Duration
	StockCASMaxAttempts int

	DefaultDeliveryFeeGrocery float64
	DefaultDeliveryFeeFood    float64
	DefaultTaxPercentage      float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     os.Getenv("APP_ENV"),
		AppPort:    envOr("APP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		MongoURI:   envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    envOr("MONGO_DB", "bazaar"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),

		SettingsCacheTTL:    envDuration("SETTINGS_CACHE_TTL", DefaultSettingsCacheTTL),
		CollaboratorTimeout: envDuration("COLLABORATOR_TIMEOUT", DefaultCollaboratorTimeout),
		StockCASMaxAttempts: envInt("STOCK_CAS_MAX_ATTEMPTS", DefaultStockCASMaxAttempts),

		DefaultDeliveryFeeGrocery: envFloat("DEFAULT_DELIVERY_FEE_GROCERY", DefaultDeliveryFeeGrocery),
		DefaultDeliveryFeeFood:    envFloat("DEFAULT_DELIVERY_FEE_FOOD", DefaultDeliveryFeeFood),
		DefaultTaxPercentage:      envFloat("DEFAULT_TAX_PERCENTAGE", DefaultTaxPercentage),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// envDuration accepts Go duration strings ("3s", "500ms").
func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

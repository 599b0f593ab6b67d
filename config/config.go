package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB       int    `mapstructure:"REDIS_CACHE_DB"`
	RedisIdempotencyDB int    `mapstructure:"REDIS_IDEMPOTENCY_DB"`

	// Slot-availability responses may be served from cache for at most this
	// many seconds; the create path re-checks against the store regardless.
	SlotCacheTTLSeconds int `mapstructure:"SLOT_CACHE_TTL_SECONDS"`

	// Booking policy defaults applied to new providers.
	DepositPercent     int     `mapstructure:"DEPOSIT_PERCENT"`
	CustomMinDeposit   float64 `mapstructure:"CUSTOM_MIN_DEPOSIT"`
	PlatformFeePercent float64 `mapstructure:"PLATFORM_FEE_PERCENT"`

	// Stripe secret key for deposit payment intents.
	StripeKey string `mapstructure:"STRIPE_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("JWT_SECRET", "inkbook-dev-secret")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_IDEMPOTENCY_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 5)
	viper.SetDefault("DEPOSIT_PERCENT", 50)
	viper.SetDefault("CUSTOM_MIN_DEPOSIT", 50.0)
	viper.SetDefault("PLATFORM_FEE_PERCENT", 5.0)
	viper.SetDefault("STRIPE_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

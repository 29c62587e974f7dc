package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	Coupon CouponConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"8000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// CouponConfig holds loyalty-coupon configuration.
// Cadence is the auto-issue interval: a coupon is issued to the user whose
// completed order makes the global order count a multiple of it.
type CouponConfig struct {
	Cadence         int     `envconfig:"COUPON_CADENCE" default:"5"`
	CodeLength      int     `envconfig:"COUPON_CODE_LENGTH" default:"8"`
	DefaultDiscount float64 `envconfig:"COUPON_DEFAULT_DISCOUNT" default:"10"` // percent
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

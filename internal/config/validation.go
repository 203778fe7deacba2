package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks cfg and returns the first problem found.
func Validate(cfg *Config) error {
	if err := validateAPI(&cfg.API); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if cfg.RateLimit.Limit < 0 {
		return fmt.Errorf("rate limit config: limit must not be negative")
	}

	if cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit config: burst must not be negative")
	}

	if cfg.Signer.Path == "" && len(cfg.Signer.Args) > 0 {
		return fmt.Errorf("signer config: args given without a path")
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

func validateAPI(cfg *APIConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("host is required")
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if cfg.NetworkID <= 0 {
		return fmt.Errorf("network id must be positive")
	}

	return nil
}

// Package config loads runtime settings from the environment, with the
// defaults matching the primary production deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the deployment-variant settings.
//
// CommissionRate and ActivationMode are the two knobs that historically
// differed between deployments (rates 0.12 and 0.035; one variant gated by a
// timed wait, the other by code verification).
type Config struct {
	HTTPPort       string
	DatabasePath   string
	CommissionRate float64
	ActivationMode string
	UpgradeFee     float64
}

// Load builds a Config from defaults overlaid with environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       "8080",
		DatabasePath:   "funnel.db",
		CommissionRate: 0.12,
		ActivationMode: "timedWait",
		UpgradeFee:     99,
	}

	if port := os.Getenv("HTTP_PORT"); port != "" {
		cfg.HTTPPort = port
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DatabasePath = path
	}
	if raw := os.Getenv("COMMISSION_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid COMMISSION_RATE %q: %w", raw, err)
		}
		cfg.CommissionRate = rate
	}
	if mode := os.Getenv("ACTIVATION_MODE"); mode != "" {
		if mode != "timedWait" && mode != "codeVerification" {
			return nil, fmt.Errorf("invalid ACTIVATION_MODE %q", mode)
		}
		cfg.ActivationMode = mode
	}
	if raw := os.Getenv("UPGRADE_FEE"); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid UPGRADE_FEE %q: %w", raw, err)
		}
		cfg.UpgradeFee = fee
	}

	return cfg, nil
}

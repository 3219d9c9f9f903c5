package config

import (
	"errors"
	"time"
)

// LedgerConfig configures the client for the external ledger that custodies
// the assets and executes transfers.
type LedgerConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("ledger endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return errors.New("ledger timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("ledger max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("ledger retry-interval must be positive")
	}

	return nil
}

package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	LivenessPollingInterval time.Duration `mapstructure:"liveness-polling-interval"`
	LivenessThreshold       time.Duration `mapstructure:"liveness-threshold"`
	LivenessBump            time.Duration `mapstructure:"liveness-bump"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.LivenessPollingInterval <= 0 {
		return errors.New("liveness-polling-interval must be positive")
	}

	if cfg.LivenessThreshold <= 0 {
		return errors.New("liveness-threshold must be positive")
	}

	if cfg.LivenessBump <= cfg.LivenessThreshold {
		return errors.New("liveness-bump must exceed liveness-threshold")
	}

	return nil
}

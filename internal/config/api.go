package config

import (
	"errors"
	"time"
)

type ApiConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

func (cfg *ApiConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("api host is required")
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return errors.New("api port must be between 1024 and 65535")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("api read-timeout must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("api write-timeout must be positive")
	}

	return nil
}

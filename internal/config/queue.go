package config

import "errors"

// QueueConfig configures the RabbitMQ connection used for publishing
// settlement events.
type QueueConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Url      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.User == "" {
		return errors.New("queue user is required")
	}
	if cfg.Password == "" {
		return errors.New("queue password is required")
	}
	if cfg.Url == "" {
		return errors.New("queue url is required")
	}
	if cfg.Exchange == "" {
		return errors.New("queue exchange is required")
	}

	return nil
}

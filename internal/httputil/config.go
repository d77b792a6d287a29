package httputil

import (
	"errors"
	"time"
)

type ClientConfig struct {
	Timeout     time.Duration `envconfig:"SPATIAL_CLIENT_TIMEOUT" default:"30s"`
	BearerToken string        `envconfig:"SPATIAL_CLIENT_TOKEN"`
}

func (c *ClientConfig) Validate() error {
	if c.Timeout < 0 {
		return errors.New("client timeout must not be negative")
	}
	return nil
}

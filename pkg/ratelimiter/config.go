package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the token bucket applied to every key.
type Config struct {
	// Capacity is the burst size: how many validation requests a client may
	// send back to back.
	Capacity int `env:"BEAST_RATELIMIT_CAPACITY" envDefault:"30"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"BEAST_RATELIMIT_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"BEAST_RATELIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

package redis

import "time"

// Config describes the Redis connection. Fields are read from the
// environment by pkg/config.
type Config struct {
	ConnectionURL  string        `env:"BEAST_REDIS_URL"`
	RetryAttempts  int           `env:"BEAST_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"BEAST_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"BEAST_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces the sets consulted by validators.
	KeyPrefix string `env:"BEAST_REDIS_KEY_PREFIX" envDefault:"beast:"`
}

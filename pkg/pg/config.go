package pg

import "time"

type Config struct {
	ConnectionString  string        `env:"BEAST_PG_URL"`
	MaxOpenConns      int32         `env:"BEAST_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"BEAST_PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"BEAST_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"BEAST_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"BEAST_PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"BEAST_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"BEAST_PG_RETRY_INTERVAL" envDefault:"2s"`

	// MigrationsTable holds the goose version table name.
	MigrationsTable string `env:"BEAST_PG_MIGRATIONS_TABLE" envDefault:"beast_schema_migrations"`
}

package main

import (
	"github.com/dmitrymomot/beast/pkg/httpserver"
	"github.com/dmitrymomot/beast/pkg/pg"
	"github.com/dmitrymomot/beast/pkg/ratelimiter"
	"github.com/dmitrymomot/beast/pkg/redis"
)

// Config is read from the environment, optionally seeded from .env.
type Config struct {
	Env       string `env:"BEAST_ENV" envDefault:"production"`
	LogLevel  string `env:"BEAST_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BEAST_LOG_FORMAT" envDefault:"json"`

	// FormsDir holds the YAML form definitions.
	FormsDir string `env:"BEAST_FORMS_DIR" envDefault:"forms"`
	// LocalesDir optionally adds or overrides message tables.
	LocalesDir      string `env:"BEAST_LOCALES_DIR"`
	DefaultLanguage string `env:"BEAST_DEFAULT_LANGUAGE" envDefault:"en"`
	SummaryTarget   string `env:"BEAST_SUMMARY_TARGET" envDefault:"beast-summary"`

	// Custom validators backed by Redis sets, as validator:set pairs:
	// BEAST_REDIS_UNIQUE="checkUsername:usernames".
	RedisUnique map[string]string `env:"BEAST_REDIS_UNIQUE"`
	RedisMember map[string]string `env:"BEAST_REDIS_MEMBER"`
	// Custom validators backed by the reserved values table, as
	// validator:kind pairs.
	PGUnique map[string]string `env:"BEAST_PG_UNIQUE"`
	PGExists map[string]string `env:"BEAST_PG_EXISTS"`

	// RateLimitEnabled throttles the validation routes per client and form.
	RateLimitEnabled bool `env:"BEAST_RATELIMIT_ENABLED" envDefault:"true"`

	HTTP      httpserver.Config
	Redis     redis.Config
	PG        pg.Config
	RateLimit ratelimiter.Config
}

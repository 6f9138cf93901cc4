// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for .env files. Each configuration struct type is
// parsed once and cached for the lifetime of the process:
//
//	type Config struct {
//		Addr      string `env:"BEAST_ADDR" envDefault:":8080"`
//		FormsDir  string `env:"BEAST_FORMS_DIR" envDefault:"forms"`
//		RedisURL  string `env:"BEAST_REDIS_URL"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// LoadEnv reads additional .env files; ResetCache clears the cache between
// tests.
package config

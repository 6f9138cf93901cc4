package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/config"
)

type serverConfig struct {
	Addr    string   `env:"BEAST_TEST_ADDR" envDefault:":8080"`
	Workers int      `env:"BEAST_TEST_WORKERS" envDefault:"4"`
	Langs   []string `env:"BEAST_TEST_LANGS" envSeparator:"," envDefault:"en,de"`
}

type requiredConfig struct {
	Secret string `env:"BEAST_TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"BEAST_TEST_CACHED" envDefault:"first"`
}

type envFileConfig struct {
	Value string `env:"BEAST_TEST_FROM_FILE"`
}

func TestLoad(t *testing.T) {
	t.Setenv("BEAST_TEST_ADDR", ":9090")
	config.ResetCache()

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"en", "de"}, cfg.Langs)

	cached, err := config.Cached[serverConfig]()
	require.NoError(t, err)
	assert.Equal(t, cfg, cached)
}

func TestLoadIsCachedPerType(t *testing.T) {
	config.ResetCache()

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("BEAST_TEST_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoadErrors(t *testing.T) {
	config.ResetCache()
	require.NoError(t, os.Unsetenv("BEAST_TEST_REQUIRED_SECRET"))

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	assert.ErrorIs(t, config.Load[serverConfig](nil), config.ErrNilPointer)

	_, err := config.Cached[requiredConfig]()
	assert.ErrorIs(t, err, config.ErrConfigNotLoaded)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("BEAST_TEST_FROM_FILE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("BEAST_TEST_FROM_FILE") })

	require.NoError(t, config.LoadEnv(path))
	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}

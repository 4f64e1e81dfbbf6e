package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopgate/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"5s"`
	Secret  string        `env:"TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_ADDR", ":9090")
	t.Setenv("TEST_SECRET", "hunter2")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "hunter2", cfg.Secret)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

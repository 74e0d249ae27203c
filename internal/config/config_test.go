package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.1, cfg.TaskOverheadHours)
	assert.Equal(t, 30.0, cfg.FallbackKPH)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.PriceCacheTTL)
	assert.Contains(t, cfg.PriceBaseURL, "prices.runescape.wiki")
}

func TestLoadFile(t *testing.T) {
	t.Run("overlays values and keeps the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fallback_kph: 45\nport: \"9090\"\n"), 0o644))

		cfg, err := LoadFile(Default(), path)
		require.NoError(t, err)
		assert.Equal(t, 45.0, cfg.FallbackKPH)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 0.1, cfg.TaskOverheadHours) // untouched default
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadFile(Default(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fallback_kph: [notanumber"), 0o644))
		_, err := LoadFile(Default(), path)
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FALLBACK_KPH", "50")
	t.Setenv("CALCULATION_TIMEOUT", "5s")
	t.Setenv("PORT", "3000")
	t.Setenv("PRICE_USER_AGENT", "tester/1.0")

	cfg := FromEnv()
	assert.Equal(t, 50.0, cfg.FallbackKPH)
	assert.Equal(t, 5*time.Second, cfg.CalculationTimeout)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "tester/1.0", cfg.UserAgent)
	assert.Equal(t, 0.1, cfg.TaskOverheadHours) // untouched default
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("FALLBACK_KPH", "not-a-number")
	t.Setenv("PRICE_TIMEOUT", "eventually")

	cfg := FromEnv()
	assert.Equal(t, Default().FallbackKPH, cfg.FallbackKPH)
	assert.Equal(t, Default().PriceTimeout, cfg.PriceTimeout)
}

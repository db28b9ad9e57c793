package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATASET_PATH", "/tmp/accidents.ndjson")
	t.Setenv("CACHE_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/accidents.ndjson", cfg.DatasetPath)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.InDelta(t, 55.0, cfg.DatasetMinLat, 1e-9)
	assert.InDelta(t, 38.0, cfg.DatasetMaxLon, 1e-9)
	assert.Equal(t, 1, cfg.MinLimit)
	assert.Equal(t, 10000, cfg.MaxLimit)
	assert.Equal(t, []string{"Тяжелый", "Смертельный"}, cfg.SevereCategories)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/a.ndjson")
	t.Setenv("CACHE_BACKEND", "SQLite")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("RISK_HIGH", "0.5")
	t.Setenv("SEVERE_CATEGORIES", " severe , fatal ,,")
	t.Setenv("API_KEYS", "k1, k2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CacheBackendSQLite, cfg.CacheBackend)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.InDelta(t, 0.5, cfg.RiskHigh, 1e-9)
	assert.Equal(t, []string{"severe", "fatal"}, cfg.SevereCategories)
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys)
}

func TestLoadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("MAX_LIMIT", "not-a-number")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.MaxLimit)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatasetPath:       "a.ndjson",
			DatasetMinLat:     55,
			DatasetMaxLat:     56,
			DatasetMinLon:     37,
			DatasetMaxLon:     38,
			MaxBBoxDegrees:    1,
			MinLimit:          1,
			MaxLimit:          10000,
			DefaultGridMeters: 1000,
			MinGridMeters:     10,
			RiskLow:           0.1,
			RiskMedium:        0.2,
			RiskHigh:          0.3,
			CacheEnabled:      true,
			CacheBackend:      CacheBackendRedis,
			CacheTTL:          time.Hour,
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"empty dataset path", func(c *Config) { c.DatasetPath = "" }, "DATASET_PATH"},
		{"inverted envelope", func(c *Config) { c.DatasetMinLat = 57 }, "envelope"},
		{"bad bbox limit", func(c *Config) { c.MaxBBoxDegrees = 0 }, "MAX_BBOX_DEGREES"},
		{"bad limit range", func(c *Config) { c.MaxLimit = 0 }, "limit range"},
		{"grid below min", func(c *Config) { c.DefaultGridMeters = 5 }, "grid size"},
		{"unordered risk", func(c *Config) { c.RiskMedium = 0.4 }, "RISK_LOW"},
		{"unknown backend", func(c *Config) { c.CacheBackend = "memcached" }, "CACHE_BACKEND"},
		{"zero ttl", func(c *Config) { c.CacheTTL = 0 }, "CACHE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

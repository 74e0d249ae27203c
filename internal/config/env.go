package config

import (
	"os"
	"strconv"
	"time"
)

// FromEnv loads tuning configuration from environment variables.
// Falls back to defaults (or TUNING_FILE contents) when unset.
func FromEnv() Tuning {
	cfg := Default()

	if path := os.Getenv("TUNING_FILE"); path != "" {
		if loaded, err := LoadFile(cfg, path); err == nil {
			cfg = loaded
		}
	}

	if val := getEnvFloat("TASK_OVERHEAD_HOURS"); val > 0 {
		cfg.TaskOverheadHours = val
	}
	if val := getEnvFloat("FALLBACK_KPH"); val > 0 {
		cfg.FallbackKPH = val
	}
	if val := getEnvFloat("DEFAULT_TASK_QTY_MIN"); val > 0 {
		cfg.DefaultTaskQtyMin = val
	}
	if val := getEnvFloat("DEFAULT_TASK_QTY_MAX"); val > 0 {
		cfg.DefaultTaskQtyMax = val
	}
	if val := getEnvDuration("CALCULATION_TIMEOUT"); val > 0 {
		cfg.CalculationTimeout = val
	}
	if val := os.Getenv("PRICE_BASE_URL"); val != "" {
		cfg.PriceBaseURL = val
	}
	if val := getEnvDuration("PRICE_TIMEOUT"); val > 0 {
		cfg.PriceTimeout = val
	}
	if val := getEnvDuration("PRICE_CACHE_TTL"); val > 0 {
		cfg.PriceCacheTTL = val
	}
	if val := os.Getenv("PRICE_USER_AGENT"); val != "" {
		cfg.UserAgent = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.Port = val
	}
	if val := os.Getenv("CATALOG_DIR"); val != "" {
		cfg.CatalogDir = val
	}
	if val := os.Getenv("OVERRIDES_DB"); val != "" {
		cfg.OverridesDB = val
	}
	if val := os.Getenv("ALLOW_ORIGINS"); val != "" {
		cfg.AllowOrigins = val
	}

	return cfg
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}

func getEnvDuration(key string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0
	}
	return d
}

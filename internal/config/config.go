package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every knob the engine and its collaborators read. Values come
// from defaults, then an optional yaml file, then the environment.
type Tuning struct {
	// Engine
	TaskOverheadHours  float64       `yaml:"task_overhead_hours" json:"task_overhead_hours"`
	FallbackKPH        float64       `yaml:"fallback_kph" json:"fallback_kph"`
	DefaultTaskQtyMin  float64       `yaml:"default_task_qty_min" json:"default_task_qty_min"`
	DefaultTaskQtyMax  float64       `yaml:"default_task_qty_max" json:"default_task_qty_max"`
	CalculationTimeout time.Duration `yaml:"calculation_timeout" json:"calculation_timeout"`

	// Price oracle
	PriceBaseURL  string        `yaml:"price_base_url" json:"price_base_url"`
	PriceTimeout  time.Duration `yaml:"price_timeout" json:"price_timeout"`
	PriceCacheTTL time.Duration `yaml:"price_cache_ttl" json:"price_cache_ttl"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`

	// Server
	Port         string `yaml:"port" json:"port"`
	CatalogDir   string `yaml:"catalog_dir" json:"catalog_dir"`
	OverridesDB  string `yaml:"overrides_db" json:"overrides_db"`
	AllowOrigins string `yaml:"allow_origins" json:"allow_origins"`
}

func Default() Tuning {
	return Tuning{
		TaskOverheadHours:  0.1, // travel + banking between tasks
		FallbackKPH:        30,
		DefaultTaskQtyMin:  100,
		DefaultTaskQtyMax:  150,
		CalculationTimeout: 30 * time.Second,

		PriceBaseURL:  "https://prices.runescape.wiki/api/v1/osrs",
		PriceTimeout:  10 * time.Second,
		PriceCacheTTL: 5 * time.Minute,
		UserAgent:     "OSRS GP Tracker - Local Development App - Version 1.0",

		Port:         "8080",
		AllowOrigins: "*",
	}
}

// LoadFile overlays tuning values from a yaml file onto cfg.
func LoadFile(cfg Tuning, path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	return cfg, nil
}

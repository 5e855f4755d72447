package config

import (
	"os"
	"strconv"

	"github.com/jibarix/map-viz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
	Map      MapConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional upload-catalog database settings.
// The dashboard runs fully in memory when URL is empty.
type DatabaseConfig struct {
	URL string
}

// AnalysisConfig holds the derivation-pipeline parameters.
//
// The two valid-sale thresholds are deliberately independent: the
// cleaning stage flags sales above ValidSaleThreshold, while the map
// statistics and network construction paths use the looser
// LooseSaleThreshold. The discrepancy is observed behavior and is kept
// configurable rather than silently unified.
type AnalysisConfig struct {
	ValidSaleThreshold float64 // clean-stage valid sale cutoff
	LooseSaleThreshold float64 // map-stats / network transaction cutoff
	PriceCap           float64 // histogram / area-analysis price ceiling
	MaxNetworkNodes    int
	FlowTopN           int
}

// MapConfig holds map-preparation settings
type MapConfig struct {
	SampleCap  int
	SampleSeed int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8050"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Analysis: AnalysisConfig{
			ValidSaleThreshold: getEnvFloat("VALID_SALE_THRESHOLD", 5000),
			LooseSaleThreshold: getEnvFloat("LOOSE_SALE_THRESHOLD", 1000),
			PriceCap:           getEnvFloat("PRICE_CAP", 2000000),
			MaxNetworkNodes:    getEnvInt("MAX_NETWORK_NODES", 50),
			FlowTopN:           getEnvInt("FLOW_TOP_N", 5),
		},
		Map: MapConfig{
			SampleCap:  getEnvInt("MAP_SAMPLE_CAP", 2000),
			SampleSeed: int64(getEnvInt("MAP_SAMPLE_SEED", 42)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Analysis.ValidSaleThreshold < 0 {
		return errors.ConfigInvalid("VALID_SALE_THRESHOLD must be non-negative")
	}
	if c.Analysis.LooseSaleThreshold < 0 {
		return errors.ConfigInvalid("LOOSE_SALE_THRESHOLD must be non-negative")
	}
	if c.Analysis.MaxNetworkNodes < 2 {
		return errors.ConfigInvalid("MAX_NETWORK_NODES must be at least 2")
	}
	if c.Map.SampleCap < 1 {
		return errors.ConfigInvalid("MAP_SAMPLE_CAP must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

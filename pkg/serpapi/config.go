package serpapi

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey string
	// MaxRPS caps outbound searches per second; 0 disables throttling
	MaxRPS float64
}

const defaultMaxRPS = 5.0

func LoadConfig() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		APIKey: os.Getenv("SERPAPI_KEY"),
		MaxRPS: defaultMaxRPS,
	}

	if raw := os.Getenv("SERPAPI_MAX_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("SERPAPI_MAX_RPS must be a number: %w", err)
		}
		cfg.MaxRPS = rps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("SERPAPI_KEY is required")
	}
	return nil
}

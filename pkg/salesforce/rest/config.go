package sfrest

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	LoginBaseURI string
	ClientID     string
	ClientSecret string
	APIVersion   string
}

const defaultAPIVersion = "v59.0"

func LoadConfig() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		LoginBaseURI: os.Getenv("SF_LOGIN_BASE_URI"),
		ClientID:     os.Getenv("SF_CLIENT_ID"),
		ClientSecret: os.Getenv("SF_CLIENT_SECRET"),
		APIVersion:   os.Getenv("SF_API_VERSION"),
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LoginBaseURI == "" {
		return fmt.Errorf("SF_LOGIN_BASE_URI is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("SF_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("SF_CLIENT_SECRET is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey string
	AppURL string
	Port   int
}

func Load() (*Config, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("config: OPENROUTER_API_KEY is required")
	}

	appURL := os.Getenv("ARENA_APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	port, err := envInt("ARENA_PORT", 3000)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: Port must be in 1..65535, got %d", port)
	}

	return &Config{
		APIKey: apiKey,
		AppURL: appURL,
		Port:   port,
	}, nil
}

// LoadDotEnv loads variables from a .env file if it exists. Variables
// already set in the environment take precedence.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

func envInt(key string, defaultVal int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, s, err)
	}
	return v, nil
}

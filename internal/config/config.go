package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:4000/api"

// Config holds the application configuration
type Config struct {
	// APIURL is the base URL of the sync backend, including the /api prefix.
	APIURL string

	// StorePath points at the local store. The file extension picks the
	// backend: .json gets the flat-file store, anything else SQLite.
	StorePath string

	// Debug enables verbose logging.
	Debug bool
}

// LoadFromEnv loads configuration from environment variables, after reading a
// .env file if one is present in the working directory.
func LoadFromEnv() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	config := &Config{}

	config.APIURL = os.Getenv("FANOUS_API_URL")
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}

	config.StorePath = os.Getenv("FANOUS_STORE")
	if config.StorePath == "" {
		path, err := defaultStorePath()
		if err != nil {
			return nil, err
		}
		config.StorePath = path
	}

	config.Debug = os.Getenv("FANOUS_DEBUG") == "true"

	return config, nil
}

func defaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fanous", "fanous.db"), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBBaseURL string
	TMDBAPIKey  string

	// Region used to select watch-provider availability
	ProviderRegion string

	// Server
	ServerPort string

	// Home shelf refresh schedule (cron expression)
	RefreshSchedule string

	// Paths
	DatabaseFile string // $CONFIG_DIR/watchman.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org")
	viper.SetDefault("PROVIDER_REGION", "IN")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REFRESH_SCHEDULE", "0 */6 * * *")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "watchman")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		TMDBBaseURL:     viper.GetString("TMDB_BASE_URL"),
		TMDBAPIKey:      viper.GetString("TMDB_API_KEY"),
		ProviderRegion:  viper.GetString("PROVIDER_REGION"),
		ServerPort:      viper.GetString("SERVER_PORT"),
		RefreshSchedule: viper.GetString("REFRESH_SCHEDULE"),
		DatabaseFile:    filepath.Join(configDir, "watchman.db"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.TMDBBaseURL == "" {
		return nil, fmt.Errorf("TMDB_BASE_URL is required")
	}

	return config, nil
}

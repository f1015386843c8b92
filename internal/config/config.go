package config

import (
	"os"
	"strconv"
	"time"

	"holidaze/internal/cache"
	"holidaze/internal/external"
	"holidaze/internal/messaging"
)

// Config holds the gateway configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Default and maximum page sizes for venue browsing. The landing view
	// pages by 6, the venue browser by 9.
	DefaultPageSize int
	MaxPageSize     int

	Holidaze external.Config
	Valkey   cache.Config
	NATS     messaging.Config
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 6),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 20),

		Holidaze: external.Config{
			BaseURL: getEnv("HOLIDAZE_API_URL", "https://v2.api.noroff.dev"),
			APIKey:  getEnv("HOLIDAZE_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("HOLIDAZE_TIMEOUT_SEC", 30)) * time.Second,
		},

		Valkey: cache.Config{
			Addr:       getEnv("VALKEY_ADDR", "localhost:6379"),
			Password:   getEnv("VALKEY_PASSWORD", ""),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "holidaze"),
			ClientID:  getEnv("NATS_CLIENT_ID", "holidaze-api"),
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

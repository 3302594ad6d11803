package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Data files
	DataDir    string
	HistoryDir string

	// Logging. The TUI owns stdout, so logs go to a file.
	LogFile  string
	LogLevel string

	// Display
	Currency string

	// Archive snapshot cache
	ArchiveCacheSize int
	ArchiveCacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		DataDir:    getEnv("DUIT_DATA_DIR", "."),
		HistoryDir: getEnv("DUIT_HISTORY_DIR", "History"),

		LogFile:  getEnv("DUIT_LOG_FILE", "duit.log"),
		LogLevel: getEnv("DUIT_LOG_LEVEL", "info"),

		Currency: getEnv("DUIT_CURRENCY", "RM"),

		ArchiveCacheSize: getEnvInt("DUIT_ARCHIVE_CACHE_SIZE", 12),
		ArchiveCacheTTL:  getEnvDuration("DUIT_ARCHIVE_CACHE_TTL", 15*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	} else if info, err := os.Stat(c.DataDir); err != nil {
		errors = append(errors, fmt.Sprintf("data directory '%s' is not accessible: %v", c.DataDir, err))
	} else if !info.IsDir() {
		errors = append(errors, fmt.Sprintf("data directory '%s' is not a directory", c.DataDir))
	}

	if c.HistoryDir == "" {
		errors = append(errors, "history directory cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.ArchiveCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid archive cache size %d: must be at least 1", c.ArchiveCacheSize))
	} else if c.ArchiveCacheSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid archive cache size %d: must be at most 1000", c.ArchiveCacheSize))
	}

	if c.ArchiveCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid archive cache TTL %v: must be at least 1 second", c.ArchiveCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

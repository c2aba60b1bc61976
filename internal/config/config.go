package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// LogFile, when set, tees logs to a size-rotated file in addition to
	// stdout. Rotation thresholds match the legacy deployment: 5 MB per
	// file, 3 retained backups.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// DefaultProfile is the profile id used for unknown devices and as
	// the registry fallback for unknown profile ids.
	DefaultProfile string

	// DevicesFile is an optional YAML mapping of device EUIs to profile ids.
	DevicesFile string

	// ProfilesFile is an optional YAML file of additional sensor profiles.
	ProfilesFile string

	// MetricsAddr, when set, serves /healthz and /metrics on that address.
	MetricsAddr string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	logMaxSize, err := parsePositiveInt("LOG_MAX_SIZE_MB", 5)
	if err != nil {
		return nil, err
	}
	logMaxBackups, err := parsePositiveInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		LogFile:        os.Getenv("LOG_FILE"),
		LogMaxSizeMB:   logMaxSize,
		LogMaxBackups:  logMaxBackups,
		DefaultProfile: envOrDefault("DEFAULT_PROFILE", "v1"),
		DevicesFile:    os.Getenv("DEVICES_FILE"),
		ProfilesFile:   os.Getenv("PROFILES_FILE"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.DefaultProfile == "" {
		return nil, fmt.Errorf("DEFAULT_PROFILE must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

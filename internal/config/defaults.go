package config

import (
	"path/filepath"
	"time"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".diana.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:            "http://localhost:8000",
		DataDir:               ".diana",
		Port:                  8090,
		StatsIntervalSeconds:  30,
		RequestTimeoutSeconds: 120,
		LogLevel:              LogInfo,
		LogConsole:            true,
	}
}

// PrefsPath is the sqlite file holding the persisted preferences.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.db")
}

// LogPath is the rotated log file. Empty disables file logging.
func (c *Config) LogPath() string {
	if c.LogFile == "" {
		return ""
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

// StatsInterval is the stats polling period.
func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalSeconds) * time.Second
}

// RequestTimeout bounds each request to the service.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

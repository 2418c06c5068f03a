package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// PingConfig controls the background sweep.
type PingConfig struct {
	IntervalSeconds int `yaml:"intervalSeconds"` // time between sweeps
	TimeoutSeconds  int `yaml:"timeoutSeconds"`  // per-request timeout
	Workers         int `yaml:"workers"`         // concurrent pings per sweep
	HistoryLimit    int `yaml:"historyLimit"`    // ping records kept per app
}

// AdminConfig holds optional basic-auth credentials for mutating routes.
// Both fields must be set for auth to be enforced.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"passwordHash"` // bcrypt hash, never plaintext
}

// Config holds the application configuration.
type Config struct {
	Listen       string      `yaml:"listen"`
	DatabasePath string      `yaml:"databasePath"`
	LogLevel     string      `yaml:"logLevel"`
	Ping         PingConfig  `yaml:"ping"`
	Admin        AdminConfig `yaml:"admin"`
}

const (
	defaultListen          = ":8000"
	defaultDatabasePath    = "app.db"
	defaultLogLevel        = "info"
	defaultIntervalSeconds = 600
	defaultTimeoutSeconds  = 5
	defaultWorkers         = 8
	defaultHistoryLimit    = 100
)

// Default returns the configuration with all defaults applied
func Default() Config {
	return Config{
		Listen:       defaultListen,
		DatabasePath: defaultDatabasePath,
		LogLevel:     defaultLogLevel,
		Ping: PingConfig{
			IntervalSeconds: defaultIntervalSeconds,
			TimeoutSeconds:  defaultTimeoutSeconds,
			Workers:         defaultWorkers,
			HistoryLimit:    defaultHistoryLimit,
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then environment variable overrides, in that precedence order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Listen = getEnv("PINGER_LISTEN", cfg.Listen)
	cfg.DatabasePath = getEnv("PINGER_DB_PATH", cfg.DatabasePath)
	cfg.LogLevel = getEnv("PINGER_LOG_LEVEL", cfg.LogLevel)

	cfg.Ping.IntervalSeconds = getInt("PINGER_INTERVAL_SECONDS", cfg.Ping.IntervalSeconds)
	cfg.Ping.TimeoutSeconds = getInt("PINGER_TIMEOUT_SECONDS", cfg.Ping.TimeoutSeconds)
	cfg.Ping.Workers = getInt("PINGER_WORKERS", cfg.Ping.Workers)
	cfg.Ping.HistoryLimit = getInt("PINGER_HISTORY_LIMIT", cfg.Ping.HistoryLimit)

	cfg.Admin.Username = getEnv("PINGER_ADMIN_USERNAME", cfg.Admin.Username)
	cfg.Admin.PasswordHash = getEnv("PINGER_ADMIN_PASSWORD_HASH", cfg.Admin.PasswordHash)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Ping.IntervalSeconds <= 0 {
		return fmt.Errorf("ping interval must be positive, got %d", c.Ping.IntervalSeconds)
	}
	if c.Ping.TimeoutSeconds <= 0 {
		return fmt.Errorf("ping timeout must be positive, got %d", c.Ping.TimeoutSeconds)
	}
	if c.Ping.Workers <= 0 {
		return fmt.Errorf("ping workers must be positive, got %d", c.Ping.Workers)
	}
	return nil
}

// Interval returns the sweep interval as a duration
func (p PingConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// Timeout returns the per-request timeout as a duration
func (p PingConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func getEnv(key string, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

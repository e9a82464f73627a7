// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Session SessionConfig
	Notify  NotifyConfig
	Points  PointsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds profile store configuration.
type DataConfig struct {
	// Path is the badger database directory.
	Path string
	// InMemory runs the store without touching disk (tests, simulations).
	InMemory bool
}

// SessionConfig holds listening-session configuration.
type SessionConfig struct {
	// TickInterval is the length of one confirmed listening tick.
	// One second in production; simulations shorten it.
	TickInterval time.Duration
}

// NotifyConfig holds toast lifecycle configuration.
type NotifyConfig struct {
	DisplayDuration time.Duration
	ExitDuration    time.Duration
}

// PointsConfig holds the progression reward curve. The shape of the rules
// is fixed; these numbers are product parameters.
type PointsConfig struct {
	// PerMinute is credited for every 60 accumulated listening seconds.
	PerMinute int
	// MilestoneEvery marks point totals that trigger a milestone toast.
	MilestoneEvery int
	// PeriodicToastSeconds is the interval of the "+points" listening toast.
	PeriodicToastSeconds int
	// ThemeCost debits a theme unlock.
	ThemeCost int
	// SubmissionCost debits a station submission.
	SubmissionCost int
	// VoteAward is the one-time credit for a user's first vote on a song.
	VoteAward int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory for the profile store")
	tickInterval := flag.String("tick-interval", "", "Listening tick interval (default: 1s)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	return loadConfig(*env, *logLevel, *dataPath, *tickInterval, *envFile)
}

// loadConfig is the flag-free body of LoadConfig, separated for tests.
func loadConfig(env, logLevel, dataPath, tickInterval, envFile string) (*Config, error) {
	// Load .env file if it exists (silently ignore if not found).
	_ = godotenv.Load(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Path:     getConfigValue(dataPath, "DATA_PATH", "./data"),
			InMemory: getBoolConfigValue("", "DATA_IN_MEMORY", false),
		},
		Notify: NotifyConfig{
			DisplayDuration: 4 * time.Second,
			ExitDuration:    300 * time.Millisecond,
		},
		Points: PointsConfig{
			PerMinute:            getIntConfigValue("", "POINTS_PER_MINUTE", 1),
			MilestoneEvery:       getIntConfigValue("", "POINTS_MILESTONE_EVERY", 10),
			PeriodicToastSeconds: getIntConfigValue("", "POINTS_PERIODIC_TOAST_SECONDS", 300),
			ThemeCost:            getIntConfigValue("", "POINTS_THEME_COST", 50),
			SubmissionCost:       getIntConfigValue("", "POINTS_SUBMISSION_COST", 20),
			VoteAward:            getIntConfigValue("", "POINTS_VOTE_AWARD", 1),
		},
	}

	// Parse tick interval.
	tickStr := getConfigValue(tickInterval, "TICK_INTERVAL", "1s")
	tick, err := time.ParseDuration(tickStr)
	if err != nil {
		return nil, fmt.Errorf("invalid tick interval %q: %w", tickStr, err)
	}
	cfg.Session.TickInterval = tick

	// Expand and validate the data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	if c.Session.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	if c.Points.PerMinute < 0 || c.Points.MilestoneEvery <= 0 || c.Points.PeriodicToastSeconds <= 0 {
		return errors.New("points configuration must be positive")
	}
	if c.Points.ThemeCost < 0 || c.Points.SubmissionCost < 0 || c.Points.VoteAward < 0 {
		return errors.New("points costs must not be negative")
	}

	return nil
}

// expandDataPath resolves the store directory to an absolute path and
// creates it if missing.
func (c *Config) expandDataPath() error {
	if c.Data.InMemory {
		return nil
	}

	abs, err := filepath.Abs(c.Data.Path)
	if err != nil {
		return err
	}
	c.Data.Path = abs

	return os.MkdirAll(abs, 0o755)
}

// getConfigValue applies precedence: flag > env var > default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

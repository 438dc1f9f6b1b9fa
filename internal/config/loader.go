package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	envFiles []string
}

// NewLoader creates a new configuration loader. With no files given it reads
// DefaultEnvFile; missing files are skipped.
func NewLoader(envFiles ...string) *Loader {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	return &Loader{
		config:   NewConfig(),
		envFiles: envFiles,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from the .env files
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadEnvFiles never overrides variables already present in the environment
func (l *Loader) loadEnvFiles() error {
	for _, file := range l.envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{Field: "env_file", Message: file + ": " + err.Error()}
		}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Store overrides
	StoreURL     *string
	StoreTimeout *time.Duration
	Offline      *bool

	// Database overrides
	DBDir      *string
	DBFilename *string

	// Schedule overrides
	TaskDigestAt  *string
	HabitDigestAt *string
	ReminderLead  *time.Duration
	TickInterval  *time.Duration
	Timezone      *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StoreURL != nil {
		config.Store.URL = *overrides.StoreURL
	}
	if overrides.StoreTimeout != nil {
		config.Store.Timeout = *overrides.StoreTimeout
	}
	if overrides.Offline != nil {
		config.Store.Offline = *overrides.Offline
	}

	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	if overrides.TaskDigestAt != nil {
		config.Schedule.TaskDigestAt = *overrides.TaskDigestAt
	}
	if overrides.HabitDigestAt != nil {
		config.Schedule.HabitDigestAt = *overrides.HabitDigestAt
	}
	if overrides.ReminderLead != nil {
		config.Schedule.ReminderLead = *overrides.ReminderLead
	}
	if overrides.TickInterval != nil {
		config.Schedule.TickInterval = *overrides.TickInterval
	}
	if overrides.Timezone != nil {
		config.Schedule.Timezone = *overrides.Timezone
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

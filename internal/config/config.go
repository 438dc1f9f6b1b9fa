package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"habit-bot/internal/sheet"
	"habit-bot/internal/validation"

	homedir "github.com/mitchellh/go-homedir"
)

// Config holds all configuration options for the habit bot
type Config struct {
	Store       StoreConfig
	Database    DatabaseConfig
	Schedule    ScheduleConfig
	Application ApplicationConfig
}

// StoreConfig holds the spreadsheet web app settings
type StoreConfig struct {
	URL     string        `env:"HB_STORE_URL"`
	Timeout time.Duration `env:"HB_STORE_TIMEOUT"`
	Offline bool          `env:"HB_STORE_OFFLINE"`
}

// DatabaseConfig holds the subscriber registry settings
type DatabaseConfig struct {
	Dir            string        `env:"HB_DB_DIR"`
	Filename       string        `env:"HB_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"HB_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"HB_DB_DIR_PERMISSIONS"`
}

// ScheduleConfig holds reminder and digest timing; an empty digest time disables it
type ScheduleConfig struct {
	TaskDigestAt  string        `env:"HB_TASK_DIGEST_AT"`
	HabitDigestAt string        `env:"HB_HABIT_DIGEST_AT"`
	ReminderLead  time.Duration `env:"HB_REMINDER_LEAD"`
	TickInterval  time.Duration `env:"HB_TICK_INTERVAL"`
	Timezone      string        `env:"HB_TIMEZONE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"HB_APP_TIMEOUT"`
	Verbose bool          `env:"HB_APP_VERBOSE"`
}

// legacyStoreURLEnv is read when HB_STORE_URL is unset
const legacyStoreURLEnv = "WEBAPP_URL"

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, err := homedir.Dir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Store: StoreConfig{
			Timeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".habit-bot"),
			Filename:       "habit-bot.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Schedule: ScheduleConfig{
			TaskDigestAt: "10:00",
			ReminderLead: 10 * time.Minute,
			TickInterval: 30 * time.Second,
			Timezone:     "Local",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Dir == ":memory:" || c.Database.Filename == ":memory:" {
		return ":memory:"
	}
	dir, err := homedir.Expand(c.Database.Dir)
	if err != nil {
		dir = c.Database.Dir
	}
	return filepath.Join(dir, c.Database.Filename)
}

// Location returns the time zone the sheet's calendar days are counted in
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" || strings.EqualFold(c.Schedule.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Schedule.Timezone)
}

// TaskDigestClock returns the task digest time, or nil when disabled
func (c *Config) TaskDigestClock() *sheet.Clock {
	return optionalClock(c.Schedule.TaskDigestAt)
}

// HabitDigestClock returns the habit digest time, or nil when disabled
func (c *Config) HabitDigestClock() *sheet.Clock {
	return optionalClock(c.Schedule.HabitDigestAt)
}

func optionalClock(s string) *sheet.Clock {
	clock, ok := sheet.ParseClock(strings.TrimSpace(s))
	if !ok {
		return nil
	}
	return &clock
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Store configuration
	if url := os.Getenv("HB_STORE_URL"); url != "" {
		c.Store.URL = url
	} else if url := os.Getenv(legacyStoreURLEnv); url != "" {
		c.Store.URL = url
	}
	if timeout := os.Getenv("HB_STORE_TIMEOUT"); timeout != "" {
		c.Store.Timeout = ParseDurationWithFallback(timeout, c.Store.Timeout)
	}
	if offline := os.Getenv("HB_STORE_OFFLINE"); offline != "" {
		c.Store.Offline = ParseBoolWithFallback(offline, c.Store.Offline)
	}

	// Database configuration
	if dir := os.Getenv("HB_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("HB_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("HB_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("HB_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Schedule configuration; set-but-empty digest variables disable the digest
	if at, ok := os.LookupEnv("HB_TASK_DIGEST_AT"); ok {
		c.Schedule.TaskDigestAt = at
	}
	if at, ok := os.LookupEnv("HB_HABIT_DIGEST_AT"); ok {
		c.Schedule.HabitDigestAt = at
	}
	if lead := os.Getenv("HB_REMINDER_LEAD"); lead != "" {
		c.Schedule.ReminderLead = ParseDurationWithFallback(lead, c.Schedule.ReminderLead)
	}
	if tick := os.Getenv("HB_TICK_INTERVAL"); tick != "" {
		c.Schedule.TickInterval = ParseDurationWithFallback(tick, c.Schedule.TickInterval)
	}
	if tz := os.Getenv("HB_TIMEZONE"); tz != "" {
		c.Schedule.Timezone = tz
	}

	// Application configuration
	if timeout := os.Getenv("HB_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("HB_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	v := validation.NewValidator()

	// Store configuration
	if !c.Store.Offline && !v.IsNonEmptyString(c.Store.URL) {
		return &ConfigError{Field: "store.url", Message: "store URL is required (HB_STORE_URL or WEBAPP_URL) unless running offline"}
	}
	if c.Store.Timeout <= 0 {
		return &ConfigError{Field: "store.timeout", Message: "store timeout must be positive"}
	}

	// Database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Schedule configuration
	if err := v.ValidateClock("schedule.task_digest_at", c.Schedule.TaskDigestAt); err != nil {
		return &ConfigError{Field: "schedule.task_digest_at", Message: err.Error()}
	}
	if err := v.ValidateClock("schedule.habit_digest_at", c.Schedule.HabitDigestAt); err != nil {
		return &ConfigError{Field: "schedule.habit_digest_at", Message: err.Error()}
	}
	if c.Schedule.ReminderLead <= 0 || c.Schedule.ReminderLead >= 24*time.Hour {
		return &ConfigError{Field: "schedule.reminder_lead", Message: "reminder lead must be positive and under 24h"}
	}
	if c.Schedule.TickInterval <= 0 || c.Schedule.TickInterval > time.Minute {
		return &ConfigError{Field: "schedule.tick_interval", Message: "tick interval must be positive and at most 1m"}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "schedule.timezone", Message: "unknown time zone " + strconv.Quote(c.Schedule.Timezone)}
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// Package config provides configuration management for the Brawl deck
// builder card import core.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > brawldeck.yaml
// > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in brawldeck.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use BRAWLDECK_ prefix with underscores for nesting:
//
//	BRAWLDECK_DATABASE_HOST=localhost
//	BRAWLDECK_DATABASE_PORT=5432
//	BRAWLDECK_IMPORT_BATCH_SIZE=100
//	BRAWLDECK_LOG_LEVEL=info
package config

// Config represents the complete brawldeck configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// BatchSize is the number of canonical cards written per batch
	// insert. Each batch is independent; a failed batch is recorded and
	// the remaining batches are still attempted.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// ProgressEvery sets how often (in records) count-level progress is
	// reported during the processing stage.
	ProgressEvery int `mapstructure:"progress_every" yaml:"progress_every"`

	// ClearExisting controls whether the cards and search_terms tables
	// are fully rewritten by the import (full-replace semantics).
	ClearExisting bool `mapstructure:"clear_existing" yaml:"clear_existing"`

	// Format is the target legality format. A card is eligible when its
	// legality status for this format is "legal".
	Format string `mapstructure:"format" yaml:"format"`

	// Platform is the target game platform a card must be available on.
	Platform string `mapstructure:"platform" yaml:"platform"`

	// Language is the canonical language code; printings in other
	// languages are filtered out before deduplication.
	Language string `mapstructure:"language" yaml:"language"`

	// MaxAgeHours is the maximum age of a cached bulk download before
	// it is fetched again.
	MaxAgeHours int `mapstructure:"max_age_hours" yaml:"max_age_hours"`

	// ForceDownload skips the cache freshness check and always
	// downloads the bulk file. Runtime-only field (CLI flag).
	ForceDownload bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "brawldeck",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			BatchSize:     100,
			ProgressEvery: 100,
			ClearExisting: true,
			Format:        "brawl",
			Platform:      "arena",
			Language:      "en",
			MaxAgeHours:   24,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

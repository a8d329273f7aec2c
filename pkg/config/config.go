// Package config provides configuration management for subbeagle.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination
//   - Transform: engine, compression_level, with_progress
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SUBBEAGLE_ prefix with underscores for nesting:
//
//	SUBBEAGLE_LOG_LEVEL=info
//	SUBBEAGLE_ENGINE=native
//	SUBBEAGLE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete subbeagle configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Engine selects the line transformer that rewrites the matrix.
	// Valid values: "native" (streaming in Go), "awk" (external process).
	Engine string `mapstructure:"engine" yaml:"engine"`

	// CompressionLevel is the gzip level used for compressed outputs (1-9).
	CompressionLevel int `mapstructure:"compression_level" yaml:"compression_level"`

	// WithProgress enables the byte-count progress bar. The bar is still
	// omitted when STDERR is not a terminal.
	WithProgress bool `mapstructure:"with_progress" yaml:"with_progress"`

	// JobsNumber is the number of blocks gzip readers and writers
	// process concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
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
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Engine:           "native",
		CompressionLevel: 6,
		WithProgress:     true,
		JobsNumber:       runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

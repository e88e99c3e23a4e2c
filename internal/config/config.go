// Package config provides the session configuration and its defaults.
package config

import (
	"log/slog"
)

const (
	defaultMaxDecompressedSize = 1 << 30
)

// Config holds the tunables of a read session. The zero value of every
// boolean selects the default behavior.
type Config struct {
	// IgnoreConditions parses WHERE conditions but does not apply them, so
	// every row on the page is projected.
	IgnoreConditions bool

	// RawIntegerPrimaryKey reports the stored NULL of an INTEGER PRIMARY KEY
	// column instead of the row id it aliases.
	RawIntegerPrimaryKey bool

	// MaxDecompressedSize caps the in-memory size of a compressed database.
	MaxDecompressedSize int64

	// Logger receives debug events. Nil means the global logger.
	Logger *slog.Logger
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxDecompressedSize: defaultMaxDecompressedSize,
	}
}

// FillDefaults sets any zero-value fields in the Config to their default values.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.MaxDecompressedSize <= 0 {
		c.MaxDecompressedSize = def.MaxDecompressedSize
	}
}

package config

import (
	"errors"
	"time"
)

// NamingPattern selects how placeholder filenames are derived.
type NamingPattern string

const (
	// NamingIndexed produces "placeholder_{index}.{ext}" — collision-free by
	// construction and the default.
	NamingIndexed NamingPattern = "indexed"
	// NamingOriginal keeps the original basename (prefixed when a Prefix is set).
	NamingOriginal NamingPattern = "original"
	// NamingOriginalSuffix appends a suffix before the extension.
	NamingOriginalSuffix NamingPattern = "original_suffix"
	// NamingPrefixIndexed combines prefix, zero-padded index, and original basename.
	NamingPrefixIndexed NamingPattern = "prefix_indexed"
)

// Config is the top-level configuration struct.  All fields have safe defaults
// so callers can start with Config{} and override only what they need.
type Config struct {
	// Worker pool controls.
	WorkerCount int // default: runtime.NumCPU()
	QueueSize   int // max queued jobs before backpressure; default: 64

	// Fetching.
	FetchTimeout  time.Duration // per-URL bound; default 10s
	MaxImageBytes int64         // 0 = no limit on response body size
	UserAgent     string        // optional User-Agent header

	// Fallback dimensions used when true dimensions cannot be determined.
	FallbackWidth  int // default 800
	FallbackHeight int // default 600

	// Placeholder encoding.
	OutputFormat   string // "png" (default) or "jpeg"
	JPEGQuality    int    // 1-100; default 85
	PNGCompression int    // 0-9, higher = smaller/slower; default 6

	// Label rendering.
	MinFontSize int // floor for legibility; default 20
	MaxFontSize int // ceiling; default 100

	// Placeholder naming.
	Naming NamingPattern
	Prefix string // optional filename prefix for non-indexed patterns

	// Logging.
	LogLevel string // "debug", "info", "warn", "error"
}

// Default returns a Config populated with sensible production defaults.
func Default() Config {
	return Config{
		WorkerCount:    0, // resolved at runtime to NumCPU
		QueueSize:      64,
		FetchTimeout:   10 * time.Second,
		FallbackWidth:  800,
		FallbackHeight: 600,
		OutputFormat:   "png",
		JPEGQuality:    85,
		PNGCompression: 6,
		MinFontSize:    20,
		MaxFontSize:    100,
		Naming:         NamingIndexed,
		LogLevel:       "info",
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if c.FetchTimeout < 0 {
		return errors.New("config: FetchTimeout must not be negative")
	}
	if c.FallbackWidth <= 0 || c.FallbackHeight <= 0 {
		return errors.New("config: fallback dimensions must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("config: JPEGQuality must be between 1 and 100")
	}
	if c.PNGCompression < 0 || c.PNGCompression > 9 {
		return errors.New("config: PNGCompression must be between 0 and 9")
	}
	if c.MinFontSize <= 0 || c.MaxFontSize < c.MinFontSize {
		return errors.New("config: font size bounds must satisfy 0 < min <= max")
	}
	switch c.OutputFormat {
	case "", "png", "jpeg", "jpg":
	default:
		return errors.New("config: OutputFormat must be png or jpeg")
	}
	switch c.Naming {
	case "", NamingIndexed, NamingOriginal, NamingOriginalSuffix, NamingPrefixIndexed:
	default:
		return errors.New("config: unknown naming pattern")
	}
	return nil
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/encore/internal/projection"
	"github.com/shopspring/decimal"
)

// Config holds all encore configuration.
type Config struct {
	Database DatabaseConfig    `toml:"database"`
	Log      LogConfig         `toml:"log"`
	Venue    VenueConfig       `toml:"venue"`
	Report   ReportConfig      `toml:"report"`
	Labels   map[string]string `toml:"labels,omitempty"`
}

type DatabaseConfig struct {
	Path string `toml:"path,omitempty"`
}

// LogConfig controls the diagnostic logger. Output goes to stderr so that
// command output on stdout stays clean.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// VenueConfig tunes venue cost projection.
type VenueConfig struct {
	// AllDayHours is the hour count billed for an all-day occurrence at a
	// per-hour venue.
	AllDayHours float64 `toml:"all_day_hours"`
	// OvernightPolicy is "clamp" (end before start bills zero hours) or
	// "wrap" (the end time falls on the next day).
	OvernightPolicy string `toml:"overnight_policy"`
}

type ReportConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Venue: VenueConfig{
			AllDayHours:     8,
			OvernightPolicy: string(projection.OvernightClamp),
		},
		Report: ReportConfig{
			CurrencySymbol: "$",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "encore")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "encore")
}

// Path returns the config file path. ENCORE_CONFIG overrides the default.
func Path() string {
	if p := os.Getenv("ENCORE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at Path, then applies environment overrides.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't
// exist, then applies environment overrides and validates the result.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ENCORE_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ENCORE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ENCORE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func defaultDBPath() string {
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, "encore", "encore.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".encore", "encore.db")
}

// Validate rejects values the rest of the program cannot interpret.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: invalid value %q (text, json)", c.Log.Format)
	}
	if c.Venue.AllDayHours <= 0 || c.Venue.AllDayHours > 24 {
		return fmt.Errorf("venue.all_day_hours: must be between 0 and 24, got %v", c.Venue.AllDayHours)
	}
	switch projection.OvernightPolicy(c.Venue.OvernightPolicy) {
	case projection.OvernightClamp, projection.OvernightWrap:
	default:
		return fmt.Errorf("venue.overnight_policy: invalid value %q (clamp, wrap)", c.Venue.OvernightPolicy)
	}
	return nil
}

// VenueOptions converts the venue section into projection options.
func (c Config) VenueOptions() projection.VenueOptions {
	return projection.VenueOptions{
		AllDayHours: decimal.NewFromFloat(c.Venue.AllDayHours),
		Overnight:   projection.OvernightPolicy(c.Venue.OvernightPolicy),
	}
}

// NewLogger builds the diagnostic logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log.level: invalid value %q (debug, info, warn, error)", s)
	}
	return level, nil
}

// Package config loads statline configuration from the XDG config dir.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/statline/internal/renewal"
)

// Config holds all statline configuration.
type Config struct {
	General    GeneralConfig         `toml:"general"`
	Appearance AppearanceConfig      `toml:"appearance"`
	Plans      map[string]PlanConfig `toml:"plans,omitempty"`
}

// GeneralConfig holds render preferences.
type GeneralConfig struct {
	// PreferHostCost selects the host-supplied cost figure over the
	// internal estimate when the host provides one.
	PreferHostCost bool `toml:"prefer_host_cost"`
	// StateDB overrides the session state database location.
	StateDB string `toml:"state_db,omitempty"`
	// ShowTallies includes per-tool completed counts in the line.
	ShowTallies bool `toml:"show_tallies"`
}

// AppearanceConfig holds output styling settings.
type AppearanceConfig struct {
	// Plain disables ANSI styling entirely.
	Plain bool `toml:"plain"`
	// Separator between segments; defaults to " | ".
	Separator string `toml:"separator,omitempty"`
}

// PlanConfig is one named subscription plan as written in config.toml.
type PlanConfig struct {
	Kind       string `toml:"kind"`   // "monthly" or "yearly"
	Anchor     string `toml:"anchor"` // first billing date, 2006-01-02
	RenewalDay int    `toml:"renewal_day,omitempty"`
}

// Plan converts the config entry into a scheduler plan. ok is false when
// the entry is malformed; the caller omits the segment instead of
// guessing.
func (p PlanConfig) Plan(name string) (renewal.Plan, bool) {
	anchor, err := time.Parse("2006-01-02", p.Anchor)
	if err != nil {
		return renewal.Plan{}, false
	}
	kind := renewal.Kind(p.Kind)
	if kind != renewal.Monthly && kind != renewal.Yearly {
		return renewal.Plan{}, false
	}
	return renewal.Plan{Name: name, Kind: kind, Anchor: anchor, Day: p.RenewalDay}, true
}

// RenewalPlans returns the valid configured plans sorted by name so the
// rendered order is stable across ticks.
func (c Config) RenewalPlans() []renewal.Plan {
	names := make([]string, 0, len(c.Plans))
	for name := range c.Plans {
		names = append(names, name)
	}
	sort.Strings(names)

	plans := make([]renewal.Plan, 0, len(names))
	for _, name := range names {
		if p, ok := c.Plans[name].Plan(name); ok {
			plans = append(plans, p)
		}
	}
	return plans
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			PreferHostCost: false,
			ShowTallies:    true,
		},
		Appearance: AppearanceConfig{
			Separator: " | ",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "statline")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "statline")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Appearance.Separator == "" {
		cfg.Appearance.Separator = " | "
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// StatePath resolves the session state database path: config override
// first, then the XDG state default.
func StatePath(cfg Config, fallback string) string {
	if cfg.General.StateDB != "" {
		return cfg.General.StateDB
	}
	return fallback
}

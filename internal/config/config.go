package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General  GeneralConfig  `toml:"general"`
	Analysis AnalysisConfig `toml:"analysis"`
	Report   ReportConfig   `toml:"report"`
}

type GeneralConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"` // live view refresh
}

// AnalysisConfig holds the parameters the usage computation runs with.
type AnalysisConfig struct {
	UsageThresholdHoursPerDay      float64 `toml:"usage_threshold_hours_per_day"`
	TemperatureThresholdFahrenheit float64 `toml:"temperature_threshold_fahrenheit"`
	WindowDays                     int     `toml:"window_days"`
}

// ReportConfig holds presentation-only knobs.
type ReportConfig struct {
	// Averages within this many hours under the usage threshold render
	// as "near" rather than "far below".
	NearBufferHours float64 `toml:"near_buffer_hours"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			PollIntervalSeconds: 10,
		},
		Analysis: AnalysisConfig{
			UsageThresholdHoursPerDay:      16.0,
			TemperatureThresholdFahrenheit: 90.0,
			WindowDays:                     7,
		},
		Report: ReportConfig{
			NearBufferHours: 2.0,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "brace_tracker.toml"
	}
	return filepath.Join(home, ".config", "brace-tracker", "config.toml")
}

// Load reads the config at path, falling back to defaults when the
// file does not exist. Use LoadRequired when the user explicitly named
// the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadRequired reads the config at path and errors if it is missing.
func LoadRequired(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), fmt.Errorf("config file not found: %s", path)
	}
	return Load(path)
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate rejects parameter combinations the analysis layer treats as
// caller contract violations.
func (c Config) Validate() error {
	if c.Analysis.UsageThresholdHoursPerDay <= 0 {
		return fmt.Errorf("usage_threshold_hours_per_day must be positive, got %v", c.Analysis.UsageThresholdHoursPerDay)
	}
	if c.Analysis.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", c.Analysis.WindowDays)
	}
	if c.Report.NearBufferHours < 0 {
		return fmt.Errorf("near_buffer_hours must not be negative, got %v", c.Report.NearBufferHours)
	}
	if c.General.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll_interval_seconds must be positive, got %d", c.General.PollIntervalSeconds)
	}
	return nil
}

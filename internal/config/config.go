// Package config provides configuration utilities for the application.
package config

import (
	"fmt"

	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
	KeyDBPath    = "source.db"
	KeyRecords   = "source.records"
	KeySeed      = "source.seed"
	KeyYear      = "source.year"
	KeyTheme     = "ui.theme"
	KeyDebugLog  = "ui.debug_log"
)

// Config holds the settings that pick and shape the record source and UI.
type Config struct {
	Source SourceConfig
	UI     UIConfig
}

// SourceConfig selects where records come from. An empty DBPath means
// records are generated in memory.
type SourceConfig struct {
	DBPath  string
	Records int
	Seed    int64
	Year    int
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme    string
	DebugLog string
}

// SetDefaults registers default values with Viper.
func SetDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "console")
	viper.SetDefault(KeyRecords, source.DefaultRecordCount)
	viper.SetDefault(KeySeed, source.DefaultSeed)
	viper.SetDefault(KeyYear, source.DefaultYear)
	viper.SetDefault(KeyTheme, "default")
}

// Load reads configuration from Viper (config file, SALES_ env vars and
// bound flags, in Viper's precedence) and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{
			DBPath:  ExpandPath(viper.GetString(KeyDBPath)),
			Records: viper.GetInt(KeyRecords),
			Seed:    viper.GetInt64(KeySeed),
			Year:    viper.GetInt(KeyYear),
		},
		UI: UIConfig{
			Theme:    viper.GetString(KeyTheme),
			DebugLog: ExpandPath(viper.GetString(KeyDebugLog)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Source.Records < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", common.ErrInvalidConfig, KeyRecords, c.Source.Records)
	}
	if c.Source.Year < 1 || c.Source.Year > 9999 {
		return fmt.Errorf("%w: %s must be between 1 and 9999, got %d", common.ErrInvalidConfig, KeyYear, c.Source.Year)
	}
	return nil
}

// Generator returns the generator settings for this configuration.
func (c *Config) Generator() source.GeneratorConfig {
	return source.GeneratorConfig{
		Count: c.Source.Records,
		Seed:  c.Source.Seed,
		Year:  c.Source.Year,
	}
}

// Package config provides Viper-based configuration loading for the unique tools.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RulesetConfig locates the rulesets to load.
type RulesetConfig struct {
	// BaseFolder is the base ruleset folder.
	BaseFolder string `mapstructure:"base_folder"`
	// ModFolders are extension mods layered over the base, in order.
	ModFolders []string `mapstructure:"mod_folders"`
	// WatchDebounce is how long the watcher waits after the last file event
	// before reloading.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// ValidationConfig tunes the validator and its report.
type ValidationConfig struct {
	MisspellingThreshold float64 `mapstructure:"misspelling_threshold"`
	TryFixUnknown        bool    `mapstructure:"try_fix_unknown"`
	// ReportFormat is "yaml" or "text".
	ReportFormat string `mapstructure:"report_format"`
	// MinSeverity hides findings below it: "OK", "Warning" or "Error".
	MinSeverity string `mapstructure:"min_severity"`
}

// AutoupdateConfig holds deprecated-unique rewrite settings.
type AutoupdateConfig struct {
	// MaxChainSteps bounds replacement chains; zero means the catalog size.
	MaxChainSteps int  `mapstructure:"max_chain_steps"`
	DryRun        bool `mapstructure:"dry_run"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Ruleset    RulesetConfig    `mapstructure:"ruleset"`
	Validation ValidationConfig `mapstructure:"validation"`
	Autoupdate AutoupdateConfig `mapstructure:"autoupdate"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRuleset(c.Ruleset); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateValidation(c.Validation); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Autoupdate.MaxChainSteps < 0 {
		errs = append(errs, fmt.Sprintf("autoupdate.max_chain_steps must be >= 0, got %d", c.Autoupdate.MaxChainSteps))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRuleset(r RulesetConfig) error {
	var errs []string
	for i, m := range r.ModFolders {
		if m == "" {
			errs = append(errs, fmt.Sprintf("ruleset.mod_folders[%d] must not be empty", i))
		}
	}
	if r.WatchDebounce < 0 {
		errs = append(errs, "ruleset.watch_debounce must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateValidation(v ValidationConfig) error {
	var errs []string
	if v.MisspellingThreshold < 0 || v.MisspellingThreshold > 1 {
		errs = append(errs, fmt.Sprintf("validation.misspelling_threshold must be within [0, 1], got %g", v.MisspellingThreshold))
	}
	validFormats := map[string]bool{"yaml": true, "text": true}
	if !validFormats[v.ReportFormat] {
		errs = append(errs, fmt.Sprintf("validation.report_format must be one of [yaml, text], got %q", v.ReportFormat))
	}
	validSeverities := map[string]bool{"OK": true, "Warning": true, "Error": true}
	if !validSeverities[v.MinSeverity] {
		errs = append(errs, fmt.Sprintf("validation.min_severity must be one of [OK, Warning, Error], got %q", v.MinSeverity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("UNIQUES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ruleset.base_folder", "")
	v.SetDefault("ruleset.mod_folders", []string{})
	v.SetDefault("ruleset.watch_debounce", "250ms")

	v.SetDefault("validation.misspelling_threshold", 0.15)
	v.SetDefault("validation.try_fix_unknown", true)
	v.SetDefault("validation.report_format", "text")
	v.SetDefault("validation.min_severity", "Warning")

	v.SetDefault("autoupdate.max_chain_steps", 0)
	v.SetDefault("autoupdate.dry_run", false)
}

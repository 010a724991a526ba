// Package config provides configuration management for mdcheck using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mdcheck/internal/errors"
	"github.com/thoreinstein/mdcheck/internal/paths"
	"github.com/thoreinstein/mdcheck/internal/validator"
)

// AppName is the application name used for config file naming.
const AppName = "mdcheck"

// Config represents the top-level configuration structure.
type Config struct {
	WorkspaceRoot  string                       `mapstructure:"workspace_root" yaml:"workspace_root"`
	Include        []string                     `mapstructure:"include" yaml:"include"`
	Exclude        []string                     `mapstructure:"exclude" yaml:"exclude"`
	FailOnWarnings bool                         `mapstructure:"fail_on_warnings" yaml:"fail_on_warnings"`
	MaxWorkers     int                          `mapstructure:"max_workers" yaml:"max_workers"`
	RulesFile      string                       `mapstructure:"rules_file" yaml:"rules_file"`
	Validators     map[string]ValidatorSettings `mapstructure:"validators" yaml:"validators"`
}

// ValidatorSettings is the config-file shape of one validator's settings.
// Severity overrides are kept as strings here and parsed when converting
// to the validator package's Config.
type ValidatorSettings struct {
	Enabled           *bool             `mapstructure:"enabled" yaml:"enabled"`
	SeverityOverrides map[string]string `mapstructure:"severity_overrides" yaml:"severity_overrides"`
	Options           map[string]any    `mapstructure:"options" yaml:"options"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("MDCHECK")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("include", []string{"**/*.md", "**/*.mdc"})
	viper.SetDefault("exclude", []string{"**/node_modules/**"})
	viper.SetDefault("fail_on_warnings", false)
	viper.SetDefault("max_workers", 0)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back
// to defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ValidatorConfigs converts the config-file validator settings into the
// validator package's typed configuration.
func (c *Config) ValidatorConfigs() (map[string]validator.Config, error) {
	out := make(map[string]validator.Config, len(c.Validators))
	for name, settings := range c.Validators {
		vc := validator.Config{
			Enabled: settings.Enabled,
			Options: settings.Options,
		}
		if len(settings.SeverityOverrides) > 0 {
			vc.SeverityOverrides = make(map[string]validator.Severity, len(settings.SeverityOverrides))
			for rule, raw := range settings.SeverityOverrides {
				sev, err := validator.ParseSeverity(raw)
				if err != nil {
					return nil, errors.Wrapf(errors.ErrInvalidConfig,
						"validator %q override for %q: %v", name, rule, err)
				}
				vc.SeverityOverrides[rule] = sev
			}
		}
		out[name] = vc
	}
	return out, nil
}

// Package config handles configuration loading and management for dkgw.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ProjectFileName is the project-level override file searched for from the
// working directory upward.
const ProjectFileName = ".dkgw.yaml"

// EnvPrefix prefixes environment overrides, e.g. DKGW_ESTIMATE_GOAL.
const EnvPrefix = "DKGW"

// Config holds all configuration for dkgw.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Validate ValidateConfig `mapstructure:"validate"`
	Estimate EstimateConfig `mapstructure:"estimate"`
	History  HistoryConfig  `mapstructure:"history"`
	Output   OutputConfig   `mapstructure:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level"`
	// File, when set, receives a copy of every log line.
	File string `mapstructure:"file"`
}

// ValidateConfig holds settings for the validate command.
type ValidateConfig struct {
	CheckEncoding bool   `mapstructure:"check_encoding"`
	FailOnError   bool   `mapstructure:"fail_on_error"`
	Format        string `mapstructure:"format"`
}

// EstimateConfig holds settings for the word-count estimator.
type EstimateConfig struct {
	Goal        int64  `mapstructure:"goal"`
	SectionsDir string `mapstructure:"sections_dir"`
}

// HistoryConfig holds run-history settings.
type HistoryConfig struct {
	// Path is the SQLite file runs are recorded to. Empty disables recording.
	Path string `mapstructure:"path"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	Color bool `mapstructure:"color"`
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"log.level",
	"log.file",
	"validate.check_encoding",
	"validate.fail_on_error",
	"validate.format",
	"estimate.goal",
	"estimate.sections_dir",
	"history.path",
	"output.color",
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (DKGW_ prefix)
// 2. Project config (.dkgw.yaml in current directory or parent)
// 3. User config (~/.config/dkgw/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		if err := mergeFile(v, projectConfig); err != nil {
			return nil, err
		}
	}

	return finish(v)
}

// LoadFromPath loads defaults overlaid with a specific file, then the
// environment. Used for --config and in tests.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return finish(v)
}

// LoadUser loads defaults overlaid with the user config file only. Project
// files, environment variables and flags are left out so the result can be
// edited and written back with Save.
func LoadUser() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path := GetUserConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile merges a project config file into v; the file takes precedence.
func mergeFile(v *viper.Viper, path string) error {
	projectViper := viper.New()
	projectViper.SetConfigFile(path)
	if err := projectViper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading project config %s: %w", path, err)
	}
	if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
		return fmt.Errorf("merging project config: %w", err)
	}
	return nil
}

// finish applies environment overrides and decodes v.
func finish(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	cfg.History.Path = os.ExpandEnv(cfg.History.Path)

	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Verify checks values that cannot be expressed as defaults.
func (c *Config) Verify() error {
	switch c.Validate.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid validate.format %q: want text, json or yaml", c.Validate.Format)
	}
	if c.Estimate.Goal <= 0 {
		return fmt.Errorf("invalid estimate.goal %d: must be positive", c.Estimate.Goal)
	}
	return nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(GetUserConfigPath())

	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("validate.check_encoding", cfg.Validate.CheckEncoding)
	v.Set("validate.fail_on_error", cfg.Validate.FailOnError)
	v.Set("validate.format", cfg.Validate.Format)
	v.Set("estimate.goal", cfg.Estimate.Goal)
	v.Set("estimate.sections_dir", cfg.Estimate.SectionsDir)
	v.Set("history.path", cfg.History.Path)
	v.Set("output.color", cfg.Output.Color)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("validate.check_encoding", d.Validate.CheckEncoding)
	v.SetDefault("validate.fail_on_error", d.Validate.FailOnError)
	v.SetDefault("validate.format", d.Validate.Format)

	v.SetDefault("estimate.goal", d.Estimate.Goal)
	v.SetDefault("estimate.sections_dir", d.Estimate.SectionsDir)

	v.SetDefault("history.path", d.History.Path)

	v.SetDefault("output.color", d.Output.Color)
}

// getUserConfigDir returns the XDG config directory for dkgw.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dkgw")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "dkgw")
	}
	return filepath.Join(home, ".config", "dkgw")
}

// findProjectConfig searches for .dkgw.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Validate: ValidateConfig{
			CheckEncoding: false,
			FailOnError:   true,
			Format:        "text",
		},
		Estimate: EstimateConfig{
			Goal:        1_000_000_000,
			SectionsDir: "sektioner",
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

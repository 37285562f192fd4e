package config

import (
	"fmt"
	"strconv"
	"strings"
)

// GetValue returns a configuration value by dot-notation key.
func GetValue(cfg *Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "log.level":
		return cfg.Log.Level, nil
	case "log.file":
		return cfg.Log.File, nil
	case "validate.check_encoding":
		return strconv.FormatBool(cfg.Validate.CheckEncoding), nil
	case "validate.fail_on_error":
		return strconv.FormatBool(cfg.Validate.FailOnError), nil
	case "validate.format":
		return cfg.Validate.Format, nil
	case "estimate.goal":
		return strconv.FormatInt(cfg.Estimate.Goal, 10), nil
	case "estimate.sections_dir":
		return cfg.Estimate.SectionsDir, nil
	case "history.path":
		return cfg.History.Path, nil
	case "output.color":
		return strconv.FormatBool(cfg.Output.Color), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// SetValue sets a configuration value by dot-notation key.
func SetValue(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "validate.check_encoding":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for validate.check_encoding: %w", err)
		}
		cfg.Validate.CheckEncoding = b
	case "validate.fail_on_error":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for validate.fail_on_error: %w", err)
		}
		cfg.Validate.FailOnError = b
	case "validate.format":
		cfg.Validate.Format = value
	case "estimate.goal":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for estimate.goal: %w", err)
		}
		cfg.Estimate.Goal = n
	case "estimate.sections_dir":
		cfg.Estimate.SectionsDir = value
	case "history.path":
		cfg.History.Path = value
	case "output.color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for output.color: %w", err)
		}
		cfg.Output.Color = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return cfg.Verify()
}

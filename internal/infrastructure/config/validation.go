package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateDock(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateDock(config *Config) []string {
	var validationErrors []string
	dock := config.Dock

	for name, size := range map[string]float64{
		"dock.left_size":   dock.LeftSize,
		"dock.right_size":  dock.RightSize,
		"dock.top_size":    dock.TopSize,
		"dock.bottom_size": dock.BottomSize,
	} {
		if size <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be positive", name))
		}
	}

	if dock.MinSplitRatio <= 0 || dock.MinSplitRatio >= 1 {
		validationErrors = append(validationErrors, "dock.min_split_ratio must be between 0 and 1 exclusive")
	}
	if dock.MaxSplitRatio <= 0 || dock.MaxSplitRatio >= 1 {
		validationErrors = append(validationErrors, "dock.max_split_ratio must be between 0 and 1 exclusive")
	}
	if dock.MinSplitRatio >= dock.MaxSplitRatio {
		validationErrors = append(validationErrors, "dock.min_split_ratio must be less than dock.max_split_ratio")
	}
	if dock.DefaultSplitRatio < dock.MinSplitRatio || dock.DefaultSplitRatio > dock.MaxSplitRatio {
		validationErrors = append(validationErrors, "dock.default_split_ratio must be within [min_split_ratio, max_split_ratio]")
	}
	if dock.CollapsedSize <= 0 {
		validationErrors = append(validationErrors, "dock.collapsed_size must be positive")
	}
	if dock.DragThreshold < 0 {
		validationErrors = append(validationErrors, "dock.drag_threshold must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a valid level", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "json", "console", "auto", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format %q must be json, console or auto", config.Logging.Format))
	}
	return validationErrors
}

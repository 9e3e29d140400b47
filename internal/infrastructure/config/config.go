// Package config handles configuration loading, watching, and reloading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atelierhq/atelier/internal/domain/entity"
)

const (
	appName  = "atelier"
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for atelier.
type Config struct {
	Dock     DockConfig     `mapstructure:"dock" toml:"dock" json:"dock"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
}

// DockConfig defines the docking layout defaults and interaction tuning.
type DockConfig struct {
	// LeftSize, RightSize, TopSize and BottomSize are the initial edge
	// region sizes in logical pixels.
	LeftSize   float64 `mapstructure:"left_size" toml:"left_size" json:"left_size"`
	RightSize  float64 `mapstructure:"right_size" toml:"right_size" json:"right_size"`
	TopSize    float64 `mapstructure:"top_size" toml:"top_size" json:"top_size"`
	BottomSize float64 `mapstructure:"bottom_size" toml:"bottom_size" json:"bottom_size"`
	// CollapsedSize is the footprint a collapsed edge keeps on screen.
	CollapsedSize float64 `mapstructure:"collapsed_size" toml:"collapsed_size" json:"collapsed_size"`
	// MinSplitRatio and MaxSplitRatio bound every split divider.
	MinSplitRatio float64 `mapstructure:"min_split_ratio" toml:"min_split_ratio" json:"min_split_ratio"`
	MaxSplitRatio float64 `mapstructure:"max_split_ratio" toml:"max_split_ratio" json:"max_split_ratio"`
	// DefaultSplitRatio is used when a split is created without an
	// explicit ratio.
	DefaultSplitRatio float64 `mapstructure:"default_split_ratio" toml:"default_split_ratio" json:"default_split_ratio"`
	// DragThreshold is the pointer travel in logical pixels before a
	// press becomes a drag.
	DragThreshold float64 `mapstructure:"drag_threshold" toml:"drag_threshold" json:"drag_threshold"`
	// PersistLayout controls saving the layout snapshot on every change.
	PersistLayout bool `mapstructure:"persist_layout" toml:"persist_layout" json:"persist_layout"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level"`
	Format string `mapstructure:"format" toml:"format" json:"format"`
}

// DatabaseConfig defines where layout snapshots are stored.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Dock: DockConfig{
			LeftSize:          entity.DefaultSideSize,
			RightSize:         entity.DefaultSideSize,
			TopSize:           entity.DefaultTopSize,
			BottomSize:        entity.DefaultBottomSize,
			CollapsedSize:     entity.CollapsedFootprint,
			MinSplitRatio:     entity.DefaultMinRatio,
			MaxSplitRatio:     entity.DefaultMaxRatio,
			DefaultSplitRatio: 0.5,
			DragThreshold:     8,
			PersistLayout:     true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// GetConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetDataDir returns the data directory, honoring XDG_DATA_HOME.
func GetDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// GetDatabaseFile returns the default snapshot database path.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "layouts.db"), nil
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return nil
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Widget WidgetConfig `toml:"widget"`
	Log    LogConfig    `toml:"log"`
}

// WidgetConfig maps widget-related settings.
type WidgetConfig struct {
	RowWidth   *int  `toml:"row-width"`
	FPS        *int  `toml:"fps"`
	ShowDigits *bool `toml:"show-digits"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Sources SourcesConfig `toml:"sources"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

// SourcesConfig maps input file settings.
type SourcesConfig struct {
	API        *string `toml:"api"`
	Sheet      *string `toml:"sheet"`
	SheetName  *string `toml:"sheet-name"`
	Attendance *string `toml:"attendance"`
	IDField    *string `toml:"id-field"`
}

// OutputConfig maps output document settings.
type OutputConfig struct {
	Path *string `toml:"path"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level *string `toml:"level"`
	JSON  *bool   `toml:"json"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

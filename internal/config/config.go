// Package config loads goalie settings from ~/.goalie/config.yaml. A missing
// file means defaults; a malformed file is an error.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the sqlite database. Defaults to ~/.goalie.
	DataDir string `yaml:"data_dir"`

	// Separator splits the fields of the time-logging shorthand.
	Separator string `yaml:"separator"`
	// MaxFields caps how many shorthand fields are recognized.
	MaxFields int `yaml:"max_fields"`

	// DayMarker starts a review day: sessions before the first one whose
	// description contains it are discarded.
	DayMarker string `yaml:"day_marker"`
	// UpkeepTag and UpkeepDescriptions collapse matching sessions into one
	// UpkeepLabel group in daily reviews.
	UpkeepTag          string   `yaml:"upkeep_tag"`
	UpkeepLabel        string   `yaml:"upkeep_label"`
	UpkeepDescriptions []string `yaml:"upkeep_descriptions"`

	// WindowPaddingHours pads review windows on both sides so sessions that
	// straddle midnight still show up.
	WindowPaddingHours int `yaml:"window_padding_hours"`

	// BoardLimit caps each column of the ranking board.
	BoardLimit int `yaml:"board_limit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Separator:          ",",
		MaxFields:          4,
		DayMarker:          "sleep",
		UpkeepTag:          "upkeep",
		UpkeepLabel:        "upkeep",
		WindowPaddingHours: 2,
		BoardLimit:         40,
	}
}

// Load reads the config file at path, filling unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Separator == "" {
		cfg.Separator = ","
	}
	if cfg.MaxFields <= 0 {
		cfg.MaxFields = 4
	}
	if cfg.WindowPaddingHours <= 0 {
		cfg.WindowPaddingHours = 2
	}
	if cfg.BoardLimit <= 0 {
		cfg.BoardLimit = 40
	}
	return cfg, nil
}

// LoadDefault reads ~/.goalie/config.yaml.
func LoadDefault() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	dir := filepath.Join(home, ".goalie")
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// DBPath is the sqlite database location under the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "goalie.db")
}

// Package config reads process configuration from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings. Command-line flags
// override these where both exist.
type Config struct {
	// ContentDir is the directory of .lua content files.
	ContentDir string `env:"EMBERWOOD_DATA"`
	// SavePath is the save file location.
	SavePath string `env:"EMBERWOOD_SAVE"`
	// Seed fixes the run seed. 0 means seed from the clock.
	Seed int64 `env:"EMBERWOOD_SEED"`
	// Plain disables the TUI and all styling.
	Plain bool `env:"EMBERWOOD_PLAIN"`
}

// Parse reads the environment and fills in defaults for unset paths.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SavePath == "" {
		home, _ := os.UserHomeDir()
		cfg.SavePath = filepath.Join(home, ".emberwood", "save.json")
	}
	return cfg, nil
}

// Package config persists application settings in a JSON sidecar file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when no config file exists yet.
var ErrNotFound = errors.New("config not found")

// FileName is the name of the sidecar file.
const FileName = "config.json"

// Config is the persisted state.
type Config struct {
	// MaxViewportSize is the canvas size stored by auto-configure, [w, h].
	MaxViewportSize [2]int `json:"max_viewport_size"`
}

// HasViewport reports whether a usable canvas size is stored.
func (c *Config) HasViewport() bool {
	return c != nil && c.MaxViewportSize[0] > 0 && c.MaxViewportSize[1] > 0
}

// DefaultPath is config.json under the user config directory, or beside
// the working directory when that cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "VectorBoard", FileName)
}

// Load reads the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	log.Printf("[CONFIG] Loaded %s: viewport %dx%d", path, cfg.MaxViewportSize[0], cfg.MaxViewportSize[1])
	return &cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	log.Printf("[CONFIG] Saved %s", path)
	return nil
}

// Package config loads the detector configuration: the physical rig
// geometry, the estimator tuning constants and server settings.
//
// Configuration lives in a YAML file. Missing keys keep their defaults, so a
// file only needs to name what differs from the calibrated rig:
//
//	geometry:
//	  fence_distance: 3500
//	estimator:
//	  rod_length: 24
//	workers: 8
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
	"github.com/ironsheep/ring-target-mcp/internal/imaging"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "RING_TARGET_CONFIG"

// Config is the complete server configuration.
type Config struct {
	// Geometry is the sensor and fence layout used to derive the cutoff.
	Geometry detection.Geometry `yaml:"geometry"`

	// Estimator holds the tuning constants of the center and radius
	// estimators.
	Estimator detection.Params `yaml:"estimator"`

	// Workers bounds concurrent frame detections in batch calls.
	Workers int `yaml:"workers"`

	// OverlayColor is the default hex color for drawn target circles.
	OverlayColor string `yaml:"overlay_color"`

	// CacheFrames bounds the number of decoded frames kept in memory.
	CacheFrames int `yaml:"cache_frames"`
}

// Default returns the configuration for the calibrated rig.
func Default() Config {
	return Config{
		Geometry:     detection.DefaultGeometry(),
		Estimator:    detection.DefaultParams(),
		Workers:      runtime.NumCPU(),
		OverlayColor: "#FF0000",
		CacheFrames:  imaging.DefaultCacheFrames,
	}
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	if err := c.Estimator.Validate(); err != nil {
		return fmt.Errorf("estimator: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CacheFrames < 1 {
		return fmt.Errorf("cache_frames must be at least 1, got %d", c.CacheFrames)
	}
	if _, err := imaging.ParseColor(c.OverlayColor); err != nil {
		return fmt.Errorf("overlay_color: %w", err)
	}
	return nil
}

// Load reads a YAML configuration file on top of Default().
//
// An empty path returns the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by RING_TARGET_CONFIG, or the defaults
// when it is unset. A set but missing file is an error.
func LoadFromEnv() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%s points to a missing file: %w", EnvConfigPath, err)
	}
	return cfg, err
}

// Save writes c to path as YAML.
func Save(c Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

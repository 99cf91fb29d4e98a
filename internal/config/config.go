// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"asciiline/internal/geo"
	"asciiline/internal/overlay"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration file
type Config struct {
	Viewport      Viewport `yaml:"viewport"`
	Overlay       string   `yaml:"overlay"`
	BasemapDir    string   `yaml:"basemap_dir,omitempty"`
	ExportDir     string   `yaml:"export_dir,omitempty"`
	AspectRatio   float64  `yaml:"aspect_ratio"`
	HighwayDetail int      `yaml:"highway_detail"`
}

// Viewport is the region shown at startup
type Viewport struct {
	Latitude      float64 `yaml:"latitude"`
	Longitude     float64 `yaml:"longitude"`
	LatitudeSpan  float64 `yaml:"latitude_span"`
	LongitudeSpan float64 `yaml:"longitude_span"`
}

// Default returns the built-in configuration: San Francisco, line overlay
func Default() *Config {
	return &Config{
		Viewport: Viewport{
			Latitude:      37.78825,
			Longitude:     -122.4324,
			LatitudeSpan:  0.0922,
			LongitudeSpan: 0.0421,
		},
		Overlay:       overlay.StyleLine.String(),
		AspectRatio:   2.0,
		HighwayDetail: 4,
	}
}

// Load reads the YAML configuration file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values a run cannot start without
func (c *Config) Validate() error {
	var errs []error

	if c.Viewport.LatitudeSpan <= 0 || c.Viewport.LongitudeSpan <= 0 {
		errs = append(errs, errors.New("viewport spans must be positive"))
	}

	if _, err := overlay.ParseStyle(c.Overlay); err != nil {
		errs = append(errs, err)
	}

	if c.AspectRatio < 1.0 || c.AspectRatio > 4.0 {
		errs = append(errs, fmt.Errorf("aspect ratio must be between 1.0 and 4.0, got %.1f", c.AspectRatio))
	}

	if c.HighwayDetail < 1 || c.HighwayDetail > 10 {
		errs = append(errs, fmt.Errorf("highway detail level must be between 1 and 10, got %d", c.HighwayDetail))
	}

	return errors.Join(errs...)
}

// InitialViewport returns the configured startup viewport
func (c *Config) InitialViewport() geo.Viewport {
	return geo.Viewport{
		Center: geo.Coordinate{
			Latitude:  c.Viewport.Latitude,
			Longitude: c.Viewport.Longitude,
		},
		LatitudeSpan:  c.Viewport.LatitudeSpan,
		LongitudeSpan: c.Viewport.LongitudeSpan,
	}
}

// OverlayStyle returns the configured overlay style, falling back to line
func (c *Config) OverlayStyle() overlay.Style {
	style, err := overlay.ParseStyle(c.Overlay)
	if err != nil {
		return overlay.StyleLine
	}
	return style
}

package canopy

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"Canopy/internal/calc/column"
	"Canopy/internal/calc/loads"
	"Canopy/internal/calc/truss"
)

var ErrInvalidConfig = errors.New("invalid canopy configuration")

// Config describes one canopy. Dimensions are in millimeters.
type Config struct {
	Span          float64      `json:"span" yaml:"span"`
	Rise          float64      `json:"rise" yaml:"rise"`
	ColumnSpacing float64      `json:"column_spacing" yaml:"column_spacing"`
	TrussSpacing  float64      `json:"truss_spacing" yaml:"truss_spacing"`
	Region        loads.Region `json:"region" yaml:"region"`

	// RoofAngle in degrees; derived from span and rise when nil.
	RoofAngle    *float64 `json:"roof_angle,omitempty" yaml:"roof_angle,omitempty"`
	ColumnHeight float64  `json:"column_height,omitempty" yaml:"column_height,omitempty"`
	PanelSize    float64  `json:"panel_size,omitempty" yaml:"panel_size,omitempty"`
	// WindLoad in kg/m²; defaults to loads.DefaultWindKgM2.
	WindLoad *float64 `json:"wind_load,omitempty" yaml:"wind_load,omitempty"`
}

// LoadConfig reads a YAML canopy description.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML (or JSON, which YAML accepts) and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyDefaults() {
	if c.ColumnHeight <= 0 {
		c.ColumnHeight = column.DefaultHeightMM
	}
	if c.PanelSize <= 0 {
		c.PanelSize = truss.DefaultPanelMM
	}
	if c.WindLoad == nil {
		w := loads.DefaultWindKgM2
		c.WindLoad = &w
	}
}

// Validate checks the region first so a bad code fails before any geometry
// work.
func (c Config) Validate() error {
	if _, err := loads.ParseRegion(string(c.Region)); err != nil {
		return err
	}
	for _, v := range []float64{c.Span, c.Rise, c.ColumnSpacing, c.TrussSpacing, c.ColumnHeight, c.PanelSize} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: dimensions must be finite", ErrInvalidConfig)
		}
	}
	for _, v := range []*float64{c.RoofAngle, c.WindLoad} {
		if v != nil && (math.IsInf(*v, 0) || math.IsNaN(*v)) {
			return fmt.Errorf("%w: roof angle and wind load must be finite", ErrInvalidConfig)
		}
	}
	switch {
	case !(c.Span > 0):
		return fmt.Errorf("%w: span must be positive", ErrInvalidConfig)
	case !(c.Rise > 0):
		return fmt.Errorf("%w: rise must be positive", ErrInvalidConfig)
	case !(c.ColumnSpacing > 0):
		return fmt.Errorf("%w: column spacing must be positive", ErrInvalidConfig)
	case !(c.TrussSpacing > 0):
		return fmt.Errorf("%w: truss spacing must be positive", ErrInvalidConfig)
	case c.RoofAngle != nil && (*c.RoofAngle < 0 || *c.RoofAngle > 90):
		return fmt.Errorf("%w: roof angle %.1f out of range", ErrInvalidConfig, *c.RoofAngle)
	case c.WindLoad != nil && *c.WindLoad < 0:
		return fmt.Errorf("%w: negative wind load", ErrInvalidConfig)
	}
	if n := truss.PanelCount(c.Span, c.PanelSize); n > truss.MaxPanels {
		return fmt.Errorf("%w: span %.0f mm with panel %.0f mm gives %d panels, at most %d",
			ErrInvalidConfig, c.Span, c.PanelSize, n, truss.MaxPanels)
	}
	return nil
}

// Angle is the roof angle used for the snow factor, degrees.
func (c Config) Angle() float64 {
	if c.RoofAngle != nil {
		return *c.RoofAngle
	}
	return truss.RoofAngle(c.Span, c.Rise)
}

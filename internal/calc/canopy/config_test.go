package canopy

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"Canopy/internal/calc/loads"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	data := []byte(`
span: 6000
rise: 900
column_spacing: 3000
truss_spacing: 1500
region: III
roof_angle: 15
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Span != 6000 || cfg.Region != loads.RegionIII || cfg.RoofAngle == nil || *cfg.RoofAngle != 15 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ColumnHeight != 2000 || cfg.PanelSize != 1200 || cfg.WindLoad == nil || *cfg.WindLoad != 30 {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigSave(t *testing.T) {
	angle := 20.0
	cfg := Config{Span: 4000, Rise: 700, ColumnSpacing: 2000, TrussSpacing: 1000, Region: loads.RegionV, RoofAngle: &angle}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Span != 4000 || got.Region != loads.RegionV || *got.RoofAngle != 20 {
		t.Errorf("saved config read back as %+v", got)
	}
}

func TestParseConfigAcceptsJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"span": 5000, "rise": 800, "column_spacing": 2500, "truss_spacing": 1250, "region": "II"}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Region != loads.RegionII || cfg.TrussSpacing != 1250 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Span: 6000, Rise: 900, ColumnSpacing: 3000, TrussSpacing: 1500, Region: loads.RegionIII}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := base
	bad.Region = "IX"
	bad.Span = -1
	if err := bad.Validate(); !errors.Is(err, loads.ErrInvalidRegion) {
		t.Errorf("region must be checked first, got %v", err)
	}

	neg := -5.0
	steep := 95.0
	inf := math.Inf(1)
	nan := math.NaN()
	for _, c := range []func(*Config){
		func(c *Config) { c.Span = inf },
		func(c *Config) { c.Rise = nan },
		func(c *Config) { c.TrussSpacing = inf },
		func(c *Config) { c.ColumnHeight = inf },
		func(c *Config) { c.PanelSize = inf },
		func(c *Config) { c.WindLoad = &inf },
		func(c *Config) { c.RoofAngle = &nan },
		func(c *Config) { c.PanelSize = 0.1 },
		func(c *Config) { c.Span = 1e9 },
		func(c *Config) { c.Span = 1e300; c.PanelSize = 1 },
		func(c *Config) { c.Span = 0 },
		func(c *Config) { c.Rise = -10 },
		func(c *Config) { c.ColumnSpacing = 0 },
		func(c *Config) { c.TrussSpacing = 0 },
		func(c *Config) { c.WindLoad = &neg },
		func(c *Config) { c.RoofAngle = &steep },
	} {
		cfg := base
		c(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%+v: error = %v, want ErrInvalidConfig", cfg, err)
		}
	}

	// the largest truss still accepted: 200 panels of 100 mm
	big := base
	big.Span, big.PanelSize = 20000, 100
	if err := big.Validate(); err != nil {
		t.Errorf("200 panels rejected: %v", err)
	}
}

func TestCalculateRejectsOversizedPanelCount(t *testing.T) {
	cfg := Config{Span: 12000, Rise: 900, ColumnSpacing: 3000, TrussSpacing: 1500, Region: loads.RegionIII, PanelSize: 2}
	if _, err := Calculate(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestParseConfigInfinity(t *testing.T) {
	cfg, err := ParseConfig([]byte("span: .inf\nrise: 900\ncolumn_spacing: 3000\ntruss_spacing: 1500\nregion: III\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestAngleDerived(t *testing.T) {
	cfg := Config{Span: 6000, Rise: 3000}
	if got := cfg.Angle(); got < 44.999 || got > 45.001 {
		t.Errorf("Angle = %v, want 45", got)
	}
}

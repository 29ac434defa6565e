package loads

import (
	"errors"
	"fmt"
	"math"
)

type Region string

const (
	RegionI    Region = "I"
	RegionII   Region = "II"
	RegionIII  Region = "III"
	RegionIV   Region = "IV"
	RegionV    Region = "V"
	RegionVI   Region = "VI"
	RegionVII  Region = "VII"
	RegionVIII Region = "VIII"
)

// Regions lists the snow regions in ascending order of ground snow weight.
var Regions = []Region{RegionI, RegionII, RegionIII, RegionIV, RegionV, RegionVI, RegionVII, RegionVIII}

// Ground snow weight Sg, kg/m² (SP 20.13330, map 1, appendix Zh).
var groundSnow = map[Region]float64{
	RegionI:    80,
	RegionII:   120,
	RegionIII:  180,
	RegionIV:   240,
	RegionV:    320,
	RegionVI:   400,
	RegionVII:  480,
	RegionVIII: 560,
}

const (
	// SnowFactor is the load reliability factor γf for snow.
	SnowFactor = 1.4
	// DefaultWindKgM2 stands in for a full wind calculation.
	DefaultWindKgM2 = 30.0
	// Gravity converts kgf to N.
	Gravity = 9.81
)

var ErrInvalidRegion = errors.New("invalid snow region")

type Input struct {
	Region         Region   `json:"region"`
	RoofAngleDeg   float64  `json:"roof_angle_deg"`
	TrussSpacingMM float64  `json:"truss_spacing_mm"`
	SpanMM         float64  `json:"span_mm"`
	WindKgM2       *float64 `json:"wind_kg_m2,omitempty"`
}

type Result struct {
	GroundSnowKgM2 float64 `json:"ground_snow_kg_m2"`
	Mu             float64 `json:"mu"`
	SnowKgM2       float64 `json:"snow_kg_m2"`
	WindKgM2       float64 `json:"wind_kg_m2"`
	LineLoadKNM    float64 `json:"line_load_kn_m"`
	TotalLoadKN    float64 `json:"total_load_kn"`
	Notes          string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	snow, err := SnowLoad(in.Region, in.RoofAngleDeg)
	if err != nil {
		return Result{}, err
	}
	if in.TrussSpacingMM <= 0 || in.SpanMM <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	wind := WindLoad()
	if in.WindKgM2 != nil {
		wind = *in.WindKgM2
	}
	q := LineLoad(snow, wind, in.TrussSpacingMM)
	return Result{
		GroundSnowKgM2: groundSnow[in.Region],
		Mu:             RoofFactor(in.RoofAngleDeg),
		SnowKgM2:       snow,
		WindKgM2:       wind,
		LineLoadKNM:    q,
		TotalLoadKN:    q * in.SpanMM / 1000.0,
		Notes:          "Snow per SP 20.13330 (Ce = Ct = 1), wind taken as a fixed value.",
	}, nil
}

// SnowLoad returns the design snow load on the horizontal projection of the
// roof in kg/m², rounded to two decimals.
func SnowLoad(region Region, roofAngleDeg float64) (float64, error) {
	sg, ok := groundSnow[region]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	s0 := RoofFactor(roofAngleDeg) * sg
	return round2(s0 * SnowFactor), nil
}

// RoofFactor is the ground-to-roof transition coefficient μ.
func RoofFactor(roofAngleDeg float64) float64 {
	switch {
	case roofAngleDeg > 60:
		return 0
	case roofAngleDeg > 25:
		return (60 - roofAngleDeg) / 35
	default:
		return 1
	}
}

func WindLoad() float64 {
	return DefaultWindKgM2
}

// LineLoad converts surface loads in kg/m² to a line load on one truss, kN/m.
func LineLoad(snowKgM2, windKgM2, trussSpacingMM float64) float64 {
	perMeter := (snowKgM2 + windKgM2) * (trussSpacingMM / 1000.0)
	return perMeter * Gravity / 1000.0
}

func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if _, ok := groundSnow[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegion, s)
	}
	return r, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

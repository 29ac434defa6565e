// Package weld checks fillet welds that attach truss members all round the
// tube perimeter.
package weld

import (
	"fmt"
	"math"

	"Canopy/internal/calc/section"
)

const (
	// DefaultFvwMPa is the design shear strength of the weld metal.
	DefaultFvwMPa = 180.0
	DefaultGammaM = 1.25
	// MinSizeMM is the smallest fillet leg laid on thin-wall tube.
	MinSizeMM = 3.0
	// throat depth of a fillet weld relative to its leg
	throat = 0.7
)

type Input struct {
	WeldSizeMM   float64 `json:"weld_size_mm"`
	WeldLengthMM float64 `json:"weld_length_mm"`
	FvwMPa       float64 `json:"fvw_mpa"`
	GammaM       float64 `json:"gamma_m"`
	ForceKN      float64 `json:"force_kn"`
}

type Result struct {
	CapacityKN  float64 `json:"capacity_kn"`
	Utilization float64 `json:"utilization"`
	OK          bool    `json:"ok"`
	Notes       string  `json:"notes"`
}

// Calculate checks a given fillet weld against an axial force.
func Calculate(in Input) (Result, error) {
	if in.WeldSizeMM <= 0 || in.WeldLengthMM <= 0 || in.ForceKN < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	applyDefaults(&in.FvwMPa, &in.GammaM)
	capacity := Capacity(in.WeldSizeMM, in.WeldLengthMM, in.FvwMPa, in.GammaM)
	util := in.ForceKN / capacity
	return Result{
		CapacityKN:  capacity,
		Utilization: util,
		OK:          util <= 1.0,
		Notes:       "Fillet weld in shear through the throat, a = 0.7 s.",
	}, nil
}

type RecommendInput struct {
	ForceKN      float64 `json:"force_kn"`
	WeldLengthMM float64 `json:"weld_length_mm"`
	FvwMPa       float64 `json:"fvw_mpa"`
	GammaM       float64 `json:"gamma_m"`
}

type RecommendResult struct {
	RequiredSizeMM float64 `json:"required_size_mm"`
	Notes          string  `json:"notes"`
}

// Recommend returns the fillet leg needed to carry the force, never below
// MinSizeMM.
func Recommend(in RecommendInput) (RecommendResult, error) {
	if in.ForceKN < 0 || in.WeldLengthMM <= 0 {
		return RecommendResult{}, fmt.Errorf("invalid input")
	}
	applyDefaults(&in.FvwMPa, &in.GammaM)
	return RecommendResult{
		RequiredSizeMM: RequiredSize(in.ForceKN, in.WeldLengthMM, in.FvwMPa, in.GammaM),
		Notes:          "Recommended fillet weld size for shear.",
	}, nil
}

// Capacity of a fillet weld, kN.
func Capacity(sizeMM, lengthMM, fvw, gammaM float64) float64 {
	return throat * sizeMM * lengthMM * fvw / gammaM / 1000.0
}

// RequiredSize solves Capacity = force for the leg size, mm.
func RequiredSize(forceKN, lengthMM, fvw, gammaM float64) float64 {
	s := math.Abs(forceKN) * 1000.0 * gammaM / (throat * lengthMM * fvw)
	return math.Max(s, MinSizeMM)
}

// Joint is the weld at one end of a truss member.
type Joint struct {
	LengthMM       float64 `json:"length_mm"`
	RequiredSizeMM float64 `json:"required_size_mm"`
	SizeMM         float64 `json:"size_mm"`
	CapacityKN     float64 `json:"capacity_kn"`
	Utilization    float64 `json:"utilization"`
	// Excess is set when the leg would exceed the tube wall.
	Excess bool `json:"excess"`
}

// ForMember sizes the all-round weld of a member end to the next whole
// millimeter.
func ForMember(forceKN float64, p section.Profile) Joint {
	length := p.Perimeter()
	req := RequiredSize(forceKN, length, DefaultFvwMPa, DefaultGammaM)
	size := math.Ceil(req)
	capacity := Capacity(size, length, DefaultFvwMPa, DefaultGammaM)
	return Joint{
		LengthMM:       length,
		RequiredSizeMM: req,
		SizeMM:         size,
		CapacityKN:     capacity,
		Utilization:    math.Abs(forceKN) / capacity,
		Excess:         p.Thickness > 0 && size > 1.2*p.Thickness,
	}
}

func applyDefaults(fvw, gammaM *float64) {
	if *fvw <= 0 {
		*fvw = DefaultFvwMPa
	}
	if *gammaM <= 0 {
		*gammaM = DefaultGammaM
	}
}

// Package anchor checks the anchor bolts of a column base plate.
package anchor

import (
	"fmt"
	"math"

	"Canopy/internal/calc/loads"
)

const (
	DefaultBolts  = 4
	DefaultFyMPa  = 235.0
	DefaultGammaM = 1.25
)

// Diameters are the bolt sizes tried by Select, mm.
var Diameters = []float64{16, 20, 24, 30}

type Input struct {
	BoltDiameterMM float64 `json:"bolt_diameter_mm"`
	BoltCount      int     `json:"bolt_count"`
	FyMPa          float64 `json:"fy_mpa"`
	GammaM         float64 `json:"gamma_m"`
	TensionKN      float64 `json:"tension_kn"`
	ShearKN        float64 `json:"shear_kn"`
}

type Result struct {
	TensionCapacityKN float64 `json:"tension_capacity_kn"`
	ShearCapacityKN   float64 `json:"shear_capacity_kn"`
	Utilization       float64 `json:"utilization"`
	OK                bool    `json:"ok"`
	Notes             string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.BoltDiameterMM <= 0 || in.BoltCount <= 0 || in.TensionKN < 0 || in.ShearKN < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.FyMPa <= 0 {
		in.FyMPa = DefaultFyMPa
	}
	if in.GammaM <= 0 {
		in.GammaM = DefaultGammaM
	}
	area := math.Pi * in.BoltDiameterMM * in.BoltDiameterMM / 4.0 // mm2
	n := float64(in.BoltCount)
	nrd := n * area * in.FyMPa / in.GammaM / 1000.0 // kN
	vrd := 0.6 * nrd
	util := math.Pow(in.TensionKN/nrd, 2) + math.Pow(in.ShearKN/vrd, 2)
	return Result{
		TensionCapacityKN: nrd,
		ShearCapacityKN:   vrd,
		Utilization:       util,
		OK:                util <= 1.0,
		Notes:             "Bolt steel only; concrete cone and pull-out are not checked.",
	}, nil
}

// Base is the anchor group chosen for one column.
type Base struct {
	DiameterMM float64 `json:"diameter_mm"`
	Count      int     `json:"count"`
	UpliftKN   float64 `json:"uplift_kn"`
	ShearKN    float64 `json:"shear_kn"`
	Check      Result  `json:"check"`
}

// Select returns the smallest diameter from Diameters that passes with
// DefaultBolts bolts, or the largest one with Check.OK false.
func Select(upliftKN, shearKN float64) (Base, error) {
	var b Base
	for _, d := range Diameters {
		res, err := Calculate(Input{BoltDiameterMM: d, BoltCount: DefaultBolts, TensionKN: upliftKN, ShearKN: shearKN})
		if err != nil {
			return Base{}, err
		}
		b = Base{DiameterMM: d, Count: DefaultBolts, UpliftKN: upliftKN, ShearKN: shearKN, Check: res}
		if res.OK {
			break
		}
	}
	return b, nil
}

// Uplift is the wind suction on the roof area carried by one column, kN.
// The roof is taken to lift with the full wind pressure.
func Uplift(windKgM2, spanMM, columnSpacingMM float64) float64 {
	area := spanMM / 2 / 1000 * columnSpacingMM / 1000 // m2
	return windKgM2 * area * loads.Gravity / 1000
}

package column

import (
	"fmt"
	"math"

	"Canopy/internal/calc/section"
)

// DefaultHeightMM is used when a column height is not given.
const DefaultHeightMM = 2000.0

type Input struct {
	HeightMM float64 `json:"height_mm"`
	KFactor  float64 `json:"k_factor"`
	Profile  string  `json:"profile"`
	LoadKN   float64 `json:"load_kn"`
}

type Result struct {
	Profile     section.Profile `json:"profile"`
	PcrKN       float64         `json:"pcr_kn"`
	Utilization float64         `json:"utilization"`
	OK          bool            `json:"ok"`
	Notes       string          `json:"notes"`
}

// Calculate runs the Euler check for a catalog profile under axial load.
func Calculate(in Input) (Result, error) {
	if in.HeightMM <= 0 || in.LoadKN < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	p, ok := section.Lookup(in.Profile)
	if !ok {
		return Result{}, fmt.Errorf("unknown profile %q", in.Profile)
	}
	if in.KFactor <= 0 {
		in.KFactor = section.ColumnMu
	}

	pcr := CriticalLoad(p, in.HeightMM, in.KFactor)
	util := in.LoadKN / pcr

	return Result{
		Profile:     p,
		PcrKN:       pcr,
		Utilization: util,
		OK:          util <= 1.0,
		Notes:       "Euler buckling check for pinned column.",
	}, nil
}

// CriticalLoad is the Euler load π²EI/(μL)² about the weaker axis, kN.
func CriticalLoad(p section.Profile, heightMM, mu float64) float64 {
	l := mu * heightMM / 10 // cm
	return math.Pi * math.Pi * section.ElasticModulus * p.MinInertia() / (l * l)
}

// Design is a sized and checked support column.
type Design struct {
	X        float64           `json:"x_mm"`
	HeightMM float64           `json:"height_mm"`
	LoadKN   float64           `json:"load_kn"`
	Choice   section.Selection `json:"selection"`
	Check    Result            `json:"check"`
}

// Size picks the lightest profile for a pinned column of the given height
// carrying loadKN in compression and verifies it.
func Size(x, heightMM, loadKN float64) (Design, error) {
	if heightMM <= 0 {
		heightMM = DefaultHeightMM
	}
	sel := section.NewSelector(nil, section.ColumnMu).Select(-math.Abs(loadKN), heightMM)
	res, err := Calculate(Input{
		HeightMM: heightMM,
		KFactor:  section.ColumnMu,
		Profile:  sel.Profile.Name,
		LoadKN:   math.Abs(loadKN),
	})
	if err != nil {
		return Design{}, err
	}
	return Design{X: x, HeightMM: heightMM, LoadKN: loadKN, Choice: sel, Check: res}, nil
}

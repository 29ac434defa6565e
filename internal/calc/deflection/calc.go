// Package deflection checks the mid-span deflection of a solved truss by the
// unit load method.
package deflection

import (
	"errors"
	"fmt"

	"Canopy/internal/calc/section"
	"Canopy/internal/calc/truss"
)

// DefaultLimitRatio gives the allowed deflection as span / ratio.
const DefaultLimitRatio = 250.0

var ErrIncomplete = errors.New("truss forces incomplete")

type Result struct {
	DeflectionMM float64 `json:"deflection_mm"`
	LimitMM      float64 `json:"limit_mm"`
	// Ratio is span over deflection, zero when nothing deflects.
	Ratio float64 `json:"ratio"`
	OK    bool    `json:"ok"`
	Notes string  `json:"notes"`
}

// Check sums N·n·L/(E·A) over all members, where N are the forces in sol, n
// the forces from a unit load at the mid-span lower joint and A the member
// areas in cm² indexed by MemberID.
func Check(t *truss.Truss, sol *truss.Solution, areas []float64, limitRatio float64) (Result, error) {
	if len(areas) != t.MemberCount() || len(sol.Forces) != t.MemberCount() {
		return Result{}, fmt.Errorf("invalid input")
	}
	if !sol.Complete {
		return Result{}, ErrIncomplete
	}
	if limitRatio <= 0 {
		limitRatio = DefaultLimitRatio
	}
	mid, ok := t.Locate(t.Span/2, 0)
	if !ok {
		return Result{}, fmt.Errorf("%w: no lower joint at mid-span", truss.ErrInvalidGeometry)
	}
	unit := truss.Solve(t, truss.JointLoads{mid: 1})
	if !unit.Complete {
		return Result{}, ErrIncomplete
	}

	sum := 0.0 // cm
	for _, m := range t.Members() {
		if areas[m.ID] <= 0 {
			return Result{}, fmt.Errorf("member %d has no area", m.ID)
		}
		sum += sol.Forces[m.ID] * unit.Forces[m.ID] * (m.Length / 10) / (section.ElasticModulus * areas[m.ID])
	}
	res := Result{
		DeflectionMM: sum * 10,
		LimitMM:      t.Span / limitRatio,
		Notes:        "Elastic deflection under the design load, joints taken as pinned.",
	}
	if res.DeflectionMM > 0 {
		res.Ratio = t.Span / res.DeflectionMM
	}
	res.OK = res.DeflectionMM <= res.LimitMM
	return res, nil
}

// Package canopy runs the full calculation of a truss canopy: loads, truss
// geometry, member forces, section sizing, welds, columns and the bill of
// materials.
package canopy

import (
	"fmt"

	"Canopy/internal/calc/anchor"
	"Canopy/internal/calc/column"
	"Canopy/internal/calc/deflection"
	"Canopy/internal/calc/loads"
	"Canopy/internal/calc/section"
	"Canopy/internal/calc/truss"
	"Canopy/internal/calc/weld"
)

// ColumnLabel is the bill of materials label for support columns.
const ColumnLabel = "Column"

type Member struct {
	truss.Member
	ForceKN         float64         `json:"force_kn"`
	Solved          bool            `json:"solved"`
	Profile         section.Profile `json:"profile"`
	RequiredArea    float64         `json:"required_area_cm2"`
	RequiredInertia float64         `json:"required_inertia_cm4"`
	Fallback        bool            `json:"fallback"`
	Weld            weld.Joint      `json:"weld"`
}

type Loads struct {
	RoofAngleDeg float64 `json:"roof_angle_deg"`
	SnowKgM2     float64 `json:"snow_kg_m2"`
	WindKgM2     float64 `json:"wind_kg_m2"`
	LineLoadKNM  float64 `json:"line_load_kn_m"`
	TotalLoadKN  float64 `json:"total_load_kn"`
	// UpliftKN is the wind suction carried by one column.
	UpliftKN float64 `json:"uplift_kn"`
}

type Result struct {
	Config        Config          `json:"config"`
	Panels        int             `json:"panels"`
	Nodes         []truss.Node    `json:"nodes"`
	Supports      [2]truss.NodeID `json:"supports"`
	Members       []Member        `json:"members"`
	Specification []section.Item  `json:"specification"`
	Loads         Loads           `json:"loads"`
	Reactions     [2]float64      `json:"reactions_kn"`
	Columns       []column.Design `json:"columns"`
	Anchors       []anchor.Base   `json:"anchors"`
	// Deflection is nil when the forces are incomplete.
	Deflection  *deflection.Result `json:"deflection,omitempty"`
	TotalMassKg float64            `json:"total_mass_kg"`
	// Complete is false when some member forces could not be solved.
	Complete bool `json:"complete"`
	// Oversized is set when any member fell back to the heaviest profile.
	Oversized bool     `json:"oversized"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Calculate runs one canopy calculation. It performs no I/O and keeps no
// state between calls.
func Calculate(cfg Config) (*Result, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	angle := cfg.Angle()
	ld, err := loads.Calculate(loads.Input{
		Region:         cfg.Region,
		RoofAngleDeg:   angle,
		TrussSpacingMM: cfg.TrussSpacing,
		SpanMM:         cfg.Span,
		WindKgM2:       cfg.WindLoad,
	})
	if err != nil {
		return nil, err
	}

	tr, err := truss.Build(cfg.Span, cfg.Rise, cfg.PanelSize)
	if err != nil {
		return nil, err
	}
	sol := truss.Solve(tr, truss.DistributeLoad(tr, ld.TotalLoadKN))

	res := &Result{
		Config:   cfg,
		Panels:   tr.Panels,
		Nodes:    tr.Nodes(),
		Supports: tr.Supports(),
		Loads: Loads{
			RoofAngleDeg: angle,
			SnowKgM2:     ld.SnowKgM2,
			WindKgM2:     ld.WindKgM2,
			LineLoadKNM:  ld.LineLoadKNM,
			TotalLoadKN:  ld.TotalLoadKN,
			UpliftKN:     anchor.Uplift(ld.WindKgM2, cfg.Span, cfg.ColumnSpacing),
		},
		Reactions: sol.Reactions,
		Complete:  sol.Complete,
	}
	if !sol.Complete {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d member forces could not be solved and were taken as zero: %v", len(sol.Unresolved), sol.Unresolved))
	}

	pieces := make([]section.Piece, 0, tr.MemberCount()+2)
	areas := make([]float64, tr.MemberCount())
	for _, m := range tr.Members() {
		force := sol.Force(m.ID)
		sel := section.Select(force, m.Length)
		res.Members = append(res.Members, Member{
			Member:          m,
			ForceKN:         force,
			Solved:          sol.Solved[m.ID],
			Profile:         sel.Profile,
			RequiredArea:    sel.RequiredArea,
			RequiredInertia: sel.RequiredInertia,
			Fallback:        sel.Fallback,
			Weld:            weld.ForMember(force, sel.Profile),
		})
		if sel.Fallback {
			res.Oversized = true
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("member %d (%s, %.1f kN): oversized fallback %s, verify manually", m.ID, m.Category, force, sel.Profile.Name))
		}
		pieces = append(pieces, section.Piece{Label: string(m.Category), LengthMM: m.Length, Profile: sel.Profile})
		areas[m.ID] = sel.Profile.Area
	}

	if sol.Complete {
		d, err := deflection.Check(tr, sol, areas, 0)
		if err != nil {
			return nil, err
		}
		res.Deflection = &d
		if !d.OK {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("mid-span deflection %.1f mm exceeds span/%.0f = %.1f mm", d.DeflectionMM, deflection.DefaultLimitRatio, d.LimitMM))
		}
	}

	// Each column carries the truss reactions gathered over its tributary length.
	share := cfg.ColumnSpacing / cfg.TrussSpacing
	for i, x := range []float64{0, cfg.Span} {
		d, err := column.Size(x, cfg.ColumnHeight, sol.Reactions[i]*share)
		if err != nil {
			return nil, err
		}
		res.Columns = append(res.Columns, d)
		if !d.Check.OK || d.Choice.Fallback {
			res.Oversized = res.Oversized || d.Choice.Fallback
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("column at x=%.0f: %s utilization %.2f", x, d.Choice.Profile.Name, d.Check.Utilization))
		}
		pieces = append(pieces, section.Piece{Label: ColumnLabel, LengthMM: d.HeightMM, Profile: d.Choice.Profile})

		a, err := anchor.Select(res.Loads.UpliftKN, 0)
		if err != nil {
			return nil, err
		}
		res.Anchors = append(res.Anchors, a)
		if !a.Check.OK {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("column at x=%.0f: %d x M%.0f anchors utilization %.2f", x, a.Count, a.DiameterMM, a.Check.Utilization))
		}
	}

	res.Specification = section.Aggregate(pieces)
	res.TotalMassKg = section.TotalMass(res.Specification)
	return res, nil
}

// ByCategory returns the members of a category in member order.
func (r *Result) ByCategory(c truss.Category) []Member {
	var out []Member
	for _, m := range r.Members {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// MaxForces returns the largest tension and the largest compression magnitude.
func (r *Result) MaxForces() (tension, compression float64) {
	for _, m := range r.Members {
		if m.ForceKN > tension {
			tension = m.ForceKN
		}
		if -m.ForceKN > compression {
			compression = -m.ForceKN
		}
	}
	return tension, compression
}

// Package export renders a canopy calculation for people and other tools:
// a plain-text specification, a DXF drawing, an XLSX workbook and PNG/SVG
// elevations.
package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"Canopy/internal/calc/canopy"
)

// LengthNote explains the grouped lengths: posts and diagonals in one group
// differ in length.
const LengthNote = "Length is that of the first member in the group; Total L sums the actual lengths."

// WriteText writes the metal specification table.
func WriteText(w io.Writer, res *canopy.Result) error {
	rule := strings.Repeat("=", 70)
	cfg := res.Config
	fmt.Fprintln(w, "METAL SPECIFICATION")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Canopy %.0fx%.0f mm, region %s\n", cfg.Span, cfg.Rise, cfg.Region)
	fmt.Fprintf(w, "Snow load: %.2f kg/m², wind load: %.2f kg/m²\n", res.Loads.SnowKgM2, res.Loads.WindKgM2)
	fmt.Fprintf(w, "Truss spacing %.0f mm, column spacing %.0f mm, %d panels\n\n", cfg.TrussSpacing, cfg.ColumnSpacing, res.Panels)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Pos\tName\tProfile\tLength, mm\tQty\tTotal L, m\tMass, kg")
	fmt.Fprintln(tw, "---\t----\t-------\t----------\t---\t----------\t--------")
	for i, it := range res.Specification {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f\t%d\t%.2f\t%.2f\n", i+1, it.Label, it.Profile, it.LengthMM, it.Count, it.TotalM, it.MassKg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, LengthNote)
	fmt.Fprintf(w, "Total mass: %.2f kg\n", res.TotalMassKg)
	if d := res.Deflection; d != nil {
		fmt.Fprintf(w, "Mid-span deflection: %.1f mm (limit %.1f mm)\n", d.DeflectionMM, d.LimitMM)
	}
	for i, a := range res.Anchors {
		fmt.Fprintf(w, "Column %d base: %d x M%.0f anchors, uplift %.2f kN\n", i+1, a.Count, a.DiameterMM, a.UpliftKN)
	}
	if !res.Complete {
		fmt.Fprintln(w, "WARNING: the force analysis is incomplete.")
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "! %s\n", warn)
	}
	return nil
}

// Package report renders a canopy calculation as an A4 PDF.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"

	"Canopy/internal/calc/canopy"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

const (
	margin   = 15.0
	pageW    = 210.0
	sketchH  = 60.0
	rowH     = 6.0
	fontBody = 10.0
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Pos", 12, "C"},
	{"Name", 40, "L"},
	{"Profile", 30, "L"},
	{"Length, mm", 28, "R"},
	{"Qty", 15, "R"},
	{"Total L, m", 27, "R"},
	{"Mass, kg", 28, "R"},
}

// Write renders the report to w.
func Write(w io.Writer, res *canopy.Result, meta Meta) error {
	if meta.Title == "" {
		meta.Title = "Canopy Truss Calculation"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	cfg := res.Config
	heading(pdf, "Input and loads")
	pdf.SetFont("Helvetica", "", fontBody)
	for _, line := range []string{
		fmt.Sprintf("Span %.0f mm, rise %.0f mm, %d panels", cfg.Span, cfg.Rise, res.Panels),
		fmt.Sprintf("Truss spacing %.0f mm, column spacing %.0f mm, column height %.0f mm", cfg.TrussSpacing, cfg.ColumnSpacing, cfg.ColumnHeight),
		fmt.Sprintf("Snow region %s, roof angle %.1f°", cfg.Region, res.Loads.RoofAngleDeg),
		fmt.Sprintf("Snow %.2f kg/m², wind %.2f kg/m², line load %.3f kN/m, total %.2f kN",
			res.Loads.SnowKgM2, res.Loads.WindKgM2, res.Loads.LineLoadKNM, res.Loads.TotalLoadKN),
		fmt.Sprintf("Support reactions %.2f kN and %.2f kN", res.Reactions[0], res.Reactions[1]),
	} {
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	heading(pdf, "Truss")
	sketch(pdf, res)

	heading(pdf, "Bill of materials")
	pdf.SetFont("Helvetica", "B", fontBody)
	for _, c := range columns {
		pdf.CellFormat(c.width, rowH, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", fontBody)
	for i, it := range res.Specification {
		cells := []string{
			fmt.Sprint(i + 1), it.Label, it.Profile, fmt.Sprintf("%.0f", it.LengthMM),
			fmt.Sprint(it.Count), fmt.Sprintf("%.2f", it.TotalM), fmt.Sprintf("%.2f", it.MassKg),
		}
		for j, c := range columns {
			pdf.CellFormat(c.width, rowH, tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "B", fontBody)
	pdf.CellFormat(152, rowH, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, rowH, fmt.Sprintf("%.2f", res.TotalMassKg), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Checks")
	pdf.SetFont("Helvetica", "", fontBody)
	var checks []string
	if d := res.Deflection; d != nil {
		checks = append(checks, fmt.Sprintf("Mid-span deflection %.1f mm, limit %.1f mm (span/%.0f)", d.DeflectionMM, d.LimitMM, res.Config.Span/d.LimitMM))
	}
	for i, c := range res.Columns {
		line := fmt.Sprintf("Column %d: %s, N = %.2f kN, Pcr = %.1f kN", i+1, c.Choice.Profile.Name, c.LoadKN, c.Check.PcrKN)
		if i < len(res.Anchors) {
			a := res.Anchors[i]
			line += fmt.Sprintf(", base %d x M%.0f, uplift %.2f kN", a.Count, a.DiameterMM, a.UpliftKN)
		}
		checks = append(checks, line)
	}
	for _, line := range checks {
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if len(res.Warnings) > 0 || !res.Complete {
		heading(pdf, "Warnings")
		pdf.SetFont("Helvetica", "", fontBody)
		pdf.SetTextColor(180, 0, 0)
		for _, warn := range res.Warnings {
			pdf.MultiCell(0, 5, tr("- "+warn), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}
	if meta.Notes != "" {
		heading(pdf, "Notes")
		pdf.SetFont("Helvetica", "", fontBody)
		pdf.MultiCell(0, 5, tr(meta.Notes), "", "L", false)
	}

	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, text)
	pdf.Ln(8)
}

// sketch draws the truss scaled into the text width, compression red and
// tension blue.
func sketch(pdf *gofpdf.Fpdf, res *canopy.Result) {
	width := pageW - 2*margin
	scale := math.Min(width/res.Config.Span, sketchH/res.Config.Rise)
	left := margin + (width-res.Config.Span*scale)/2
	base := pdf.GetY() + sketchH

	pdf.SetLineWidth(0.4)
	for _, m := range res.Members {
		switch {
		case !m.Solved:
			pdf.SetDrawColor(150, 150, 150)
		case m.ForceKN < 0:
			pdf.SetDrawColor(200, 30, 30)
		default:
			pdf.SetDrawColor(30, 60, 200)
		}
		a, b := res.Nodes[m.Start], res.Nodes[m.End]
		pdf.Line(left+a.X*scale, base-a.Y*scale, left+b.X*scale, base-b.Y*scale)
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetY(base + 6)
}

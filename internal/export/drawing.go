package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"Canopy/internal/calc/canopy"
)

var (
	compressionColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	tensionColor     = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	unsolvedColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// Formats accepted by WriteDrawing.
var Formats = []string{"png", "svg"}

// WriteDrawing renders the truss elevation with members coloured by the sign
// of their force and line width growing with its magnitude.
func WriteDrawing(w io.Writer, res *canopy.Result, format string) error {
	if format != "png" && format != "svg" {
		return fmt.Errorf("unsupported drawing format %q", format)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Truss %.0f x %.0f mm, region %s", res.Config.Span, res.Config.Rise, res.Config.Region)
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	maxT, maxC := res.MaxForces()
	peak := math.Max(maxC, maxT)

	for _, m := range res.Members {
		a, b := res.Nodes[m.Start], res.Nodes[m.End]
		line, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return err
		}
		line.LineStyle = memberStyle(m, peak)
		p.Add(line)
	}

	for _, c := range res.Columns {
		line, err := plotter.NewLine(plotter.XYs{{X: c.X, Y: 0}, {X: c.X, Y: -c.HeightMM}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(3)
		line.LineStyle.Color = color.Black
		p.Add(line)
	}

	joints := make(plotter.XYs, len(res.Nodes))
	for i, n := range res.Nodes {
		joints[i] = plotter.XY{X: n.X, Y: n.Y}
	}
	sc, err := plotter.NewScatter(joints)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Color = color.Black
	p.Add(sc)

	lbl := plotter.XYLabels{}
	for _, m := range res.Members {
		if !m.Solved {
			continue
		}
		a, b := res.Nodes[m.Start], res.Nodes[m.End]
		lbl.XYs = append(lbl.XYs, plotter.XY{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
		lbl.Labels = append(lbl.Labels, fmt.Sprintf("%.1f", m.ForceKN))
	}
	if len(lbl.XYs) > 0 {
		labels, err := plotter.NewLabels(lbl)
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	width := 24 * vg.Centimeter
	height := width * vg.Length(drawingAspect(res))
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func memberStyle(m canopy.Member, peak float64) draw.LineStyle {
	style := draw.LineStyle{Width: vg.Points(1)}
	switch {
	case !m.Solved:
		style.Color = unsolvedColor
		style.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		return style
	case m.ForceKN < 0:
		style.Color = compressionColor
	default:
		style.Color = tensionColor
	}
	if peak > 0 {
		style.Width = vg.Points(1 + 3*math.Abs(m.ForceKN)/peak)
	}
	return style
}

// drawingAspect keeps flat trusses readable.
func drawingAspect(res *canopy.Result) float64 {
	h := res.Config.Rise
	if len(res.Columns) > 0 {
		h += res.Columns[0].HeightMM
	}
	if res.Config.Span <= 0 {
		return 0.5
	}
	return math.Min(math.Max(h/res.Config.Span, 0.35), 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

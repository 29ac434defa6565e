package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Canopy/internal/calc/canopy"
	"Canopy/internal/calc/loads"
	"Canopy/internal/calc/report"
	"Canopy/internal/export"
)

var (
	// Geometry and load inputs
	calcConfig        string
	calcSpan          float64
	calcRise          float64
	calcColumnSpacing float64
	calcTrussSpacing  float64
	calcRegion        string
	calcRoofAngle     float64
	calcColumnHeight  float64
	calcPanel         float64
	calcWind          float64

	// Outputs
	calcJSON       bool
	calcSaveConfig string
	calcTxt        string
	calcDXF        string
	calcXLSX       string
	calcPDF        string
	calcPNG        string
	calcSVG        string
	calcProject    string
	calcAuthor     string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate one canopy",
	Long: `Calculate one canopy from flags or a YAML file and print the member
forces and the bill of materials.

Examples:
  # 6 m span, 0.9 m rise, trusses every 1.5 m on columns every 3 m
  canopy calc --span 6000 --rise 900 --truss-spacing 1500 --column-spacing 3000 --region III

  # From a file, writing a DXF drawing and a PDF report
  canopy calc --config canopy.yaml --dxf truss.dxf --pdf report.pdf`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	f := calcCmd.Flags()
	f.StringVarP(&calcConfig, "config", "c", "", "YAML canopy description; flags given explicitly override it")
	f.Float64Var(&calcSpan, "span", 0, "Truss span (mm)")
	f.Float64Var(&calcRise, "rise", 0, "Truss rise at mid-span (mm)")
	f.Float64Var(&calcColumnSpacing, "column-spacing", 0, "Column spacing along the canopy (mm)")
	f.Float64Var(&calcTrussSpacing, "truss-spacing", 0, "Truss spacing (mm)")
	f.StringVarP(&calcRegion, "region", "r", "", "Snow region I..VIII")
	f.Float64Var(&calcRoofAngle, "roof-angle", 0, "Roof angle (deg); derived from span and rise when omitted")
	f.Float64Var(&calcColumnHeight, "column-height", 0, "Column height (mm), default 2000")
	f.Float64Var(&calcPanel, "panel", 0, "Target panel width (mm), default 1200")
	f.Float64Var(&calcWind, "wind", loads.DefaultWindKgM2, "Wind load (kg/m²)")

	f.BoolVar(&calcJSON, "json", false, "Print the full result as JSON instead of tables")
	f.StringVar(&calcSaveConfig, "save-config", "", "Write the effective configuration as YAML")
	f.StringVar(&calcTxt, "txt", "", "Write the text specification to a file")
	f.StringVar(&calcDXF, "dxf", "", "Write a DXF drawing")
	f.StringVar(&calcXLSX, "xlsx", "", "Write an XLSX workbook")
	f.StringVar(&calcPDF, "pdf", "", "Write a PDF report")
	f.StringVar(&calcPNG, "png", "", "Write a PNG elevation")
	f.StringVar(&calcSVG, "svg", "", "Write an SVG elevation")
	f.StringVar(&calcProject, "project", "", "Project name for the PDF report")
	f.StringVar(&calcAuthor, "author", "", "Author for the PDF report")
}

func calcInput(cmd *cobra.Command) (canopy.Config, error) {
	var cfg canopy.Config
	if calcConfig != "" {
		var err error
		if cfg, err = canopy.LoadConfig(calcConfig); err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if f.Changed(name) || calcConfig == "" {
			*dst = v
		}
	}
	set("span", &cfg.Span, calcSpan)
	set("rise", &cfg.Rise, calcRise)
	set("column-spacing", &cfg.ColumnSpacing, calcColumnSpacing)
	set("truss-spacing", &cfg.TrussSpacing, calcTrussSpacing)
	set("column-height", &cfg.ColumnHeight, calcColumnHeight)
	set("panel", &cfg.PanelSize, calcPanel)
	if f.Changed("region") || calcConfig == "" {
		cfg.Region = loads.Region(calcRegion)
	}
	if f.Changed("roof-angle") {
		angle := calcRoofAngle
		cfg.RoofAngle = &angle
	}
	if f.Changed("wind") || cfg.WindLoad == nil {
		wind := calcWind
		cfg.WindLoad = &wind
	}
	return cfg, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := calcInput(cmd)
	if err != nil {
		return err
	}
	res, err := canopy.Calculate(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if calcJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else if err := printResult(out, res); err != nil {
		return err
	}

	if calcSaveConfig != "" {
		if err := res.Config.Save(calcSaveConfig); err != nil {
			return err
		}
	}
	meta := report.Meta{Project: calcProject, Author: calcAuthor}
	for _, o := range []struct {
		path  string
		write func(io.Writer, *canopy.Result) error
	}{
		{calcTxt, export.WriteText},
		{calcDXF, export.WriteDXF},
		{calcXLSX, export.WriteXLSX},
		{calcPNG, func(w io.Writer, r *canopy.Result) error { return export.WriteDrawing(w, r, "png") }},
		{calcSVG, func(w io.Writer, r *canopy.Result) error { return export.WriteDrawing(w, r, "svg") }},
		{calcPDF, func(w io.Writer, r *canopy.Result) error { return report.Write(w, r, meta) }},
	} {
		if o.path == "" {
			continue
		}
		if err := writeFile(o.path, res, o.write); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", o.path)
	}
	return nil
}

func writeFile(path string, res *canopy.Result, write func(io.Writer, *canopy.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printResult(out io.Writer, res *canopy.Result) error {
	cfg := res.Config
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     TRUSS CANOPY %.0f x %.0f mm, REGION %s\n", cfg.Span, cfg.Rise, cfg.Region)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOADS")
	fmt.Fprintf(w, "  Roof angle\t%.1f\tdeg\n", res.Loads.RoofAngleDeg)
	fmt.Fprintf(w, "  Snow\t%.2f\tkg/m²\n", res.Loads.SnowKgM2)
	fmt.Fprintf(w, "  Wind\t%.2f\tkg/m²\n", res.Loads.WindKgM2)
	fmt.Fprintf(w, "  Line load\t%.3f\tkN/m\n", res.Loads.LineLoadKNM)
	fmt.Fprintf(w, "  Total on truss\t%.2f\tkN\n", res.Loads.TotalLoadKN)
	fmt.Fprintf(w, "  Reactions\t%.2f / %.2f\tkN\n", res.Reactions[0], res.Reactions[1])
	w.Flush()
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMember\tNodes\tL, mm\tN, kN\tProfile\tWeld, mm")
	for _, m := range res.Members {
		force := fmt.Sprintf("%.2f", m.ForceKN)
		if !m.Solved {
			force = "n/a"
		}
		profile := m.Profile.Name
		if m.Fallback {
			profile += " (!)"
		}
		fmt.Fprintf(w, "%d\t%s\t%d-%d\t%.0f\t%s\t%s\t%.0f\n", m.ID, m.Category, m.Start, m.End, m.Length, force, profile, m.Weld.SizeMM)
	}
	w.Flush()
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Column\tN, kN\tProfile\tPcr, kN\tUtilization")
	for _, c := range res.Columns {
		fmt.Fprintf(w, "x=%.0f\t%.2f\t%s\t%.1f\t%.2f\n", c.X, c.LoadKN, c.Choice.Profile.Name, c.Check.PcrKN, c.Check.Utilization)
	}
	w.Flush()
	fmt.Fprintln(out)

	return export.WriteText(out, res)
}

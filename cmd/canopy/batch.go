package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Canopy/internal/calc/canopy"
	"Canopy/internal/calc/importer"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <file.xlsx>",
	Short: "Calculate every canopy listed in a workbook",
	Long: `Read canopies from the first sheet of an XLSX workbook, one per row after
the header:

  span, rise, column_spacing, truss_spacing, region[, roof_angle, column_height]

and print a summary line for each.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent calculations (default: one per CPU)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	rows, rejected, err := importer.ReadFile(args[0])
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt)
	defer cancel()
	items := canopy.CalculateBatch(ctx, importer.Configs(rows), batchWorkers)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Row\tSpan\tRise\tRegion\tSnow, kg/m²\tMass, kg\tStatus")
	for i, it := range items {
		cfg := rows[i].Config
		if it.Error != "" {
			fmt.Fprintf(w, "%d\t%.0f\t%.0f\t%s\t\t\terror: %s\n", rows[i].Row, cfg.Span, cfg.Rise, cfg.Region, it.Error)
			continue
		}
		status := "ok"
		switch {
		case !it.Result.Complete:
			status = "incomplete"
		case it.Result.Oversized:
			status = "oversized"
		}
		fmt.Fprintf(w, "%d\t%.0f\t%.0f\t%s\t%.2f\t%.2f\t%s\n", rows[i].Row, cfg.Span, cfg.Rise, cfg.Region,
			it.Result.Loads.SnowKgM2, it.Result.TotalMassKg, status)
	}
	for _, r := range rejected {
		fmt.Fprintf(w, "%d\t\t\t\t\t\trejected: %s\n", r.Row, r.Err)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n := canopy.Failed(items) + len(rejected); n > 0 {
		return fmt.Errorf("%d of %d rows failed", n, len(items)+len(rejected))
	}
	return nil
}

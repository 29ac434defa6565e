package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Canopy/internal/calc/section"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the steel profile catalog",
	Run:   runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Profile\tA, cm²\tIx, cm⁴\tIy, cm⁴\tMass, kg/m")
	for _, p := range section.Catalog() {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.1f\t%.2f\n", p.Name, p.Area, p.Ix, p.Iy, p.MassPerMeter)
	}
	w.Flush()
}

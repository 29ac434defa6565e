package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Steel truss canopy calculator",
	Long: `canopy - steel truss canopy calculator

Generates a symmetric W-pattern roof truss, derives snow and wind loads
for the region (SP 20.13330), solves member forces by the method of
joints and picks the lightest square hollow section for every member
and support column.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

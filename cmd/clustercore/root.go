package main

import (
	"github.com/spf13/cobra"
)

// configFile is the location of the TOML configuration file, set by
// the persistent --config flag on every subcommand, per
// internal/cmd/cmd.go's Root.PersistentFlags() wiring.
var configFile string

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "./clustercore.toml", "configuration file location")
	Root.AddCommand(runCmd)
	Root.AddCommand(networkCmd)
	Root.AddCommand(checkpointCmd)

	networkCmd.AddCommand(networkDescribeCmd)
	checkpointCmd.AddCommand(checkpointInspectCmd)
}

// Root is the clustercore root command.
var Root = &cobra.Command{
	Use:   "clustercore",
	Short: "A reactive cluster-transport core for plasma-surface interaction simulation.",
	Long: `clustercore simulates defect-cluster dynamics (He, D, T, V, I and
alloy species) in a fusion first-wall material's near-surface region.
Use the subcommands below to run a simulation or inspect its inputs
and outputs.`,
	DisableAutoGenTag: true,
}

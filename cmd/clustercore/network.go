package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fusionwall/clustercore/config"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect a network description file.",
	DisableAutoGenTag: true,
}

var networkDescribeCmd = &cobra.Command{
	Use:   "describe <network-file>",
	Short: "Print the cluster catalogue built from a network description file.",
	Long: `describe loads a network description file standalone, outside of a
full run, and prints the composition, reaction radius and formation
energy of every cluster it defines — a quick way to check a
description file before handing it to run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		net, reactions, err := config.LoadNetwork(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%d clusters, %d reactions\n", net.Size(), len(reactions))
		for _, c := range net.GetAll() {
			fmt.Printf("id=%d kind=%v composition=%v reaction_radius=%g formation_energy=%g\n",
				c.ID, c.Kind, c.Composition, c.ReactionRadius, c.FormationEnergy)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

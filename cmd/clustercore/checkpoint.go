package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fusionwall/clustercore/checkpoint"
)

var checkpointCmd = &cobra.Command{
	Use:               "checkpoint",
	Short:             "Inspect checkpoint files.",
	DisableAutoGenTag: true,
}

var checkpointInspectCmd = &cobra.Command{
	Use:   "inspect <checkpoint-file>",
	Short: "Print a checkpoint file's time, surface position and summary counters.",
	Long: `inspect reads a checkpoint file written by run's -start_stop dump and
prints its simulation time, collective counters, surface position and
the number of nonzero grid entries it carries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := checkpoint.NewReader()
		s, err := r.Read(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("time=%g surface_pos=%d grid_points=%d nonzero_entries=%d\n",
			s.Time, s.SurfacePos, len(s.GridX), len(s.EntryID))
		fmt.Printf("n_interstitial=%g previous_i_flux=%g\n", s.NInterstitial, s.PreviousIFlux)
		fmt.Printf("n_helium=%g previous_he_flux=%g\n", s.NHelium, s.PreviousHeFlux)
		fmt.Printf("n_deuterium=%g previous_d_flux=%g\n", s.NDeuterium, s.PreviousDFlux)
		fmt.Printf("n_tritium=%g previous_t_flux=%g\n", s.NTritium, s.PreviousTFlux)
		return nil
	},
	DisableAutoGenTag: true,
}

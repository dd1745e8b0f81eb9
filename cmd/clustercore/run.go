package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fusionwall/clustercore/checkpoint"
	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/comm"
	"github.com/fusionwall/clustercore/config"
	"github.com/fusionwall/clustercore/domain"
	"github.com/fusionwall/clustercore/event"
	"github.com/fusionwall/clustercore/flux"
	"github.com/fusionwall/clustercore/monitor"
	"github.com/fusionwall/clustercore/reaction"
	"github.com/fusionwall/clustercore/temperature"
	"github.com/fusionwall/clustercore/trapmutation"
	"github.com/fusionwall/clustercore/transport"
)

// run flag variables. Each mirrors a spec.md §6 switch on MonitorConfig;
// a flag wins over the config file value only if the user set it.
var (
	flagCheckNegative   float64
	flagCheckCollapse   float64
	flagPlot1D          bool
	flagPlotSeries      bool
	flagPlot2D          bool
	flagPlotPerf        bool
	flagHeliumRetention bool
	flagXenonRetention  bool
	flagStartStop       float64
	flagMaxClusterConc  bool
	flagHeliumCumul     bool
	flagHeliumConc      bool
	flagMeanSize        bool
	flagTempProfile     bool
	flagTridyn          bool
	flagAlloy           bool
	flagSteps           int
)

func init() {
	runCmd.Flags().Float64Var(&flagCheckNegative, "check-negative", 0, "zero every concentration below minus this value (values between it and zero are left as they are)")
	runCmd.Flags().Float64Var(&flagCheckCollapse, "check-collapse", 0, "request a clean stop if the step size Δt drops below this value")
	runCmd.Flags().BoolVar(&flagPlot1D, "plot-1d", false, "enable 1-D plot monitor (recorded, not rendered)")
	runCmd.Flags().BoolVar(&flagPlotSeries, "plot-series", false, "enable series plot monitor (recorded, not rendered)")
	runCmd.Flags().BoolVar(&flagPlot2D, "plot-2d", false, "enable 2-D plot monitor (recorded, not rendered)")
	runCmd.Flags().BoolVar(&flagPlotPerf, "plot-perf", false, "enable performance plot monitor (recorded, not rendered)")
	runCmd.Flags().BoolVar(&flagHeliumRetention, "helium-retention", false, "enable helium retention monitor")
	runCmd.Flags().BoolVar(&flagXenonRetention, "xenon-retention", false, "enable xenon retention monitor")
	runCmd.Flags().Float64Var(&flagStartStop, "start-stop", 0, "when nonzero, write one checkpoint at the end of the run (no periodic dumps are made)")
	runCmd.Flags().BoolVar(&flagMaxClusterConc, "max-cluster-conc", false, "enable max-cluster-concentration monitor")
	runCmd.Flags().BoolVar(&flagHeliumCumul, "helium-cumul", false, "enable cumulative helium statistics")
	runCmd.Flags().BoolVar(&flagHeliumConc, "helium-conc", false, "enable helium concentration statistics")
	runCmd.Flags().BoolVar(&flagMeanSize, "mean-size", false, "enable mean cluster size statistics")
	runCmd.Flags().BoolVar(&flagTempProfile, "temp-profile", false, "enable temperature-vs-depth monitor")
	runCmd.Flags().BoolVar(&flagTridyn, "tridyn", false, "TRIDYN 1-D output switch (recorded in the monitor config; run writes no TRIDYN file)")
	runCmd.Flags().BoolVar(&flagAlloy, "alloy", false, "alloy monitor switch (accepted but not used; no alloy-specific monitor is attached)")
	runCmd.Flags().IntVar(&flagSteps, "steps", 100, "number of forward-Euler steps to run")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a cluster-transport core simulation.",
	Long: `run loads a TOML configuration and network description, advances the
concentration slab with the reference forward-Euler integrator, and
invokes whichever monitors the configuration or flags enable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg.Monitor)

		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{})
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}

		net, reactions, err := config.LoadNetwork(cfg.NetworkFile)
		if err != nil {
			return fmt.Errorf("clustercore: run: %w", err)
		}
		net.SetTemperature(1000)

		graph := reaction.NewGraph(net, reactions)
		graph.SetTemperature(net.Temperature())
		diff := transport.NewDiffusion(net)
		rule, err := materialRule(cfg.Material.Name)
		if err != nil {
			return fmt.Errorf("clustercore: run: %w", err)
		}
		tm := trapmutation.NewOperator(net, rule)
		tm.UpdateRate()

		d := domain.New(net, graph, diff, nil, tm, []*flux.Profile{}, temperature.Constant(1000))
		d.CreateSolverContext(cfg.Grid.Mx, cfg.Grid.DX, cfg.Grid.SurfacePercentile, cfg.Grid.RightOffset)

		slab := domain.NewSlab(cfg.Grid.Mx, net.Size())
		d.InitializeConcentration(slab, 0)
		residual := domain.NewSlab(cfg.Grid.Mx, net.Size())

		manipulators := buildMonitors(cfg.Monitor, log)

		sc := &event.SurfaceController{
			Communicator: comm.NewLocal(),
			RhoMaterial:  cfg.Material.RhoMaterial,
			VInit:        cfg.Material.VInit,
		}
		state := &comm.CounterState{}

		dt := cfg.Integrator.DtInit
		var t float64
		for step := 0; step < flagSteps; step++ {
			if err := d.UpdateConcentration(slab, residual, t, 0, cfg.Grid.Mx); err != nil {
				return fmt.Errorf("clustercore: run: step %d: %w", step, err)
			}

			var maxResidual float64
			for xi := range residual {
				for _, r := range residual[xi] {
					if a := math.Abs(r); a > maxResidual {
						maxResidual = a
					}
				}
			}
			if maxResidual > 0 {
				dt = cfg.Integrator.Safety / maxResidual
				if dt > cfg.Integrator.DtMax {
					dt = cfg.Integrator.DtMax
				}
				if dt < cfg.Integrator.DtMin {
					dt = cfg.Integrator.DtMin
				}
			}

			for xi := range slab {
				for k := range slab[xi] {
					slab[xi][k] += dt * residual[xi][k]
				}
			}
			t += dt

			var collapsed bool
			for _, m := range manipulators {
				if err := m(d, slab, t, dt); err != nil {
					if errors.Is(err, monitor.ErrSolverCollapse) {
						collapsed = true
						break
					}
					return fmt.Errorf("clustercore: run: monitor at step %d: %w", step, err)
				}
			}
			if collapsed {
				log.WithField("step", step).Info("clustercore: solver collapse requested, stopping")
				break
			}

			fvalues, err := sc.EventFunction(net, d, slab, state)
			if err != nil {
				return fmt.Errorf("clustercore: run: event function at step %d: %w", step, err)
			}
			advance, retreat := fvalues[0] == 0, fvalues[1] == 0
			if advance || retreat {
				result := sc.PostEvent(d, state, advance, retreat)
				if result.Terminated {
					log.WithField("step", step).Info("clustercore: surface left the grid, stopping")
					break
				}
			}
		}

		if cfg.Monitor.StartStop > 0 {
			w := checkpoint.NewWriter()
			path := fmt.Sprintf("%s/checkpoint-final.cdf", cfg.CheckpointDir)
			if err := w.Write(path, finalState(d, slab, state, t)); err != nil {
				return fmt.Errorf("clustercore: run: writing checkpoint: %w", err)
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

func applyFlagOverrides(cmd *cobra.Command, m *config.MonitorConfig) {
	f := cmd.Flags()
	if f.Changed("check-negative") {
		m.CheckNegative = flagCheckNegative
	}
	if f.Changed("check-collapse") {
		m.CheckCollapse = flagCheckCollapse
	}
	if f.Changed("plot-1d") {
		m.Plot1D = flagPlot1D
	}
	if f.Changed("plot-series") {
		m.PlotSeries = flagPlotSeries
	}
	if f.Changed("plot-2d") {
		m.Plot2D = flagPlot2D
	}
	if f.Changed("plot-perf") {
		m.PlotPerf = flagPlotPerf
	}
	if f.Changed("helium-retention") {
		m.HeliumRetention = flagHeliumRetention
	}
	if f.Changed("xenon-retention") {
		m.XenonRetention = flagXenonRetention
	}
	if f.Changed("start-stop") {
		m.StartStop = flagStartStop
	}
	if f.Changed("max-cluster-conc") {
		m.MaxClusterConc = flagMaxClusterConc
	}
	if f.Changed("helium-cumul") {
		m.HeliumCumul = flagHeliumCumul
	}
	if f.Changed("helium-conc") {
		m.HeliumConc = flagHeliumConc
	}
	if f.Changed("mean-size") {
		m.MeanSize = flagMeanSize
	}
	if f.Changed("temp-profile") {
		m.TempProfile = flagTempProfile
	}
	if f.Changed("tridyn") {
		m.Tridyn = flagTridyn
	}
}

func buildMonitors(m config.MonitorConfig, log *logrus.Logger) []monitor.Manipulator {
	var out []monitor.Manipulator
	if m.CheckNegative != 0 {
		out = append(out, monitor.NegativeClamp(-m.CheckNegative, log))
	}
	if m.CheckCollapse != 0 {
		out = append(out, monitor.CollapseGuard(m.CheckCollapse, log))
	}
	if m.HeliumRetention {
		out = append(out, monitor.Retention(cluster.He, os.Stdout))
	}
	if m.XenonRetention {
		out = append(out, monitor.Retention(cluster.Xe, os.Stdout))
	}
	if m.MaxClusterConc {
		out = append(out, monitor.MaxClusterConc(os.Stdout))
	}
	if m.TempProfile {
		out = append(out, monitor.TemperatureProfile(os.Stdout))
	}
	if m.HeliumCumul || m.HeliumConc || m.MeanSize {
		hs := monitor.HeliumStats{Expression: m.HeliumStatsExpr}
		hm, err := hs.Monitor(os.Stdout)
		if err == nil {
			out = append(out, hm)
		} else if log != nil {
			log.WithError(err).Warn("clustercore: helium stats monitor disabled")
		}
	}
	return out
}

func materialRule(name string) (trapmutation.Rule, error) {
	switch name {
	case "", "W110":
		return trapmutation.W110(), nil
	case "W100":
		return trapmutation.W100(), nil
	case "W111":
		return trapmutation.W111(), nil
	case "W211":
		return trapmutation.W211(), nil
	case "Fe":
		return trapmutation.Fe(), nil
	case "UO2":
		return trapmutation.UO2(), nil
	}
	return nil, fmt.Errorf("unknown material %q", name)
}

func finalState(d *domain.Domain, slab domain.Slab, state *comm.CounterState, t float64) checkpoint.State {
	var xis, ids []int32
	var values []float64
	for xi, row := range slab {
		for id, v := range row {
			if v == 0 {
				continue
			}
			xis = append(xis, int32(xi))
			ids = append(ids, int32(id))
			values = append(values, v)
		}
	}
	return checkpoint.State{
		Time:           t,
		NInterstitial:  state.NInterstitial,
		PreviousIFlux:  state.PreviousIFlux,
		NHelium:        state.NHelium,
		PreviousHeFlux: state.PreviousHeFlux,
		NDeuterium:     state.NDeuterium,
		PreviousDFlux:  state.PreviousDFlux,
		NTritium:       state.NTritium,
		PreviousTFlux:  state.PreviousTFlux,
		GridX:          d.Grid.X,
		SurfacePos:     int32(d.Grid.SurfacePos),
		EntryXi:        xis,
		EntryID:        ids,
		EntryValue:     values,
	}
}

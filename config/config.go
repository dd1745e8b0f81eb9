// Package config loads the TOML-backed run configuration, in the
// teacher's inmaputil/config.go idiom: a *viper.Viper holding the
// decoded document, unmarshaled into typed structs rather than read
// field-by-field.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// MaterialConfig selects the trap-mutation rule and diffusion/rate
// constants for the simulated first-wall material.
type MaterialConfig struct {
	Name            string  `mapstructure:"name"`
	LatticeConstant float64 `mapstructure:"lattice_constant"`
	RhoMaterial     float64 `mapstructure:"rho_material"`
	VInit           float64 `mapstructure:"v_init"`
	Alloy           bool    `mapstructure:"alloy"`
}

// GridConfig describes the 1-D depth grid and the initial surface
// position.
type GridConfig struct {
	Mx                int       `mapstructure:"mx"`
	DX                []float64 `mapstructure:"dx"`
	SurfacePercentile float64   `mapstructure:"surface_percentile"`
	RightOffset       int       `mapstructure:"right_offset"`
}

// MonitorConfig mirrors spec.md §6's CLI switches one field per
// switch, so a config file and a flag set can populate the same
// struct.
type MonitorConfig struct {
	CheckNegative   float64 `mapstructure:"check_negative"`
	// CheckCollapse is the solver-collapse floor: if the step size Δt
	// ever drops below this value the run requests a clean integrator
	// stop (non-error exit), per spec.md's solver-collapse guard.
	CheckCollapse   float64 `mapstructure:"check_collapse"`
	Plot1D          bool    `mapstructure:"plot_1d"`
	PlotSeries      bool    `mapstructure:"plot_series"`
	Plot2D          bool    `mapstructure:"plot_2d"`
	PlotPerf        bool    `mapstructure:"plot_perf"`
	HeliumRetention bool    `mapstructure:"helium_retention"`
	XenonRetention  bool    `mapstructure:"xenon_retention"`
	StartStop       float64 `mapstructure:"start_stop"`
	MaxClusterConc  bool    `mapstructure:"max_cluster_conc"`
	HeliumCumul     bool    `mapstructure:"helium_cumul"`
	HeliumConc      bool    `mapstructure:"helium_conc"`
	MeanSize        bool    `mapstructure:"mean_size"`
	TempProfile     bool    `mapstructure:"temp_profile"`
	Tridyn          bool    `mapstructure:"tridyn"`
	HeliumStatsExpr string  `mapstructure:"helium_stats_expr"`
}

// IntegratorConfig bounds the reference forward-Euler step controller:
// it starts at DtInit and is rescaled every step to keep the largest
// per-step concentration change under Safety, clamped to [DtMin, DtMax].
// A real IMEX/stiff solver would own this adaptation itself; the
// reference integrator approximates it so CheckCollapse has an actual
// varying Δt to act on.
type IntegratorConfig struct {
	DtInit float64 `mapstructure:"dt_init"`
	DtMin  float64 `mapstructure:"dt_min"`
	DtMax  float64 `mapstructure:"dt_max"`
	Safety float64 `mapstructure:"safety"`
}

// Config is the top-level run configuration decoded from a TOML file.
type Config struct {
	Material   MaterialConfig   `mapstructure:"material"`
	Grid       GridConfig       `mapstructure:"grid"`
	Monitor    MonitorConfig    `mapstructure:"monitor"`
	Integrator IntegratorConfig `mapstructure:"integrator"`

	NetworkFile   string `mapstructure:"network_file"`
	LogLevel      string `mapstructure:"log_level"`
	CheckpointDir string `mapstructure:"checkpoint_dir"`
}

// defaults matches the literal defaults spec.md §6 states for the
// switches it names (check_negative 1e-30, start_stop 1.0).
func defaults(v *viper.Viper) {
	v.SetDefault("monitor.check_negative", 1e-30)
	v.SetDefault("monitor.start_stop", 1.0)
	v.SetDefault("grid.surface_percentile", 0.3)
	v.SetDefault("log_level", "info")
	v.SetDefault("checkpoint_dir", ".")
	v.SetDefault("integrator.dt_init", 1e-6)
	v.SetDefault("integrator.dt_min", 1e-12)
	v.SetDefault("integrator.dt_max", 1e-3)
	v.SetDefault("integrator.safety", 0.1)
}

// Load reads and decodes the TOML configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("clustercore: reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("clustercore: decoding config file %s: %w", path, err)
	}
	return &cfg, nil
}

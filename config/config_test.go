package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTOML = `
log_level = "debug"
checkpoint_dir = "/tmp/ckpt"

[material]
name = "W110"
lattice_constant = 3.16e-10
rho_material = 6.3e28
v_init = 1e27

[grid]
mx = 200
dx = [1e-10, 1e-10, 1e-10]
surface_percentile = 0.25

[monitor]
helium_retention = true
tridyn = true
helium_stats_expr = "cumulative / conc"
`

func TestLoadDecodesNestedStructs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clustercore.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Material.Name != "W110" {
		t.Errorf("Material.Name = %q, want W110", cfg.Material.Name)
	}
	if cfg.Grid.Mx != 200 {
		t.Errorf("Grid.Mx = %d, want 200", cfg.Grid.Mx)
	}
	if len(cfg.Grid.DX) != 3 {
		t.Errorf("Grid.DX = %v, want length 3", cfg.Grid.DX)
	}
	if !cfg.Monitor.HeliumRetention || !cfg.Monitor.Tridyn {
		t.Errorf("Monitor flags not decoded: %+v", cfg.Monitor)
	}
	if cfg.Monitor.HeliumStatsExpr != "cumulative / conc" {
		t.Errorf("Monitor.HeliumStatsExpr = %q", cfg.Monitor.HeliumStatsExpr)
	}
	if cfg.LogLevel != "debug" || cfg.CheckpointDir != "/tmp/ckpt" {
		t.Errorf("top-level fields not decoded: %+v", cfg)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.toml")
	if err := os.WriteFile(path, []byte(`[material]
name = "Fe"
`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Monitor.CheckNegative != 1e-30 {
		t.Errorf("Monitor.CheckNegative = %v, want default 1e-30", cfg.Monitor.CheckNegative)
	}
	if cfg.Monitor.StartStop != 1.0 {
		t.Errorf("Monitor.StartStop = %v, want default 1.0", cfg.Monitor.StartStop)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
	if cfg.Integrator.DtInit != 1e-6 || cfg.Integrator.DtMin != 1e-12 || cfg.Integrator.DtMax != 1e-3 {
		t.Errorf("Integrator defaults = %+v", cfg.Integrator)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/clustercore.toml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

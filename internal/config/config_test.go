package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gamma != 0.1 {
		t.Errorf("expected gamma 0.1, got %f", cfg.Gamma)
	}
	if cfg.Population != 1_000_000 {
		t.Errorf("expected population 1e6, got %f", cfg.Population)
	}
	if cfg.Horizon != 365 || cfg.Points != 365 {
		t.Errorf("expected 365-day horizon with 365 points, got %f/%d", cfg.Horizon, cfg.Points)
	}
	if cfg.R0.Min != 1.0 || cfg.R0.Max != 5.0 || cfg.R0.Step != 0.1 {
		t.Errorf("unexpected R0 range: %+v", cfg.R0)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")

	cfg := DefaultConfig()
	cfg.Gamma = 0.25
	cfg.R0 = R0Config{Min: 1.2, Max: 2.4, Step: 0.2}
	cfg.Workers = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Gamma != 0.25 {
		t.Errorf("gamma = %f, want 0.25", loaded.Gamma)
	}
	if loaded.R0 != cfg.R0 {
		t.Errorf("R0 = %+v, want %+v", loaded.R0, cfg.R0)
	}
	if loaded.Workers != 4 {
		t.Errorf("workers = %d, want 4", loaded.Workers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("influenza")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Gamma != 0.25 {
		t.Errorf("expected gamma 0.25, got %f", cfg.Gamma)
	}
	if cfg.Solver != "dopri" {
		t.Errorf("preset should default solver to dopri, got %q", cfg.Solver)
	}

	// mutating the returned config must not touch the preset table
	cfg.Gamma = 99
	if Presets["influenza"].Gamma == 99 {
		t.Error("GetPreset returned the shared preset instead of a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("smallpox"); cfg != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("got %d names, want %d", len(names), len(Presets))
	}
}

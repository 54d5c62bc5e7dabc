package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Player.StartMass != 20 {
		t.Errorf("start mass = %v, want 20", cfg.Player.StartMass)
	}
	if cfg.Consumption.GrowthFraction != 0.5 {
		t.Errorf("growth fraction = %v, want 0.5", cfg.Consumption.GrowthFraction)
	}
	if cfg.Population.CapRatio != 1.5 {
		t.Errorf("cap ratio = %v, want 1.5", cfg.Population.CapRatio)
	}
	if got := len(cfg.Events.Kinds); got != 6 {
		t.Errorf("event kinds = %d, want 6", got)
	}
	if cfg.Events.Kinds["stellarBirth"].MinMass != 80 {
		t.Errorf("stellarBirth min mass = %v, want 80", cfg.Events.Kinds["stellarBirth"].MinMass)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("consumption:\n  growth_fraction: 0.75\nprogression:\n  target_mass_per_galaxy: 100\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Consumption.GrowthFraction != 0.75 {
		t.Errorf("growth fraction = %v, want 0.75", cfg.Consumption.GrowthFraction)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Consumption.EatRatio != 0.88 {
		t.Errorf("eat ratio = %v, want default 0.88", cfg.Consumption.EatRatio)
	}
	if got := cfg.TargetMass(3); got != 700 {
		t.Errorf("TargetMass(3) = %v, want 700", got)
	}
}

func TestLoadOverlay_PartialEventKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	overlay := []byte("events:\n  kinds:\n    stellarBirth:\n      cooldown: 100\n    voidPulse:\n      disabled: true\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		kind string
		want EventTuning
	}{
		{"stellarBirth", EventTuning{Cooldown: 100, MinGalaxy: 3, MinMass: 80}},
		{"voidPulse", EventTuning{Cooldown: 1500, MinGalaxy: 2, Disabled: true}},
		{"meteorShower", EventTuning{Cooldown: 900, MinGalaxy: 1}},
	}
	for _, tt := range tests {
		if got := cfg.Events.Kinds[tt.kind]; got != tt.want {
			t.Errorf("%s = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
	if got := len(cfg.Events.Kinds); got != 6 {
		t.Errorf("event kinds = %d, want 6", got)
	}
}

func TestLoadOverlay_BadEventKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("events:\n  kinds: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for a non-mapping kinds block")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestTargetMassFloor(t *testing.T) {
	cfg := Default()
	cfg.Progression = ProgressionConfig{}
	if got := cfg.TargetMass(1); got != 1 {
		t.Errorf("TargetMass with zeroed progression = %v, want floor 1", got)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Gravity.G = 0.001
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Gravity.G != 0.001 {
		t.Errorf("gravity G = %v, want 0.001", loaded.Gravity.G)
	}
}

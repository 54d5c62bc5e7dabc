package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/horizon/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEnd: float64(i * 600), Galaxy: 1, Consumed: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteGalaxy(GalaxySummary{Galaxy: 1, Biome: "Comet Current", Initial: 46}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{}, 600); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,galaxy,count") {
		t.Errorf("header = %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "galaxies.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Comet Current") {
		t.Errorf("galaxies.csv = %q", data)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not loadable: %v", err)
	}
}

package systems

import (
	"math"
	"testing"
)

func TestBuildMetrics_Phases(t *testing.T) {
	prog := testConfig().Progression
	tests := []struct {
		name  string
		mass  float64
		phase string
	}{
		{"early", 40, "early"},
		{"mid", 100, "mid"},
		{"late", 300, "late"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMetrics(MetricsInput{
				Count:      15,
				Initial:    30,
				Player:     Player{Mass: tt.mass},
				Galaxy:     2,
				TargetMass: 400,
			}, prog)
			if m.Phase() != tt.phase {
				t.Errorf("phase = %q, want %q", m.Phase(), tt.phase)
			}
			if math.Abs(m.Density-0.5) > eps || math.Abs(m.ConsumeRatio-0.5) > eps {
				t.Errorf("density %v consume ratio %v, want 0.5 and 0.5", m.Density, m.ConsumeRatio)
			}
			if math.Abs(m.MassRatio-tt.mass/400) > eps {
				t.Errorf("mass ratio = %v", m.MassRatio)
			}
		})
	}
}

func TestBuildMetrics_ZeroInitial(t *testing.T) {
	m := BuildMetrics(MetricsInput{Count: 3, TargetMass: 0, Player: Player{Mass: 5}}, testConfig().Progression)
	if m.ConsumeRatio != 0 || m.Density != 3 || m.MassRatio != 5 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestMetrics_Fields(t *testing.T) {
	m := Metrics{Galaxy: 4, ComboActive: true, Late: true, Density: 0.25}
	f := m.Fields()
	if f["galaxy"] != 4 || f["combo_active"] != 1 || f["late"] != 1 || f["early"] != 0 || f["density"] != 0.25 {
		t.Errorf("fields = %v", f)
	}
	if len(f) != 11 {
		t.Errorf("fields has %d entries, want 11", len(f))
	}
}

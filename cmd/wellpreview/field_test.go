package main

import (
	"strings"
	"testing"

	"github.com/pthm-cable/horizon/config"
)

func testWell() *Well {
	cfg := config.Default()
	return NewWell(WellParams{Gravity: cfg.Gravity, Mass: 400, BaseSpeed: 1}, cfg.Player)
}

func TestWell_ZeroOutsideReach(t *testing.T) {
	w := testWell()
	if got := w.At(w.Reach() + 1); got != 0 {
		t.Errorf("pull beyond reach = %v, want 0", got)
	}
	if got := w.At(w.Reach() / 2); got <= 0 {
		t.Errorf("pull inside reach = %v, want > 0", got)
	}
}

func TestWell_CurveMonotonic(t *testing.T) {
	w := testWell()
	curve := w.Curve(64, w.Reach())
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1]+1e-12 {
			t.Fatalf("pull rises at sample %d: %v > %v", i, curve[i], curve[i-1])
		}
	}
	if curve[0] > w.Cap()+1e-12 {
		t.Errorf("core pull %v exceeds cap %v", curve[0], w.Cap())
	}
}

func TestGenerateField(t *testing.T) {
	w := testWell()
	const size = 33
	grid := make([]float32, size*size)
	generateField(grid, size, w, w.Reach()*1.2)

	centre := grid[(size/2)*size+size/2]
	corner := grid[0]
	if corner != 0 {
		t.Errorf("corner = %v, want 0 outside reach", corner)
	}
	if centre <= 0 || centre > 1 {
		t.Errorf("centre = %v, want in (0, 1]", centre)
	}
}

func TestFieldColor(t *testing.T) {
	if c := fieldColor(0); c.R != 4 || c.B != 12 {
		t.Errorf("empty color = %v", c)
	}
	if c := fieldColor(1); c.R != 255 || c.G != 200 || c.B != 60 {
		t.Errorf("full color = %v", c)
	}
}

func TestGravityYAML(t *testing.T) {
	out, err := gravityYAML(config.Default().Gravity)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"gravity:", "attract_mult:", "strength_cap:"} {
		if !strings.Contains(out, key) {
			t.Errorf("yaml missing %q:\n%s", key, out)
		}
	}
}

package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/horizon/components"
)

func viewAt(t *testing.T, s *Store, x float64) View {
	t.Helper()
	for _, v := range s.Views() {
		if math.Abs(v.Pos.X-x) < 1e-6 {
			return v
		}
	}
	t.Fatalf("no object at x=%v", x)
	return View{}
}

func TestGravity_Strength(t *testing.T) {
	cfg := testConfig()
	g := NewGravitySystem(newTestStore().World(), cfg.Gravity)
	p := newTestPlayer(cfg, 100) // radius 13

	tests := []struct {
		name      string
		d         float64
		baseSpeed float64
		want      float64
	}{
		{"inverse square", 100, 0.3, 0.0004 * 100 / (100 * 100)},
		{"core floor", 5, 0.3, 0.0004 * 100 / (26 * 26)},
		{"capped by base speed", 30, 0.00001, 0.00001 * 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Strength(p, tt.d, tt.baseSpeed); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Strength(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestGravity_AttractRadius(t *testing.T) {
	g := NewGravitySystem(newTestStore().World(), testConfig().Gravity)
	if got := g.AttractRadius(10); math.Abs(got-180) > eps {
		t.Errorf("AttractRadius(10) = %v, want 180", got)
	}
}

func TestGravity_PullsOnlyWithinReach(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	mustSpawn(t, s, testInstance(100, 0, 2))
	mustSpawn(t, s, testInstance(300, 0, 2))
	mustSpawn(t, s, testInstance(0.5, 0, 2))

	g := NewGravitySystem(s.World(), cfg.Gravity)
	p := newTestPlayer(cfg, 100)
	if pulled := g.Update(p, 1); pulled != 1 {
		t.Errorf("pulled = %d, want 1", pulled)
	}

	near := viewAt(t, s, 100)
	if !near.Body.Attracted || near.Vel.X >= 0 || math.Abs(near.Vel.Y) > eps {
		t.Errorf("near object: attracted %v vel %+v, want inward pull", near.Body.Attracted, near.Vel)
	}
	if want := -g.Strength(p, 100, 0.3); math.Abs(near.Vel.X-want) > 1e-12 {
		t.Errorf("near vel.X = %v, want %v", near.Vel.X, want)
	}

	far := viewAt(t, s, 300)
	if far.Body.Attracted || far.Vel.X != 0 {
		t.Errorf("far object pulled: %+v", far)
	}
	core := viewAt(t, s, 0.5)
	if core.Body.Attracted || core.Vel.X != 0 {
		t.Errorf("object inside min distance pulled: %+v", core)
	}
}

func TestGravity_ScalesWithDT(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	mustSpawn(t, s, testInstance(100, 0, 2))
	g := NewGravitySystem(s.World(), cfg.Gravity)
	p := newTestPlayer(cfg, 100)

	g.Update(p, 2.5)
	v := viewAt(t, s, 100)
	if want := -2.5 * g.Strength(p, 100, 0.3); math.Abs(v.Vel.X-want) > 1e-12 {
		t.Errorf("vel.X = %v, want %v", v.Vel.X, want)
	}
}

func TestGravity_IgnoresFrozenAndClearsFlag(t *testing.T) {
	cfg := testConfig()
	s := newTestStore()
	e := mustSpawn(t, s, testInstance(100, 0, 2))
	g := NewGravitySystem(s.World(), cfg.Gravity)
	p := newTestPlayer(cfg, 100)

	g.Update(p, 1)
	if !viewAt(t, s, 100).Body.Attracted {
		t.Fatal("expected object to be attracted")
	}

	ecsConsMap(s).Get(e).State = components.Consuming
	before := viewAt(t, s, 100).Vel
	if pulled := g.Update(p, 1); pulled != 0 {
		t.Errorf("pulled frozen object")
	}
	after := viewAt(t, s, 100)
	if after.Vel != before {
		t.Errorf("frozen velocity changed: %+v -> %+v", before, after.Vel)
	}
	if after.Body.Attracted {
		t.Error("attracted flag not cleared for frozen object")
	}
}

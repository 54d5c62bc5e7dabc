package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRadiusForMass(t *testing.T) {
	cfg := testConfig().Player
	tests := []struct {
		mass float64
		want float64
	}{
		{0, 6},
		{1, 6},
		{20, 4 + math.Sqrt(20)*0.9},
		{400, 22},
	}
	for _, tt := range tests {
		if got := RadiusForMass(cfg, tt.mass); math.Abs(got-tt.want) > eps {
			t.Errorf("RadiusForMass(%v) = %v, want %v", tt.mass, got, tt.want)
		}
	}

	prev := 0.0
	for m := 0.0; m < 5000; m += 7.3 {
		r := RadiusForMass(cfg, m)
		if r < prev {
			t.Fatalf("radius decreased at mass %v: %v < %v", m, r, prev)
		}
		prev = r
	}
}

func TestPlayer_MaxSpeedShrinksWithRadius(t *testing.T) {
	s := NewPlayerSystem(testConfig().Player)
	if got := s.MaxSpeed(10); math.Abs(got-3.8*0.94) > eps {
		t.Errorf("MaxSpeed(10) = %v, want %v", got, 3.8*0.94)
	}
	if got := s.MaxSpeed(500); math.Abs(got-3.8*0.55) > eps {
		t.Errorf("MaxSpeed(500) = %v, want floor %v", got, 3.8*0.55)
	}
}

func TestPlayer_ResetStartsSmallNearCentre(t *testing.T) {
	cfg := testConfig()
	s := NewPlayerSystem(cfg.Player)
	p := &Player{Mass: 900, Vel: r2.Vec{X: 3}}
	s.Reset(p, testRNG())

	if p.Mass != 20 {
		t.Errorf("mass = %v, want 20", p.Mass)
	}
	if math.Abs(p.Radius-8.0249) > 1e-3 {
		t.Errorf("radius = %v, want ~8.025", p.Radius)
	}
	if math.Abs(p.Pos.X) > 75 || math.Abs(p.Pos.Y) > 75 {
		t.Errorf("start position %v outside +-75", p.Pos)
	}
	if p.Vel != (r2.Vec{}) {
		t.Errorf("velocity = %v, want zero", p.Vel)
	}
}

func TestPlayer_AccelerationAndFriction(t *testing.T) {
	cfg := testConfig()
	s := NewPlayerSystem(cfg.Player)
	p := newTestPlayer(cfg, 20)

	s.Update(p, NewMovement(1, 0), 1000, 1)
	want := 0.18 * 0.92
	if math.Abs(p.Vel.X-want) > eps || p.Vel.Y != 0 {
		t.Errorf("velocity = %v, want (%v, 0)", p.Vel, want)
	}

	// Below the dead zone nothing is added, friction still applies.
	s.Update(p, Movement{X: 0.005, Magnitude: 0.005}, 1000, 1)
	if math.Abs(p.Vel.X-want*0.92) > eps {
		t.Errorf("velocity = %v, want %v", p.Vel.X, want*0.92)
	}
}

func TestPlayer_SpeedCapped(t *testing.T) {
	cfg := testConfig()
	s := NewPlayerSystem(cfg.Player)
	p := newTestPlayer(cfg, 20)
	for i := 0; i < 500; i++ {
		s.Update(p, NewMovement(0, 1), 1e6, 1)
	}
	if sp := r2.Norm(p.Vel); sp > s.MaxSpeed(p.Radius)+eps {
		t.Errorf("speed %v exceeds cap %v", sp, s.MaxSpeed(p.Radius))
	}
}

func TestPlayer_WallBounceDamped(t *testing.T) {
	cfg := testConfig()
	s := NewPlayerSystem(cfg.Player)
	p := newTestPlayer(cfg, 20)
	p.Pos = r2.Vec{X: 1000 - p.Radius - 0.5}
	p.Vel = r2.Vec{X: 2}

	if !s.Update(p, Movement{}, 1000, 1) {
		t.Fatal("expected a bounce")
	}
	// v = 2*0.92 = 1.84 outward; damped reflection leaves 1.84 - 2*1.84*0.6
	want := 1.84 - 2*1.84*0.6
	if math.Abs(p.Vel.X-want) > 1e-9 {
		t.Errorf("velocity after bounce = %v, want %v", p.Vel.X, want)
	}
	if got := p.Pos.X; math.Abs(got-(1000-p.Radius-2)) > 1e-9 {
		t.Errorf("position = %v, want %v", got, 1000-p.Radius-2)
	}

	if s.Update(p, Movement{}, 1000, 1) {
		t.Error("second tick should not bounce")
	}
}

func TestNewMovementNormalizes(t *testing.T) {
	m := NewMovement(1, 1)
	if math.Abs(math.Hypot(m.X, m.Y)-1) > eps || m.Magnitude != 1 {
		t.Errorf("NewMovement(1,1) = %+v", m)
	}
	m = NewMovement(0.3, 0)
	if m.Magnitude != 0.3 || m.X != 0.3 {
		t.Errorf("NewMovement(0.3,0) = %+v", m)
	}
}

package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func newTestEffects() *EffectsSystem {
	cfg := testConfig().Effects
	cfg.Ambient = false
	return NewEffectsSystem(cfg, testRNG())
}

func TestEffects_EmitConsume(t *testing.T) {
	fx := newTestEffects()
	fx.EmitConsume(Eaten{Pos: r2.Vec{X: 50, Y: 50}, Radius: 5, Color: "#ffffff"})

	if got := len(fx.Particles); got != 10 {
		t.Errorf("particles = %d, want 10", got)
	}
	if len(fx.Ripples) != 1 {
		t.Fatalf("ripples = %d, want 1", len(fx.Ripples))
	}
	r := fx.Ripples[0]
	if r.ExpandTo != 40 || r.StartRadius != 5 || r.MaxAge != 25 {
		t.Errorf("ripple = %+v", r)
	}
}

func TestEffects_Lifetimes(t *testing.T) {
	fx := newTestEffects()
	fx.EmitConsume(Eaten{Pos: r2.Vec{X: 200}, Radius: 3})

	for i := 0; i < 24; i++ {
		fx.Update(r2.Vec{}, 1)
	}
	if len(fx.Ripples) != 1 {
		t.Fatal("ripple expired early")
	}
	if p := fx.Ripples[0].Progress(); math.Abs(p-24.0/25) > eps {
		t.Errorf("ripple progress = %v, want 0.96", p)
	}
	fx.Update(r2.Vec{}, 1)
	if len(fx.Ripples) != 0 {
		t.Error("ripple outlived its age")
	}
	if len(fx.Particles) == 0 {
		t.Error("particles expired before their minimum age")
	}

	for i := 0; i < 25; i++ {
		fx.Update(r2.Vec{}, 1)
	}
	if len(fx.Particles) != 0 {
		t.Errorf("%d particles outlived 50 ticks", len(fx.Particles))
	}
}

func TestEffects_ParticleCap(t *testing.T) {
	fx := newTestEffects()
	for i := 0; i < 40; i++ {
		fx.EmitConsume(Eaten{Pos: r2.Vec{X: 100}, Radius: 5})
	}
	fx.Update(r2.Vec{}, 1)
	if got := len(fx.Particles); got != 300 {
		t.Errorf("particles = %d, want cap 300", got)
	}
}

func TestEffects_Reset(t *testing.T) {
	fx := newTestEffects()
	fx.EmitConsume(Eaten{Radius: 4})
	fx.Reset()
	if len(fx.Particles)+len(fx.Ripples)+len(fx.Stars)+len(fx.Flashes)+len(fx.Waves) != 0 {
		t.Error("reset left effects behind")
	}
}

func TestEffects_AmbientBackdrop(t *testing.T) {
	cfg := testConfig().Effects
	cfg.Ambient = true
	fx := NewEffectsSystem(cfg, testRNG())

	stars := 0
	for i := 0; i < 5000; i++ {
		before := len(fx.Stars)
		fx.Update(r2.Vec{}, 1)
		if len(fx.Stars) > before {
			stars++
		}
		if len(fx.Stars) > 3 || len(fx.Flashes) > 2 || len(fx.Waves) > 3 {
			t.Fatalf("backdrop over its limits: %d stars %d flashes %d waves", len(fx.Stars), len(fx.Flashes), len(fx.Waves))
		}
	}
	if stars == 0 {
		t.Error("no shooting stars in 5000 ticks")
	}
}

func TestRisingAlpha(t *testing.T) {
	tests := []struct {
		life, max, bright, want float64
	}{
		{0, 100, 1, 0},
		{10, 100, 1, 0.5},
		{20, 100, 1, 1},
		{60, 100, 0.5, 0.25},
		{100, 100, 1, 0},
		{5, 0, 1, 0},
	}
	for _, tt := range tests {
		if got := RisingAlpha(tt.life, tt.max, tt.bright); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RisingAlpha(%v, %v, %v) = %v, want %v", tt.life, tt.max, tt.bright, got, tt.want)
		}
	}
}

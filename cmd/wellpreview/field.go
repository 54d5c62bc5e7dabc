package main

import (
	"image/color"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/horizon/config"
	"github.com/pthm-cable/horizon/systems"
)

// WellParams holds the slider state.
type WellParams struct {
	Gravity   config.GravityConfig
	Mass      float64
	BaseSpeed float64 // speed of the probed object, sets the strength cap
}

// Well samples the pull a player of the given mass exerts.
type Well struct {
	gravity *systems.GravitySystem
	player  systems.Player
	params  WellParams
}

// NewWell builds a well from the slider state and the player radius law.
func NewWell(params WellParams, player config.PlayerConfig) *Well {
	return &Well{
		gravity: systems.NewGravitySystem(ecs.NewWorld(), params.Gravity),
		player: systems.Player{
			Mass:   params.Mass,
			Radius: systems.RadiusForMass(player, params.Mass),
		},
		params: params,
	}
}

// Reach returns the attraction radius.
func (w *Well) Reach() float64 {
	return w.gravity.AttractRadius(w.player.Radius)
}

// Radius returns the player radius.
func (w *Well) Radius() float64 {
	return w.player.Radius
}

// Cap returns the strength ceiling for the probed object.
func (w *Well) Cap() float64 {
	return w.params.BaseSpeed * w.params.Gravity.StrengthCap
}

// At returns the pull at distance d, zero outside the reach.
func (w *Well) At(d float64) float64 {
	if d > w.Reach() {
		return 0
	}
	return w.gravity.Strength(&w.player, d, w.params.BaseSpeed)
}

// Curve samples n strengths from the centre to span.
func (w *Well) Curve(n int, span float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w.At(span * float64(i) / float64(n-1))
	}
	return out
}

// generateField fills grid with strength normalized by the cap. The grid
// covers [-span, span] on both axes with the player at the centre.
func generateField(grid []float32, size int, w *Well, span float64) {
	maxPull := w.Cap()
	if maxPull <= 0 {
		maxPull = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			wx := (float64(x)/float64(size-1)*2 - 1) * span
			wy := (float64(y)/float64(size-1)*2 - 1) * span
			v := w.At(math.Hypot(wx, wy)) / maxPull
			grid[y*size+x] = float32(math.Min(1, v))
		}
	}
}

// fieldColor maps a normalized pull to a violet-to-gold ramp.
func fieldColor(v float32) color.RGBA {
	if v <= 0 {
		return color.RGBA{R: 4, G: 6, B: 12, A: 255}
	}
	t := float64(v)
	return color.RGBA{
		R: uint8(40 + t*215),
		G: uint8(20 + t*180),
		B: uint8(120 - t*60),
		A: 255,
	}
}

// gravityYAML renders the gravity block as it appears in config.yaml.
func gravityYAML(g config.GravityConfig) (string, error) {
	out, err := yaml.Marshal(map[string]config.GravityConfig{"gravity": g})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

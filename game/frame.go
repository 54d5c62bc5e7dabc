package game

import (
	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/save"
	"github.com/pthm-cable/horizon/systems"
)

// Frame is a read-only picture of the game for renderers.
// Effect and event slices alias game state and are valid until the next Step.
type Frame struct {
	Tick       int
	Galaxy     int
	BestGalaxy int
	Biome      catalog.Biome
	Bounds     float64
	Initial    int
	Count      int

	Entities   []systems.View
	Player     systems.Player
	TargetMass float64
	Combo      systems.Combo
	Camera     camera.Camera
	Events     []systems.ActiveEvent

	Particles []systems.Particle
	Ripples   []systems.Ripple
	Stars     []systems.ShootingStar
	Flashes   []systems.Flash
	Waves     []systems.EnergyWave

	Phase              Phase
	PhaseTimer         float64
	TransitionProgress float64
	Preview            Preview

	Paused       bool
	AudioEnabled bool
	Volume       float64
	Stats        save.Stats
}

// Cleared returns the fraction of the initial population eaten, in [0, 1].
func (f Frame) Cleared() float64 {
	if f.Initial <= 0 {
		return 0
	}
	return max(0, min(1, float64(f.Initial-f.Count)/float64(f.Initial)))
}

// Transitioning reports whether a galaxy transition is running.
func (f Frame) Transitioning() bool { return f.Phase != PhaseNone }

// Frame captures the current state.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:       g.steps,
		Galaxy:     g.arena.Galaxy,
		BestGalaxy: g.data.BestGalaxy,
		Biome:      g.arena.Biome,
		Bounds:     g.arena.Bounds,
		Initial:    g.arena.Initial,
		Count:      g.store.Count(),

		Entities:   g.store.Views(),
		Player:     g.player,
		TargetMass: g.cfg.TargetMass(g.arena.Galaxy),
		Combo:      g.consumption.Combo(),
		Camera:     *g.camera,
		Events:     g.events.Active(),

		Particles: g.effects.Particles,
		Ripples:   g.effects.Ripples,
		Stars:     g.effects.Stars,
		Flashes:   g.effects.Flashes,
		Waves:     g.effects.Waves,

		Phase:              g.transition.Phase(),
		PhaseTimer:         g.transition.Timer(),
		TransitionProgress: g.transition.Progress(),
		Preview:            g.transition.Preview(),

		Paused:       g.paused,
		AudioEnabled: g.data.AudioEnabled,
		Volume:       g.data.Volume,
		Stats:        g.data.Stats,
	}
}

package game

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/systems"
)

// Input supplies the player's steering intent once per tick.
type Input interface {
	Movement() systems.Movement
}

// InputFunc adapts a function to Input.
type InputFunc func() systems.Movement

// Movement calls f.
func (f InputFunc) Movement() systems.Movement { return f() }

// Signals receives the cues an audio layer would play.
type Signals interface {
	Consume(avgTone, massRatio float64, combo int)
	ComboChime(combo int)
	EventCue(kind systems.EventKind)
	GalaxyComplete()
	Bounce()
}

// NopSignals discards every cue.
type NopSignals struct{}

func (NopSignals) Consume(float64, float64, int) {}
func (NopSignals) ComboChime(int) {}
func (NopSignals) EventCue(systems.EventKind) {}
func (NopSignals) GalaxyComplete() {}
func (NopSignals) Bounce() {}

// LogSignals writes every cue to slog at debug level.
type LogSignals struct {
	Logger *slog.Logger // nil = slog.Default()
}

func (s LogSignals) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s LogSignals) Consume(avgTone, massRatio float64, combo int) {
	s.logger().Debug("signal", "cue", "consume", "tone", avgTone, "mass_ratio", massRatio, "combo", combo)
}

func (s LogSignals) ComboChime(combo int) {
	s.logger().Debug("signal", "cue", "combo_chime", "combo", combo)
}

func (s LogSignals) EventCue(kind systems.EventKind) {
	s.logger().Debug("signal", "cue", "event", "kind", kind.String())
}

func (s LogSignals) GalaxyComplete() {
	s.logger().Debug("signal", "cue", "galaxy_complete")
}

func (s LogSignals) Bounce() {
	s.logger().Debug("signal", "cue", "bounce")
}

// Autopilot steers toward the nearest object the player can eat.
// Headless runs use it in place of a human.
type Autopilot struct {
	g *Game
}

// NewAutopilot creates an autopilot driving g.
func NewAutopilot(g *Game) *Autopilot {
	return &Autopilot{g: g}
}

// Movement returns a full-strength intent toward the nearest eatable object,
// or toward the galaxy centre when nothing is eatable.
func (a *Autopilot) Movement() systems.Movement {
	target, ok := a.g.nearestEatable()
	if !ok {
		target = r2.Vec{}
	}
	d := r2.Sub(target, a.g.player.Pos)
	n := r2.Norm(d)
	if n < 1 {
		return systems.Movement{}
	}
	return systems.NewMovement(d.X/n, d.Y/n)
}

// nearestEatable finds the closest idle object smaller than the player's bite.
func (g *Game) nearestEatable() (r2.Vec, bool) {
	best := math.Inf(1)
	var found r2.Vec
	ok := false
	g.store.Each(func(v systems.View) {
		if v.Consume.State != components.Idle || !g.consumption.CanEat(g.player.Radius, v.Body.Radius) {
			return
		}
		d := r2.Norm(r2.Sub(v.Pos.Vec(), g.player.Pos))
		if d < best {
			best = d
			found = v.Pos.Vec()
			ok = true
		}
	})
	return found, ok
}

package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

// Combo is a rapid-succession eating streak.
type Combo struct {
	Count int
	Timer float64
}

// Active reports whether the streak is still running.
func (c Combo) Active() bool { return c.Count > 0 }

// Eaten describes one object swallowed this tick.
type Eaten struct {
	Pos       r2.Vec
	Radius    float64
	Mass      float64
	Tone      float64
	Color     string
	Archetype string
}

// ConsumeBatch is the per-tick summary handed to audio and stats.
type ConsumeBatch struct {
	Eaten     []Eaten
	AvgTone   float64
	MassRatio float64 // total eaten mass normalized to [0, 1]
	Combo     int
	Chime     bool
	Removed   int // objects whose shrink animation finished
}

// Count returns the number of objects eaten this tick.
func (b ConsumeBatch) Count() int { return len(b.Eaten) }

// ConsumptionSystem runs the eat rule and the shrink animation.
type ConsumptionSystem struct {
	filter *ecs.Filter4[
		components.Position,
		components.Body,
		components.Appearance,
		components.Consumption,
	]
	store   *Store
	players *PlayerSystem
	cfg     config.ConsumptionConfig

	combo    Combo
	toRemove []ecs.Entity
}

// NewConsumptionSystem creates a consumption system.
func NewConsumptionSystem(store *Store, players *PlayerSystem, cfg config.ConsumptionConfig) *ConsumptionSystem {
	return &ConsumptionSystem{
		filter: ecs.NewFilter4[
			components.Position,
			components.Body,
			components.Appearance,
			components.Consumption,
		](store.World()),
		store:   store,
		players: players,
		cfg:     cfg,
	}
}

// Combo returns the current streak.
func (s *ConsumptionSystem) Combo() Combo { return s.combo }

// Reset clears the streak.
func (s *ConsumptionSystem) Reset() { s.combo = Combo{} }

// CanEat reports whether a player of radius pr may swallow an object of radius er.
func (s *ConsumptionSystem) CanEat(pr, er float64) bool {
	return pr > er*s.cfg.EatRatio
}

// Touches reports whether an object at distance d is close enough to be swallowed.
func (s *ConsumptionSystem) Touches(pr, er, d float64) bool {
	return d < pr+er*s.cfg.TouchRatio
}

// Update decays the combo, advances shrinking objects, swallows touching
// ones and removes finished ones.
func (s *ConsumptionSystem) Update(p *Player, dt float64) ConsumeBatch {
	if s.combo.Timer > 0 {
		s.combo.Timer -= s.cfg.ComboDecay * dt
		if s.combo.Timer <= 0 {
			s.combo = Combo{}
		}
	}

	var batch ConsumeBatch
	totalTone, totalMass := 0.0, 0.0
	s.toRemove = s.toRemove[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, body, look, cons := query.Get()

		switch cons.State {
		case components.Consuming:
			cons.Progress += s.cfg.ProgressRate * dt
			if cons.Progress >= 1 {
				cons.Progress = 1
				cons.State = components.Consumed
				s.toRemove = append(s.toRemove, query.Entity())
			}
			continue
		case components.Consumed:
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}

		d := r2.Norm(r2.Sub(pos.Vec(), p.Pos))
		if !s.CanEat(p.Radius, body.Radius) || !s.Touches(p.Radius, body.Radius, d) {
			continue
		}

		cons.State = components.Consuming
		cons.Progress = 0
		s.players.Grow(p, body.Mass*s.cfg.GrowthFraction)
		s.combo.Count++
		s.combo.Timer = s.cfg.ComboWindow

		totalTone += look.Tone
		totalMass += body.Mass
		batch.Eaten = append(batch.Eaten, Eaten{
			Pos:       pos.Vec(),
			Radius:    body.Radius,
			Mass:      body.Mass,
			Tone:      look.Tone,
			Color:     look.Color,
			Archetype: look.Archetype,
		})
	}

	batch.Removed = len(s.toRemove)
	s.store.Remove(s.toRemove)

	if n := batch.Count(); n > 0 {
		batch.AvgTone = totalTone / float64(n)
		batch.MassRatio = clamp(totalMass/s.cfg.MassRatioNorm, 0, 1)
		batch.Combo = s.combo.Count
		every := s.cfg.ChimeEvery
		batch.Chime = s.combo.Count >= every && s.combo.Count%every == 0
	}
	return batch
}

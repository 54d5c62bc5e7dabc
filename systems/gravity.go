package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

// GravitySystem pulls nearby objects toward the player.
// It only changes velocities; objects still have to reach the player on their own.
type GravitySystem struct {
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Consumption,
	]
	cfg config.GravityConfig
}

// NewGravitySystem creates a gravity system.
func NewGravitySystem(w *ecs.World, cfg config.GravityConfig) *GravitySystem {
	return &GravitySystem{
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Consumption,
		](w),
		cfg: cfg,
	}
}

// AttractRadius returns the reach of the well for a player radius.
func (s *GravitySystem) AttractRadius(playerRadius float64) float64 {
	return playerRadius*s.cfg.AttractMult + s.cfg.AttractBase
}

// Strength returns the inward acceleration at distance d, before dt scaling.
func (s *GravitySystem) Strength(p *Player, d, baseSpeed float64) float64 {
	eff := math.Max(d, p.Radius*s.cfg.CoreMult)
	return math.Min(s.cfg.G*p.Mass/(eff*eff), baseSpeed*s.cfg.StrengthCap)
}

// Update applies the well to every idle object and refreshes Attracted flags.
// It returns the number of objects pulled.
func (s *GravitySystem) Update(p *Player, dt float64) int {
	reach := s.AttractRadius(p.Radius)
	pulled := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, cons := query.Get()
		body.Attracted = false
		if cons.Frozen() {
			continue
		}

		delta := r2.Sub(p.Pos, pos.Vec())
		d := r2.Norm(delta)
		if d > reach || d < s.cfg.MinDistance {
			continue
		}

		strength := s.Strength(p, d, body.BaseSpeed)
		n := r2.Scale(1/d, delta)
		*vel = components.Velocity(r2.Add(vel.Vec(), r2.Scale(strength*dt, n)))
		body.Attracted = true
		pulled++
	}
	return pulled
}

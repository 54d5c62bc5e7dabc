// Package systems contains the per-tick simulation systems for a galaxy.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

// PhysicsSystem integrates drifting objects inside the circular galaxy wall.
type PhysicsSystem struct {
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Consumption,
	]
	cfg config.PhysicsConfig
	rng *rand.Rand
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, cfg config.PhysicsConfig, rng *rand.Rand) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Consumption,
		](w),
		cfg: cfg,
		rng: rng,
	}
}

// Update advances every idle object by dt.
func (s *PhysicsSystem) Update(bounds, dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, body, cons := query.Get()
		if cons.Frozen() {
			continue
		}

		jx := uniform(s.rng, -s.cfg.Jitter, s.cfg.Jitter) * dt
		jy := uniform(s.rng, -s.cfg.Jitter, s.cfg.Jitter) * dt
		p, v := drift(pos.Vec(), vel.Vec(), *body, bounds, dt, s.cfg, r2.Vec{X: jx, Y: jy})

		*pos = components.Position(p)
		*vel = components.Velocity(v)
		rot.Angle += rot.Spin * dt
	}
}

// drift integrates one object: move, reflect off the wall, jitter, cap.
func drift(p, v r2.Vec, body components.Body, bounds, dt float64, cfg config.PhysicsConfig, jitter r2.Vec) (r2.Vec, r2.Vec) {
	p = r2.Add(p, r2.Scale(dt, v))

	if d := r2.Norm(p); d+body.Radius > bounds && d >= minNormDist {
		n := r2.Scale(1/d, p)
		v = reflect(v, n, 1)
		p = r2.Scale(bounds-body.Radius-cfg.WallInset, n)
	}

	v = r2.Add(v, jitter)
	return p, capSpeed(v, body.BaseSpeed*cfg.SpeedCapMult)
}

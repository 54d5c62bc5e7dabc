package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/config"
)

// Movement is a steering intent. (X, Y) has length Magnitude, in [0, 1].
type Movement struct {
	X, Y      float64
	Magnitude float64
}

// NewMovement builds an intent from a raw direction sum, shrinking it to
// unit length when longer.
func NewMovement(x, y float64) Movement {
	mag := math.Hypot(x, y)
	if mag > 1 {
		x /= mag
		y /= mag
		mag = 1
	}
	return Movement{X: x, Y: y, Magnitude: mag}
}

// Player is the black hole.
type Player struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Mass   float64
	Radius float64
}

// PlayerSystem moves the player and derives its radius from mass.
type PlayerSystem struct {
	cfg config.PlayerConfig
}

// NewPlayerSystem creates a player system.
func NewPlayerSystem(cfg config.PlayerConfig) *PlayerSystem {
	return &PlayerSystem{cfg: cfg}
}

// Radius returns the player radius for a mass:
// max(MinRadius, RadiusBase + sqrt(mass)*RadiusScale).
func (s *PlayerSystem) Radius(mass float64) float64 {
	return RadiusForMass(s.cfg, mass)
}

// RadiusForMass is the pure radius law. It is monotonic in mass.
func RadiusForMass(cfg config.PlayerConfig, mass float64) float64 {
	if mass < 0 {
		mass = 0
	}
	return math.Max(cfg.MinRadius, cfg.RadiusBase+math.Sqrt(mass)*cfg.RadiusScale)
}

// MaxSpeed returns the speed ceiling for a player of the given radius.
func (s *PlayerSystem) MaxSpeed(radius float64) float64 {
	return s.cfg.BaseSpeed * math.Max(s.cfg.MinSpeedFactor, 1-radius*s.cfg.SpeedShrink)
}

// Reset puts a fresh player near the galaxy centre.
func (s *PlayerSystem) Reset(p *Player, rng *rand.Rand) {
	half := s.cfg.SpawnSpread / 2
	p.Pos = r2.Vec{X: uniform(rng, -half, half), Y: uniform(rng, -half, half)}
	p.Vel = r2.Vec{}
	p.Mass = s.cfg.StartMass
	p.Radius = s.Radius(p.Mass)
}

// Grow adds mass and refreshes the radius.
func (s *PlayerSystem) Grow(p *Player, mass float64) {
	if mass <= 0 {
		return
	}
	p.Mass += mass
	p.Radius = s.Radius(p.Mass)
}

// Update applies intent, friction and the speed cap, then integrates and
// bounces off the wall. It reports whether the player hit the wall.
func (s *PlayerSystem) Update(p *Player, in Movement, bounds, dt float64) bool {
	if in.Magnitude > s.cfg.IntentDeadzone {
		p.Vel = r2.Add(p.Vel, r2.Scale(s.cfg.Accel*dt, r2.Vec{X: in.X, Y: in.Y}))
	}

	p.Vel = r2.Scale(math.Pow(s.cfg.Friction, dt), p.Vel)
	p.Vel = capSpeed(p.Vel, s.MaxSpeed(p.Radius))
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))

	d := r2.Norm(p.Pos)
	if d+p.Radius <= bounds || d < minNormDist {
		return false
	}
	n := r2.Scale(1/d, p.Pos)
	p.Vel = reflect(p.Vel, n, s.cfg.BounceDamping)
	p.Pos = r2.Scale(bounds-p.Radius-s.cfg.WallInset, n)
	return true
}

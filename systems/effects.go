package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/config"
)

// Particle is a consume spark drawn back into the player.
type Particle struct {
	Pos, Vel r2.Vec
	Size     float64
	Alpha    float64
	Age      float64
	MaxAge   float64
	Gravity  float64
	Color    string
}

// Ripple is the expanding ring left where an object was eaten.
type Ripple struct {
	Pos         r2.Vec
	StartRadius float64
	ExpandTo    float64
	Color       string
	Age         float64
	MaxAge      float64
}

// Progress returns Age/MaxAge.
func (r Ripple) Progress() float64 { return clamp(r.Age/r.MaxAge, 0, 1) }

// ShootingStar streaks across the backdrop. X and Y are screen fractions.
type ShootingStar struct {
	X, Y       float64
	Angle      float64
	Speed      float64
	Life       float64
	MaxLife    float64
	Brightness float64
}

// Flash is a distant brightening in the backdrop.
type Flash struct {
	X, Y       float64
	Life       float64
	MaxLife    float64
	Brightness float64
}

// EnergyWave is a faint ring expanding in the backdrop.
type EnergyWave struct {
	X, Y    float64
	Radius  float64
	Speed   float64
	Life    float64
	MaxLife float64
}

// RisingAlpha is the 20% rise, 80% fade envelope used by backdrop effects.
func RisingAlpha(life, maxLife, brightness float64) float64 {
	if maxLife <= 0 {
		return 0
	}
	p := life / maxLife
	if p < 0.2 {
		return p / 0.2 * brightness
	}
	return (1 - (p-0.2)/0.8) * brightness
}

const (
	maxShootingStars = 3
	maxFlashes       = 2
	maxEnergyWaves   = 3
	particleDrag     = 0.97
)

// EffectsSystem advances cosmetic effects. None of it feeds back into the
// simulation.
type EffectsSystem struct {
	cfg config.EffectsConfig
	rng *rand.Rand

	Particles []Particle
	Ripples   []Ripple
	Stars     []ShootingStar
	Flashes   []Flash
	Waves     []EnergyWave

	starTimer float64
}

// NewEffectsSystem creates an effects system.
func NewEffectsSystem(cfg config.EffectsConfig, rng *rand.Rand) *EffectsSystem {
	return &EffectsSystem{
		cfg:       cfg,
		rng:       rng,
		Particles: make([]Particle, 0, cfg.MaxParticles),
	}
}

// Reset drops every effect.
func (s *EffectsSystem) Reset() {
	s.Particles = s.Particles[:0]
	s.Ripples = s.Ripples[:0]
	s.Stars = s.Stars[:0]
	s.Flashes = s.Flashes[:0]
	s.Waves = s.Waves[:0]
	s.starTimer = 0
}

// EmitConsume bursts sparks and a ripple where an object was eaten.
func (s *EffectsSystem) EmitConsume(e Eaten) {
	count := 6 + int(math.Floor(e.Radius*0.8))
	for i := 0; i < count; i++ {
		angle := float64(i)/float64(count)*2*math.Pi + s.rng.Float64()*0.5
		s.Particles = append(s.Particles, Particle{
			Pos:     e.Pos,
			Vel:     polar(angle, 0.5+s.rng.Float64()*2),
			Size:    1 + s.rng.Float64()*2.5,
			Alpha:   0.6 + s.rng.Float64()*0.3,
			MaxAge:  30 + s.rng.Float64()*20,
			Gravity: 0.02 + s.rng.Float64()*0.02,
			Color:   e.Color,
		})
	}
	s.Ripples = append(s.Ripples, Ripple{
		Pos:         e.Pos,
		StartRadius: e.Radius,
		ExpandTo:    30 + e.Radius*2,
		Color:       e.Color,
		MaxAge:      s.cfg.RippleAge,
	})
}

// Update advances particles toward the player and ages everything else.
func (s *EffectsSystem) Update(player r2.Vec, dt float64) {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]
		delta := r2.Sub(player, p.Pos)
		if d := r2.Norm(delta); d > 5 {
			p.Vel = r2.Add(p.Vel, r2.Scale(p.Gravity*dt/d, delta))
		}
		p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
		p.Vel = r2.Scale(particleDrag, p.Vel)
		p.Age += dt
		if p.Age < p.MaxAge {
			s.Particles[alive] = *p
			alive++
		}
	}
	s.Particles = s.Particles[:alive]
	if n := len(s.Particles); s.cfg.MaxParticles > 0 && n > s.cfg.MaxParticles {
		s.Particles = append(s.Particles[:0], s.Particles[n-s.cfg.MaxParticles:]...)
	}

	kept := s.Ripples[:0]
	for _, r := range s.Ripples {
		r.Age += dt
		if r.Age < r.MaxAge {
			kept = append(kept, r)
		}
	}
	s.Ripples = kept

	if s.cfg.Ambient {
		s.updateBackdrop(dt)
	}
}

func (s *EffectsSystem) updateBackdrop(dt float64) {
	s.starTimer += dt
	if s.starTimer >= uniform(s.rng, 180, 420) && len(s.Stars) < maxShootingStars {
		s.starTimer = 0
		s.Stars = append(s.Stars, ShootingStar{
			X:          s.rng.Float64(),
			Y:          s.rng.Float64(),
			Angle:      uniform(s.rng, 0.2, 1.2),
			Speed:      uniform(s.rng, 3, 6),
			MaxLife:    uniform(s.rng, 60, 100),
			Brightness: uniform(s.rng, 0.3, 0.7),
		})
	}
	stars := s.Stars[:0]
	for _, st := range s.Stars {
		st.Life += dt
		st.X += math.Cos(st.Angle) * st.Speed * 0.001 * dt
		st.Y += math.Sin(st.Angle) * st.Speed * 0.001 * dt
		if st.Life < st.MaxLife {
			stars = append(stars, st)
		}
	}
	s.Stars = stars

	if s.rng.Float64() < 0.001*dt && len(s.Flashes) < maxFlashes {
		s.Flashes = append(s.Flashes, Flash{
			X:          uniform(s.rng, 0.1, 0.9),
			Y:          uniform(s.rng, 0.1, 0.9),
			MaxLife:    uniform(s.rng, 60, 120),
			Brightness: uniform(s.rng, 0.15, 0.35),
		})
	}
	flashes := s.Flashes[:0]
	for _, f := range s.Flashes {
		f.Life += dt
		if f.Life < f.MaxLife {
			flashes = append(flashes, f)
		}
	}
	s.Flashes = flashes

	if s.rng.Float64() < 0.0008*dt && len(s.Waves) < maxEnergyWaves {
		s.Waves = append(s.Waves, EnergyWave{
			X:       uniform(s.rng, 0.2, 0.8),
			Y:       uniform(s.rng, 0.2, 0.8),
			MaxLife: uniform(s.rng, 180, 300),
			Speed:   uniform(s.rng, 0.15, 0.3),
		})
	}
	waves := s.Waves[:0]
	for _, w := range s.Waves {
		w.Life += dt
		w.Radius += w.Speed * dt
		if w.Life < w.MaxLife {
			waves = append(waves, w)
		}
	}
	s.Waves = waves
}

package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/systems"
)

// ParticleRenderer renders consume sparks and ripples.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// lifeRatio is the remaining share of a particle's life.
func lifeRatio(p systems.Particle) float64 {
	if p.MaxAge <= 0 {
		return 0
	}
	return clamp01(1 - p.Age/p.MaxAge)
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(cam camera.Camera, particles []systems.Particle) {
	for i := range particles {
		p := &particles[i]
		if !cam.IsVisible(p.Pos.X, p.Pos.Y, 10) {
			continue
		}

		life := lifeRatio(*p)
		size := p.Size * life * cam.Zoom
		if size < 0.5 {
			size = 0.5
		}
		sx, sy := cam.WorldToScreen(p.Pos.X, p.Pos.Y)
		rl.DrawCircleV(vec(sx, sy), float32(size), Fade(Hex(p.Color), life*p.Alpha))
	}
}

// DrawRipples renders the expanding rings left by consumed objects.
func (r *ParticleRenderer) DrawRipples(cam camera.Camera, ripples []systems.Ripple) {
	for _, rp := range ripples {
		progress := rp.Progress()
		radius := (rp.StartRadius + progress*rp.ExpandTo) * cam.Zoom
		sx, sy := cam.WorldToScreen(rp.Pos.X, rp.Pos.Y)
		width := math.Max(1, 1.5*(1-progress))
		ring(vec(sx, sy), radius, width, Fade(Hex(rp.Color), (1-progress)*0.3))
	}
}

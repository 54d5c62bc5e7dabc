// Package renderer draws game frames with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/config"
	"github.com/pthm-cable/horizon/game"
)

// Renderer composes the layer renderers in paint order.
type Renderer struct {
	background *BackgroundRenderer
	world      *WorldRenderer
	particles  *ParticleRenderer
	events     *EventRenderer
	overlay    *OverlayRenderer

	transition [3]float64
}

// New creates a renderer for the given screen size.
func New(cfg *config.Config, screenW, screenH int32, seed int64) *Renderer {
	return &Renderer{
		background: NewBackgroundRenderer(screenW, screenH, seed),
		world:      NewWorldRenderer(),
		particles:  NewParticleRenderer(),
		events:     NewEventRenderer(),
		overlay:    NewOverlayRenderer(screenW, screenH),
		transition: [3]float64{cfg.Transition.Implode, cfg.Transition.Warp, cfg.Transition.FadeIn},
	}
}

// Resize updates every screen-sized layer.
func (r *Renderer) Resize(screenW, screenH int32) {
	r.background.Resize(screenW, screenH)
	r.overlay.Resize(screenW, screenH)
}

// Draw paints one frame. It must be called between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(f game.Frame, mouse rl.Vector2) {
	cam := f.Camera

	r.background.Draw(cam, f.Biome, f.Tick)
	r.background.DrawAmbient(f.Stars, f.Flashes, f.Waves)
	r.world.DrawBoundary(cam, f.Bounds, f.Biome.BorderColor, f.Tick)
	r.world.DrawEntities(cam, f.Entities, f.Player.Radius, f.Tick)
	r.events.Draw(cam, f.Events, f.Bounds)
	r.particles.Draw(cam, f.Particles)
	r.particles.DrawRipples(cam, f.Ripples)
	r.world.DrawBlackHole(cam, f.Player, f.Tick)

	r.overlay.DrawEdgeIndicators(cam, f.Entities, f.Player.Radius)
	r.overlay.DrawMinimap(f)
	r.overlay.DrawCursor(mouse)
	r.overlay.DrawTransition(f, r.transition)
	r.overlay.DrawCombo(f)
}

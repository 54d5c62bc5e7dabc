package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/systems"
)

// eventDrawFunc draws one running event in screen space.
type eventDrawFunc func(cam camera.Camera, ev systems.ActiveEvent, bounds float64)

// EventRenderer draws the foreground visuals of running events. Kinds
// without a hook (the wall streams) have no overlay; their objects are
// ordinary entities.
type EventRenderer struct {
	hooks map[systems.EventKind]eventDrawFunc
}

// NewEventRenderer creates an event renderer with the built-in hooks.
func NewEventRenderer() *EventRenderer {
	return &EventRenderer{hooks: map[systems.EventKind]eventDrawFunc{
		systems.VoidPulse:         drawPulse,
		systems.StellarBirth:      drawBirth,
		systems.GravitationalWave: drawWave,
	}}
}

// Draw renders every active event that has a hook.
func (r *EventRenderer) Draw(cam camera.Camera, events []systems.ActiveEvent, bounds float64) {
	for _, ev := range events {
		if hook, ok := r.hooks[ev.Kind]; ok {
			hook(cam, ev, bounds)
		}
	}
}

func drawPulse(cam camera.Camera, ev systems.ActiveEvent, _ float64) {
	sx, sy := cam.WorldToScreen(ev.Pulse.Center.X, ev.Pulse.Center.Y)
	col := RGBA(120, 100, 220, (1-ev.Progress())*0.25)
	for _, rg := range ev.Pulse.Rings {
		if rg.Radius <= 0 {
			continue
		}
		ring(vec(sx, sy), rg.Radius*cam.Zoom, 2, col)
	}
}

func drawBirth(cam camera.Camera, ev systems.ActiveEvent, _ float64) {
	b := ev.Birth
	sx, sy := cam.WorldToScreen(b.Center.X, b.Center.Y)
	center := vec(sx, sy)
	p := b.PhaseProgress(ev.Age)

	switch b.Phase {
	case systems.BirthGathering:
		softGlow(center, (3+p*5)*cam.Zoom, RGBA(255, 240, 200, p*0.6))
	case systems.BirthFlash:
		a := (1 - p) * 0.8
		r := (20 + p*40) * cam.Zoom
		softGlow(center, r, RGBA(255, 240, 180, a*0.5))
		softGlow(center, r*0.3, RGBA(255, 255, 255, a))
	default:
		ring(center, (30+p*80)*cam.Zoom, 2, RGBA(255, 220, 120, (1-p)*0.3))
	}
}

// drawWave renders the front as five parallel lines perpendicular to travel.
func drawWave(cam camera.Camera, ev systems.ActiveEvent, bounds float64) {
	w := ev.Wave
	dx, dy := math.Cos(w.Dir), math.Sin(w.Dir)
	px, py := -dy, dx
	a := math.Min(0.12, (1-ev.Progress())*0.15)
	col := RGBA(100, 140, 255, a)
	half := bounds * 1.5

	for i := range 5 {
		offset := float64(i-2) * (w.Wavelength / 3)
		cx, cy := dx*(w.Front+offset), dy*(w.Front+offset)
		x1, y1 := cam.WorldToScreen(cx+px*half, cy+py*half)
		x2, y2 := cam.WorldToScreen(cx-px*half, cy-py*half)
		rl.DrawLineEx(vec(x1, y1), vec(x2, y2), 1.5, col)
	}
}

package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/game"
	"github.com/pthm-cable/horizon/systems"
)

const (
	edgeMargin  = 20
	arrowSize   = 5
	minimapSize = 90
	minimapPad  = 16
	warpRings   = 8
	comboShown  = 3
)

var (
	voidColor    = rl.Color{R: 2, G: 3, B: 8, A: 255}
	warpRing     = rl.Color{R: 130, G: 140, B: 255, A: 255}
	comboColor   = rl.Color{R: 255, G: 210, B: 100, A: 255}
	cursorColor  = rl.Color{R: 200, G: 210, B: 255, A: 255}
	minimapBack  = RGBA(4, 6, 16, 0.7)
	minimapEdge  = RGBA(110, 114, 255, 0.15)
	minimapWall  = RGBA(110, 114, 255, 0.1)
	minimapBlack = rl.Color{R: 138, G: 141, B: 255, A: 255}
)

// OverlayRenderer draws the screen-space layer on top of the world.
type OverlayRenderer struct {
	screenW, screenH float64
}

// NewOverlayRenderer creates an overlay renderer.
func NewOverlayRenderer(screenW, screenH int32) *OverlayRenderer {
	return &OverlayRenderer{screenW: float64(screenW), screenH: float64(screenH)}
}

// Resize updates the overlay dimensions.
func (r *OverlayRenderer) Resize(screenW, screenH int32) {
	r.screenW, r.screenH = float64(screenW), float64(screenH)
}

// arrow is an edge indicator triangle.
type arrow struct {
	Tip, Left, Right rl.Vector2
	Color            string
}

// edgeArrows returns indicators for off-screen objects the player could eat.
func edgeArrows(cam camera.Camera, views []systems.View, playerRadius float64) []arrow {
	var out []arrow
	for _, v := range views {
		if v.Body.Radius > playerRadius*tooBigRatio {
			continue
		}
		ex, ey, angle, ok := cam.EdgeIndicator(v.Pos.X, v.Pos.Y, edgeMargin)
		if !ok {
			continue
		}
		cos, sin := math.Cos(angle), math.Sin(angle)
		out = append(out, arrow{
			Tip:   vec(ex+cos*arrowSize, ey+sin*arrowSize),
			Left:  vec(ex-cos*arrowSize-sin*arrowSize*0.6, ey-sin*arrowSize+cos*arrowSize*0.6),
			Right: vec(ex-cos*arrowSize+sin*arrowSize*0.6, ey-sin*arrowSize-cos*arrowSize*0.6),
			Color: v.Look.Color,
		})
	}
	return out
}

// DrawEdgeIndicators renders arrows on the screen border.
func (r *OverlayRenderer) DrawEdgeIndicators(cam camera.Camera, views []systems.View, playerRadius float64) {
	for _, a := range edgeArrows(cam, views, playerRadius) {
		fillTriangle(a.Tip, a.Left, a.Right, Fade(Hex(a.Color), 0x40/255.0))
	}
}

// minimapScale maps world units to minimap pixels.
func minimapScale(bounds float64) float64 {
	if bounds <= 0 {
		return 0
	}
	return minimapSize / (bounds * 2.2)
}

// DrawMinimap renders the galaxy overview in the bottom-right corner.
func (r *OverlayRenderer) DrawMinimap(f game.Frame) {
	cx := r.screenW - minimapSize - minimapPad + minimapSize/2
	cy := r.screenH - minimapSize - minimapPad + minimapSize/2
	center := vec(cx, cy)
	scale := minimapScale(f.Bounds)
	limit := minimapSize / 2.0

	rl.DrawCircleV(center, limit, minimapBack)
	ring(center, limit, 1, minimapEdge)
	ring(center, f.Bounds*scale, 1, minimapWall)

	for _, v := range f.Entities {
		x, y := v.Pos.X*scale, v.Pos.Y*scale
		if math.Hypot(x, y) > limit {
			continue
		}
		rl.DrawRectangleV(vec(cx+x-0.5, cy+y-0.5), vec(1.5, 1.5), Fade(Hex(v.Look.Color), 0x88/255.0))
	}

	px, py := f.Player.Pos.X*scale, f.Player.Pos.Y*scale
	rl.DrawCircleV(vec(cx+px, cy+py), 3, minimapBlack)
}

// transitionVeil returns the darkening alpha for a transition phase.
func transitionVeil(phase game.Phase, timer, length float64) float64 {
	switch phase {
	case game.PhaseImplode:
		return math.Min(1, timer/length) * 0.8
	case game.PhaseWarp:
		return 0.85
	case game.PhaseFadeIn:
		return (1 - math.Min(1, timer/length)) * 0.8
	default:
		return 0
	}
}

// DrawTransition renders the implode, warp and fade-in overlays.
func (r *OverlayRenderer) DrawTransition(f game.Frame, lengths [3]float64) {
	if !f.Transitioning() {
		return
	}
	var length float64
	switch f.Phase {
	case game.PhaseImplode:
		length = lengths[0]
	case game.PhaseWarp:
		length = lengths[1]
	case game.PhaseFadeIn:
		length = lengths[2]
	}
	if length <= 0 {
		length = 1
	}
	w, h := r.screenW, r.screenH
	rl.DrawRectangle(0, 0, int32(w), int32(h), Fade(voidColor, transitionVeil(f.Phase, f.PhaseTimer, length)))

	if f.Phase != game.PhaseWarp {
		return
	}
	progress := f.PhaseTimer / length
	center := vec(w/2, h/2)
	for i := range warpRings {
		rp := math.Mod(float64(i)/warpRings+progress*2, 1)
		ring(center, rp*math.Max(w, h)*0.7, 2, Fade(warpRing, (1-rp)*0.15))
	}

	if f.Preview.Galaxy > 0 {
		title := fmt.Sprintf("Galaxy %d", f.Preview.Galaxy)
		sub := fmt.Sprintf("%s  -  %d objects", f.Preview.Biome, f.Preview.Count)
		drawCentered(title, w/2, h/2-24, 28, RGBA(220, 225, 255, 0.9))
		drawCentered(sub, w/2, h/2+14, 14, RGBA(160, 170, 230, 0.7))
	}
}

// DrawCombo shows the streak above the black hole.
func (r *OverlayRenderer) DrawCombo(f game.Frame) {
	if f.Combo.Count < comboShown {
		return
	}
	sx, sy := f.Camera.WorldToScreen(f.Player.Pos.X, f.Player.Pos.Y)
	a := math.Min(0.7, f.Combo.Timer/90)
	drawCentered(fmt.Sprintf("x%d", f.Combo.Count), sx, sy-f.Player.Radius*f.Camera.Zoom-20, 14, Fade(comboColor, a))
}

// DrawCursor renders the crosshair while the mouse is over the window.
func (r *OverlayRenderer) DrawCursor(mouse rl.Vector2) {
	mx, my := float64(mouse.X), float64(mouse.Y)
	if mx < 0 || mx > r.screenW || my < 0 || my > r.screenH {
		return
	}
	const size = 10
	c := Fade(cursorColor, 0.3)
	rl.DrawLineV(vec(mx-size, my), vec(mx+size, my), c)
	rl.DrawLineV(vec(mx, my-size), vec(mx, my+size), c)
	rl.DrawCircleV(mouse, 2, Fade(cursorColor, 0.4))
}

func drawCentered(text string, x, y float64, size int32, c rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(x)-w/2, int32(y), size, c)
}

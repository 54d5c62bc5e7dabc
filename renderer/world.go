package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/systems"
)

const (
	cullMargin   = 40
	tooBigRatio  = 1.2
	polygonSides = 6
)

var (
	horizonColor   = rl.Color{R: 2, G: 3, B: 8, A: 255}
	tooBigColor    = RGBA(255, 80, 80, 0.15)
	craftLight     = rl.White
	accretionInner = rl.Color{R: 130, G: 140, B: 255, A: 255}
	accretionOuter = rl.Color{R: 200, G: 160, B: 255, A: 255}
	wellColor      = rl.Color{R: 90, G: 100, B: 220, A: 255}
	edgeColor      = rl.Color{R: 110, G: 120, B: 255, A: 255}
)

// millis converts a tick count to the nominal milliseconds used by the
// animation phases.
func millis(tick int) float64 { return float64(tick) * 1000 / 60 }

// WorldRenderer draws everything that lives in world space.
type WorldRenderer struct {
	outline []rl.Vector2
}

// NewWorldRenderer creates a world renderer.
func NewWorldRenderer() *WorldRenderer {
	return &WorldRenderer{outline: make([]rl.Vector2, polygonSides)}
}

// DrawBoundary renders the galaxy edge: a pulsing halo, the wall itself and
// a dashed warning ring just inside it.
func (r *WorldRenderer) DrawBoundary(cam camera.Camera, bounds float64, border string, tick int) {
	cx, cy := cam.WorldToScreen(0, 0)
	center := vec(cx, cy)
	c := Hex(border)
	pulse := 1 + math.Sin(millis(tick)*0.001)*0.08

	ring(center, bounds*pulse*cam.Zoom, 40*cam.Zoom, Fade(c, 0x18/255.0))
	ring(center, bounds*cam.Zoom, 2, Fade(c, 0x40/255.0))
	dashedRing(center, (bounds-30)*cam.Zoom, 8, 16, Fade(c, 0x20/255.0))
}

// DrawEntities renders every visible object. playerRadius drives the
// too-big warning ring.
func (r *WorldRenderer) DrawEntities(cam camera.Camera, views []systems.View, playerRadius float64, tick int) {
	now := millis(tick)
	for i := range views {
		v := &views[i]
		if !cam.IsVisible(v.Pos.X, v.Pos.Y, v.Body.Radius+cullMargin/cam.Zoom) {
			continue
		}
		r.drawEntity(cam, v, playerRadius, now)
	}
}

func (r *WorldRenderer) drawEntity(cam camera.Camera, v *systems.View, playerRadius, now float64) {
	sx, sy := cam.WorldToScreen(v.Pos.X, v.Pos.Y)
	center := vec(sx, sy)
	look := v.Look
	radius := v.Body.Radius * cam.Zoom
	rotation := v.Rot.Angle
	a := v.Alpha

	consuming := v.Consume.State != components.Idle
	if consuming {
		p := v.Consume.Progress
		radius *= 1 - p
		a = 1 - p*p
		rotation += p * tau
	}
	if radius <= 0 || a <= 0 {
		return
	}
	col := Hex(look.Color)

	if look.Glow > 0 {
		softGlow(center, radius*(2+look.Glow), Fade(col, a*0.35))
	}

	if look.HasTail {
		speed := math.Hypot(v.Vel.X, v.Vel.Y)
		length := math.Max(15, speed*50) * cam.Zoom
		angle := math.Atan2(-v.Vel.Y, -v.Vel.X)
		fadedStroke(center, angle, length, radius*1.2, 0.35*a, 4, col, true)
	}

	switch {
	case look.Shape == catalog.ShapePolygon:
		r.drawPolygon(center, radius, rotation, Fade(col, a))
	case len(look.Bands) > 0:
		drawBanded(center, radius, rotation, look.Bands, a)
	default:
		rl.DrawCircleV(center, float32(radius), Fade(col, a))
	}

	if !consuming && v.Body.Radius > playerRadius*tooBigRatio {
		ring(center, radius+3, 1.5, Fade(tooBigColor, a))
	}

	if look.Archetype == "craft" && math.Sin(now*0.003+v.Rot.Angle*10) > 0.85 {
		rl.DrawCircleV(vec(sx+radius*0.3, sy-radius*0.3), 1.5, Fade(craftLight, a))
	}
}

// drawPolygon fills an irregular hexagon. The wobble is fixed per vertex so
// the outline only turns with rotation.
func (r *WorldRenderer) drawPolygon(center rl.Vector2, radius, rotation float64, col rl.Color) {
	for i := range r.outline {
		angle := rotation + float64(i)/polygonSides*tau
		wobble := 0.85 + math.Sin(float64(i)*2.7)*0.15
		r.outline[i] = vec(float64(center.X)+math.Cos(angle)*radius*wobble, float64(center.Y)+math.Sin(angle)*radius*wobble)
	}
	fillPolygon(center, r.outline, col)
}

// drawBanded fills a circle with horizontal color bands that sway with
// rotation. Bands are clipped to the disc one scanline at a time.
func drawBanded(center rl.Vector2, radius, rotation float64, bands []string, a float64) {
	cx, cy := float64(center.X), float64(center.Y)
	rl.DrawCircleV(center, float32(radius), Fade(Hex(bands[0]), a))

	bandH := radius * 2 / float64(len(bands))
	offsets := make([]float64, len(bands))
	for i := range bands {
		offsets[i] = math.Sin(rotation+float64(i)) * 2
	}
	for y := -radius; y < radius; y++ {
		half := math.Sqrt(math.Max(0, radius*radius-y*y))
		band := 0
		for i := len(bands) - 1; i >= 0; i-- {
			if y+radius >= float64(i)*bandH+offsets[i] {
				band = i
				break
			}
		}
		rl.DrawLineV(vec(cx-half, cy+y), vec(cx+half, cy+y), Fade(Hex(bands[band]), a))
	}
}

// DrawBlackHole renders the player: a two-layer accretion disk, the well's
// glow, the event horizon and a speed trail.
func (r *WorldRenderer) DrawBlackHole(cam camera.Camera, p systems.Player, tick int) {
	sx, sy := cam.WorldToScreen(p.Pos.X, p.Pos.Y)
	center := vec(sx, sy)
	radius := p.Radius * cam.Zoom
	now := millis(tick)
	speed := math.Hypot(p.Vel.X, p.Vel.Y)

	rot := now * 0.0008
	count := int(12 + radius*0.5)
	for i := range count {
		angle := float64(i) / float64(count) * tau
		dist := radius*1.1 + math.Sin(angle*3+now*0.002)*radius*0.3
		size := math.Max(0.5, 1+math.Sin(angle*2+now*0.003)*0.8)
		alpha := 0.15 + math.Sin(angle+now*0.002)*0.1
		rl.DrawCircleV(diskPoint(center, angle, dist, 0.45, rot), float32(size), Fade(accretionInner, alpha))
	}

	// Second layer counter-rotates
	rot2 := rot - rot*1.7
	outer := int(float64(count) * 0.6)
	for i := range outer {
		angle := float64(i) / (float64(count) * 0.6) * tau
		dist := radius*1.3 + math.Sin(angle*2+now*0.003)*radius*0.2
		alpha := 0.08 + math.Sin(angle*3+now*0.004)*0.05
		rl.DrawCircleV(diskPoint(center, angle, dist, 0.35, rot2), 0.8, Fade(accretionOuter, alpha))
	}

	pulse := 1 + math.Sin(now*0.002)*0.04
	softGlow(center, (radius+20*cam.Zoom)*pulse, Fade(wellColor, 0.08))

	rl.DrawCircleV(center, float32(radius), horizonColor)
	ring(center, radius*0.95, math.Max(1, radius*0.1), Fade(edgeColor, 0.25))

	if speed > 0.5 {
		angle := math.Atan2(-p.Vel.Y, -p.Vel.X)
		length := math.Min(40, speed*8) * cam.Zoom
		fadedStroke(center, angle, length, radius*1.5, 0.12, 3, wellColor, false)
	}
}

// diskPoint places a point on a flattened ellipse rotated by rot.
func diskPoint(center rl.Vector2, angle, dist, flatten, rot float64) rl.Vector2 {
	x := math.Cos(angle) * dist
	y := math.Sin(angle) * dist * flatten
	cos, sin := math.Cos(rot), math.Sin(rot)
	return vec(float64(center.X)+x*cos-y*sin, float64(center.Y)+x*sin+y*cos)
}

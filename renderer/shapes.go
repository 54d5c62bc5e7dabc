package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const tau = 2 * math.Pi

// fillTriangle draws a filled triangle in either winding.
// raylib culls clockwise triangles, so the vertices are reordered when needed.
func fillTriangle(a, b, c rl.Vector2, col rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, col)
}

// fillPolygon fans triangles out from the centre over the given outline.
func fillPolygon(center rl.Vector2, points []rl.Vector2, col rl.Color) {
	for i := range points {
		fillTriangle(center, points[i], points[(i+1)%len(points)], col)
	}
}

// ring strokes a circle outline of the given width.
func ring(center rl.Vector2, radius, width float64, col rl.Color) {
	if radius <= 0 || col.A == 0 {
		return
	}
	if width <= 1 {
		rl.DrawCircleLinesV(center, float32(radius), col)
		return
	}
	inner := math.Max(0, radius-width/2)
	rl.DrawRing(center, float32(inner), float32(radius+width/2), 0, 360, ringSegments(radius), col)
}

// dashedRing strokes a circle as dash/gap arcs measured in pixels.
func dashedRing(center rl.Vector2, radius, dash, gap float64, col rl.Color) {
	if radius <= 0 {
		return
	}
	circumference := tau * radius
	step := dash + gap
	for s := 0.0; s < circumference; s += step {
		a0 := s / radius * 180 / math.Pi
		a1 := math.Min(s+dash, circumference) / radius * 180 / math.Pi
		rl.DrawRing(center, float32(radius-0.5), float32(radius+0.5), float32(a0), float32(a1), 2, col)
	}
}

// softGlow approximates a radial gradient from inner to transparent.
func softGlow(center rl.Vector2, radius float64, inner rl.Color) {
	if radius <= 0 || inner.A == 0 {
		return
	}
	outer := inner
	outer.A = 0
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius), inner, outer)
}

func ringSegments(radius float64) int32 {
	return int32(max(24, min(128, radius/2)))
}

// fadedStroke draws a line from a along angle for length in segments whose
// alpha falls off from base toward zero.
func fadedStroke(a rl.Vector2, angle, length, width, base float64, segments int, col rl.Color, taper bool) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	for i := range segments {
		t0 := float64(i) / float64(segments)
		t1 := float64(i+1) / float64(segments)
		w := width
		if taper {
			w = width * (1 - t0*0.5)
		}
		p0 := vec(float64(a.X)+cos*length*t0, float64(a.Y)+sin*length*t0)
		p1 := vec(float64(a.X)+cos*length*t1, float64(a.Y)+sin*length*t1)
		rl.DrawLineEx(p0, p1, float32(w), Fade(col, (1-t0)*base))
	}
}

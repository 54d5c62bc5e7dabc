package renderer

import (
	"math"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	colorMu    sync.Mutex
	colorCache = map[string]rl.Color{}
)

// fallbackColor is used for unparsable hex strings.
var fallbackColor = rl.Color{R: 200, G: 210, B: 240, A: 255}

// Hex parses a "#rrggbb" string into an opaque raylib color.
// Results are cached; catalog colors repeat across thousands of objects.
func Hex(s string) rl.Color {
	colorMu.Lock()
	defer colorMu.Unlock()
	if c, ok := colorCache[s]; ok {
		return c
	}
	c := fallbackColor
	if parsed, err := colorful.Hex(s); err == nil {
		r, g, b := parsed.RGB255()
		c = rl.Color{R: r, G: g, B: b, A: 255}
	}
	colorCache[s] = c
	return c
}

// Fade returns c with its alpha scaled by a in [0, 1].
func Fade(c rl.Color, a float64) rl.Color {
	c.A = alpha(float64(c.A) / 255 * a)
	return c
}

// RGBA builds a color from 8-bit channels and a fractional alpha.
func RGBA(r, g, b uint8, a float64) rl.Color {
	return rl.Color{R: r, G: g, B: b, A: alpha(a)}
}

// Blend mixes two hex colors in Lab space.
func Blend(from, to string, t float64) rl.Color {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return Hex(from)
	}
	r, g, bl := a.BlendLab(b, clamp01(t)).Clamped().RGB255()
	return rl.Color{R: r, G: g, B: bl, A: 255}
}

func alpha(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

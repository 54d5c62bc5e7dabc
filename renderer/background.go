package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/systems"
)

const (
	starCell        = 80
	starThreshold   = 180
	nebulaCell      = 200
	nebulaThreshold = 30
	nebulaParallax  = 0.3
)

var spaceColor = rl.Color{R: 4, G: 6, B: 12, A: 255}

// star is one hashed starfield cell.
type star struct {
	OffX, OffY float64 // offset inside the cell
	Brightness float64
	Size       float64
	R, G, B    uint8
	Alpha      float64 // brightness after the color's dimming
}

// cellHash is the deterministic per-cell hash shared by stars and nebulae.
// Products wrap to 32 bits before the xor.
func cellHash(gx, gy int, kx, ky int64) int {
	h := int64(int32(int64(gx)*kx) ^ int32(int64(gy)*ky))
	if h < 0 {
		h = -h
	}
	return int(h % 1000)
}

// starAt returns the star in grid cell (gx, gy), if any.
func starAt(gx, gy int) (star, bool) {
	h := cellHash(gx, gy, 73856093, 19349663)
	if h >= starThreshold {
		return star{}, false
	}
	s := star{
		OffX:       float64(h%11) * 5,
		OffY:       float64(h%7) * 6,
		Brightness: 0.15 + float64(h%50)/100,
		Size:       1,
	}
	if h%17 == 0 {
		s.Size = 2
	}
	switch {
	case h%23 == 0:
		s.R, s.G, s.B, s.Alpha = 140, 200, 255, s.Brightness
	case h%31 == 0:
		s.R, s.G, s.B, s.Alpha = 255, 220, 140, s.Brightness*0.8
	default:
		s.R, s.G, s.B, s.Alpha = 200, 210, 240, s.Brightness*0.6
	}
	return s, true
}

// nebula is one faint parallax cloud.
type nebula struct {
	OffX, OffY float64
	Radius     float64
	Alpha      float64
	Color      rl.Color
}

func nebulaAt(gx, gy int) (nebula, bool) {
	h := cellHash(gx, gy, 48611, 96769)
	if h >= nebulaThreshold {
		return nebula{}, false
	}
	n := nebula{
		OffX:   float64(h%13) * 8,
		OffY:   float64(h%9) * 10,
		Radius: 30 + float64(h%40),
		Alpha:  0.015 + float64(h%20)*0.001,
	}
	switch h % 3 {
	case 0:
		n.Color = rl.Color{R: 100, G: 120, B: 255}
	case 1:
		n.Color = rl.Color{R: 255, G: 140, B: 200}
	default:
		n.Color = rl.Color{R: 140, G: 255, B: 200}
	}
	return n, true
}

// BackgroundRenderer draws the deep-space backdrop: biome glow, a hashed
// starfield with simplex twinkle, parallax nebulae and the ambient
// shooting stars, flashes and energy waves.
type BackgroundRenderer struct {
	screenW, screenH float32
	noise            opensimplex.Noise
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, seed int64) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		noise:   opensimplex.New(seed),
	}
}

// Resize updates the backdrop dimensions.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = float32(screenW)
	b.screenH = float32(screenH)
}

// Draw renders the backdrop for the camera position.
func (b *BackgroundRenderer) Draw(cam camera.Camera, biome catalog.Biome, tick int) {
	w, h := float64(b.screenW), float64(b.screenH)
	rl.DrawRectangle(0, 0, int32(w), int32(h), spaceColor)

	tint := Hex(biome.Tint)
	rl.DrawCircleGradient(int32(w/2), int32(h/2), float32(w*0.6), Fade(tint, 0x55/255.0), Fade(tint, 0))

	b.drawStars(cam, tick)
	b.drawNebulae(cam)
}

func (b *BackgroundRenderer) drawStars(cam camera.Camera, tick int) {
	w, h := float64(b.screenW), float64(b.screenH)
	baseX := int(math.Floor((cam.X-w/2)/starCell)) - 1
	baseY := int(math.Floor((cam.Y-h/2)/starCell)) - 1
	cols := int(math.Ceil(w/starCell)) + 3
	rows := int(math.Ceil(h/starCell)) + 3
	t := float64(tick) * 0.01

	for gx := 0; gx < cols; gx++ {
		for gy := 0; gy < rows; gy++ {
			wx, wy := baseX+gx, baseY+gy
			s, ok := starAt(wx, wy)
			if !ok {
				continue
			}
			px := float64(wx*starCell) - cam.X + w/2 + s.OffX
			py := float64(wy*starCell) - cam.Y + h/2 + s.OffY

			// Slow twinkle keyed to the cell so neighbours drift independently
			twinkle := 0.8 + 0.2*b.noise.Eval3(float64(wx)*0.37, float64(wy)*0.37, t)
			c := RGBA(s.R, s.G, s.B, s.Alpha*twinkle)
			rl.DrawRectangleV(vec(px, py), vec(s.Size, s.Size), c)
		}
	}
}

func (b *BackgroundRenderer) drawNebulae(cam camera.Camera) {
	w, h := float64(b.screenW), float64(b.screenH)
	slowX, slowY := cam.X*nebulaParallax, cam.Y*nebulaParallax
	baseX := int(math.Floor((slowX-w/2)/nebulaCell)) - 1
	baseY := int(math.Floor((slowY-h/2)/nebulaCell)) - 1
	cols := int(math.Ceil(w/nebulaCell)) + 3
	rows := int(math.Ceil(h/nebulaCell)) + 3

	for gx := 0; gx < cols; gx++ {
		for gy := 0; gy < rows; gy++ {
			wx, wy := baseX+gx, baseY+gy
			n, ok := nebulaAt(wx, wy)
			if !ok {
				continue
			}
			px := float64(wx*nebulaCell) - slowX + w/2 + n.OffX
			py := float64(wy*nebulaCell) - slowY + h/2 + n.OffY
			rl.DrawCircleGradient(int32(px), int32(py), float32(n.Radius), Fade(n.Color, n.Alpha), Fade(n.Color, 0))
		}
	}
}

// DrawAmbient renders the screen-space living-world effects behind the world.
func (b *BackgroundRenderer) DrawAmbient(stars []systems.ShootingStar, flashes []systems.Flash, waves []systems.EnergyWave) {
	w, h := float64(b.screenW), float64(b.screenH)

	for _, s := range stars {
		a := systems.RisingAlpha(s.Life, s.MaxLife, s.Brightness)
		hx, hy := s.X*w, s.Y*h
		tail := 30 + s.Speed*8
		tx := hx - math.Cos(s.Angle)*tail
		ty := hy - math.Sin(s.Angle)*tail
		// Three fading segments stand in for a linear gradient
		for i := range 3 {
			t0, t1 := float64(i)/3, float64(i+1)/3
			c := RGBA(220, 230, 255, a*(1-t0))
			rl.DrawLineEx(vec(hx+(tx-hx)*t0, hy+(ty-hy)*t0), vec(hx+(tx-hx)*t1, hy+(ty-hy)*t1), 1.5, c)
		}
	}

	for _, f := range flashes {
		a := systems.RisingAlpha(f.Life, f.MaxLife, f.Brightness)
		r := 15 + a*20
		rl.DrawCircleGradient(int32(f.X*w), int32(f.Y*h), float32(r), RGBA(255, 240, 220, a*0.5), RGBA(255, 240, 220, 0))
	}

	for _, ew := range waves {
		if ew.MaxLife <= 0 {
			continue
		}
		a := (1 - ew.Life/ew.MaxLife) * 0.08
		rl.DrawCircleLinesV(vec(ew.X*w, ew.Y*h), float32(ew.Radius), RGBA(100, 120, 220, a))
	}
}

package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/systems"
)

// pointerDeadZone is the normalized distance from screen centre below which
// the mouse does not steer.
const pointerDeadZone = 0.06

// Keys is the directional key state for one frame.
type Keys struct {
	Up, Down, Left, Right bool
}

// Pointer is a pointer position in pixels over a viewport.
type Pointer struct {
	Active bool
	X, Y   float64
	W, H   float64
}

// Steer combines keys and pointer into a movement intent. Each key adds a
// unit along its axis; the pointer adds a direction from the screen centre
// whose strength ramps with distance. The sum is capped at length 1.
func Steer(k Keys, p Pointer) systems.Movement {
	var mx, my float64
	if k.Left {
		mx--
	}
	if k.Right {
		mx++
	}
	if k.Up {
		my--
	}
	if k.Down {
		my++
	}

	if p.Active && p.W > 0 && p.H > 0 {
		dx := (p.X/p.W - 0.5) * 2
		dy := (p.Y/p.H - 0.5) * 2
		if d := math.Hypot(dx, dy); d > pointerDeadZone {
			strength := math.Min(1, d)
			mx += dx / d * strength
			my += dy / d * strength
		}
	}
	return systems.NewMovement(mx, my)
}

// RaylibInput reads WASD, the arrow keys and the mouse.
type RaylibInput struct {
	// Blocked reports whether the pointer is over UI and must not steer.
	Blocked func(x, y float32) bool
}

// Movement implements game.Input.
func (in *RaylibInput) Movement() systems.Movement {
	k := Keys{
		Up:    rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Down:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
	}
	mouse := rl.GetMousePosition()
	p := Pointer{
		Active: rl.IsCursorOnScreen(),
		X:      float64(mouse.X),
		Y:      float64(mouse.Y),
		W:      float64(rl.GetScreenWidth()),
		H:      float64(rl.GetScreenHeight()),
	}
	if in.Blocked != nil && in.Blocked(mouse.X, mouse.Y) {
		p.Active = false
	}
	return Steer(k, p)
}

// PollKeys maps the game's shortcut keys to actions and toggles overlays.
func PollKeys(overlays *OverlayRegistry) Actions {
	var act Actions
	act.TogglePause = rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace)
	act.Restart = rl.IsKeyPressed(rl.KeyR)
	act.ToggleAudio = rl.IsKeyPressed(rl.KeyM)

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		overlays.HandleKeyPress(key)
	}
	return act
}

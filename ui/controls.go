package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/game"
)

// Actions are the requests a frame of UI interaction produced.
type Actions struct {
	TogglePause   bool
	Restart       bool
	ToggleAudio   bool
	Reset         bool
	VolumeChanged bool
	Volume        float64
}

// Any reports whether anything was requested.
func (a Actions) Any() bool {
	return a.TogglePause || a.Restart || a.ToggleAudio || a.Reset || a.VolumeChanged
}

// Merge combines two action sets. A volume change in b wins.
func (a Actions) Merge(b Actions) Actions {
	out := Actions{
		TogglePause:   a.TogglePause || b.TogglePause,
		Restart:       a.Restart || b.Restart,
		ToggleAudio:   a.ToggleAudio || b.ToggleAudio,
		Reset:         a.Reset || b.Reset,
		VolumeChanged: a.VolumeChanged || b.VolumeChanged,
		Volume:        a.Volume,
	}
	if b.VolumeChanged {
		out.Volume = b.Volume
	}
	return out
}

// Apply executes the requested actions against the game.
func (a Actions) Apply(g *game.Game) {
	if a.TogglePause {
		g.TogglePause()
	}
	if a.Restart {
		g.RestartGalaxy()
	}
	if a.Reset {
		g.ResetProgress()
	}
	if a.ToggleAudio || a.VolumeChanged {
		p := g.Progress()
		enabled, volume := p.AudioEnabled, p.Volume
		if a.ToggleAudio {
			enabled = !enabled
		}
		if a.VolumeChanged {
			volume = a.Volume
		}
		g.SetAudio(enabled, volume)
	}
}

// ControlsPanel renders the game controls with raygui widgets, plus the
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	confirmReset bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height for the given overlay registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	buttons := int32(4)*(buttonHeight+4) + sliderHeight + 22
	toggles := int32(len(overlays.All())) * r.Theme.LineHeight
	return r.Theme.Padding*3 + r.Theme.LineHeight + 4 + buttons + r.Theme.LineHeight + toggles
}

const (
	buttonHeight = 24
	sliderHeight = 16
)

// Draw renders the controls panel and returns what the user clicked.
func (c *ControlsPanel) Draw(f game.Frame, overlays *OverlayRegistry) Actions {
	var act Actions
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := float32(c.x + padding)
	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, r.Theme.ValueColor)
	y += lineHeight + 4

	button := func(label string) bool {
		hit := gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: buttonHeight}, label)
		y += buttonHeight + 4
		return hit
	}

	act.TogglePause = button(toggleText(f.Paused, "Resume [P]", "Pause [P]"))
	act.Restart = button("Restart Galaxy [R]")
	act.ToggleAudio = button(toggleText(f.AudioEnabled, "Mute [M]", "Unmute [M]"))

	if c.confirmReset {
		half := (inner - 4) / 2
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, "Confirm") {
			act.Reset = true
			c.confirmReset = false
		}
		if gui.Button(rl.Rectangle{X: x + half + 4, Y: float32(y), Width: half, Height: buttonHeight}, "Cancel") {
			c.confirmReset = false
		}
		y += buttonHeight + 4
	} else if button("Reset Progress") {
		c.confirmReset = true
	}

	rl.DrawText(fmt.Sprintf("Volume %.0f%%", f.Volume*100), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 18
	vol := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: sliderHeight}, "", "", float32(f.Volume), 0, 1)
	if diff := float64(vol) - f.Volume; diff > 0.001 || diff < -0.001 {
		act.VolumeChanged = true
		act.Volume = float64(vol)
	}
	y += sliderHeight + padding

	rl.DrawText("Overlays", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, desc := range overlays.All() {
		c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
		y += lineHeight
	}

	return act
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 50, G: 54, B: 90, A: 255}
	if enabled {
		statusColor = r.Theme.Accent
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = r.Theme.ValueColor
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 120, G: 126, B: 170, A: 255})
	}
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}

package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/horizon/game"
	"github.com/pthm-cable/horizon/systems"
	"github.com/pthm-cable/horizon/telemetry"
)

// frameOf unwraps descriptor data.
func frameOf(data any) game.Frame {
	f, _ := data.(game.Frame)
	return f
}

// GalaxyPanel describes the always-on galaxy readout.
func GalaxyPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "galaxy",
		Width:  230,
		Anchor: AnchorTopLeft,
		Sections: []SectionDescriptor{
			{
				ID: "galaxy",
				Fields: []FieldDescriptor{
					{ID: "galaxy", Label: "Galaxy", Widget: WidgetText, TextGetter: func(d any) string {
						f := frameOf(d)
						return fmt.Sprintf("%d (best %d)", f.Galaxy, f.BestGalaxy)
					}},
					{ID: "biome", Label: "Biome", Widget: WidgetText, TextGetter: func(d any) string {
						return frameOf(d).Biome.Name
					}},
					{ID: "tint", Label: "Tint", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
						return hexColor(frameOf(d).Biome.Tint)
					}},
					{ID: "left", Label: "Objects", Widget: WidgetText, TextGetter: func(d any) string {
						f := frameOf(d)
						return fmt.Sprintf("%d / %d", f.Count, f.Initial)
					}},
					{ID: "cleared", Label: "Cleared", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d any) float32 {
						return float32(frameOf(d).Cleared())
					}},
					{ID: "mass", Label: "Mass", Widget: WidgetMassBar, Getter: func(d any) float32 {
						return float32(frameOf(d).Player.Mass)
					}, MaxGetter: func(d any) float32 {
						return float32(frameOf(d).TargetMass)
					}},
					{ID: "combo", Label: "Combo", Widget: WidgetText, Format: "x%.0f",
						Visible: func(d any) bool { return frameOf(d).Combo.Active() },
						Getter:  func(d any) float32 { return float32(frameOf(d).Combo.Count) }},
				},
			},
		},
	}
}

// StatsPanel describes the lifetime statistics overlay.
func StatsPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "stats",
		Title:  "Lifetime",
		Width:  230,
		Anchor: AnchorCenter,
		Sections: []SectionDescriptor{
			{
				ID: "totals",
				Fields: []FieldDescriptor{
					{ID: "consumed", Label: "Consumed", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(frameOf(d).Stats.TotalConsumed)
					}},
					{ID: "cleared", Label: "Galaxies", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(frameOf(d).Stats.GalaxiesCleared)
					}},
					{ID: "highest", Label: "Peak mass", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 {
						return float32(frameOf(d).Stats.HighestMass)
					}},
					{ID: "combo", Label: "Best combo", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(frameOf(d).Stats.BestCombo)
					}},
					{ID: "time", Label: "Played", Widget: WidgetText, TextGetter: func(d any) string {
						return FormatPlayTime(frameOf(d).Stats.TimePlayed)
					}},
				},
			},
		},
	}
}

// FormatPlayTime renders a tick count as h:mm:ss at the nominal 60 ticks/s.
func FormatPlayTime(ticks float64) string {
	secs := int(ticks / 60)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

func hexColor(s string) rl.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return rl.Gray
	}
	r, g, b := c.RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	galaxy   PanelDescriptor
	stats    PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		galaxy:   GalaxyPanel(),
		stats:    StatsPanel(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(f game.Frame, overlays *OverlayRegistry, screenW, screenH int32) {
	h.renderer.DrawPanelDescriptor(h.galaxy, f, screenW, screenH)

	if overlays.IsEnabled(OverlayStats) {
		h.renderer.DrawPanelDescriptor(h.stats, f, screenW, screenH)
	}

	if f.Paused {
		text := "PAUSED"
		w := rl.MeasureText(text, 20)
		rl.DrawText(text, (screenW-w)/2, 24, 20, h.renderer.Theme.Accent)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.LabelColor)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	FPS         float64
	Registry    *systems.SystemRegistry
}

// NewPerfPanelData builds panel data from collector stats.
func NewPerfPanelData(stats telemetry.PerfStats, reg *systems.SystemRegistry) PerfPanelData {
	return PerfPanelData{
		SystemTimes: stats.PhaseAvg,
		Total:       stats.AvgTick,
		FPS:         stats.FPS,
		Registry:    reg,
	}
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases are listed in the order given.
func (p *PerfPanel) Draw(data PerfPanelData, sortedNames []string) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-8, y-8, 250, int32(len(sortedNames))*14+52)

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s  FPS: %.0f", data.Total.Round(time.Microsecond), data.FPS), x, y, 14, p.renderer.Theme.SectionHeader)
	y += 16

	for i, name := range sortedNames {
		if i >= 12 {
			break
		}

		avg := data.SystemTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		// Use registry to get display name if available
		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

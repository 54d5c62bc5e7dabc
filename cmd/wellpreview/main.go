// Gravity well preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/wellpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/config"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// slider describes one labelled control.
type slider struct {
	label    string
	min, max float32
	value    *float64
	format   string
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	defaults := WellParams{
		Gravity:   cfg.Gravity,
		Mass:      cfg.Player.StartMass * 4,
		BaseSpeed: 1,
	}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Gravity Well Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var well *Well
	span := 0.0
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			well = NewWell(params, cfg.Player)
			span = well.Reach() * 1.2
			generateField(grid, gridSize, well, span)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 4, G: 6, B: 12, A: 255})

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Player disc and reach ring at preview scale
		scale := float32(previewSize / 2 / span)
		center := rl.Vector2{X: 10 + previewSize/2, Y: 10 + previewSize/2}
		rl.DrawCircleV(center, float32(well.Radius())*scale, rl.Color{R: 2, G: 3, B: 8, A: 255})
		rl.DrawCircleLinesV(center, float32(well.Reach())*scale, rl.Color{R: 110, G: 114, B: 255, A: 200})

		drawCurve(well, span)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Gravity Well Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		sliders := []slider{
			{"Player mass", 1, 2000, &params.Mass, "%.0f"},
			{"G (pull constant)", 0.0001, 0.002, &params.Gravity.G, "%.4f"},
			{"Attract base (px)", 0, 200, &params.Gravity.AttractBase, "%.0f"},
			{"Attract mult (x radius)", 2, 24, &params.Gravity.AttractMult, "%.1f"},
			{"Core mult (x radius)", 0.5, 4, &params.Gravity.CoreMult, "%.2f"},
			{"Strength cap (x speed)", 0.1, 2, &params.Gravity.StrengthCap, "%.2f"},
			{"Object base speed", 0.2, 3, &params.BaseSpeed, "%.2f"},
		}
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if next != float32(*s.value) {
				*s.value = float64(next)
				needsRegen = true
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Radius: %.1f  Reach: %.0f  Cap: %.3f", well.Radius(), well.Reach(), well.Cap()),
			int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 25

		out, err := gravityYAML(params.Gravity)
		if err != nil {
			out = err.Error()
		}
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// drawCurve plots pull against distance below the preview.
func drawCurve(w *Well, span float64) {
	const (
		x0     = 10
		y0     = previewSize + 30
		width  = previewSize
		height = windowHeight - previewSize - 50
	)
	rl.DrawRectangleLines(x0, y0, width, height, rl.DarkGray)

	curve := w.Curve(width, span)
	top := w.Cap()
	if top <= 0 {
		top = 1
	}
	for i := 1; i < len(curve); i++ {
		a := rl.Vector2{X: float32(x0 + i - 1), Y: float32(y0+height) - float32(curve[i-1]/top)*height}
		b := rl.Vector2{X: float32(x0 + i), Y: float32(y0+height) - float32(curve[i]/top)*height}
		rl.DrawLineV(a, b, rl.Color{R: 255, G: 210, B: 100, A: 255})
	}

	reachX := int32(x0 + w.Reach()/span*width)
	rl.DrawLine(reachX, y0, reachX, y0+height, rl.Color{R: 110, G: 114, B: 255, A: 160})
	rl.DrawText("distance", x0+width-60, y0+height-14, 12, rl.Gray)
	rl.DrawText("pull", x0+4, y0+4, 12, rl.Gray)
}

// updateTexture updates the GPU texture from the grid values
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		pixels[i] = fieldColor(v)
	}
	rl.UpdateTexture(texture, pixels)
}

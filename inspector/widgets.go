package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 20, G: 24, B: 48, A: 255}
	ColorBarFill     = rl.Color{R: 110, G: 114, B: 255, A: 255}
	ColorBarLow      = rl.Color{R: 200, G: 100, B: 140, A: 255}
	ColorText        = rl.Color{R: 220, G: 225, B: 255, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 158, B: 200, A: 255}
	ColorAngleBg     = rl.Color{R: 30, G: 34, B: 64, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 210, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 120, G: 220, B: 170, A: 255}
	ColorBoolOff     = rl.Color{R: 60, G: 64, B: 100, A: 255}
)

const (
	valueX    = 90
	angleSize = 40
	swatch    = 14
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+valueX, y, 14, ColorText)
	return 20
}

// DrawBar renders a horizontal progress bar.
func DrawBar(x, y int32, name string, value float64, options map[string]string) int32 {
	ratio := math.Max(0, math.Min(1, value/GetMax(options)))

	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + valueX
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fillColor := lerpColor(ColorBarLow, ColorBarFill, float32(ratio))
	rl.DrawRectangle(barX, y, int32(float64(barWidth)*ratio), barHeight, fillColor)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	centerX := x + valueX + angleSize/2
	centerY := y + angleSize/2

	rl.DrawText(name, x, y+angleSize/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, angleSize/2, ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, angleSize/2, ColorTextDim)

	needleLen := float64(angleSize/2 - 4)
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: float32(float64(centerX) + needleLen*math.Cos(radians)), Y: float32(float64(centerY) + needleLen*math.Sin(radians))},
		2,
		ColorAngleNeedle,
	)

	degrees := math.Mod(radians*180/math.Pi, 360)
	if degrees < 0 {
		degrees += 360
	}
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+valueX+angleSize+5, y+angleSize/2-7, 14, ColorTextDim)

	return angleSize + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(x+valueX, y, swatch, swatch, color)
	rl.DrawText(text, x+valueX+swatch+5, y, 14, color)

	return 18
}

// DrawColor renders a hex color as a swatch with its code.
func DrawColor(x, y int32, name, hex string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawRectangle(x+valueX, y, swatch, swatch, ParseHex(hex))
	rl.DrawText(hex, x+valueX+swatch+5, y, 14, ColorText)
	return 18
}

// DrawSwatches renders a row of color bands.
func DrawSwatches(x, y int32, name string, hexes []string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	if len(hexes) == 0 {
		rl.DrawText("-", x+valueX, y, 14, ColorTextDim)
		return 18
	}
	for i, h := range hexes {
		rl.DrawRectangle(x+valueX+int32(i)*(swatch+2), y, swatch, swatch, ParseHex(h))
	}
	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}

	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}

	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}

	case WidgetColor:
		if v, ok := field.Value.(string); ok {
			return DrawColor(x, y, field.Name, v)
		}

	case WidgetSwatches:
		if v, ok := GetStringSlice(field.Value); ok {
			return DrawSwatches(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// ParseHex converts "#rrggbb" to an opaque color, gray when malformed.
func ParseHex(s string) rl.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return rl.Gray
	}
	r, g, b := c.RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}

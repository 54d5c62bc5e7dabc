package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = clampUnit(value)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%3.0f%%", value*100), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// massColor picks the fill for a mass bar at the given ratio of its target.
func (r *Renderer) massColor(ratio float32) rl.Color {
	switch {
	case ratio < 0.3:
		return r.Theme.BarFillLow
	case ratio < 0.6:
		return r.Theme.BarFillMedium
	default:
		return r.Theme.BarFillHigh
	}
}

// DrawMassBar draws the player's mass against a target with color thresholds.
func (r *Renderer) DrawMassBar(x, y int32, label string, current, target float32, width int32) int32 {
	ratio := float32(0)
	if target > 0 {
		ratio = clampUnit(current / target)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 80

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, r.massColor(ratio))
	rl.DrawText(fmt.Sprintf("%.0f/%.0f", current, target), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawColorSwatch draws a color swatch.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	swatchSize := int32(12)
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, swatchSize, swatchSize, color)
	return y + r.Theme.LineHeight
}

// DrawSpacer adds vertical space and returns new Y.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

// fieldHeight is the vertical space a field takes.
func (r *Renderer) fieldHeight(fd FieldDescriptor) int32 {
	switch fd.Widget {
	case WidgetBar, WidgetMassBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	default:
		return r.Theme.LineHeight
	}
}

// FieldText formats a text field's value.
func FieldText(fd FieldDescriptor, data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		format := fd.Format
		if format == "" {
			format = "%.0f"
		}
		return fmt.Sprintf(format, fd.Getter(data))
	}
	return ""
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, FieldText(fd, data))

	case WidgetBar:
		value := float32(0)
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		if span := fd.Range.Max - fd.Range.Min; span > 0 {
			value = (value - fd.Range.Min) / span
		}
		return r.DrawBar(x, y, fd.Label, value, width)

	case WidgetMassBar:
		var current, target float32
		if fd.Getter != nil {
			current = fd.Getter(data)
		}
		if fd.MaxGetter != nil {
			target = fd.MaxGetter(data)
		}
		return r.DrawMassBar(x, y, fd.Label, current, target, width)

	case WidgetColorSwatch:
		color := fd.Color
		if fd.ColorGetter != nil {
			color = fd.ColorGetter(data)
		}
		return r.DrawColorSwatch(x, y, fd.Label, color)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return r.DrawSpacer(y, 6)
	}

	return y
}

// SectionHeight measures a section without drawing it.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return 0
	}
	var h int32
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		h += r.fieldHeight(fd)
	}
	return h + 4
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + 4 // Small gap after section
}

// PanelHeight measures a whole panel including padding and title.
func (r *Renderer) PanelHeight(pd PanelDescriptor, data any) int32 {
	h := r.Theme.Padding * 2
	if pd.Title != "" {
		h += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		h += r.SectionHeight(sd, data)
	}
	return h
}

// PanelOrigin positions a panel of the given size by its anchor.
func PanelOrigin(anchor PanelAnchor, width, height, screenW, screenH, margin int32) (x, y int32) {
	switch anchor {
	case AnchorTopRight:
		return screenW - width - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - height - margin
	case AnchorBottomRight:
		return screenW - width - margin, screenH - height - margin
	case AnchorCenter:
		return (screenW - width) / 2, (screenH - height) / 2
	default:
		return margin, margin
	}
}

// DrawPanelDescriptor lays out and draws a full panel.
func (r *Renderer) DrawPanelDescriptor(pd PanelDescriptor, data any, screenW, screenH int32) {
	width := pd.Width
	if width == 0 {
		width = 240
	}
	height := r.PanelHeight(pd, data)
	x, y := PanelOrigin(pd.Anchor, width, height, screenW, screenH, 12)

	r.DrawPanel(x, y, width, height)
	y += r.Theme.Padding
	if pd.Title != "" {
		rl.DrawText(pd.Title, x+r.Theme.Padding, y, 16, r.Theme.ValueColor)
		y += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		y = r.DrawSection(x+r.Theme.Padding, y, sd, data, width-r.Theme.Padding*2)
	}
}

func clampUnit(v float32) float32 {
	return max(0, min(1, v))
}

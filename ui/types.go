// Package ui provides a descriptor-driven UI for the game.
// Instead of hard-coding field names and layouts, panels are defined
// through metadata that can be updated alongside the underlying systems.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square
	WidgetMassBar                       // Bar with color thresholds against a target
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Range       FieldRange         // Value range for bars
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	MaxGetter   func(any) float32  // Target extractor (for mass bars)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
	Width    int32               // Panel width (0 = auto)
	Anchor   PanelAnchor         // Where to position
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Accent         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme: translucent deep-space panels
// with the black hole's violet as the accent.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 4, G: 6, B: 16, A: 200},
		PanelBorder:    rl.Color{R: 110, G: 114, B: 255, A: 60},
		SectionHeader:  rl.Color{R: 180, G: 185, B: 255, A: 255},
		LabelColor:     rl.Color{R: 150, G: 158, B: 200, A: 255},
		ValueColor:     rl.Color{R: 220, G: 225, B: 255, A: 255},
		BarBg:          rl.Color{R: 20, G: 24, B: 48, A: 255},
		BarFill:        rl.Color{R: 110, G: 114, B: 255, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 140, A: 255},
		BarFillMedium:  rl.Color{R: 220, G: 190, B: 110, A: 255},
		BarFillHigh:    rl.Color{R: 120, G: 220, B: 170, A: 255},
		Accent:         rl.Color{R: 138, G: 141, B: 255, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

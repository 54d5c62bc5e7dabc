// Package inspector shows the components of a selected space object.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/systems"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	// pickSlop widens the hit circle for tiny objects, in screen pixels.
	pickSlop = 5
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 4, G: 6, B: 16, A: 220}
	ColorPanelHeader = rl.Color{R: 20, G: 24, B: 52, A: 255}
	ColorPanelBorder = rl.Color{R: 110, G: 114, B: 255, A: 80}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 110, A: 255}
	ColorSection     = rl.Color{R: 24, G: 28, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 240, A: 255}
)

// Pick returns the object under screen point (sx, sy), preferring the
// closest centre when hit circles overlap.
func Pick(cam camera.Camera, views []systems.View, sx, sy float64) (uint32, bool) {
	wx, wy := cam.ScreenToWorld(sx, sy)
	slop := pickSlop / cam.Zoom

	var id uint32
	best := math.Inf(1)
	found := false
	for _, v := range views {
		d := math.Hypot(v.Pos.X-wx, v.Pos.Y-wy)
		if d <= v.Body.Radius+slop && d < best {
			id, best, found = v.ID, d, true
		}
	}
	return id, found
}

// Find returns the view with the given id.
func Find(views []systems.View, id uint32) (systems.View, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return systems.View{}, false
}

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// Sections lays out the inspectable components of a view.
func Sections(v systems.View) []Section {
	motion := []Field{
		{Name: "Position", Value: fmt.Sprintf("(%.0f, %.0f)", v.Pos.X, v.Pos.Y), Widget: WidgetLabel},
		{Name: "Velocity", Value: fmt.Sprintf("(%.2f, %.2f)", v.Vel.X, v.Vel.Y), Widget: WidgetLabel},
	}
	motion = append(motion, ExtractFields(v.Rot)...)
	if v.Alpha < 1 {
		motion = append(motion, Field{Name: "Fade", Value: v.Alpha, Widget: WidgetBar})
	}
	return []Section{
		{Title: "BODY", Fields: ExtractFields(v.Body)},
		{Title: "APPEARANCE", Fields: ExtractFields(v.Look)},
		{Title: "MOTION", Fields: motion},
		{Title: "CONSUMPTION", Fields: ExtractFields(v.Consume)},
	}
}

// Inspector manages object selection and panel rendering.
type Inspector struct {
	selected     uint32
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX:       screenWidth - PanelWidth - 10,
		panelY:       10,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Resize re-anchors the panel to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth, ins.screenHeight = screenWidth, screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// Contains reports whether a screen point is over the open panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth && int32(y) >= ins.panelY
}

// Select picks the object at a screen point, keeping the current selection
// when the point hits nothing.
func (ins *Inspector) Select(cam camera.Camera, views []systems.View, sx, sy float64) bool {
	id, ok := Pick(cam, views, sx, sy)
	if ok {
		ins.selected = id
		ins.hasSelected = true
	}
	return ok
}

// HandleInput processes click detection for object selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam camera.Camera, views []systems.View) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}
		if ins.Contains(mouseX, mouseY) {
			return
		}
	}

	ins.Select(cam, views, float64(mouseX), float64(mouseY))
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = 0
}

// Selected returns the currently selected object id.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel for the selected object and rings it in world
// space. Objects that were eaten or cleared drop the selection.
func (ins *Inspector) Draw(cam camera.Camera, views []systems.View) {
	if !ins.hasSelected {
		return
	}
	v, ok := Find(views, ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	sx, sy := cam.WorldToScreen(v.Pos.X, v.Pos.Y)
	rl.DrawCircleLinesV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(v.Body.Radius*cam.Zoom+6), ColorAngleNeedle)

	sections := Sections(v)
	panelHeight := calculatePanelHeight(sections)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("ID: %d  %s", v.ID, v.Look.Archetype), x, y, 14, ColorHeaderText)
	y += 22

	for _, s := range sections {
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
		ins.drawSectionHeader(x, y, s.Title)
		y += 20
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
		y += 4
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func calculatePanelHeight(sections []Section) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 // ID line
	for _, s := range sections {
		height += 8 + 20 + 4
		for _, f := range s.Fields {
			height += Height(f)
		}
	}
	return height + PanelPadding
}

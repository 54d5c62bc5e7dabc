package ui

import (
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable panel.
type OverlayID string

const (
	OverlayStats     OverlayID = "stats"
	OverlayControls  OverlayID = "controls"
	OverlayHelp      OverlayID = "help"
	OverlayPerf      OverlayID = "perf"
	OverlayInspector OverlayID = "inspector"
)

// OverlayDescriptor describes a panel the player can show or hide.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no shortcut
	KeyLabel    string // shown in the key legend
	Category    string // "hud" or "debug"
	Exclusive   []OverlayID
	Default     bool // shown at startup
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayStats, Name: "Lifetime Stats", Description: "Totals across every galaxy",
		Key: rl.KeyTab, KeyLabel: "Tab", Category: "hud"},
	{ID: OverlayControls, Name: "Controls", Description: "Pause, restart, audio and reset",
		Key: rl.KeyC, KeyLabel: "C", Category: "hud", Default: true},
	{ID: OverlayHelp, Name: "Key Help", Description: "Key bindings along the bottom edge",
		Key: rl.KeyH, KeyLabel: "H", Category: "hud", Default: true},
	{ID: OverlayPerf, Name: "Performance", Description: "Per-system tick timings",
		Key: rl.KeyF3, KeyLabel: "F3", Category: "debug", Exclusive: []OverlayID{OverlayInspector}},
	{ID: OverlayInspector, Name: "Inspector", Description: "Fields of the clicked object",
		Key: rl.KeyI, KeyLabel: "I", Category: "debug", Exclusive: []OverlayID{OverlayPerf}},
}

// OverlayRegistry tracks which panels are visible. Enabling a panel hides
// the panels it lists as exclusive.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the game's panels.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, desc := range defaultOverlays {
		r.Register(desc)
	}
	return r
}

// Register adds a panel in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = desc.Default
}

func (r *OverlayRegistry) index(id OverlayID) int {
	return slices.IndexFunc(r.descriptors, func(d OverlayDescriptor) bool { return d.ID == id })
}

// SetEnabled shows or hides a panel. Unknown ids are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, other := range r.descriptors[i].Exclusive {
			r.enabled[other] = false
		}
	}
}

// Toggle flips a panel and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// IsEnabled reports whether a panel is visible.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns every panel in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// Categories returns the distinct categories in registration order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, desc := range r.descriptors {
		if !slices.Contains(cats, desc.Category) {
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the panel bound to key. It returns the panel,
// its new state, and whether any panel was bound.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// KeyLegend lists the panel shortcuts, e.g. "Tab: stats | C: controls".
func (r *OverlayRegistry) KeyLegend() string {
	parts := make([]string, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.KeyLabel != "" {
			parts = append(parts, desc.KeyLabel+": "+string(desc.ID))
		}
	}
	return strings.Join(parts, " | ")
}

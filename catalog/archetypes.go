// Package catalog holds the static archetype and biome tables and the
// deterministic galaxy layout built from them.
package catalog

// Shape selects how an archetype is outlined.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapePolygon
)

// String returns the shape name.
func (s Shape) String() string {
	if s == ShapePolygon {
		return "polygon"
	}
	return "circle"
}

// Archetype describes one kind of drifting space object.
type Archetype struct {
	ID        string
	Label     string
	Colors    []string   // hex palette, one picked per instance
	Bands     [][]string // optional band sets (planets)
	MinRadius float64
	MaxRadius float64
	Density   float64
	Speed     float64 // upper bound of the instance drift speed
	Tone      float64 // audio pitch hint
	Glow      float64
	SizeClass int
	HasTail   bool
	Shape     Shape
	MinGalaxy int // 0 means always available
}

// Available reports whether the archetype may appear in the given galaxy.
func (a Archetype) Available(galaxy int) bool {
	return a.MinGalaxy == 0 || galaxy >= a.MinGalaxy
}

var archetypes = []Archetype{
	{
		ID: "dust", Label: "Space Dust",
		Colors:    []string{"#6b7399", "#7e86ad", "#5c647d"},
		MinRadius: 2, MaxRadius: 4, Density: 0.5, Speed: 0.3,
		Tone: 280, Glow: 0, SizeClass: 0,
	},
	{
		ID: "junk", Label: "Debris",
		Colors:    []string{"#8894b7", "#7a8aaa", "#9ba4c2"},
		MinRadius: 3, MaxRadius: 6, Density: 0.8, Speed: 0.2,
		Tone: 200, Glow: 0, SizeClass: 1,
	},
	{
		ID: "meteor", Label: "Meteor",
		Colors:    []string{"#b8ac8c", "#c4b690", "#a89c7a"},
		MinRadius: 5, MaxRadius: 9, Density: 1.2, Speed: 0.35,
		Tone: 180, Glow: 0.15, SizeClass: 2,
	},
	{
		ID: "comet", Label: "Comet",
		Colors:    []string{"#83d7ff", "#6ec8f5", "#99e2ff"},
		MinRadius: 4, MaxRadius: 7, Density: 1.0, Speed: 0.8,
		Tone: 260, Glow: 0.4, SizeClass: 1, HasTail: true,
	},
	{
		ID: "craft", Label: "Derelict",
		Colors:    []string{"#c28eff", "#b07ae0", "#d4a2ff"},
		MinRadius: 6, MaxRadius: 11, Density: 1.4, Speed: 0.18,
		Tone: 210, Glow: 0.2, SizeClass: 3, Shape: ShapePolygon,
	},
	{
		ID: "planet", Label: "Planet",
		Colors: []string{"#62c38c", "#4db87a", "#78d4a0"},
		Bands: [][]string{
			{"#4a9e6e", "#62c38c", "#88ddb0"},
			{"#3d7a8e", "#5ba4b8", "#82c8d8"},
			{"#8e6a3d", "#b88a5b", "#d8b282"},
		},
		MinRadius: 10, MaxRadius: 16, Density: 2.0, Speed: 0.06,
		Tone: 140, Glow: 0.1, SizeClass: 4,
	},
	{
		ID: "star", Label: "Star",
		Colors:    []string{"#ffd86d", "#ffcc44", "#ffe599"},
		MinRadius: 14, MaxRadius: 22, Density: 2.8, Speed: 0.03,
		Tone: 110, Glow: 0.7, SizeClass: 5,
	},
	{
		ID: "neutron", Label: "Neutron Star",
		Colors:    []string{"#e0e8ff", "#c8d4ff", "#f0f4ff"},
		MinRadius: 4, MaxRadius: 6, Density: 5.0, Speed: 0.02,
		Tone: 80, Glow: 0.9, SizeClass: 3, MinGalaxy: 4,
	},
}

// Archetypes returns the archetype table in catalog order.
// The returned slice must not be modified.
func Archetypes() []Archetype {
	return archetypes
}

// Lookup finds an archetype by id.
func Lookup(id string) (Archetype, bool) {
	for _, a := range archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return Archetype{}, false
}

// MustLookup finds an archetype by id, falling back to dust for unknown ids.
func MustLookup(id string) Archetype {
	if a, ok := Lookup(id); ok {
		return a
	}
	return archetypes[0]
}

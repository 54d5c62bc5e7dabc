package catalog

import (
	"math"
	"math/rand"
)

const (
	maxObjects     = 340
	baseObjects    = 30
	objectsPerStep = 16
	baseBounds     = 800
	boundsPerStep  = 120
)

// ObjectCount returns the initial population of a galaxy.
func ObjectCount(galaxy int) int {
	return min(maxObjects, baseObjects+objectsPerStep*galaxy)
}

// Bounds returns the radius of a galaxy's circular play area.
func Bounds(galaxy int) float64 {
	return baseBounds + boundsPerStep*float64(galaxy)
}

// Instance is a freshly rolled space object, ready to be stored.
type Instance struct {
	Archetype string
	SizeClass int
	Color     string
	Bands     []string
	Radius    float64
	Density   float64
	Mass      float64
	X, Y      float64
	VX, VY    float64
	BaseSpeed float64
	Rotation  float64
	Spin      float64
	Tone      float64
	Glow      float64
	HasTail   bool
	Shape     Shape
}

// NewInstance rolls a concrete object of the archetype at (x, y).
func NewInstance(arch Archetype, x, y float64, rng *rand.Rand) Instance {
	r := Uniform(rng, arch.MinRadius, arch.MaxRadius)
	heading := Uniform(rng, 0, 2*math.Pi)
	speed := Uniform(rng, arch.Speed*0.4, arch.Speed)

	var color string
	if len(arch.Colors) > 0 {
		color = arch.Colors[rng.Intn(len(arch.Colors))]
	}
	var bands []string
	if len(arch.Bands) > 0 {
		bands = arch.Bands[rng.Intn(len(arch.Bands))]
	}

	return Instance{
		Archetype: arch.ID,
		SizeClass: arch.SizeClass,
		Color:     color,
		Bands:     bands,
		Radius:    r,
		Density:   arch.Density,
		Mass:      math.Pi * r * r * arch.Density,
		X:         x,
		Y:         y,
		VX:        math.Cos(heading) * speed,
		VY:        math.Sin(heading) * speed,
		BaseSpeed: speed,
		Rotation:  Uniform(rng, 0, 2*math.Pi),
		Spin:      Uniform(rng, -0.008, 0.008),
		Tone:      arch.Tone + Uniform(rng, -20, 20),
		Glow:      arch.Glow,
		HasTail:   arch.HasTail,
		Shape:     arch.Shape,
	}
}

// WithHeading returns a copy of the instance moving along angle at speed,
// with its base speed replaced.
func (in Instance) WithHeading(angle, speed float64) Instance {
	in.VX = math.Cos(angle) * speed
	in.VY = math.Sin(angle) * speed
	in.BaseSpeed = speed
	return in
}

// Layout rolls the initial population of a galaxy: objects grouped into
// 3+galaxy/3 clusters, the remainder scattered across the disc.
func Layout(galaxy int, rng *rand.Rand) []Instance {
	count := ObjectCount(galaxy)
	bounds := Bounds(galaxy)
	biome := BiomeFor(galaxy)
	out := make([]Instance, 0, count)

	clusters := 3 + galaxy/3
	if clusters < 1 {
		clusters = 1
	}
	perCluster := count / clusters

	for c := 0; c < clusters; c++ {
		cx := Uniform(rng, -bounds*0.7, bounds*0.7)
		cy := Uniform(rng, -bounds*0.7, bounds*0.7)
		spread := Uniform(rng, 100, 350)

		for i := 0; i < perCluster; i++ {
			arch := WeightedArchetype(biome.Weights, galaxy, rng)
			angle := Uniform(rng, 0, 2*math.Pi)
			dist := Uniform(rng, 20, spread)
			x, y := clampToDisc(cx+math.Cos(angle)*dist, cy+math.Sin(angle)*dist, bounds-30)
			out = append(out, NewInstance(arch, x, y, rng))
		}
	}

	for len(out) < count {
		arch := WeightedArchetype(biome.Weights, galaxy, rng)
		angle := Uniform(rng, 0, 2*math.Pi)
		dist := Uniform(rng, 50, bounds*0.85)
		out = append(out, NewInstance(arch, math.Cos(angle)*dist, math.Sin(angle)*dist, rng))
	}

	return out
}

func clampToDisc(x, y, radius float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d > radius {
		s := radius / d
		return x * s, y * s
	}
	return x, y
}

package catalog

import (
	"math"
	"math/rand"
	"testing"
)

func TestObjectCountAndBounds(t *testing.T) {
	tests := []struct {
		galaxy int
		count  int
		bounds float64
	}{
		{1, 46, 920},
		{5, 110, 1400},
		{19, 334, 3080},
		{20, 340, 3200},
		{50, 340, 6800},
	}
	for _, tt := range tests {
		if got := ObjectCount(tt.galaxy); got != tt.count {
			t.Errorf("ObjectCount(%d) = %d, want %d", tt.galaxy, got, tt.count)
		}
		if got := Bounds(tt.galaxy); got != tt.bounds {
			t.Errorf("Bounds(%d) = %v, want %v", tt.galaxy, got, tt.bounds)
		}
	}
}

func TestBiomeFor(t *testing.T) {
	tests := []struct {
		galaxy int
		want   string
	}{
		{1, "Comet Current"}, // five ungated biomes, index 1
		{2, "Ruined Armada"},
		{3, "Planet Nursery"}, // Void Rift unlocks, six available
		{5, "Void Rift"},      // Neutron Forge unlocks, seven available
		{7, "Debris Reef"},
		{0, "Comet Current"}, // treated as galaxy 1
		{-4, "Comet Current"},
	}
	for _, tt := range tests {
		if got := BiomeFor(tt.galaxy).Name; got != tt.want {
			t.Errorf("BiomeFor(%d) = %q, want %q", tt.galaxy, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	if a, ok := Lookup("comet"); !ok || !a.HasTail {
		t.Errorf("Lookup(comet) = %+v, %v", a, ok)
	}
	if _, ok := Lookup("nebula"); ok {
		t.Error("Lookup(nebula) should fail")
	}
	if got := MustLookup("nebula").ID; got != "dust" {
		t.Errorf("MustLookup fallback = %q, want dust", got)
	}
}

func TestWeightedArchetypeRespectsGates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := map[string]float64{"neutron": 5, "dust": 1}

	for i := 0; i < 500; i++ {
		if a := WeightedArchetype(weights, 3, rng); a.ID != "dust" {
			t.Fatalf("galaxy 3 drew %q, want only dust", a.ID)
		}
	}

	seenNeutron := false
	for i := 0; i < 500; i++ {
		if WeightedArchetype(weights, 4, rng).ID == "neutron" {
			seenNeutron = true
			break
		}
	}
	if !seenNeutron {
		t.Error("galaxy 4 never drew neutron")
	}
}

func TestWeightedArchetypeFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		weights map[string]float64
		galaxy  int
		want    string
	}{
		{"no weights", map[string]float64{}, 1, "dust"},
		{"only gated", map[string]float64{"neutron": 3}, 1, "neutron"},
		{"all zero", map[string]float64{"star": 0, "junk": 0}, 2, "dust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedArchetype(tt.weights, tt.galaxy, rng).ID; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeightedArchetypeDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := map[string]float64{"dust": 3, "star": 1}
	counts := map[string]int{}
	const n = 8000
	for i := 0; i < n; i++ {
		counts[WeightedArchetype(weights, 1, rng).ID]++
	}
	frac := float64(counts["dust"]) / n
	if math.Abs(frac-0.75) > 0.03 {
		t.Errorf("dust fraction = %.3f, want ~0.75", frac)
	}
}

func TestNewInstance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, arch := range Archetypes() {
		for i := 0; i < 50; i++ {
			in := NewInstance(arch, 10, -5, rng)
			if in.Radius < arch.MinRadius || in.Radius > arch.MaxRadius {
				t.Fatalf("%s radius %v outside [%v, %v]", arch.ID, in.Radius, arch.MinRadius, arch.MaxRadius)
			}
			wantMass := math.Pi * in.Radius * in.Radius * arch.Density
			if math.Abs(in.Mass-wantMass) > 1e-9 {
				t.Fatalf("%s mass %v, want %v", arch.ID, in.Mass, wantMass)
			}
			speed := math.Hypot(in.VX, in.VY)
			if math.Abs(speed-in.BaseSpeed) > 1e-9 {
				t.Fatalf("%s speed %v != base speed %v", arch.ID, speed, in.BaseSpeed)
			}
			if in.BaseSpeed < arch.Speed*0.4-1e-12 || in.BaseSpeed > arch.Speed {
				t.Fatalf("%s base speed %v out of range", arch.ID, in.BaseSpeed)
			}
			if math.Abs(in.Spin) > 0.008 {
				t.Fatalf("%s spin %v out of range", arch.ID, in.Spin)
			}
			if math.Abs(in.Tone-arch.Tone) > 20 {
				t.Fatalf("%s tone %v too far from %v", arch.ID, in.Tone, arch.Tone)
			}
			if (len(arch.Bands) > 0) != (in.Bands != nil) {
				t.Fatalf("%s bands mismatch", arch.ID)
			}
		}
	}
}

func TestLayout(t *testing.T) {
	for _, galaxy := range []int{1, 4, 9} {
		rng := rand.New(rand.NewSource(int64(galaxy)))
		insts := Layout(galaxy, rng)
		if len(insts) != ObjectCount(galaxy) {
			t.Errorf("galaxy %d: %d instances, want %d", galaxy, len(insts), ObjectCount(galaxy))
		}
		bounds := Bounds(galaxy)
		for _, in := range insts {
			if d := math.Hypot(in.X, in.Y); d > bounds-30+1e-6 {
				t.Fatalf("galaxy %d: instance at distance %v outside layout area", galaxy, d)
			}
			a := MustLookup(in.Archetype)
			if !a.Available(galaxy) {
				t.Fatalf("galaxy %d: gated archetype %q placed", galaxy, in.Archetype)
			}
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	a := Layout(2, rand.New(rand.NewSource(42)))
	b := Layout(2, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i].X != b[i].X || a[i].Archetype != b[i].Archetype {
			t.Fatalf("layouts diverge at %d", i)
		}
	}
}

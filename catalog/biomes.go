package catalog

// Biome is a galaxy theme: a background tint and archetype weights.
type Biome struct {
	Name        string
	Description string
	Tint        string
	TintRGB     [3]uint8
	BorderColor string
	Weights     map[string]float64
	MinGalaxy   int
}

// Available reports whether the biome may be chosen for the given galaxy.
func (b Biome) Available(galaxy int) bool {
	return b.MinGalaxy == 0 || galaxy >= b.MinGalaxy
}

var biomes = []Biome{
	{
		Name: "Debris Reef", Description: "Dense fields of drifting wreckage",
		Tint: "#0d1633", TintRGB: [3]uint8{13, 22, 51}, BorderColor: "#1a2e6a",
		Weights: map[string]float64{"dust": 6, "junk": 5, "meteor": 3, "comet": 1, "craft": 1, "planet": 0.5, "star": 0.2, "neutron": 0},
	},
	{
		Name: "Comet Current", Description: "Rivers of ice and light",
		Tint: "#0a2238", TintRGB: [3]uint8{10, 34, 56}, BorderColor: "#164a6e",
		Weights: map[string]float64{"dust": 3, "junk": 1, "meteor": 1, "comet": 7, "craft": 1, "planet": 1, "star": 0.5, "neutron": 0},
	},
	{
		Name: "Ruined Armada", Description: "Graveyard of ancient vessels",
		Tint: "#1a0e30", TintRGB: [3]uint8{26, 14, 48}, BorderColor: "#4a2a7a",
		Weights: map[string]float64{"dust": 2, "junk": 3, "meteor": 2, "comet": 1, "craft": 6, "planet": 1, "star": 0.5, "neutron": 0},
	},
	{
		Name: "Planet Nursery", Description: "Worlds forming in the dust",
		Tint: "#0e2218", TintRGB: [3]uint8{14, 34, 24}, BorderColor: "#1e5a3a",
		Weights: map[string]float64{"dust": 2, "junk": 1, "meteor": 1, "comet": 1, "craft": 1, "planet": 6, "star": 2, "neutron": 0},
	},
	{
		Name: "Star Meadow", Description: "Brilliant fields of burning suns",
		Tint: "#221a08", TintRGB: [3]uint8{34, 26, 8}, BorderColor: "#6a5a1e",
		Weights: map[string]float64{"dust": 2, "junk": 1, "meteor": 1, "comet": 1, "craft": 1, "planet": 2, "star": 6, "neutron": 0},
	},
	{
		Name: "Void Rift", Description: "The space between spaces",
		Tint: "#0a0a1e", TintRGB: [3]uint8{10, 10, 30}, BorderColor: "#2a2a5a",
		Weights:   map[string]float64{"dust": 4, "junk": 2, "meteor": 2, "comet": 2, "craft": 2, "planet": 2, "star": 2, "neutron": 1},
		MinGalaxy: 3,
	},
	{
		Name: "Neutron Forge", Description: "Where dead stars are born again",
		Tint: "#14101e", TintRGB: [3]uint8{20, 16, 30}, BorderColor: "#5040aa",
		Weights:   map[string]float64{"dust": 3, "junk": 2, "meteor": 2, "comet": 2, "craft": 2, "planet": 2, "star": 3, "neutron": 4},
		MinGalaxy: 5,
	},
}

// Biomes returns the biome table in catalog order.
// The returned slice must not be modified.
func Biomes() []Biome {
	return biomes
}

// BiomeFor picks the biome for a galaxy number: available[galaxy mod n].
// Galaxy numbers below 1 are treated as 1. If no biome is available the
// lowest-gated biome is returned.
func BiomeFor(galaxy int) Biome {
	if galaxy < 1 {
		galaxy = 1
	}
	available := make([]Biome, 0, len(biomes))
	for _, b := range biomes {
		if b.Available(galaxy) {
			available = append(available, b)
		}
	}
	if len(available) == 0 {
		lowest := biomes[0]
		for _, b := range biomes[1:] {
			if b.MinGalaxy < lowest.MinGalaxy {
				lowest = b
			}
		}
		return lowest
	}
	return available[galaxy%len(available)]
}

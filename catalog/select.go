package catalog

import "math/rand"

// WeightedArchetype draws an archetype using the biome weights, ignoring
// archetypes gated above the galaxy or with no positive weight.
//
// When nothing qualifies, the lowest-gated archetype with the highest
// positive weight is returned, and dust when no weight is positive at all.
func WeightedArchetype(weights map[string]float64, galaxy int, rng *rand.Rand) Archetype {
	total := 0.0
	for _, a := range archetypes {
		if a.Available(galaxy) && weights[a.ID] > 0 {
			total += weights[a.ID]
		}
	}
	if total <= 0 {
		return fallbackArchetype(weights)
	}

	r := rng.Float64() * total
	var last Archetype
	for _, a := range archetypes {
		w := weights[a.ID]
		if !a.Available(galaxy) || w <= 0 {
			continue
		}
		last = a
		r -= w
		if r <= 0 {
			return a
		}
	}
	// Float rounding can leave a sliver of remainder
	return last
}

func fallbackArchetype(weights map[string]float64) Archetype {
	best, found := Archetype{}, false
	for _, a := range archetypes {
		w := weights[a.ID]
		if w <= 0 {
			continue
		}
		if !found || a.MinGalaxy < best.MinGalaxy ||
			(a.MinGalaxy == best.MinGalaxy && w > weights[best.ID]) {
			best, found = a, true
		}
	}
	if !found {
		return archetypes[0]
	}
	return best
}

// Uniform returns a value drawn uniformly from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

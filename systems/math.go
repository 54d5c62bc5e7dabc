package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// clamp clamps v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// uniform returns a value drawn uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// polar returns the vector of length r at angle a.
func polar(a, r float64) r2.Vec {
	return r2.Vec{X: math.Cos(a) * r, Y: math.Sin(a) * r}
}

// capSpeed rescales v uniformly so its norm does not exceed limit.
func capSpeed(v r2.Vec, limit float64) r2.Vec {
	speed := r2.Norm(v)
	if speed > limit && speed > 0 {
		return r2.Scale(limit/speed, v)
	}
	return v
}

// reflect mirrors v about the unit normal n, scaled by damping.
// damping 1 is an elastic reflection.
func reflect(v, n r2.Vec, damping float64) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n)*damping, n))
}

// minNormDist guards against dividing by a near-zero distance from origin.
const minNormDist = 1e-9

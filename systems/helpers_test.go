package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

const eps = 1e-9

func testConfig() *config.Config {
	return config.Default()
}

func newTestStore() *Store {
	return NewStore(ecs.NewWorld())
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// testInstance builds a motionless object of the given radius at (x, y).
func testInstance(x, y, radius float64) catalog.Instance {
	return catalog.Instance{
		Archetype: "meteor",
		Color:     "#b8ac8c",
		Radius:    radius,
		Density:   1.2,
		Mass:      math.Pi * radius * radius * 1.2,
		X:         x,
		Y:         y,
		BaseSpeed: 0.3,
		Tone:      180,
	}
}

func mustSpawn(t *testing.T, s *Store, inst catalog.Instance) ecs.Entity {
	t.Helper()
	e, ok := s.Spawn(inst, nil)
	if !ok {
		t.Fatalf("spawn refused (count %d, cap %d, sealed %v)", s.Count(), s.Cap(), s.Sealed())
	}
	return e
}

func newTestPlayer(cfg *config.Config, mass float64) *Player {
	return &Player{Mass: mass, Radius: RadiusForMass(cfg.Player, mass)}
}

func ecsConsMap(s *Store) *ecs.Map1[components.Consumption] {
	return ecs.NewMap1[components.Consumption](s.World())
}

package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

// Arena is the per-galaxy frame the spawners work in.
type Arena struct {
	Galaxy  int
	Bounds  float64
	Biome   catalog.Biome
	Initial int // population at galaxy start
}

// SpawnSource tags where an object came from.
type SpawnSource uint8

const (
	SourceInitial SpawnSource = iota
	SourceDepletion
	SourceAmbient
	SourceEvent
)

// String returns the source name.
func (s SpawnSource) String() string {
	switch s {
	case SourceDepletion:
		return "depletion"
	case SourceAmbient:
		return "ambient"
	case SourceEvent:
		return "event"
	default:
		return "initial"
	}
}

// SpawnReport counts the objects a population tick added.
type SpawnReport struct {
	Depletion int
	Ambient   int
	Refused   int // spawns blocked by the cap or a sealed store
}

// PopulationSystem keeps the galaxy stocked by spawning at the wall.
type PopulationSystem struct {
	store *Store
	cfg   config.PopulationConfig
	rng   *rand.Rand

	depletionTimer float64
	ambientTimer   float64
}

// NewPopulationSystem creates a population controller.
func NewPopulationSystem(store *Store, cfg config.PopulationConfig, rng *rand.Rand) *PopulationSystem {
	return &PopulationSystem{store: store, cfg: cfg, rng: rng}
}

// Reset zeroes both spawn timers.
func (s *PopulationSystem) Reset() {
	s.depletionTimer = 0
	s.ambientTimer = 0
}

// Cap returns the hard population ceiling for an initial count.
func (s *PopulationSystem) Cap(initial int) int {
	return int(math.Floor(float64(initial) * s.cfg.CapRatio))
}

// Floor returns the population the depletion spawner defends.
func (s *PopulationSystem) Floor(initial int) int {
	return max(s.cfg.FloorMin, int(math.Floor(float64(initial)*s.cfg.FloorRatio)))
}

// DepletionInterval returns the spawn interval for a population deficit.
func (s *PopulationSystem) DepletionInterval(deficit int) float64 {
	return math.Max(s.cfg.DepletionMin, s.cfg.DepletionBase-float64(deficit)*s.cfg.DepletionStep)
}

// Update runs the depletion and ambient spawners.
func (s *PopulationSystem) Update(a Arena, dt float64) SpawnReport {
	var rep SpawnReport

	deficit := s.Floor(a.Initial) - s.store.Count()
	if deficit > 0 {
		s.depletionTimer += dt
		if s.depletionTimer >= s.DepletionInterval(deficit) {
			s.depletionTimer = 0
			if _, ok := s.SpawnEdge(a); ok {
				rep.Depletion++
			} else {
				rep.Refused++
			}
		}
	} else {
		s.depletionTimer = 0
	}

	// The threshold is redrawn every tick, so ambient spawns cluster near its low end.
	interval := s.cfg.AmbientMin + uniform(s.rng, 0, s.cfg.AmbientRange)
	s.ambientTimer += dt
	if s.ambientTimer >= interval {
		s.ambientTimer = 0
		if _, ok := s.SpawnEdge(a); ok {
			rep.Ambient++
		} else {
			rep.Refused++
		}
	}

	return rep
}

// SpawnEdge adds one biome-weighted object on the wall, heading inward.
func (s *PopulationSystem) SpawnEdge(a Arena) (ecs.Entity, bool) {
	arch := catalog.WeightedArchetype(a.Biome.Weights, a.Galaxy, s.rng)
	angle := uniform(s.rng, 0, 2*math.Pi)
	at := polar(angle, a.Bounds-s.cfg.EdgeInset)

	inst := catalog.NewInstance(arch, at.X, at.Y, s.rng)
	inward := angle + math.Pi + uniform(s.rng, -s.cfg.InwardSpread, s.cfg.InwardSpread)
	inst = inst.WithHeading(inward, inst.BaseSpeed)

	return s.store.Spawn(inst, &components.SpawnFade{})
}

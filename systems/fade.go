package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/components"
)

// FadeSystem ramps in freshly spawned objects and drops the marker once they
// are fully visible.
type FadeSystem struct {
	filter *ecs.Filter1[components.SpawnFade]
	store  *Store
	window float64
	done   []ecs.Entity
}

// NewFadeSystem creates a fade system with the given ramp length in ticks.
func NewFadeSystem(store *Store, window float64) *FadeSystem {
	return &FadeSystem{
		filter: ecs.NewFilter1[components.SpawnFade](store.World()),
		store:  store,
		window: window,
	}
}

// Update advances every fade by dt.
func (s *FadeSystem) Update(dt float64) {
	s.done = s.done[:0]
	query := s.filter.Query()
	for query.Next() {
		f := query.Get()
		if s.window <= 0 {
			f.Alpha = 1
		} else if f.Age < s.window {
			f.Age += dt
			f.Alpha = math.Min(1, f.Age/s.window)
		}
		if f.Alpha >= 1 {
			s.done = append(s.done, query.Entity())
		}
	}
	for _, e := range s.done {
		s.store.fadeMap.Remove(e)
	}
}

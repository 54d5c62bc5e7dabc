package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/components"
)

// Store owns the galaxy's space objects and enforces the population cap.
// Every spawn path goes through Spawn.
type Store struct {
	world *ecs.World

	mapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Appearance,
		components.Consumption,
		components.Identity,
	]
	filter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Appearance,
		components.Consumption,
		components.Identity,
	]
	consFilter *ecs.Filter1[components.Consumption]
	fadeMap    *ecs.Map1[components.SpawnFade]

	count  int
	cap    int // 0 = uncapped
	sealed bool
	nextID uint32
}

// NewStore creates a store on the given world.
func NewStore(world *ecs.World) *Store {
	return &Store{
		world: world,
		mapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Appearance,
			components.Consumption,
			components.Identity,
		](world),
		filter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Appearance,
			components.Consumption,
			components.Identity,
		](world),
		consFilter: ecs.NewFilter1[components.Consumption](world),
		fadeMap:    ecs.NewMap1[components.SpawnFade](world),
	}
}

// World returns the underlying ECS world.
func (s *Store) World() *ecs.World { return s.world }

// Spawn stores a new object. fade, when non-nil, attaches a fade-in.
// It returns false when the store is sealed or at its cap.
func (s *Store) Spawn(inst catalog.Instance, fade *components.SpawnFade) (ecs.Entity, bool) {
	if s.sealed || (s.cap > 0 && s.count >= s.cap) {
		return ecs.Entity{}, false
	}

	s.nextID++
	pos := components.Position{X: inst.X, Y: inst.Y}
	vel := components.Velocity{X: inst.VX, Y: inst.VY}
	rot := components.Rotation{Angle: inst.Rotation, Spin: inst.Spin}
	body := components.Body{
		Radius:    inst.Radius,
		Mass:      inst.Mass,
		Density:   inst.Density,
		BaseSpeed: inst.BaseSpeed,
	}
	look := components.Appearance{
		Archetype: inst.Archetype,
		SizeClass: inst.SizeClass,
		Color:     inst.Color,
		Bands:     inst.Bands,
		Tone:      inst.Tone,
		Glow:      inst.Glow,
		HasTail:   inst.HasTail,
		Shape:     inst.Shape,
	}
	cons := components.Consumption{}
	id := components.Identity{ID: s.nextID}

	e := s.mapper.NewEntity(&pos, &vel, &rot, &body, &look, &cons, &id)
	if fade != nil {
		f := *fade
		s.fadeMap.Add(e, &f)
	}
	s.count++
	return e, true
}

// Remove deletes the given entities. Must not be called during a query.
func (s *Store) Remove(entities []ecs.Entity) {
	for _, e := range entities {
		if !s.world.Alive(e) {
			continue
		}
		s.world.RemoveEntity(e)
		s.count--
	}
}

// Clear removes every object.
func (s *Store) Clear() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	s.Remove(all)
	if s.count != 0 {
		slog.Warn("store count drifted after clear", "count", s.count)
		s.count = 0
	}
}

// Count returns the number of objects present, including those being consumed.
func (s *Store) Count() int { return s.count }

// LiveCount returns the number of objects not yet eaten.
func (s *Store) LiveCount() int {
	n := 0
	query := s.consFilter.Query()
	for query.Next() {
		if !query.Get().Frozen() {
			n++
		}
	}
	return n
}

// Cap returns the population cap, 0 when uncapped.
func (s *Store) Cap() int { return s.cap }

// SetCap sets the population cap. n <= 0 removes it.
func (s *Store) SetCap(n int) {
	if n < 0 {
		n = 0
	}
	s.cap = n
}

// Seal refuses all further spawns until Unseal.
func (s *Store) Seal() { s.sealed = true }

// Unseal allows spawns again.
func (s *Store) Unseal() { s.sealed = false }

// Sealed reports whether spawns are refused.
func (s *Store) Sealed() bool { return s.sealed }

// Fade returns the entity's fade-in state, nil when fully visible.
func (s *Store) Fade(e ecs.Entity) *components.SpawnFade {
	if !s.fadeMap.Has(e) {
		return nil
	}
	return s.fadeMap.Get(e)
}

// View is a read-only copy of one object for renderers and tests.
type View struct {
	Entity  ecs.Entity
	ID      uint32
	Pos     components.Position
	Vel     components.Velocity
	Rot     components.Rotation
	Body    components.Body
	Look    components.Appearance
	Consume components.Consumption
	Alpha   float64 // fade-in alpha, 1 when fully visible
}

// Each calls fn for every object in storage order.
func (s *Store) Each(fn func(View)) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, body, look, cons, id := query.Get()
		e := query.Entity()
		alpha := 1.0
		if s.fadeMap.Has(e) {
			alpha = s.fadeMap.Get(e).Alpha
		}
		fn(View{
			Entity:  e,
			ID:      id.ID,
			Pos:     *pos,
			Vel:     *vel,
			Rot:     *rot,
			Body:    *body,
			Look:    *look,
			Consume: *cons,
			Alpha:   alpha,
		})
	}
}

// Views collects every object into a slice.
func (s *Store) Views() []View {
	out := make([]View, 0, s.count)
	s.Each(func(v View) { out = append(out, v) })
	return out
}

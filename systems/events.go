package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/components"
	"github.com/pthm-cable/horizon/config"
)

// EventKind identifies a procedural event.
type EventKind uint8

const (
	MeteorShower EventKind = iota
	CometStream
	VoidPulse
	DerelictFlotilla
	StellarBirth
	GravitationalWave

	numEventKinds
)

var eventNames = [numEventKinds]string{
	"meteorShower",
	"cometStream",
	"voidPulse",
	"derelictFlotilla",
	"stellarBirth",
	"gravitationalWave",
}

// String returns the event id used in config, cues and telemetry.
func (k EventKind) String() string {
	if k < numEventKinds {
		return eventNames[k]
	}
	return "unknown"
}

// EventKinds returns every kind in evaluation order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, numEventKinds)
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// ParseEventKind looks up a kind by id.
func ParseEventKind(id string) (EventKind, bool) {
	for i, name := range eventNames {
		if name == id {
			return EventKind(i), true
		}
	}
	return 0, false
}

// HazardFunc returns the firing probability for one evaluation.
type HazardFunc func(Metrics) float64

// EventDef gates and weights one event kind.
type EventDef struct {
	Kind      EventKind
	Cooldown  float64
	MinGalaxy int
	MinMass   float64
	Disabled  bool
	Hazard    HazardFunc
}

// EventState is the scheduler's coarse state.
type EventState uint8

const (
	StateGrace   EventState = iota // early galaxy, nothing may fire
	StateArmed                     // an evaluation may fire
	StateCooling                   // global cooldown after a fire
)

// String returns the state name.
func (s EventState) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateCooling:
		return "cooling"
	default:
		return "grace"
	}
}

// EventReport summarizes one scheduler tick.
type EventReport struct {
	Fired   []EventKind
	Spawned int
	Refused int
}

// EventSystem schedules procedural events and runs their choreography.
type EventSystem struct {
	store  *Store
	filter *ecs.Filter3[components.Position, components.Velocity, components.Consumption]
	cfg    config.EventsConfig
	rng    *rand.Rand
	defs   []EventDef

	grace          float64
	globalCooldown float64
	evalTimer      float64
	cooldowns      [numEventKinds]float64
	active         []ActiveEvent

	report EventReport
}

// NewEventSystem creates an event system with the built-in catalog tuned by cfg.
func NewEventSystem(store *Store, cfg config.EventsConfig, rng *rand.Rand) *EventSystem {
	s := &EventSystem{
		store:  store,
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Consumption](store.World()),
		cfg:    cfg,
		rng:    rng,
		defs:   DefaultEventDefs(cfg),
	}
	s.Reset()
	return s
}

// DefaultEventDefs returns the built-in catalog in evaluation order,
// with gates and cooldowns taken from cfg where present.
func DefaultEventDefs(cfg config.EventsConfig) []EventDef {
	defs := make([]EventDef, 0, numEventKinds)
	for _, k := range EventKinds() {
		g := builtinGates[k]
		def := EventDef{
			Kind:      k,
			Cooldown:  g.cooldown,
			MinGalaxy: g.minGalaxy,
			MinMass:   g.minMass,
			Hazard:    builtinHazards[k],
		}
		if t, ok := cfg.Kinds[k.String()]; ok {
			def.Cooldown = t.Cooldown
			def.MinGalaxy = t.MinGalaxy
			def.MinMass = t.MinMass
			def.Disabled = t.Disabled
		}
		defs = append(defs, def)
	}
	return defs
}

// Defs returns the catalog. The slice must not be modified.
func (s *EventSystem) Defs() []EventDef { return s.defs }

// SetHazard replaces the hazard function of one kind.
func (s *EventSystem) SetHazard(kind EventKind, fn HazardFunc) {
	for i := range s.defs {
		if s.defs[i].Kind == kind {
			s.defs[i].Hazard = fn
		}
	}
}

// Reset restores the galaxy-start state: grace running, no cooldowns, no events.
func (s *EventSystem) Reset() {
	s.grace = s.cfg.GracePeriod
	s.globalCooldown = 0
	s.evalTimer = 0
	s.cooldowns = [numEventKinds]float64{}
	s.active = s.active[:0]
}

// State reports the scheduler state.
func (s *EventSystem) State() EventState {
	switch {
	case s.grace > 0:
		return StateGrace
	case s.globalCooldown > 0:
		return StateCooling
	default:
		return StateArmed
	}
}

// Cooldown returns the remaining per-kind cooldown.
func (s *EventSystem) Cooldown(kind EventKind) float64 {
	if kind >= numEventKinds {
		return 0
	}
	return s.cooldowns[kind]
}

// Active returns the running events. The slice must not be modified.
func (s *EventSystem) Active() []ActiveEvent { return s.active }

// Update ticks the scheduler and every running event.
func (s *EventSystem) Update(a Arena, p *Player, m Metrics, dt float64) EventReport {
	s.report = EventReport{}

	if s.grace > 0 {
		s.grace -= dt
		s.updateActive(a, p, dt)
		return s.report
	}

	if s.globalCooldown > 0 {
		s.globalCooldown -= dt
	}
	for i := range s.cooldowns {
		if s.cooldowns[i] > 0 {
			s.cooldowns[i] -= dt
		}
	}

	s.evalTimer += dt
	if s.evalTimer >= s.cfg.EvalInterval {
		s.evalTimer = 0
		if s.globalCooldown <= 0 {
			s.evaluate(a, p, m)
		}
	}

	s.updateActive(a, p, dt)
	return s.report
}

// evaluate scans the catalog in order and fires the first passing event.
func (s *EventSystem) evaluate(a Arena, p *Player, m Metrics) {
	for _, def := range s.defs {
		if def.Disabled || a.Galaxy < def.MinGalaxy || p.Mass < def.MinMass {
			continue
		}
		if s.cooldowns[def.Kind] > 0 || def.Hazard == nil {
			continue
		}
		if s.rng.Float64() < def.Hazard(m) {
			s.Trigger(def.Kind, a, p)
			s.cooldowns[def.Kind] = def.Cooldown
			s.globalCooldown = s.cfg.GlobalCooldown
			slog.Info("event fired", "kind", def.Kind.String(), "galaxy", a.Galaxy, "metrics", m)
			return
		}
	}
}

// Trigger starts an event immediately, bypassing gates and cooldowns.
func (s *EventSystem) Trigger(kind EventKind, a Arena, p *Player) {
	if kind >= numEventKinds {
		return
	}
	s.active = append(s.active, eventHandlers[kind].fire(s, a, p))
	s.report.Fired = append(s.report.Fired, kind)
}

func (s *EventSystem) updateActive(a Arena, p *Player, dt float64) {
	kept := s.active[:0]
	for i := range s.active {
		ev := s.active[i]
		ev.Age += dt
		if h := eventHandlers[ev.Kind].update; h != nil {
			h(s, &ev, a, p, dt)
		}
		if ev.Age < ev.Duration {
			kept = append(kept, ev)
		}
	}
	s.active = kept
}

// spawn stores an event object and tallies the outcome.
func (s *EventSystem) spawn(inst instanceSpawn) {
	if _, ok := s.store.Spawn(inst.Instance, &inst.Fade); ok {
		s.report.Spawned++
	} else {
		s.report.Refused++
	}
}

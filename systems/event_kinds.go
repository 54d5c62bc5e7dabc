package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/components"
)

var builtinGates = [numEventKinds]struct {
	cooldown  float64
	minGalaxy int
	minMass   float64
}{
	MeteorShower:      {900, 1, 0},
	CometStream:       {1200, 1, 0},
	VoidPulse:         {1500, 2, 0},
	DerelictFlotilla:  {1800, 2, 40},
	StellarBirth:      {2400, 3, 80},
	GravitationalWave: {1980, 3, 0},
}

var builtinHazards = [numEventKinds]HazardFunc{
	MeteorShower: func(m Metrics) float64 {
		p := 0.08
		if m.Density < 0.5 {
			p += 0.03
		}
		if m.ComboActive {
			p += 0.03
		}
		return p
	},
	CometStream: func(m Metrics) float64 {
		p := 0.06
		if m.Density < 0.5 {
			p += 0.04
		}
		if m.GalaxyTime > 1800 {
			p += 0.04
		}
		return p
	},
	VoidPulse: func(m Metrics) float64 {
		p := 0.04
		if !m.ComboActive {
			p += 0.04
		}
		if m.Late {
			p += 0.06
		}
		return p
	},
	DerelictFlotilla: func(m Metrics) float64 {
		p := 0.04
		if m.Mid {
			p += 0.03
		}
		if m.Late {
			p += 0.04
		}
		return p
	},
	StellarBirth: func(m Metrics) float64 {
		p := 0.03
		if m.Late {
			p += 0.04
		}
		if m.ConsumeRatio > 0.5 {
			p += 0.05
		}
		return p
	},
	GravitationalWave: func(m Metrics) float64 {
		p := 0.03
		if m.GalaxyTime > 1500 {
			p += 0.03
		}
		if m.ConsumeRatio > 0.4 {
			p += 0.04
		}
		return p
	},
}

// BuiltinHazard returns the default hazard of a kind.
func BuiltinHazard(kind EventKind) HazardFunc {
	if kind >= numEventKinds {
		return nil
	}
	return builtinHazards[kind]
}

// ActiveEvent is a running event. Only the state record matching Kind is used.
type ActiveEvent struct {
	Kind     EventKind
	Age      float64
	Duration float64

	Stream StreamState
	Pulse  PulseState
	Birth  BirthState
	Wave   WaveState
}

// Progress returns Age/Duration clamped to [0, 1].
func (e ActiveEvent) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return clamp(e.Age/e.Duration, 0, 1)
}

// StreamState drives the staggered wall spawns of meteor showers, comet
// streams and derelict flotillas.
type StreamState struct {
	Archetype     string
	Angle         float64 // entry point on the wall
	Count         int
	Spawned       int
	Timer         float64
	Window        float64 // all spawns land within this many ticks
	Spread        float64 // entry angle jitter
	HeadingSpread float64 // inward heading jitter
	SpeedMin      float64
	SpeedMax      float64
}

// Ring is one expanding void pulse ring.
type Ring struct {
	Delay  float64
	Radius float64
}

// PulseState is a void pulse centred away from the player.
type PulseState struct {
	Center r2.Vec
	Rings  [3]Ring
	Speed  float64 // ring growth per tick
	Push   float64 // outward acceleration in the band
	Band   float64 // half-width of the pushing band around ring 0
}

// BirthPhase is the stage of a stellar birth.
type BirthPhase uint8

const (
	BirthGathering BirthPhase = iota
	BirthFlash
	BirthExplode
)

// String returns the phase name.
func (p BirthPhase) String() string {
	switch p {
	case BirthFlash:
		return "flash"
	case BirthExplode:
		return "explode"
	default:
		return "gathering"
	}
}

// BirthState is a stellar birth: gather, flash and spawn, then explode.
type BirthState struct {
	Center  r2.Vec
	Phase   BirthPhase
	Spawned bool
}

// PhaseProgress returns how far an event of the given age is through the
// current birth phase, in [0, 1].
func (b BirthState) PhaseProgress(age float64) float64 {
	switch b.Phase {
	case BirthFlash:
		return clamp((age-birthGatherEnd)/(birthFlashEnd-birthGatherEnd), 0, 1)
	case BirthExplode:
		return clamp((age-birthFlashEnd)/(birthDuration-birthFlashEnd), 0, 1)
	default:
		return clamp(age/birthGatherEnd, 0, 1)
	}
}

// WaveState is a planar gravitational wave crossing the galaxy.
type WaveState struct {
	Dir        float64 // travel direction
	Front      float64 // signed distance of the front along Dir
	Speed      float64
	Wavelength float64
	Strength   float64
}

// Choreography constants, in ticks and world units.
const (
	eventEdgeInset = 5

	pulseDuration  = 90
	pulseSpeed     = 3.5
	pulsePush      = 0.4
	pulseBand      = 40
	pulseMinOffset = 200
	pulseMaxOffset = 0.6 // of bounds

	birthDuration  = 165
	birthGatherEnd = 90
	birthFlashEnd  = 105
	birthMinOffset = 150
	birthMaxOffset = 0.5 // of bounds
	fragmentAge    = 30
	fragmentAlpha  = 0.5

	waveSpeed      = 2.5
	waveLength     = 120
	waveStrength   = 0.3
	waveExtraTicks = 60
)

type streamSpec struct {
	archetype             string
	minCount, maxCount    float64
	duration, window      float64
	spread, headingSpread float64
	speedMin, speedMax    float64
}

var streamSpecs = map[EventKind]streamSpec{
	MeteorShower:     {"meteor", 5, 9, 90, 60, 0.3, 0.4, 0.8, 1.4},
	CometStream:      {"comet", 4, 8, 120, 90, 0.2, 0.8, 0.6, 1.0},
	DerelictFlotilla: {"craft", 3, 7, 60, 30, 0.15, 0.2, 0.12, 0.22},
}

type eventHandler struct {
	fire   func(s *EventSystem, a Arena, p *Player) ActiveEvent
	update func(s *EventSystem, ev *ActiveEvent, a Arena, p *Player, dt float64)
}

var eventHandlers = [numEventKinds]eventHandler{
	MeteorShower:      {fire: fireStream(MeteorShower), update: updateStream},
	CometStream:       {fire: fireStream(CometStream), update: updateStream},
	DerelictFlotilla:  {fire: fireStream(DerelictFlotilla), update: updateStream},
	VoidPulse:         {fire: firePulse, update: updatePulse},
	StellarBirth:      {fire: fireBirth, update: updateBirth},
	GravitationalWave: {fire: fireWave, update: updateWave},
}

// instanceSpawn pairs a rolled object with its starting fade.
type instanceSpawn struct {
	catalog.Instance
	Fade components.SpawnFade
}

func fireStream(kind EventKind) func(*EventSystem, Arena, *Player) ActiveEvent {
	spec := streamSpecs[kind]
	return func(s *EventSystem, a Arena, p *Player) ActiveEvent {
		return ActiveEvent{
			Kind:     kind,
			Duration: spec.duration,
			Stream: StreamState{
				Archetype:     spec.archetype,
				Angle:         uniform(s.rng, 0, 2*math.Pi),
				Count:         int(math.Floor(uniform(s.rng, spec.minCount, spec.maxCount))),
				Window:        spec.window,
				Spread:        spec.spread,
				HeadingSpread: spec.headingSpread,
				SpeedMin:      spec.speedMin,
				SpeedMax:      spec.speedMax,
			},
		}
	}
}

func updateStream(s *EventSystem, ev *ActiveEvent, a Arena, p *Player, dt float64) {
	st := &ev.Stream
	if st.Count <= 0 {
		return
	}
	st.Timer += dt
	interval := st.Window / float64(st.Count)
	arch := catalog.MustLookup(st.Archetype)

	for st.Timer >= interval && st.Spawned < st.Count {
		st.Timer -= interval
		st.Spawned++

		angle := st.Angle + uniform(s.rng, -st.Spread, st.Spread)
		at := polar(angle, a.Bounds-eventEdgeInset)
		inst := catalog.NewInstance(arch, at.X, at.Y, s.rng)
		heading := angle + math.Pi + uniform(s.rng, -st.HeadingSpread, st.HeadingSpread)
		inst = inst.WithHeading(heading, uniform(s.rng, st.SpeedMin, st.SpeedMax))
		s.spawn(instanceSpawn{Instance: inst})
	}
}

func firePulse(s *EventSystem, a Arena, p *Player) ActiveEvent {
	offset := polar(uniform(s.rng, 0, 2*math.Pi), uniform(s.rng, pulseMinOffset, a.Bounds*pulseMaxOffset))
	return ActiveEvent{
		Kind:     VoidPulse,
		Duration: pulseDuration,
		Pulse: PulseState{
			Center: r2.Add(p.Pos, offset),
			Rings:  [3]Ring{{Delay: 0}, {Delay: 15}, {Delay: 30}},
			Speed:  pulseSpeed,
			Push:   pulsePush,
			Band:   pulseBand,
		},
	}
}

func updatePulse(s *EventSystem, ev *ActiveEvent, a Arena, p *Player, dt float64) {
	ps := &ev.Pulse
	for i := range ps.Rings {
		if ev.Age >= ps.Rings[i].Delay {
			ps.Rings[i].Radius += ps.Speed * dt
		}
	}

	main := ps.Rings[0].Radius
	query := s.filter.Query()
	for query.Next() {
		pos, vel, cons := query.Get()
		if cons.Frozen() {
			continue
		}
		delta := r2.Sub(pos.Vec(), ps.Center)
		d := r2.Norm(delta)
		if d < 1 || math.Abs(d-main) >= ps.Band {
			continue
		}
		push := r2.Scale(ps.Push*dt/d, delta)
		*vel = components.Velocity(r2.Add(vel.Vec(), push))
	}
}

func fireBirth(s *EventSystem, a Arena, p *Player) ActiveEvent {
	offset := polar(uniform(s.rng, 0, 2*math.Pi), uniform(s.rng, birthMinOffset, a.Bounds*birthMaxOffset))
	return ActiveEvent{
		Kind:     StellarBirth,
		Duration: birthDuration,
		Birth:    BirthState{Center: r2.Add(p.Pos, offset)},
	}
}

func updateBirth(s *EventSystem, ev *ActiveEvent, a Arena, p *Player, dt float64) {
	b := &ev.Birth
	switch {
	case ev.Age < birthGatherEnd:
		b.Phase = BirthGathering
	case ev.Age < birthFlashEnd:
		b.Phase = BirthFlash
		if !b.Spawned {
			b.Spawned = true
			s.spawnBirth(b.Center)
		}
	default:
		b.Phase = BirthExplode
	}
}

// spawnBirth drops a new star or planet with a burst of dust fragments.
func (s *EventSystem) spawnBirth(c r2.Vec) {
	body := "planet"
	if s.rng.Float64() > 0.5 {
		body = "star"
	}
	s.spawn(instanceSpawn{Instance: catalog.NewInstance(catalog.MustLookup(body), c.X, c.Y, s.rng)})

	dust := catalog.MustLookup("dust")
	frags := int(math.Floor(uniform(s.rng, 3, 8)))
	for i := 0; i < frags; i++ {
		inst := catalog.NewInstance(dust, c.X, c.Y, s.rng)
		inst = inst.WithHeading(uniform(s.rng, 0, 2*math.Pi), uniform(s.rng, 0.4, 1.0))
		s.spawn(instanceSpawn{
			Instance: inst,
			Fade:     components.SpawnFade{Age: fragmentAge, Alpha: fragmentAlpha},
		})
	}
}

func fireWave(s *EventSystem, a Arena, p *Player) ActiveEvent {
	return ActiveEvent{
		Kind:     GravitationalWave,
		Duration: math.Floor(2*a.Bounds/waveSpeed + waveExtraTicks),
		Wave: WaveState{
			Dir:        uniform(s.rng, 0, 2*math.Pi),
			Front:      -a.Bounds,
			Speed:      waveSpeed,
			Wavelength: waveLength,
			Strength:   waveStrength,
		},
	}
}

func updateWave(s *EventSystem, ev *ActiveEvent, a Arena, p *Player, dt float64) {
	w := &ev.Wave
	w.Front += w.Speed * dt

	dir := polar(w.Dir, 1)
	perp := r2.Vec{X: -dir.Y, Y: dir.X}

	query := s.filter.Query()
	for query.Next() {
		pos, vel, cons := query.Get()
		if cons.Frozen() {
			continue
		}
		dist := r2.Dot(pos.Vec(), dir) - w.Front
		if math.Abs(dist) >= w.Wavelength {
			continue
		}
		force := math.Sin(dist/w.Wavelength*2*math.Pi) * w.Strength
		*vel = components.Velocity(r2.Add(vel.Vec(), r2.Scale(force*dt, perp)))
	}
}

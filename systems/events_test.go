package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horizon/config"
)

func newTestEvents(t *testing.T, cfg config.EventsConfig) (*EventSystem, *Store) {
	t.Helper()
	s := newTestStore()
	return NewEventSystem(s, cfg, testRNG()), s
}

// setHazards forces every hazard to p, except those listed in only, which get 1.
func setHazards(ev *EventSystem, p float64, only ...EventKind) {
	for _, k := range EventKinds() {
		h := p
		for _, o := range only {
			if o == k {
				h = 1
			}
		}
		ev.SetHazard(k, func(Metrics) float64 { return h })
	}
}

// ---------- catalog ----------

func TestEventKind_ParseRoundTrip(t *testing.T) {
	for _, k := range EventKinds() {
		got, ok := ParseEventKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseEventKind("supernova"); ok {
		t.Error("unknown id parsed")
	}
	if len(EventKinds()) != 6 {
		t.Errorf("kinds = %d, want 6", len(EventKinds()))
	}
}

func TestDefaultEventDefs_ConfigOverrides(t *testing.T) {
	cfg := testConfig().Events
	cfg.Kinds["voidPulse"] = config.EventTuning{Cooldown: 77, MinGalaxy: 5, MinMass: 9, Disabled: true}
	defs := DefaultEventDefs(cfg)

	if defs[0].Kind != MeteorShower || defs[5].Kind != GravitationalWave {
		t.Fatalf("defs out of order: %v..%v", defs[0].Kind, defs[5].Kind)
	}
	vp := defs[VoidPulse]
	if vp.Cooldown != 77 || vp.MinGalaxy != 5 || vp.MinMass != 9 || !vp.Disabled {
		t.Errorf("voidPulse def = %+v, want config override", vp)
	}
	if defs[StellarBirth].MinMass != 80 || defs[StellarBirth].MinGalaxy != 3 {
		t.Errorf("stellarBirth gates = %+v", defs[StellarBirth])
	}
	for _, d := range defs {
		if d.Hazard == nil {
			t.Errorf("%v has no hazard", d.Kind)
		}
	}
}

func TestBuiltinHazards_Bounded(t *testing.T) {
	cases := []Metrics{
		{},
		{Density: 0.1, ComboActive: true, Late: true, Mid: true, ConsumeRatio: 0.9, GalaxyTime: 5000},
	}
	for _, k := range EventKinds() {
		for _, m := range cases {
			if p := BuiltinHazard(k)(m); p <= 0 || p > 0.2 {
				t.Errorf("%v hazard = %v, want in (0, 0.2]", k, p)
			}
		}
	}
	if got := BuiltinHazard(MeteorShower)(Metrics{Density: 0.2, ComboActive: true}); math.Abs(got-0.14) > eps {
		t.Errorf("meteor hazard = %v, want 0.14", got)
	}
}

// ---------- scheduling ----------

func TestEvents_GraceBlocksFiring(t *testing.T) {
	ev, _ := newTestEvents(t, testConfig().Events)
	setHazards(ev, 1)
	a := testArena(3)
	p := &Player{Mass: 100, Radius: 13}

	first := 0
	for tick := 1; tick <= 1000 && first == 0; tick++ {
		if tick <= 300 && ev.State() != StateGrace {
			t.Fatalf("state at tick %d = %v, want grace", tick, ev.State())
		}
		if rep := ev.Update(a, p, Metrics{}, 1); len(rep.Fired) > 0 {
			first = tick
		}
	}
	// grace ends after tick 300, then the first evaluation is 120 ticks later
	if first != 420 {
		t.Errorf("first event at tick %d, want 420", first)
	}
}

func TestEvents_OnePerEvaluation(t *testing.T) {
	ev, _ := newTestEvents(t, testConfig().Events)
	setHazards(ev, 1)
	a := testArena(3)
	p := &Player{Mass: 100, Radius: 13}

	fires := 0
	for tick := 0; tick < 20000; tick++ {
		rep := ev.Update(a, p, Metrics{}, 1)
		if len(rep.Fired) > 1 {
			t.Fatalf("tick %d fired %v", tick, rep.Fired)
		}
		if len(rep.Fired) == 1 {
			fires++
			if ev.State() != StateCooling {
				t.Errorf("state after fire = %v, want cooling", ev.State())
			}
		}
	}
	if fires == 0 {
		t.Fatal("nothing fired")
	}
}

func TestEvents_PerKindCooldown(t *testing.T) {
	ev, _ := newTestEvents(t, testConfig().Events)
	setHazards(ev, 0, MeteorShower)
	a := testArena(1)
	p := &Player{Mass: 20, Radius: 8}

	var at []int
	for tick := 0; tick < 10000; tick++ {
		for _, k := range ev.Update(a, p, Metrics{}, 1).Fired {
			if k != MeteorShower {
				t.Fatalf("unexpected %v", k)
			}
			at = append(at, tick)
		}
	}
	if len(at) < 3 {
		t.Fatalf("meteor fired %d times, want several", len(at))
	}
	for i := 1; i < len(at); i++ {
		if gap := at[i] - at[i-1]; gap < 900 {
			t.Errorf("gap %d between fires, want >= 900", gap)
		}
	}
}

func TestEvents_GatesByGalaxyAndMass(t *testing.T) {
	tests := []struct {
		name    string
		galaxy  int
		mass    float64
		allowed map[EventKind]bool
	}{
		{"galaxy one", 1, 500, map[EventKind]bool{MeteorShower: true, CometStream: true}},
		{"galaxy two light", 2, 20, map[EventKind]bool{MeteorShower: true, CometStream: true, VoidPulse: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, _ := newTestEvents(t, testConfig().Events)
			setHazards(ev, 1)
			p := &Player{Mass: tt.mass, Radius: 10}
			seen := map[EventKind]bool{}
			for tick := 0; tick < 30000; tick++ {
				for _, k := range ev.Update(testArena(tt.galaxy), p, Metrics{}, 1).Fired {
					seen[k] = true
				}
			}
			for k := range seen {
				if !tt.allowed[k] {
					t.Errorf("%v fired in galaxy %d at mass %v", k, tt.galaxy, tt.mass)
				}
			}
			if len(seen) == 0 {
				t.Error("nothing fired")
			}
		})
	}
}

func TestEvents_DisabledNeverFires(t *testing.T) {
	cfg := testConfig().Events
	cfg.Kinds["meteorShower"] = config.EventTuning{Cooldown: 900, MinGalaxy: 1, Disabled: true}
	ev, _ := newTestEvents(t, cfg)
	setHazards(ev, 0, MeteorShower)

	p := &Player{Mass: 20, Radius: 8}
	for tick := 0; tick < 5000; tick++ {
		if rep := ev.Update(testArena(1), p, Metrics{}, 1); len(rep.Fired) > 0 {
			t.Fatalf("disabled kind fired: %v", rep.Fired)
		}
	}
}

func TestEvents_Reset(t *testing.T) {
	ev, _ := newTestEvents(t, testConfig().Events)
	setHazards(ev, 0, MeteorShower)
	p := &Player{Mass: 20, Radius: 8}
	for tick := 0; tick < 421; tick++ {
		ev.Update(testArena(1), p, Metrics{}, 1)
	}
	if ev.Cooldown(MeteorShower) <= 0 || len(ev.Active()) != 1 {
		t.Fatalf("expected a running meteor shower, cooldown %v active %d", ev.Cooldown(MeteorShower), len(ev.Active()))
	}

	ev.Reset()
	if ev.State() != StateGrace || ev.Cooldown(MeteorShower) != 0 || len(ev.Active()) != 0 {
		t.Errorf("after reset: state %v cooldown %v active %d", ev.State(), ev.Cooldown(MeteorShower), len(ev.Active()))
	}
}

// ---------- choreography ----------

func TestEvents_StreamSpawnsOnWall(t *testing.T) {
	tests := []struct {
		kind     EventKind
		arch     string
		min, max int
		duration int
	}{
		{MeteorShower, "meteor", 5, 8, 90},
		{CometStream, "comet", 4, 7, 120},
		{DerelictFlotilla, "craft", 3, 6, 60},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ev, s := newTestEvents(t, testConfig().Events)
			a := testArena(2)
			p := &Player{Mass: 20, Radius: 8}
			ev.Trigger(tt.kind, a, p)

			spawned := 0
			for i := 0; i < tt.duration; i++ {
				spawned += ev.Update(a, p, Metrics{}, 1).Spawned
			}
			if spawned < tt.min || spawned > tt.max {
				t.Errorf("spawned %d, want %d..%d", spawned, tt.min, tt.max)
			}
			if s.Count() != spawned {
				t.Errorf("store count %d, want %d", s.Count(), spawned)
			}
			if len(ev.Active()) != 0 {
				t.Errorf("event still active after its duration")
			}
			for _, v := range s.Views() {
				if v.Look.Archetype != tt.arch {
					t.Errorf("spawned %q, want %q", v.Look.Archetype, tt.arch)
				}
				pos := v.Pos.Vec()
				if d := r2.Norm(pos); math.Abs(d-(a.Bounds-5)) > 1e-6 {
					t.Errorf("spawn distance %v, want %v", d, a.Bounds-5)
				}
				if r2.Dot(pos, v.Vel.Vec()) >= 0 {
					t.Errorf("spawn heading %+v not inward", v.Vel)
				}
			}
		})
	}
}

func TestEvents_StreamRefusedWhenSealed(t *testing.T) {
	ev, s := newTestEvents(t, testConfig().Events)
	s.Seal()
	a := testArena(1)
	p := &Player{Mass: 20, Radius: 8}
	ev.Trigger(MeteorShower, a, p)

	refused := 0
	for i := 0; i < 90; i++ {
		rep := ev.Update(a, p, Metrics{}, 1)
		refused += rep.Refused
		if rep.Spawned != 0 {
			t.Fatal("spawned into sealed store")
		}
	}
	if refused < 5 {
		t.Errorf("refused = %d, want at least 5", refused)
	}
}

func TestEvents_StellarBirthSpawnsOnce(t *testing.T) {
	ev, s := newTestEvents(t, testConfig().Events)
	a := testArena(3)
	p := &Player{Mass: 100, Radius: 13}
	ev.Trigger(StellarBirth, a, p)

	spawnTick := -1
	total := 0
	for tick := 1; tick <= 165; tick++ {
		n := ev.Update(a, p, Metrics{}, 1).Spawned
		if n > 0 {
			if spawnTick >= 0 {
				t.Fatalf("second birth spawn at tick %d", tick)
			}
			spawnTick = tick
		}
		total += n
		if tick == 95 {
			if got := ev.Active()[0].Birth.Phase; got != BirthFlash {
				t.Errorf("phase at tick 95 = %v, want flash", got)
			}
		}
	}
	if spawnTick != 90 {
		t.Errorf("birth spawned at tick %d, want 90", spawnTick)
	}
	// one body plus 3..7 fragments
	if total < 4 || total > 8 {
		t.Errorf("birth spawned %d objects, want 4..8", total)
	}

	bodies := 0
	for _, v := range s.Views() {
		switch v.Look.Archetype {
		case "star", "planet":
			bodies++
		case "dust":
			if math.Abs(v.Alpha-0.5) > eps {
				t.Errorf("fragment alpha = %v, want 0.5", v.Alpha)
			}
		default:
			t.Errorf("unexpected archetype %q", v.Look.Archetype)
		}
	}
	if bodies != 1 {
		t.Errorf("bodies = %d, want 1", bodies)
	}
	if len(ev.Active()) != 0 {
		t.Error("birth still active after 165 ticks")
	}
}

func TestEvents_VoidPulsePushesOutward(t *testing.T) {
	ev, s := newTestEvents(t, testConfig().Events)
	a := testArena(2)
	p := &Player{Mass: 20, Radius: 8}
	ev.Trigger(VoidPulse, a, p)

	c := ev.Active()[0].Pulse.Center
	if d := r2.Norm(r2.Sub(c, p.Pos)); d < 200 || d > a.Bounds*0.6 {
		t.Errorf("pulse centre %v away, want 200..%v", d, a.Bounds*0.6)
	}
	mustSpawn(t, s, testInstance(c.X+10, c.Y, 2))
	mustSpawn(t, s, testInstance(c.X+300, c.Y, 2))

	ev.Update(a, p, Metrics{}, 1)
	near := viewAt(t, s, c.X+10)
	if math.Abs(near.Vel.X-0.4) > 1e-9 || math.Abs(near.Vel.Y) > 1e-9 {
		t.Errorf("near velocity = %+v, want (0.4, 0)", near.Vel)
	}
	if far := viewAt(t, s, c.X+300); far.Vel.X != 0 {
		t.Errorf("object outside the band pushed: %+v", far.Vel)
	}
}

func TestEvents_GravitationalWaveShears(t *testing.T) {
	ev, s := newTestEvents(t, testConfig().Events)
	a := testArena(3)
	p := &Player{Mass: 20, Radius: 8}
	ev.Trigger(GravitationalWave, a, p)

	w := ev.Active()[0]
	if want := math.Floor(2*a.Bounds/2.5 + 60); w.Duration != want {
		t.Errorf("wave duration = %v, want %v", w.Duration, want)
	}
	dir := polar(w.Wave.Dir, 1)
	perp := r2.Vec{X: -dir.Y, Y: dir.X}
	// a quarter wavelength ahead of the front after one tick
	at := r2.Scale(-a.Bounds+2.5+30, dir)
	mustSpawn(t, s, testInstance(at.X, at.Y, 2))

	ev.Update(a, p, Metrics{}, 1)
	v := s.Views()[0].Vel
	if math.Abs(v.X-0.3*perp.X) > 1e-9 || math.Abs(v.Y-0.3*perp.Y) > 1e-9 {
		t.Errorf("velocity = %+v, want %+v", v, r2.Scale(0.3, perp))
	}
}

func TestBirthState_PhaseProgress(t *testing.T) {
	tests := []struct {
		phase BirthPhase
		age   float64
		want  float64
	}{
		{BirthGathering, 0, 0},
		{BirthGathering, 45, 0.5},
		{BirthFlash, 90, 0},
		{BirthFlash, 97.5, 0.5},
		{BirthExplode, 135, 0.5},
		{BirthExplode, 400, 1},
	}
	for _, tt := range tests {
		got := BirthState{Phase: tt.phase}.PhaseProgress(tt.age)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("%v at age %v = %v, want %v", tt.phase, tt.age, got, tt.want)
		}
	}
}

package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/horizon/systems"
)

// Phases outside the simulation systems.
const (
	PhaseTelemetry = "telemetry"
	PhaseRender    = "render"
)

// PerfPhases returns every phase in tick order: the systems, then telemetry.
func PerfPhases() []string {
	return []string{
		systems.IDPlayer, systems.IDGravity, systems.IDPopulation, systems.IDEvents,
		systems.IDPhysics, systems.IDConsumption, systems.IDEffects, PhaseTelemetry,
	}
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	samples     []PerfSample
	next        int
	filled      int
	current     map[string]time.Duration
	tickStart   time.Time
	phaseStart  time.Time
	phase       string
	lastFrame   time.Time
	frameLength time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration)
	p.phase = ""
}

// StartPhase ends the running phase and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.endPhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes the tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.endPhase(now)
	p.phase = ""

	p.samples[p.next] = PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// RecordFrame records frame timing for the graphical host.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameLength = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated timing.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, in percent

	TicksPerSecond float64
	FrameDuration  time.Duration
	FPS            float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameLength,
	}
	if p.frameLength > 0 {
		out.FPS = float64(time.Second) / float64(p.frameLength)
	}
	if p.filled == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.samples[:p.filled] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < out.MinTick {
			out.MinTick = s.TickDuration
		}
		out.MaxTick = max(out.MaxTick, s.TickDuration)
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.filled)
	out.AvgTick = total / n
	for phase, sum := range sums {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTick > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTick) * 100
		}
	}
	if out.AvgTick > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTick)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range PerfPhases() {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	WindowEnd      float64 `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	PlayerPct      float64 `csv:"player_pct"`
	GravityPct     float64 `csv:"gravity_pct"`
	PopulationPct  float64 `csv:"population_pct"`
	EventsPct      float64 `csv:"events_pct"`
	PhysicsPct     float64 `csv:"physics_pct"`
	ConsumptionPct float64 `csv:"consumption_pct"`
	EffectsPct     float64 `csv:"effects_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats.
func (s PerfStats) ToCSV(windowEnd float64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PlayerPct:      s.PhasePct[systems.IDPlayer],
		GravityPct:     s.PhasePct[systems.IDGravity],
		PopulationPct:  s.PhasePct[systems.IDPopulation],
		EventsPct:      s.PhasePct[systems.IDEvents],
		PhysicsPct:     s.PhasePct[systems.IDPhysics],
		ConsumptionPct: s.PhasePct[systems.IDConsumption],
		EffectsPct:     s.PhasePct[systems.IDEffects],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}

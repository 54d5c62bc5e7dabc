// Package telemetry provides windowed simulation stats, per-galaxy summaries
// and CSV output.
package telemetry

import (
	"github.com/pthm-cable/horizon/systems"
)

// Collector accumulates counters within tick windows and produces WindowStats.
type Collector struct {
	windowTicks float64
	windowStart float64

	consumes     int
	consumedMass float64
	spawns       [4]int // indexed by systems.SpawnSource
	refused      int
	events       map[systems.EventKind]int
	bounces      int
	chimes       int
	bestCombo    int
}

// NewCollector creates a collector flushing every windowTicks ticks of dt.
func NewCollector(windowTicks float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		events:      make(map[systems.EventKind]int),
	}
}

// RecordConsume records a batch of swallowed objects.
func (c *Collector) RecordConsume(b systems.ConsumeBatch) {
	for _, e := range b.Eaten {
		c.consumes++
		c.consumedMass += e.Mass
	}
	if b.Combo > c.bestCombo {
		c.bestCombo = b.Combo
	}
	if b.Chime {
		c.chimes++
	}
}

// RecordSpawn records n objects added from source.
func (c *Collector) RecordSpawn(source systems.SpawnSource, n int) {
	if int(source) < len(c.spawns) {
		c.spawns[source] += n
	}
}

// RecordRefused records spawns blocked by the cap or seal.
func (c *Collector) RecordRefused(n int) {
	c.refused += n
}

// RecordEvent records an event firing.
func (c *Collector) RecordEvent(kind systems.EventKind) {
	c.events[kind]++
}

// RecordBounce records a player wall bounce.
func (c *Collector) RecordBounce() {
	c.bounces++
}

// ShouldFlush returns true if a full window has passed since the last flush.
func (c *Collector) ShouldFlush(tick float64) bool {
	return tick-c.windowStart >= c.windowTicks
}

// Snapshot is the world state sampled at window end.
type Snapshot struct {
	Galaxy     int
	Count      int
	Live       int
	PlayerMass float64
	Radii      []float64 // entity radii for the distribution columns
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(tick float64, snap Snapshot) WindowStats {
	mean, p50, p90 := ComputeRadiusStats(snap.Radii)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   tick,
		Galaxy:      snap.Galaxy,
		Count:       snap.Count,
		Live:        snap.Live,
		PlayerMass:  snap.PlayerMass,

		Consumed:     c.consumes,
		ConsumedMass: c.consumedMass,
		Chimes:       c.chimes,
		BestCombo:    c.bestCombo,

		SpawnDepletion: c.spawns[systems.SourceDepletion],
		SpawnAmbient:   c.spawns[systems.SourceAmbient],
		SpawnEvent:     c.spawns[systems.SourceEvent],
		SpawnInitial:   c.spawns[systems.SourceInitial],
		Refused:        c.refused,

		MeteorShowers:      c.events[systems.MeteorShower],
		CometStreams:       c.events[systems.CometStream],
		VoidPulses:         c.events[systems.VoidPulse],
		DerelictFlotillas:  c.events[systems.DerelictFlotilla],
		StellarBirths:      c.events[systems.StellarBirth],
		GravitationalWaves: c.events[systems.GravitationalWave],

		Bounces: c.bounces,

		RadiusMean: mean,
		RadiusP50:  p50,
		RadiusP90:  p90,
	}

	c.windowStart = tick
	c.consumes = 0
	c.consumedMass = 0
	c.spawns = [4]int{}
	c.refused = 0
	clear(c.events)
	c.bounces = 0
	c.chimes = 0
	c.bestCombo = 0

	return stats
}

// WindowTicks returns the window length.
func (c *Collector) WindowTicks() float64 {
	return c.windowTicks
}

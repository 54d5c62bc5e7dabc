package game

import (
	"log/slog"

	"github.com/pthm-cable/horizon/systems"
	"github.com/pthm-cable/horizon/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	g.writeWindow(g.collector.Flush(g.tick, g.snapshot()))
}

// writeWindow folds a window into the galaxy summary and writes it out.
func (g *Game) writeWindow(stats telemetry.WindowStats) {
	g.summary.Add(stats)
	perfStats := g.perf.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// finishGalaxy closes the partial window and records the cleared galaxy.
func (g *Game) finishGalaxy() {
	g.writeWindow(g.collector.Flush(g.tick, g.snapshot()))

	g.summary.Ticks = g.galaxyTime
	g.summary.EndMass = g.player.Mass
	slog.Info("galaxy cleared", "summary", g.summary, "stats", g.data.Stats)

	if g.output != nil {
		if err := g.output.WriteGalaxy(g.summary); err != nil {
			slog.Error("failed to write galaxy summary", "error", err)
		}
	}
}

// snapshot samples the world for the window's gauge columns.
func (g *Game) snapshot() telemetry.Snapshot {
	radii := make([]float64, 0, g.store.Count())
	g.store.Each(func(v systems.View) {
		radii = append(radii, v.Body.Radius)
	})
	return telemetry.Snapshot{
		Galaxy:     g.arena.Galaxy,
		Count:      g.store.Count(),
		Live:       g.store.LiveCount(),
		PlayerMass: g.player.Mass,
		Radii:      radii,
	}
}

// Summary returns the running summary of the current galaxy.
func (g *Game) Summary() telemetry.GalaxySummary { return g.summary }

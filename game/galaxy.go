package game

import (
	"log/slog"

	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/systems"
	"github.com/pthm-cable/horizon/telemetry"
)

// InitGalaxy replaces the world with a fresh layout of galaxy n and puts a
// new player near the centre.
func (g *Game) InitGalaxy(n int) {
	n = max(1, n)
	layout := catalog.Layout(n, g.rng)
	biome := catalog.BiomeFor(n)

	g.store.Clear()
	g.store.Unseal()
	g.store.SetCap(g.population.Cap(len(layout)))

	spawned := 0
	for _, inst := range layout {
		if _, ok := g.store.Spawn(inst, nil); ok {
			spawned++
		}
	}

	g.arena = systems.Arena{
		Galaxy:  n,
		Bounds:  catalog.Bounds(n),
		Biome:   biome,
		Initial: spawned,
	}

	g.players.Reset(&g.player, g.rng)
	g.camera.Snap(g.player.Pos.X, g.player.Pos.Y)

	g.effects.Reset()
	g.consumption.Reset()
	g.events.Reset()
	g.population.Reset()
	g.galaxyTime = 0
	g.completed = false

	g.collector.RecordSpawn(systems.SourceInitial, spawned)
	g.summary = telemetry.GalaxySummary{
		Galaxy:    n,
		Biome:     biome.Name,
		Initial:   spawned,
		StartMass: g.player.Mass,
	}

	slog.Info("galaxy initialised",
		"galaxy", n,
		"biome", biome.Name,
		"objects", spawned,
		"bounds", g.arena.Bounds,
		"cap", g.store.Cap(),
	)
}

// complete seals the cleared galaxy and starts the transition.
func (g *Game) complete() {
	g.completed = true
	g.store.Seal()
	g.transition.Start()
	g.signals.GalaxyComplete()
	g.data.Stats.GalaxiesCleared++

	g.finishGalaxy()
	g.persist()
}

// advanceTransition ticks the transition and applies its phase changes.
func (g *Game) advanceTransition(dt float64) {
	switch g.transition.Advance(dt) {
	case StepWarp:
		p := NewPreview(g.data.Galaxy + 1)
		g.transition.SetPreview(p)
		slog.Info("warping", "galaxy", p.Galaxy, "biome", p.Biome, "objects", p.Count)
	case StepArrive:
		g.data.Galaxy++
		g.data.BestGalaxy = max(g.data.BestGalaxy, g.data.Galaxy)
		g.InitGalaxy(g.data.Galaxy)
		g.persist()
	case StepDone:
		slog.Info("transition finished", "galaxy", g.data.Galaxy)
	}
}

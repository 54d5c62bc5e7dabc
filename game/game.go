// Package game wires the systems into a playable galaxy run: galaxy setup,
// the per-tick pipeline, completion and the transition to the next galaxy.
package game

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horizon/camera"
	"github.com/pthm-cable/horizon/config"
	"github.com/pthm-cable/horizon/save"
	"github.com/pthm-cable/horizon/scripting"
	"github.com/pthm-cable/horizon/systems"
	"github.com/pthm-cable/horizon/telemetry"
)

// perfWindow is the number of ticks perf stats average over.
const perfWindow = 120

// Options configures a Game.
type Options struct {
	Seed         int64          // 0 = time-based
	Config       *config.Config // nil = embedded defaults
	Save         save.Store     // nil = in-memory
	Input        Input          // nil = autopilot
	Signals      Signals        // nil = discard
	OutputDir    string         // CSV and config snapshot directory, empty = disabled
	LogStats     bool           // log every telemetry window
	HazardScript string         // overrides the config's hazard script
	ViewportW    float64
	ViewportH    float64
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	store       *systems.Store
	players     *systems.PlayerSystem
	consumption *systems.ConsumptionSystem
	gravity     *systems.GravitySystem
	population  *systems.PopulationSystem
	events      *systems.EventSystem
	physics     *systems.PhysicsSystem
	fade        *systems.FadeSystem
	effects     *systems.EffectsSystem

	player     systems.Player
	arena      systems.Arena
	camera     *camera.Camera
	transition *Transition

	input   Input
	signals Signals
	saves   save.Store
	data    save.Data
	script  *scripting.Engine

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	summary   telemetry.GalaxySummary
	logStats  bool

	// State
	steps      int
	tick       float64 // sum of dt
	galaxyTime float64
	saveTimer  float64
	paused     bool
	completed  bool // completion already signalled for this galaxy
}

// New creates a game resumed from the save store.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	vw, vh := opts.ViewportW, opts.ViewportH
	if vw <= 0 || vh <= 0 {
		vw, vh = float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))
	store := systems.NewStore(world)
	players := systems.NewPlayerSystem(cfg.Player)

	g := &Game{
		cfg:         cfg,
		world:       world,
		rng:         rng,
		store:       store,
		players:     players,
		consumption: systems.NewConsumptionSystem(store, players, cfg.Consumption),
		gravity:     systems.NewGravitySystem(world, cfg.Gravity),
		population:  systems.NewPopulationSystem(store, cfg.Population, rng),
		events:      systems.NewEventSystem(store, cfg.Events, rng),
		physics:     systems.NewPhysicsSystem(world, cfg.Physics, rng),
		fade:        systems.NewFadeSystem(store, cfg.Population.FadeWindow),
		effects:     systems.NewEffectsSystem(cfg.Effects, rng),
		camera:      camera.New(vw, vh, cfg.Player.CameraSmoothing),
		transition:  NewTransition(cfg.Transition),
		input:       opts.Input,
		signals:     opts.Signals,
		saves:       opts.Save,
		collector:   telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:        telemetry.NewPerfCollector(perfWindow),
		logStats:    opts.LogStats,
	}
	if g.input == nil {
		g.input = NewAutopilot(g)
	}
	if g.signals == nil {
		g.signals = NopSignals{}
	}
	if g.saves == nil {
		g.saves = save.NewMemoryStore()
	}

	g.loadHazardScript(opts.HazardScript)
	g.openOutput(opts.OutputDir)

	g.data = g.saves.Load()
	g.data.Normalize()
	slog.Info("progress loaded",
		"galaxy", g.data.Galaxy,
		"best_galaxy", g.data.BestGalaxy,
		"stats", g.data.Stats,
		"seed", seed,
	)

	g.InitGalaxy(g.data.Galaxy)
	return g
}

func (g *Game) loadHazardScript(override string) {
	path := g.cfg.Events.HazardScript
	if override != "" {
		path = override
	}
	if path == "" {
		return
	}
	engine, err := scripting.NewEngine(path)
	if err != nil {
		slog.Warn("hazard script disabled", "path", path, "error", err)
		return
	}
	g.script = engine
	kinds := engine.Install(g.events)
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	slog.Info("hazard script loaded", "path", path, "kinds", names)
}

func (g *Game) openOutput(dir string) {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		return
	}
	if om == nil {
		return
	}
	g.output = om
	if err := om.WriteConfig(g.cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
}

// Step advances the game by dt nominal frames. dt is clamped to
// [0, MaxDT] and NaN counts as 0; a paused game does not advance at all.
func (g *Game) Step(dt float64) {
	if g.paused {
		return
	}
	if math.IsNaN(dt) {
		dt = 0
	}
	dt = max(0, min(dt, g.cfg.Physics.MaxDT))
	g.perf.StartTick()

	if g.transition.Active() {
		g.advanceTransition(dt)
	}
	if !g.transition.Active() || g.transition.Phase() == PhaseFadeIn {
		g.simulate(dt)
	}

	g.steps++
	g.tick += dt
	g.data.Stats.TimePlayed += dt

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perf.EndTick()

	g.saveTimer += dt
	if g.saveTimer >= g.cfg.Save.Interval {
		g.saveTimer = 0
		g.persist()
	}
}

// simulate runs the per-tick system pipeline.
func (g *Game) simulate(dt float64) {
	g.perf.StartPhase(systems.IDPlayer)
	if g.players.Update(&g.player, g.input.Movement(), g.arena.Bounds, dt) {
		g.signals.Bounce()
		g.collector.RecordBounce()
	}
	g.camera.Follow(g.player.Pos.X, g.player.Pos.Y, dt)

	g.perf.StartPhase(systems.IDGravity)
	g.gravity.Update(&g.player, dt)

	g.perf.StartPhase(systems.IDPopulation)
	spawned := g.population.Update(g.arena, dt)
	g.collector.RecordSpawn(systems.SourceDepletion, spawned.Depletion)
	g.collector.RecordSpawn(systems.SourceAmbient, spawned.Ambient)
	g.collector.RecordRefused(spawned.Refused)

	g.perf.StartPhase(systems.IDEvents)
	fired := g.events.Update(g.arena, &g.player, g.Metrics(), dt)
	for _, kind := range fired.Fired {
		g.collector.RecordEvent(kind)
		g.signals.EventCue(kind)
	}
	g.collector.RecordSpawn(systems.SourceEvent, fired.Spawned)
	g.collector.RecordRefused(fired.Refused)

	g.perf.StartPhase(systems.IDPhysics)
	g.physics.Update(g.arena.Bounds, dt)

	g.perf.StartPhase(systems.IDConsumption)
	batch := g.consumption.Update(&g.player, dt)
	g.recordConsume(batch)

	g.perf.StartPhase(systems.IDEffects)
	g.fade.Update(dt)
	for _, e := range batch.Eaten {
		g.effects.EmitConsume(e)
	}
	g.effects.Update(g.player.Pos, dt)

	g.galaxyTime += dt

	if g.store.Count() == 0 && !g.transition.Active() && !g.completed {
		g.complete()
	}
}

// recordConsume forwards a consume batch to signals, stats and telemetry.
func (g *Game) recordConsume(b systems.ConsumeBatch) {
	n := b.Count()
	if n == 0 {
		return
	}
	g.signals.Consume(b.AvgTone, b.MassRatio, b.Combo)
	if b.Chime {
		g.signals.ComboChime(b.Combo)
	}
	g.collector.RecordConsume(b)

	g.data.TotalConsumed += n
	g.data.Stats.TotalConsumed += n
	g.data.Stats.HighestMass = max(g.data.Stats.HighestMass, g.player.Mass)
	g.data.Stats.BestCombo = max(g.data.Stats.BestCombo, b.Combo)
}

// Metrics returns the hazard snapshot for the current tick.
func (g *Game) Metrics() systems.Metrics {
	return systems.BuildMetrics(systems.MetricsInput{
		GalaxyTime: g.galaxyTime,
		Count:      g.store.Count(),
		Initial:    g.arena.Initial,
		Player:     g.player,
		Combo:      g.consumption.Combo(),
		Galaxy:     g.arena.Galaxy,
		TargetMass: g.cfg.TargetMass(g.arena.Galaxy),
	}, g.cfg.Progression)
}

// persist saves progress, logging instead of failing.
func (g *Game) persist() {
	if err := g.saves.Save(g.data); err != nil {
		slog.Warn("save failed", "error", err)
	}
}

// SetPaused gates Step.
func (g *Game) SetPaused(paused bool) { g.paused = paused }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }

// TogglePause flips the pause gate.
func (g *Game) TogglePause() { g.paused = !g.paused }

// RestartGalaxy re-rolls the current galaxy from scratch. It does nothing
// once the galaxy is cleared and the transition is running.
func (g *Game) RestartGalaxy() {
	if g.transition.Active() {
		return
	}
	g.InitGalaxy(g.data.Galaxy)
	slog.Info("galaxy restarted", "galaxy", g.data.Galaxy)
}

// ResetProgress wipes the save and starts again at galaxy 1.
func (g *Game) ResetProgress() {
	if c, ok := g.saves.(interface{ Clear() error }); ok {
		if err := c.Clear(); err != nil {
			slog.Warn("clearing save failed", "error", err)
		}
	}
	audio, volume := g.data.AudioEnabled, g.data.Volume
	g.data = save.Defaults()
	g.data.AudioEnabled, g.data.Volume = audio, volume
	g.transition.Cancel()
	g.InitGalaxy(1)
	g.persist()
	slog.Info("progress reset")
}

// SetAudio records the audio preference and saves it.
func (g *Game) SetAudio(enabled bool, volume float64) {
	g.data.AudioEnabled = enabled
	g.data.Volume = max(0, min(1, volume))
	g.persist()
}

// Progress returns a copy of the persisted progress.
func (g *Game) Progress() save.Data { return g.data }

// Galaxy returns the current galaxy number.
func (g *Game) Galaxy() int { return g.arena.Galaxy }

// Tick returns the number of Step calls.
func (g *Game) Tick() int { return g.steps }

// Time returns the accumulated dt.
func (g *Game) Time() float64 { return g.tick }

// Camera returns the view camera for host zoom and resize controls.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Resize updates the viewport size.
func (g *Game) Resize(w, h float64) { g.camera.Resize(w, h) }

// RecordFrame marks a rendered frame for perf stats.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// PerfStats returns the rolling perf window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// Unload saves progress and releases resources.
func (g *Game) Unload() {
	g.persist()
	if g.script != nil {
		g.script.Close()
		g.script = nil
	}
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.output = nil
	}
}

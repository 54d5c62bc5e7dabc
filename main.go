package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/horizon/config"
	"github.com/pthm-cable/horizon/game"
	"github.com/pthm-cable/horizon/inspector"
	"github.com/pthm-cable/horizon/renderer"
	"github.com/pthm-cable/horizon/save"
	"github.com/pthm-cable/horizon/systems"
	"github.com/pthm-cable/horizon/telemetry"
	"github.com/pthm-cable/horizon/ui"
)

const keyHelp = "WASD/Arrows/Mouse: move | P: pause | R: restart | M: mute"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, steered by the autopilot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	savePath := flag.String("save", "", "Path to the progress file (empty = in-memory)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var store save.Store = save.NewMemoryStore()
	if *savePath != "" {
		store = save.NewFileStore(*savePath)
	}

	opts := game.Options{
		Seed:      rngSeed,
		Config:    cfg,
		Save:      store,
		Signals:   game.LogSignals{Logger: logger},
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindow(cfg, opts, rngSeed, *maxTicks)
}

// runHeadless steps the simulation without raylib, steered by the autopilot.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.New(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
	)

	for {
		g.Step(1)

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "galaxy", g.Galaxy())
			return
		}
	}
}

// runWindow opens the raylib window and drives the game at frame rate.
func runWindow(cfg *config.Config, opts game.Options, seed int64, maxTicks int) {
	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, "Event Horizon")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape deselects in the inspector

	overlays := ui.NewOverlayRegistry()
	hud := ui.NewHUD()
	controls := ui.NewControlsPanel(12, 0, 200)
	perf := ui.NewPerfPanel(screenW-250, 20)
	registry := systems.NewSystemRegistry()
	ins := inspector.NewInspector(screenW, screenH)
	draw := renderer.New(cfg, screenW, screenH, seed)

	input := &ui.RaylibInput{}
	opts.Input = input
	opts.ViewportW, opts.ViewportH = float64(screenW), float64(screenH)

	g := game.New(opts)
	defer g.Unload()

	// The pointer only steers when it is not over a panel.
	input.Blocked = func(x, y float32) bool {
		if overlays.IsEnabled(ui.OverlayInspector) && ins.Contains(x, y) {
			return true
		}
		if overlays.IsEnabled(ui.OverlayControls) {
			h := controls.Height(overlays)
			return x <= 12+200 && y >= float32(screenH-h-40)
		}
		return false
	}

	galaxy := g.Galaxy()
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			screenW, screenH = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
			draw.Resize(screenW, screenH)
			ins.Resize(screenW, screenH)
			perf.SetPosition(screenW-250, 20)
			g.Resize(float64(screenW), float64(screenH))
		}
		controls.SetPosition(12, screenH-controls.Height(overlays)-40)

		mouse := rl.GetMousePosition()
		before := g.Frame()
		if overlays.IsEnabled(ui.OverlayInspector) {
			ins.HandleInput(mouse.X, mouse.Y, before.Camera, before.Entities)
		}

		keys := ui.PollKeys(overlays)

		dt := float64(rl.GetFrameTime()) * 60
		g.Step(dt)

		f := g.Frame()
		if f.Galaxy != galaxy {
			// Object ids restart with each galaxy.
			ins.Deselect()
			galaxy = f.Galaxy
		}

		rl.BeginDrawing()
		draw.Draw(f, mouse)
		hud.Draw(f, overlays, screenW, screenH)

		var clicked ui.Actions
		if overlays.IsEnabled(ui.OverlayControls) {
			clicked = controls.Draw(f, overlays)
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perf.Draw(ui.NewPerfPanelData(g.PerfStats(), registry), telemetry.PerfPhases())
		}
		if overlays.IsEnabled(ui.OverlayInspector) {
			ins.Draw(f.Camera, f.Entities)
		}
		if overlays.IsEnabled(ui.OverlayHelp) {
			hud.DrawControls(screenW, screenH, keyHelp+" | "+overlays.KeyLegend())
		}
		rl.EndDrawing()

		keys.Merge(clicked).Apply(g)
		g.RecordFrame()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

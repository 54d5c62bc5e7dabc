package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Galaxy      int     `csv:"galaxy"`

	// Population at window end
	Count      int     `csv:"count"`
	Live       int     `csv:"live"`
	PlayerMass float64 `csv:"player_mass"`

	// Consumption during window
	Consumed     int     `csv:"consumed"`
	ConsumedMass float64 `csv:"consumed_mass"`
	Chimes       int     `csv:"chimes"`
	BestCombo    int     `csv:"best_combo"`

	// Spawns by source
	SpawnInitial   int `csv:"spawn_initial"`
	SpawnDepletion int `csv:"spawn_depletion"`
	SpawnAmbient   int `csv:"spawn_ambient"`
	SpawnEvent     int `csv:"spawn_event"`
	Refused        int `csv:"spawn_refused"`

	// Event fires by kind
	MeteorShowers      int `csv:"meteor_showers"`
	CometStreams       int `csv:"comet_streams"`
	VoidPulses         int `csv:"void_pulses"`
	DerelictFlotillas  int `csv:"derelict_flotillas"`
	StellarBirths      int `csv:"stellar_births"`
	GravitationalWaves int `csv:"gravitational_waves"`

	Bounces int `csv:"bounces"`

	// Entity radius distribution (sampled at window end)
	RadiusMean float64 `csv:"radius_mean"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`
}

// Events returns the total event fires in the window.
func (s WindowStats) Events() int {
	return s.MeteorShowers + s.CometStreams + s.VoidPulses +
		s.DerelictFlotillas + s.StellarBirths + s.GravitationalWaves
}

// ComputeRadiusStats returns the mean and empirical 50th/90th percentiles.
func ComputeRadiusStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("galaxy", s.Galaxy),
		slog.Int("count", s.Count),
		slog.Int("live", s.Live),
		slog.Float64("player_mass", s.PlayerMass),
		slog.Int("consumed", s.Consumed),
		slog.Float64("consumed_mass", s.ConsumedMass),
		slog.Int("best_combo", s.BestCombo),
		slog.Int("spawn_depletion", s.SpawnDepletion),
		slog.Int("spawn_ambient", s.SpawnAmbient),
		slog.Int("spawn_event", s.SpawnEvent),
		slog.Int("spawn_refused", s.Refused),
		slog.Int("events", s.Events()),
		slog.Int("bounces", s.Bounces),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

// GalaxySummary is one row per cleared galaxy.
type GalaxySummary struct {
	Galaxy    int     `csv:"galaxy"`
	Biome     string  `csv:"biome"`
	Initial   int     `csv:"initial"`
	Ticks     float64 `csv:"ticks"`
	StartMass float64 `csv:"start_mass"`
	EndMass   float64 `csv:"end_mass"`
	Consumed  int     `csv:"consumed"`
	Spawned   int     `csv:"spawned"`
	Events    int     `csv:"events"`
	Bounces   int     `csv:"bounces"`
	BestCombo int     `csv:"best_combo"`
}

// LogValue implements slog.LogValuer for structured logging.
func (g GalaxySummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("galaxy", g.Galaxy),
		slog.String("biome", g.Biome),
		slog.Int("initial", g.Initial),
		slog.Float64("ticks", g.Ticks),
		slog.Float64("end_mass", g.EndMass),
		slog.Int("consumed", g.Consumed),
		slog.Int("spawned", g.Spawned),
		slog.Int("events", g.Events),
	)
}

// Add folds a window into the summary.
func (g *GalaxySummary) Add(w WindowStats) {
	g.Consumed += w.Consumed
	g.Spawned += w.SpawnDepletion + w.SpawnAmbient + w.SpawnEvent
	g.Events += w.Events()
	g.Bounces += w.Bounces
	if w.BestCombo > g.BestCombo {
		g.BestCombo = w.BestCombo
	}
}

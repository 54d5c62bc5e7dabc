// Package main tunes the pacing parameters with CMA-ES so the autopilot
// clears galaxies close to a target time.
//
// Usage: go run ./cmd/optimize -output runs/tune [-target 5400] [-seeds 3]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/horizon/config"
)

// tuneOptions carries the command line.
type tuneOptions struct {
	configPath string
	outputDir  string
	maxTicks   int
	target     float64
	seeds      int
	maxEvals   int
	population int
}

func main() {
	var opts tuneOptions
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.IntVar(&opts.maxTicks, "max-ticks", 60*60*10, "Simulation ticks per run")
	flag.Float64Var(&opts.target, "target", 60*90, "Desired ticks per cleared galaxy")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.Parse()

	// Game logging is per galaxy; keep only problems.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "optimize:", err)
		os.Exit(1)
	}
}

func run(opts tuneOptions) error {
	if opts.outputDir == "" {
		return fmt.Errorf("-output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	base, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	params := NewParamVector()
	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, opts.maxTicks, opts.target, seeds, base)

	evalLog, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params)
	if err != nil {
		return err
	}
	defer evalLog.Close()

	track := newTracker(opts.maxEvals)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			cleared := evaluator.LastCleared()

			track.observe(fitness, raw)
			if err := evalLog.Write(track.evals, fitness, cleared, raw); err != nil {
				slog.Warn("eval log write failed", "error", err)
			}
			fmt.Println(track.line(fitness, cleared))
			return fitness
		},
	}

	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}

	fmt.Printf("CMA-ES over %d parameters, population=%d, max_evals=%d\n", params.Dim(), popSize, opts.maxEvals)
	fmt.Printf("%d seeds x %d ticks, target %.0f ticks per galaxy\n", opts.seeds, opts.maxTicks, opts.target)

	initX := params.Normalize(params.ExtractFromConfig(base))
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if track.best == nil {
		return fmt.Errorf("no evaluations completed")
	}

	fmt.Printf("\nDone: %d evaluations in %s, best fitness %.4f\n",
		track.evals, formatDuration(time.Since(track.start)), track.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-22s %-30s %.6f\n", spec.Name, spec.Path, track.best[i])
	}

	bestCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	params.ApplyToConfig(bestCfg, track.best)

	out := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("write best config: %w", err)
	}
	fmt.Println("Best config saved to:", out)
	return nil
}

// formatDuration formats a duration as 1h02m03s, or 2m03s when under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := d/time.Hour, (d%time.Hour)/time.Minute, (d%time.Minute)/time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

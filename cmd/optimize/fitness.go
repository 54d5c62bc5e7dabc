package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/horizon/config"
	"github.com/pthm-cable/horizon/game"
	"github.com/pthm-cable/horizon/save"
)

// FitnessEvaluator runs autopilot simulations and scores their pacing.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	targetTicks float64 // desired ticks per cleared galaxy
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	lastCleared float64 // galaxies cleared per seed in the latest Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, targetTicks float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: targetTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastCleared returns the mean galaxies cleared in the most recent evaluation.
func (fe *FitnessEvaluator) LastCleared() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCleared
}

// runResult holds the results from a single simulation run.
type runResult struct {
	clearTicks []float64 // ticks from galaxy start to the next galaxy start
	partial    float64   // cleared fraction of the unfinished galaxy
	partialAge float64   // ticks spent in the unfinished galaxy
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; each seed gets its own config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total, cleared float64
	for _, r := range results {
		total += fe.computeFitness(r)
		cleared += float64(len(r.clearTicks))
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastCleared = cleared / n
	fe.mu.Unlock()

	return total / n
}

// runSimulation executes a single headless run from galaxy 1.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	g := game.New(game.Options{
		Seed:   seed,
		Config: cfg,
		Save:   save.NewMemoryStore(),
	})
	defer g.Unload()

	result := &runResult{}
	galaxy := g.Galaxy()
	start := 0

	for g.Tick() < fe.maxTicks {
		g.Step(1)

		if g.Galaxy() != galaxy {
			result.clearTicks = append(result.clearTicks, float64(g.Tick()-start))
			galaxy = g.Galaxy()
			start = g.Tick()
		}
	}

	result.partial = g.Metrics().ConsumeRatio
	result.partialAge = float64(g.Tick() - start)
	return result
}

// copyConfig returns a copy of the base config safe to mutate per run.
// Only scalar fields are tuned, so the shared event map is left aliased.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// minPartial floors the cleared fraction when extrapolating an unfinished galaxy.
const minPartial = 0.05

// computeFitness scores a run by squared log error of its clear times against
// the target, plus a spread penalty between galaxies. A run that clears
// nothing is extrapolated from how much of the first galaxy it ate.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	times := r.clearTicks
	if len(times) == 0 {
		times = []float64{r.partialAge / max(r.partial, minPartial)}
	}

	errs := make([]float64, len(times))
	for i, t := range times {
		errs[i] = math.Log(max(t, 1) / fe.targetTicks)
	}

	var sq float64
	for _, e := range errs {
		sq += e * e
	}
	fitness := sq / float64(len(errs))

	if len(times) >= 2 {
		fitness += 0.25 * stat.StdDev(errs, nil)
	}
	return fitness
}

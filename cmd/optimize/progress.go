package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// tracker remembers the best evaluation and estimates time remaining.
type tracker struct {
	maxEvals    int
	evals       int
	start       time.Time
	bestFitness float64
	best        []float64
}

func newTracker(maxEvals int) *tracker {
	return &tracker{maxEvals: maxEvals, start: time.Now(), bestFitness: 1e9}
}

// observe records one evaluation.
func (t *tracker) observe(fitness float64, raw []float64) {
	t.evals++
	if fitness < t.bestFitness {
		t.bestFitness = fitness
		t.best = append(t.best[:0], raw...)
	}
}

// line formats a progress line for the latest evaluation.
func (t *tracker) line(fitness, cleared float64) string {
	elapsed := time.Since(t.start)
	remaining := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(max(t.evals, 1)))
	return fmt.Sprintf("Eval %d/%d: fitness=%.4f cleared=%.1f (best=%.4f) | elapsed: %s, ETA: %s",
		t.evals, t.maxEvals, fitness, cleared, t.bestFitness,
		formatDuration(elapsed), formatDuration(remaining))
}

// evalLog appends one CSV row per evaluation, flushed as it goes.
type evalLog struct {
	f *os.File
	w *csv.Writer
}

func newEvalLog(path string, params *ParamVector) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create eval log: %w", err)
	}
	l := &evalLog{f: f, w: csv.NewWriter(f)}

	header := []string{"eval", "fitness", "cleared"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write eval log header: %w", err)
	}
	return l, nil
}

// Write appends a row.
func (l *evalLog) Write(eval int, fitness, cleared float64, raw []float64) error {
	row := []string{
		strconv.Itoa(eval),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(cleared, 'f', 2, 64),
	}
	for _, v := range raw {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Close flushes and closes the file.
func (l *evalLog) Close() error {
	l.w.Flush()
	return l.f.Close()
}

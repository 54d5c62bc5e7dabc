package game

import (
	"github.com/pthm-cable/horizon/catalog"
	"github.com/pthm-cable/horizon/config"
)

// Phase is the stage of a galaxy transition.
type Phase uint8

const (
	PhaseNone    Phase = iota
	PhaseImplode       // the cleared galaxy collapses
	PhaseWarp          // the next galaxy is previewed
	PhaseFadeIn        // the next galaxy is live and fading in
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseImplode:
		return "implode"
	case PhaseWarp:
		return "warp"
	case PhaseFadeIn:
		return "fadein"
	default:
		return "none"
	}
}

// TransitionStep is what Advance asks the caller to do.
type TransitionStep uint8

const (
	StepNone   TransitionStep = iota
	StepWarp                  // implode ended, preview the next galaxy
	StepArrive                // warp ended, initialise the next galaxy
	StepDone                  // fade-in ended
)

// Preview describes the galaxy shown during the warp.
type Preview struct {
	Galaxy int
	Biome  string
	Count  int
}

// NewPreview describes galaxy n.
func NewPreview(n int) Preview {
	return Preview{
		Galaxy: n,
		Biome:  catalog.BiomeFor(n).Name,
		Count:  catalog.ObjectCount(n),
	}
}

// Transition runs the implode, warp and fade-in sequence between galaxies.
// Each phase ends once its timer strictly exceeds the phase length.
type Transition struct {
	cfg     config.TransitionConfig
	active  bool
	phase   Phase
	timer   float64
	preview Preview
}

// NewTransition creates an idle transition.
func NewTransition(cfg config.TransitionConfig) *Transition {
	return &Transition{cfg: cfg}
}

// Start begins the implode phase.
func (t *Transition) Start() {
	t.active = true
	t.phase = PhaseImplode
	t.timer = 0
	t.preview = Preview{}
}

// Cancel drops any running transition.
func (t *Transition) Cancel() {
	t.active = false
	t.phase = PhaseNone
	t.timer = 0
	t.preview = Preview{}
}

// Active reports whether a transition is running.
func (t *Transition) Active() bool { return t.active }

// Phase returns the current phase. It is PhaseNone when idle.
func (t *Transition) Phase() Phase {
	if !t.active {
		return PhaseNone
	}
	return t.phase
}

// Timer returns the ticks spent in the current phase.
func (t *Transition) Timer() float64 { return t.timer }

// Preview returns the galaxy announced during the warp.
func (t *Transition) Preview() Preview { return t.preview }

// SetPreview publishes the next galaxy's preview.
func (t *Transition) SetPreview(p Preview) { t.preview = p }

// Progress returns the current phase's completion in [0, 1].
func (t *Transition) Progress() float64 {
	length := t.length(t.Phase())
	if length <= 0 {
		return 0
	}
	return min(1, max(0, t.timer/length))
}

func (t *Transition) length(p Phase) float64 {
	switch p {
	case PhaseImplode:
		return t.cfg.Implode
	case PhaseWarp:
		return t.cfg.Warp
	case PhaseFadeIn:
		return t.cfg.FadeIn
	default:
		return 0
	}
}

// Advance moves the timer by dt and switches phase when the current one ends.
func (t *Transition) Advance(dt float64) TransitionStep {
	if !t.active {
		return StepNone
	}
	t.timer += dt
	if t.timer <= t.length(t.phase) {
		return StepNone
	}

	switch t.phase {
	case PhaseImplode:
		t.phase = PhaseWarp
		t.timer = 0
		return StepWarp
	case PhaseWarp:
		t.phase = PhaseFadeIn
		t.timer = 0
		return StepArrive
	default:
		t.active = false
		t.phase = PhaseNone
		t.timer = 0
		t.preview = Preview{}
		return StepDone
	}
}

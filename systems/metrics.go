package systems

import (
	"log/slog"

	"github.com/pthm-cable/horizon/config"
)

// Metrics is the snapshot event hazards are computed from.
type Metrics struct {
	GalaxyTime   float64
	ConsumeRatio float64 // fraction of the initial population gone
	Density      float64 // current population over initial
	Mass         float64
	Radius       float64
	ComboActive  bool
	MassRatio    float64 // player mass over the galaxy target mass
	Galaxy       int
	Early        bool
	Mid          bool
	Late         bool
}

// MetricsInput holds the raw values Metrics is derived from.
type MetricsInput struct {
	GalaxyTime float64
	Count      int
	Initial    int
	Player     Player
	Combo      Combo
	Galaxy     int
	TargetMass float64
}

// BuildMetrics derives a hazard snapshot.
func BuildMetrics(in MetricsInput, prog config.ProgressionConfig) Metrics {
	m := Metrics{
		GalaxyTime:  in.GalaxyTime,
		Density:     float64(in.Count) / float64(max(1, in.Initial)),
		Mass:        in.Player.Mass,
		Radius:      in.Player.Radius,
		ComboActive: in.Combo.Active(),
		Galaxy:      in.Galaxy,
	}
	if in.Initial > 0 {
		m.ConsumeRatio = 1 - float64(in.Count)/float64(in.Initial)
	}
	target := in.TargetMass
	if target <= 0 {
		target = 1
	}
	m.MassRatio = m.Mass / target
	m.Early = m.Mass < prog.EarlyMass
	m.Mid = m.Mass >= prog.EarlyMass && m.MassRatio < prog.LateRatio
	m.Late = m.MassRatio >= prog.LateRatio
	return m
}

// Phase returns "early", "mid" or "late".
func (m Metrics) Phase() string {
	switch {
	case m.Late:
		return "late"
	case m.Mid:
		return "mid"
	default:
		return "early"
	}
}

// Fields flattens the snapshot for scripting. Booleans become 0 or 1.
func (m Metrics) Fields() map[string]float64 {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	return map[string]float64{
		"galaxy_time":   m.GalaxyTime,
		"consume_ratio": m.ConsumeRatio,
		"density":       m.Density,
		"mass":          m.Mass,
		"radius":        m.Radius,
		"combo_active":  b(m.ComboActive),
		"mass_ratio":    m.MassRatio,
		"galaxy":        float64(m.Galaxy),
		"early":         b(m.Early),
		"mid":           b(m.Mid),
		"late":          b(m.Late),
	}
}

// LogValue implements slog.LogValuer.
func (m Metrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("galaxy_time", m.GalaxyTime),
		slog.Float64("consume_ratio", m.ConsumeRatio),
		slog.Float64("density", m.Density),
		slog.Float64("mass", m.Mass),
		slog.Float64("mass_ratio", m.MassRatio),
		slog.String("phase", m.Phase()),
	)
}

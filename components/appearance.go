package components

import "github.com/pthm-cable/horizon/catalog"

// Appearance holds what renderers and audio need to present an object.
type Appearance struct {
	Archetype string        `inspect:"label"`
	SizeClass int           `inspect:"label"`
	Color     string        `inspect:"color"`
	Bands     []string      `inspect:"swatches"`
	Tone      float64       `inspect:"label,fmt:%.0f"`
	Glow      float64       `inspect:"bar"`
	HasTail   bool          `inspect:"bool"`
	Shape     catalog.Shape `inspect:"label"`
}

// ConsumeState is the consumption lifecycle of an object.
type ConsumeState uint8

const (
	Idle      ConsumeState = iota // drifting, can be eaten
	Consuming                     // frozen, shrinking toward the player
	Consumed                      // done, awaiting removal
)

// String returns the state name.
func (s ConsumeState) String() string {
	switch s {
	case Consuming:
		return "consuming"
	case Consumed:
		return "consumed"
	default:
		return "idle"
	}
}

// Consumption tracks the shrink animation once an object has been eaten.
type Consumption struct {
	State    ConsumeState `inspect:"label"`
	Progress float64      `inspect:"bar"` // 0..1
}

// Frozen reports whether physics and gravity must skip the entity.
func (c Consumption) Frozen() bool {
	return c.State != Idle
}

// SpawnFade is attached to dynamically spawned objects while they fade in.
// An entity without it is fully visible.
type SpawnFade struct {
	Age   float64 `inspect:"label,fmt:%.0f"`
	Alpha float64 `inspect:"bar"`
}

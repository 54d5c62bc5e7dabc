// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a gonum vector.
func (p Position) Vec() r2.Vec { return r2.Vec(p) }

// Velocity represents an entity's velocity in world units per tick.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a gonum vector.
func (v Velocity) Vec() r2.Vec { return r2.Vec(v) }

// Rotation is a cosmetic spin.
type Rotation struct {
	Angle float64 `inspect:"angle"`
	Spin  float64 `inspect:"label,fmt:%.4f"` // radians per tick
}

// Body holds the physical properties of a space object.
type Body struct {
	Radius    float64 `inspect:"label,fmt:%.1f"`
	Mass      float64 `inspect:"label,fmt:%.1f"`
	Density   float64 `inspect:"skip"`
	BaseSpeed float64 `inspect:"bar,max:1.5"`
	Attracted bool    `inspect:"bool"` // inside the gravity well this tick
}

// Identity is a stable per-galaxy id.
type Identity struct {
	ID uint32 `inspect:"label"`
}

package component

import "github.com/jakecoffman/cp"

// Velocity is integrated into the Transform by MotionSystem, in pixels per
// second.
type Velocity struct {
	X float64
	Y float64
}

func (v *Velocity) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func (v *Velocity) Set(vec cp.Vector) {
	v.X = vec.X
	v.Y = vec.Y
}

func (v *Velocity) Zero() {
	v.X = 0
	v.Y = 0
}

// Gravity accelerates an entity downward, in pixels per second squared.
type Gravity struct {
	Accel float64
}

// Grounder lands an entity on the arena floor instead of letting it fall
// through.
type Grounder struct {
	Grounded bool
}

var VelocityComponent = NewComponent[Velocity]()
var GravityComponent = NewComponent[Gravity]()
var GrounderComponent = NewComponent[Grounder]()

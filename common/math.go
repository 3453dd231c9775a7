package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 restricts t to the unit interval.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Interpolate is Lerp with t clamped to [0, 1].
func Interpolate(a, b, t float64) float64 {
	return Lerp(a, b, Clamp01(t))
}

// JumpImpulse returns the launch velocity for a projectile that leaves from
// with an upward speed of vy and lands on to under the given gravity.
// Coordinates are screen space (y grows downward), so the returned Y is
// negative for an upward launch. When the target is above the apex the
// horizontal speed is solved for the apex time instead.
func JumpImpulse(from, to cp.Vector, vy, gravity float64) cp.Vector {
	if gravity <= 0 {
		return cp.Vector{X: to.X - from.X, Y: -vy}
	}

	// rise is positive when the target is above the source
	rise := from.Y - to.Y
	disc := vy*vy - 2*gravity*rise

	var t float64
	if disc < 0 {
		t = vy / gravity
	} else {
		t = (vy + math.Sqrt(disc)) / gravity
	}
	if t <= 0 {
		t = vy / gravity
	}

	return cp.Vector{X: (to.X - from.X) / t, Y: -vy}
}

// Toward returns a vector of length speed pointing from src to dst.
func Toward(src, dst cp.Vector, speed float64) cp.Vector {
	d := dst.Sub(src)
	if d.LengthSq() == 0 {
		return cp.Vector{}
	}
	return d.Normalize().Mult(speed)
}

// AngleVector returns a vector of the given length rotated deg degrees
// counter-clockwise from +X in screen space (so 90 points up).
func AngleVector(deg, length float64) cp.Vector {
	rad := deg * math.Pi / 180
	return cp.Vector{X: math.Cos(rad) * length, Y: -math.Sin(rad) * length}
}

package component

import "github.com/jakecoffman/cp"

// Transform is an axis-aligned box in screen space (y grows downward). X and
// Y locate the center.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

// Bounds returns the box as a cp.BB. Because y grows downward, BB.B is the
// visual top edge and BB.T the visual bottom edge.
func (t *Transform) Bounds() cp.BB {
	return cp.NewBBForExtents(t.Position(), t.Width/2, t.Height/2)
}

func (t *Transform) Left() float64   { return t.X - t.Width/2 }
func (t *Transform) Right() float64  { return t.X + t.Width/2 }
func (t *Transform) Top() float64    { return t.Y - t.Height/2 }
func (t *Transform) Bottom() float64 { return t.Y + t.Height/2 }

// SetLeft moves the box so its left edge sits at x.
func (t *Transform) SetLeft(x float64) {
	t.X = x + t.Width/2
}

var TransformComponent = NewComponent[Transform]()

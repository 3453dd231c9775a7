package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// MotionSystem integrates gravity and velocity. Grounders land on the arena
// floor or on top of a block they fall onto.
type MotionSystem struct {
	blocks []*component.Transform
}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	arena, hasArena := arenaOf(w)

	s.blocks = s.blocks[:0]
	ecs.ForEach2(w, component.BlockTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.BlockTag, tr *component.Transform) {
		s.blocks = append(s.blocks, tr)
	})

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, tr *component.Transform) {
		if g, ok := ecs.Get(w, e, component.GravityComponent.Kind()); ok {
			vel.Y += g.Accel * dt
		}
		prevBottom := tr.Bottom()
		tr.X += vel.X * dt
		tr.Y += vel.Y * dt

		grounder, ok := ecs.Get(w, e, component.GrounderComponent.Kind())
		if !ok {
			return
		}
		grounder.Grounded = false

		if vel.Y >= 0 {
			for _, block := range s.blocks {
				if block == tr || tr.Right() <= block.Left() || tr.Left() >= block.Right() {
					continue
				}
				if prevBottom <= block.Top() && tr.Bottom() >= block.Top() {
					s.land(tr, vel, grounder, block.Top())
					return
				}
			}
		}
		if hasArena && tr.Bottom() >= arena.FloorY {
			s.land(tr, vel, grounder, arena.FloorY)
		}
	})
}

func (s *MotionSystem) land(tr *component.Transform, vel *component.Velocity, g *component.Grounder, y float64) {
	tr.Y = y - tr.Height/2
	if vel.Y > 0 {
		vel.Y = 0
	}
	g.Grounded = true
}

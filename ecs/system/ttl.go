package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// TTLSystem destroys entities whose lifetime ran out and culls entities
// flagged to die once they leave the arena.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	arena, ok := arenaOf(w)
	if !ok {
		return
	}
	ecs.ForEach2(w, component.CullOutOfBoundsComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.CullOutOfBounds, tr *component.Transform) {
		if !arena.Bounds.Intersects(tr.Bounds()) {
			ecs.DestroyEntity(w, e)
		}
	})
}

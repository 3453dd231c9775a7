package entity

import (
	"fmt"

	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// componentStep adds one component to an entity under construction.
type componentStep struct {
	name string
	add  func(w *ecs.World, e ecs.Entity) error
}

func withComponent[T any](name string, kind component.ComponentKind[T], value *T) componentStep {
	return componentStep{name: name, add: func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}}
}

// BuildEntity creates an entity and runs steps in order. A failing step
// destroys the partially built entity.
func BuildEntity(w *ecs.World, label string, steps ...componentStep) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(steps) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", label)
	}

	e := ecs.CreateEntity(w)
	for _, step := range steps {
		if err := step.add(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", label, step.name, err)
		}
	}
	return e, nil
}

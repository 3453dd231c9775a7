package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/levels"
)

// BuildArena creates the single arena entity from the named rectangles of a
// boss room.
func BuildArena(w *ecs.World, lvl *levels.Level) (ecs.Entity, *component.Arena, error) {
	if lvl == nil {
		return 0, nil, fmt.Errorf("arena: level is nil")
	}

	arena := &component.Arena{
		Bounds: lvl.Bounds(),
		FloorY: float64(lvl.FloorY),
	}
	rects := []struct {
		name string
		dst  *cp.BB
	}{
		{"front", &arena.Front},
		{"back", &arena.Back},
		{"fly1", &arena.Fly1},
		{"fly2", &arena.Fly2},
		{"killer_wall", &arena.KillerWall},
	}
	for _, r := range rects {
		bb, err := lvl.Rect(r.name)
		if err != nil {
			return 0, nil, fmt.Errorf("arena: %w", err)
		}
		*r.dst = bb
	}
	if arena.FloorY <= 0 {
		arena.FloorY = arena.Bounds.T
	}

	e, err := BuildEntity(w, lvl.Name, withComponent("arena", component.ArenaComponent.Kind(), arena))
	if err != nil {
		return 0, nil, err
	}
	return e, arena, nil
}

package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"golang.org/x/image/colornames"
)

// Palette picks the fill color of an entity.
type Palette interface {
	ColorOf(w *ecs.World, e ecs.Entity) color.Color
}

// RenderSystem draws every Transform as a filled box, back to front.
type RenderSystem struct {
	palette Palette
}

func NewRenderSystem(palette Palette) *RenderSystem {
	return &RenderSystem{palette: palette}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var entities []ecs.Entity
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		clr := color.Color(colornames.White)
		if r.palette != nil {
			if c := r.palette.ColorOf(w, e); c != nil {
				clr = c
			}
		}
		if ecs.Has(w, e, component.InvulnerableComponent.Kind()) && w.Tick()%8 < 4 {
			clr = colornames.White
		}
		vector.FillRect(screen, float32(tr.Left()), float32(tr.Top()), float32(tr.Width), float32(tr.Height), clr, false)
	}
}

// renderLayer orders the boss room: platforms and the boss at the back,
// effects in front.
func renderLayer(w *ecs.World, e ecs.Entity) int {
	switch {
	case ecs.Has(w, e, component.BossTagComponent.Kind()):
		return 0
	case ecs.Has(w, e, component.BlockTagComponent.Kind()):
		return 1
	case ecs.Has(w, e, component.FistComponent.Kind()):
		return 2
	case ecs.Has(w, e, component.MinionComponent.Kind()):
		return 3
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return 4
	case ecs.Has(w, e, component.ExplosionTagComponent.Kind()):
		return 6
	}
	return 5
}

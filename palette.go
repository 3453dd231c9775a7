package main

import (
	"image/color"

	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/encounter"
	"golang.org/x/image/colornames"
)

// specPalette colors entities from their prefab specs.
type specPalette struct {
	enc *encounter.Encounter
}

func (p specPalette) ColorOf(w *ecs.World, e ecs.Entity) color.Color {
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return p.enc.PlayerSpec().Color.Or(colornames.Dodgerblue)
	}
	if rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind()); ok {
		switch {
		case rt.Defeated:
			return colornames.Darkred
		case rt.Laughing():
			return colornames.Gold
		case !rt.Ready:
			return colornames.Gray
		}
		return p.enc.BossSpec().Color.Or(colornames.Sienna)
	}
	if spawned, ok := ecs.Get(w, e, component.SpawnedComponent.Kind()); ok {
		spec, ok := p.enc.Factory().Catalog().Lookup(string(spawned.Kind), spawned.Variant)
		if ok {
			return spec.Color.Or(colornames.White)
		}
	}
	return colornames.White
}

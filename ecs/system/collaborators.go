package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// EntityFactory hands out fresh transient entities. Fetch allocates an
// unconfigured entity for a kind and variant; Spawn configures it from a
// property bag.
type EntityFactory interface {
	Fetch(w *ecs.World, kind component.EntityKind, variant string) (ecs.Entity, error)
	Spawn(w *ecs.World, e ecs.Entity, props component.SpawnProps) error
}

// AudioSink plays a cue by id. It must not block the tick.
type AudioSink interface {
	PlaySound(id string)
}

// PlayerView is the read-only slice of player state bosses react to.
type PlayerView struct {
	Entity   ecs.Entity
	Center   cp.Vector
	Bounds   cp.BB
	Grounded bool
	Shooting bool
}

// queryPlayer resolves the first live player.
func queryPlayer(w *ecs.World) (PlayerView, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return PlayerView{}, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return PlayerView{}, false
	}
	view := PlayerView{Entity: e, Center: tr.Position(), Bounds: tr.Bounds()}
	if g, ok := ecs.Get(w, e, component.GrounderComponent.Kind()); ok {
		view.Grounded = g.Grounded
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		view.Shooting = p.Shooting
	}
	return view, true
}

func isPlayer(w *ecs.World, id uint64) bool {
	return ecs.Has(w, ecs.Entity(id), component.PlayerTagComponent.Kind())
}

func arenaOf(w *ecs.World) (*component.Arena, bool) {
	e, ok := ecs.First(w, component.ArenaComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.ArenaComponent.Kind())
}

// queueSound appends a cue to the entity's sound queue.
func queueSound(w *ecs.World, e ecs.Entity, id string) {
	if id == "" || !ecs.IsAlive(w, e) {
		return
	}
	q, ok := ecs.Get(w, e, component.SoundQueueComponent.Kind())
	if !ok {
		q = &component.SoundQueue{}
	}
	q.Cues = append(q.Cues, id)
	_ = ecs.Add(w, e, component.SoundQueueComponent.Kind(), q)
}

// spawnEntity runs the fetch-then-spawn handshake with the factory.
func spawnEntity(w *ecs.World, factory EntityFactory, kind component.EntityKind, variant string, props component.SpawnProps) (ecs.Entity, error) {
	if factory == nil {
		return 0, ErrNoFactory
	}
	e, err := factory.Fetch(w, kind, variant)
	if err != nil {
		return 0, err
	}
	if err := factory.Spawn(w, e, props); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	w.Events().Push(ecs.Event{Type: EventSpawned, Data: SpawnEvent{
		Owner:   props.Owner,
		Entity:  uint64(e),
		Kind:    kind,
		Variant: variant,
	}})
	return e, nil
}

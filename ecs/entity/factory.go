package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

var (
	ErrUnknownVariant = errors.New("entity: unknown variant")
	ErrNotFetched     = errors.New("entity: spawn without fetch")
)

// Factory builds transient entities from the prefab catalog. The catalog is
// loaded once and only read afterwards.
type Factory struct {
	catalog prefabs.Catalog
}

func NewFactory(catalog prefabs.Catalog) *Factory {
	return &Factory{catalog: catalog}
}

func (f *Factory) Catalog() prefabs.Catalog {
	return f.catalog
}

// Fetch allocates an entity for kind and variant, sized from its spec. The
// entity does nothing until Spawn configures it.
func (f *Factory) Fetch(w *ecs.World, kind component.EntityKind, variant string) (ecs.Entity, error) {
	spec, ok := f.catalog.Lookup(string(kind), variant)
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, kind, variant)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SpawnedComponent.Kind(), &component.Spawned{Kind: kind, Variant: variant}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("fetch %s: add spawned: %w", variant, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Width: spec.Size.X, Height: spec.Size.Y}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("fetch %s: add transform: %w", variant, err)
	}
	return e, nil
}

// Spawn places a fetched entity and attaches the components its spec and
// props call for.
func (f *Factory) Spawn(w *ecs.World, e ecs.Entity, props component.SpawnProps) error {
	spawned, ok := ecs.Get(w, e, component.SpawnedComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFetched, e)
	}
	spec, ok := f.catalog.Lookup(string(spawned.Kind), spawned.Variant)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownVariant, spawned.Kind, spawned.Variant)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.SetPosition(props.Position)
	if props.Size.X > 0 && props.Size.Y > 0 {
		tr.Width, tr.Height = props.Size.X, props.Size.Y
	}

	add := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("spawn %s: add %s: %w", spawned.Variant, name, err)
		}
		return nil
	}

	if err := add("velocity", ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: props.Trajectory.X, Y: props.Trajectory.Y})); err != nil {
		return err
	}

	gravity := spec.Gravity
	if props.Gravity > 0 {
		gravity = props.Gravity
	}
	if gravity > 0 {
		if err := add("gravity", ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Accel: gravity})); err != nil {
			return err
		}
	}

	if props.Owner != 0 {
		if err := add("owner", ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Entity: props.Owner})); err != nil {
			return err
		}
	}

	if spec.Damager != "" {
		if err := add("damager", ecs.Add(w, e, component.DamagerComponent.Kind(), &component.Damager{
			Kind:              component.DamagerKind(spec.Damager),
			Amount:            spec.Damage,
			FullyCharged:      spec.FullyCharged,
			DestroyOnHit:      spec.DestroyOnHit,
			OnDamageInflicted: props.OnDamageInflicted,
		})); err != nil {
			return err
		}
	}

	health := spec.Health
	if props.Health > 0 {
		health = props.Health
	}
	if health > 0 {
		if err := add("health", ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health})); err != nil {
			return err
		}
	}

	lifetime := spec.Lifetime
	if props.Lifetime > 0 {
		lifetime = props.Lifetime
	}
	if lifetime > 0 {
		if err := add("ttl", ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: lifetime})); err != nil {
			return err
		}
	}
	if props.CullOutOfBounds {
		if err := add("cull", ecs.Add(w, e, component.CullOutOfBoundsComponent.Kind(), &component.CullOutOfBounds{})); err != nil {
			return err
		}
	}

	switch spawned.Kind {
	case component.KindEnemy:
		return f.spawnMinion(w, e, spec, props)
	case component.KindBlock:
		return add("block tag", ecs.Add(w, e, component.BlockTagComponent.Kind(), &component.BlockTag{}))
	case component.KindExplosion:
		return add("explosion tag", ecs.Add(w, e, component.ExplosionTagComponent.Kind(), &component.ExplosionTag{}))
	}
	return nil
}

func (f *Factory) spawnMinion(w *ecs.World, e ecs.Entity, spec prefabs.EntitySpec, props component.SpawnProps) error {
	kind := component.MinionKind(spec.Minion)
	minion := &component.Minion{
		Kind:              kind,
		Boss:              props.Owner,
		Speed:             spec.Speed,
		Target:            props.Target,
		FacingLeft:        props.FacingLeft,
		ShotTimer:         common.NewTimer(spec.ShotInterval),
		ShotSpeed:         spec.ShotSpeed,
		OnDamageInflicted: props.OnDamageInflicted,
	}
	switch kind {
	case component.MinionRunning:
		if err := ecs.Add(w, e, component.GrounderComponent.Kind(), &component.Grounder{}); err != nil {
			return fmt.Errorf("spawn minion: add grounder: %w", err)
		}
	case component.MinionFlying:
		// no hover point means hover in place
		minion.Arrived = !props.HasTarget
	default:
		return fmt.Errorf("%w: minion kind %q", ErrUnknownVariant, spec.Minion)
	}
	if err := ecs.Add(w, e, component.MinionComponent.Kind(), minion); err != nil {
		return fmt.Errorf("spawn minion: add minion: %w", err)
	}
	return nil
}

package component

import "github.com/jakecoffman/cp"

// EntityKind groups spawnable entities the way the factory sorts them.
type EntityKind string

const (
	KindProjectile EntityKind = "projectile"
	KindEnemy      EntityKind = "enemy"
	KindBlock      EntityKind = "block"
	KindExplosion  EntityKind = "explosion"
	KindBossPart   EntityKind = "boss_part"
)

// Spawned records what the factory produced, for drawing and logging.
type Spawned struct {
	Kind    EntityKind
	Variant string
}

// SpawnProps is the property bag passed to the factory when a fetched entity
// is configured.
type SpawnProps struct {
	Position   cp.Vector
	Size       cp.Vector
	Trajectory cp.Vector
	Gravity    float64
	Owner      uint64
	Target     cp.Vector
	HasTarget  bool
	FacingLeft bool
	Health     int
	// OnDamageInflicted is forwarded to the spawned entity's Damager.
	OnDamageInflicted func(target uint64)
	CullOutOfBounds   bool
	Lifetime          float64
}

var SpawnedComponent = NewComponent[Spawned]()

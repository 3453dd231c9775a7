package component

// DamagerKind is the closed set of things that can hurt something else. The
// boss negotiates damage by kind.
type DamagerKind string

const (
	DamagerBullet           DamagerKind = "bullet"
	DamagerChargedShot      DamagerKind = "charged_shot"
	DamagerChargedExplosion DamagerKind = "charged_explosion"
	DamagerScythe           DamagerKind = "scythe"
	DamagerAxe              DamagerKind = "axe"
	// DamagerContact is a body that hurts on touch.
	DamagerContact DamagerKind = "contact"
)

func (k DamagerKind) Valid() bool {
	switch k {
	case DamagerBullet, DamagerChargedShot, DamagerChargedExplosion, DamagerScythe, DamagerAxe, DamagerContact:
		return true
	}
	return false
}

// Damager deals damage to overlapping Health entities that are not protected
// by friendly-fire rules.
type Damager struct {
	Kind         DamagerKind
	Amount       int
	FullyCharged bool
	// DestroyOnHit removes the damager after its first successful hit.
	DestroyOnHit bool
	// OnDamageInflicted is called with the target id after each hit.
	OnDamageInflicted func(target uint64)
}

// Owner points at the entity that spawned this one.
type Owner struct {
	Entity uint64
}

var DamagerComponent = NewComponent[Damager]()
var OwnerComponent = NewComponent[Owner]()

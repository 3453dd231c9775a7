package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const defaultInvulnerability = 0.75

// DamageSystem resolves overlaps between damagers and health-bearing
// entities, applies negotiated damage, and reaps the dead.
type DamageSystem struct {
	boss *BossSystem
}

func NewDamageSystem(boss *BossSystem) *DamageSystem {
	return &DamageSystem{boss: boss}
}

type damageTarget struct {
	e  ecs.Entity
	tr *component.Transform
	hp *component.Health
}

func (s *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Seconds -= dt
		if inv.Seconds <= 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	var targets []damageTarget
	ecs.ForEach2(w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hp *component.Health, tr *component.Transform) {
		targets = append(targets, damageTarget{e: e, tr: tr, hp: hp})
	})

	ecs.ForEach2(w, component.DamagerComponent.Kind(), component.TransformComponent.Kind(), func(d ecs.Entity, dmg *component.Damager, dtr *component.Transform) {
		bounds := dtr.Bounds()
		for _, t := range targets {
			if t.e == d || !ecs.IsAlive(w, t.e) || !ecs.IsAlive(w, d) || t.hp.Depleted() {
				continue
			}
			if ecs.Has(w, t.e, component.InvulnerableComponent.Kind()) {
				continue
			}
			if !bounds.Intersects(t.tr.Bounds()) {
				continue
			}
			amount, ok := s.negotiate(w, d, dmg, t.e)
			if !ok || amount <= 0 {
				continue
			}

			t.hp.Current -= amount
			if t.hp.Current < 0 {
				t.hp.Current = 0
			}
			_ = ecs.Add(w, t.e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Seconds: s.invulnerability(w, t.e)})
			w.Events().Push(ecs.Event{Type: EventDamage, Data: DamageEvent{
				Source: uint64(d),
				Target: uint64(t.e),
				Kind:   dmg.Kind,
				Amount: amount,
			}})
			if dmg.OnDamageInflicted != nil {
				dmg.OnDamageInflicted(uint64(t.e))
			}
			if dmg.DestroyOnHit {
				ecs.DestroyEntity(w, d)
				return
			}
		}
	})

	s.reap(w)
}

// negotiate decides whether damager d may hurt target and by how much.
func (s *DamageSystem) negotiate(w *ecs.World, d ecs.Entity, dmg *component.Damager, target ecs.Entity) (int, bool) {
	source := ownerOf(w, d)
	if hp, ok := ecs.Get(w, d, component.HealthComponent.Kind()); ok && hp.Depleted() {
		return 0, false
	}
	if s.boss != nil && s.boss.Disarmed(w, d) {
		return 0, false
	}

	if ecs.Has(w, target, component.BossTagComponent.Kind()) {
		if s.boss == nil {
			return 0, false
		}
		return s.boss.NegotiateDamage(w, target, d)
	}

	if bossID, ok := bossFamilyOf(w, target); ok && s.boss != nil {
		if s.boss.IsFriendly(w, ecs.Entity(bossID), d) {
			return 0, false
		}
		return baseAmount(dmg), true
	}

	if source == uint64(target) {
		return 0, false
	}
	return baseAmount(dmg), true
}

func (s *DamageSystem) invulnerability(w *ecs.World, e ecs.Entity) float64 {
	if boss, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
		return boss.Invulnerability
	}
	return defaultInvulnerability
}

// reap destroys every non-boss, non-player entity whose health ran out.
// Minions and fists leave an explosion behind.
func (s *DamageSystem) reap(w *ecs.World) {
	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, hp *component.Health) {
		if !hp.Depleted() {
			return
		}
		if ecs.Has(w, e, component.BossTagComponent.Kind()) || ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			return
		}
		tr, hasTransform := ecs.Get(w, e, component.TransformComponent.Kind())
		_, isMinion := ecs.Get(w, e, component.MinionComponent.Kind())
		_, isFist := ecs.Get(w, e, component.FistComponent.Kind())
		if hasTransform && (isMinion || isFist) && s.boss != nil {
			_, _ = spawnEntity(w, s.boss.factory, component.KindExplosion, variantExplosion, component.SpawnProps{
				Position: tr.Position(),
				Owner:    uint64(e),
			})
		}
		ecs.DestroyEntity(w, e)
	})
}

func baseAmount(dmg *component.Damager) int {
	if dmg.Amount <= 0 {
		return 1
	}
	return dmg.Amount
}

// ownerOf resolves one level of owner indirection; an unowned damager is its
// own source.
func ownerOf(w *ecs.World, e ecs.Entity) uint64 {
	if owner, ok := ecs.Get(w, e, component.OwnerComponent.Kind()); ok && owner.Entity != 0 {
		return owner.Entity
	}
	return uint64(e)
}

// bossFamilyOf returns the boss a fist or minion belongs to.
func bossFamilyOf(w *ecs.World, e ecs.Entity) (uint64, bool) {
	if fist, ok := ecs.Get(w, e, component.FistComponent.Kind()); ok {
		return fist.Boss, true
	}
	if minion, ok := ecs.Get(w, e, component.MinionComponent.Kind()); ok {
		return minion.Boss, true
	}
	return 0, false
}

// IsFriendly reports whether damager d belongs to boss e: the boss itself,
// its fist, its platform, a tracked child, or anything one of those owns.
func (s *BossSystem) IsFriendly(w *ecs.World, e ecs.Entity, d ecs.Entity) bool {
	_, rt, err := s.runtime(w, e)
	if err != nil {
		return false
	}
	children, _ := ecs.Get(w, e, component.ChildRegistryComponent.Kind())
	inFamily := func(id uint64) bool {
		if id == 0 {
			return false
		}
		if id == uint64(e) || id == rt.Fist || id == rt.Platform {
			return true
		}
		return children != nil && children.Contains(id)
	}
	return inFamily(uint64(d)) || inFamily(ownerOf(w, d))
}

// Disarmed reports whether damager d belongs to a boss that is already
// defeated. Nothing such a boss owns may hurt anyone.
func (s *BossSystem) Disarmed(w *ecs.World, d ecs.Entity) bool {
	owner := ownerOf(w, d)
	candidates := []uint64{uint64(d), owner}
	for _, id := range []uint64{uint64(d), owner} {
		if bossID, ok := bossFamilyOf(w, ecs.Entity(id)); ok {
			candidates = append(candidates, bossID)
		}
	}
	for _, id := range candidates {
		if _, rt, err := s.runtime(w, ecs.Entity(id)); err == nil && rt.Defeated {
			return true
		}
	}
	return false
}

// CanBeDamagedBy reports whether damager d may hurt boss e at all. Only
// player-owned damagers qualify.
func (s *BossSystem) CanBeDamagedBy(w *ecs.World, e ecs.Entity, d ecs.Entity) bool {
	_, rt, err := s.runtime(w, e)
	if err != nil || !rt.Ready || rt.Defeated {
		return false
	}
	if s.IsFriendly(w, e, d) {
		return false
	}
	return isPlayer(w, uint64(d)) || isPlayer(w, ownerOf(w, d))
}

// NegotiateDamage returns the damage boss e takes from damager d using the
// boss's damage table. Charged kinds deal double when fully charged.
func (s *BossSystem) NegotiateDamage(w *ecs.World, e ecs.Entity, d ecs.Entity) (int, bool) {
	if !s.CanBeDamagedBy(w, e, d) {
		return 0, false
	}
	boss, _, err := s.runtime(w, e)
	if err != nil {
		return 0, false
	}
	dmg, ok := ecs.Get(w, d, component.DamagerComponent.Kind())
	if !ok {
		return 0, false
	}
	amount, ok := boss.DamageTable[dmg.Kind]
	if !ok {
		return 0, false
	}
	switch dmg.Kind {
	case component.DamagerChargedShot, component.DamagerChargedExplosion:
		if dmg.FullyCharged {
			amount *= 2
		}
	}
	return amount, true
}

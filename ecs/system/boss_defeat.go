package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// TriggerDefeat starts the defeat sequence. Calling it again is a no-op.
func (s *BossSystem) TriggerDefeat(w *ecs.World, e ecs.Entity) error {
	boss, rt, err := s.runtime(w, e)
	if err != nil {
		return err
	}
	if rt.Defeated {
		return nil
	}

	rt.Defeated = true
	w.Events().Push(ecs.Event{Type: EventBossDefeated, Data: BossEvent{Boss: uint64(e), Attack: rt.Current}})

	rt.MoveState = component.MoveStatePause
	_ = ecs.Remove(w, e, component.DamagerComponent.Kind())
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Zero()
	}
	if rt.Current != component.AttackNone {
		resetProgress(boss, rt, rt.Current, 0)
		rt.Current = component.AttackNone
		rt.Director.SetState(directorIdle)
	}

	// children die without damage negotiation; DamageSystem reaps them
	if children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind()); ok {
		for _, id := range children.DestroyAll() {
			zeroHealth(w, ecs.Entity(id))
		}
	}
	if rt.Fist != 0 {
		zeroHealth(w, ecs.Entity(rt.Fist))
		rt.Fist = 0
	}
	if rt.Platform != 0 {
		ecs.DestroyEntity(w, ecs.Entity(rt.Platform))
		rt.Platform = 0
	}

	rt.DefeatTimer.ResetDuration(boss.DefeatDuration)
	rt.ExplosionTimer.ResetDuration(boss.ExplosionInterval)
	queueSound(w, e, "defeat")
	return nil
}

func (s *BossSystem) updateDefeat(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform, dt float64) {
	rt.DefeatTimer.Update(dt)
	if rt.DefeatTimer.Finished() {
		rt.Dead = true
		w.Events().Push(ecs.Event{Type: EventBossDead, Data: BossEvent{Boss: uint64(e)}})
		s.Destroy(w, e)
		return
	}

	rt.ExplosionTimer.Update(dt)
	if !rt.ExplosionTimer.Finished() {
		return
	}
	rt.ExplosionTimer.Reset()

	offset := cp.Vector{
		X: (s.rng.Float64()*2 - 1) * boss.ExplosionSpread,
		Y: (s.rng.Float64()*2 - 1) * boss.ExplosionSpread,
	}
	queueSound(w, e, "explosion_2")
	if _, err := spawnEntity(w, s.factory, component.KindExplosion, variantExplosion, component.SpawnProps{
		Position: tr.Position().Add(offset),
		Owner:    uint64(e),
	}); err != nil {
		fmt.Printf("boss: entity=%d defeat explosion: %v\n", e, err)
	}
}

// Destroy removes the boss with everything it spawned. A boss destroyed at
// zero health bursts into explosion orbs. Destroy emits no signal; the defeat
// sequence emits boss-dead before calling it.
func (s *BossSystem) Destroy(w *ecs.World, e ecs.Entity) {
	boss, rt, err := s.runtime(w, e)
	if err != nil {
		return
	}
	tr, hasTransform := ecs.Get(w, e, component.TransformComponent.Kind())

	if children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind()); ok {
		for _, id := range children.DestroyAll() {
			ecs.DestroyEntity(w, ecs.Entity(id))
		}
	}
	for _, id := range []uint64{rt.Fist, rt.Platform} {
		if id != 0 {
			ecs.DestroyEntity(w, ecs.Entity(id))
		}
	}
	rt.Fist, rt.Platform = 0, 0

	if hasTransform && healthRatio(w, e) <= 0 && boss.ExplosionOrbs > 0 {
		center := tr.Position()
		for i := 0; i < boss.ExplosionOrbs; i++ {
			angle := float64(i) * 360 / float64(boss.ExplosionOrbs)
			if _, err := spawnEntity(w, s.factory, component.KindExplosion, variantExplosionOrb, component.SpawnProps{
				Position:   center,
				Trajectory: common.AngleVector(angle, boss.OrbSpeed),
				Owner:      uint64(e),
			}); err != nil {
				fmt.Printf("boss: entity=%d explosion orb: %v\n", e, err)
				break
			}
		}
	}

	ecs.DestroyEntity(w, e)
}

func zeroHealth(w *ecs.World, e ecs.Entity) {
	if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		hp.Current = 0
		return
	}
	ecs.DestroyEntity(w, e)
}

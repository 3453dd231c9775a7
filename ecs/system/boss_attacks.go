package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const (
	variantBullet        = "bullet"
	variantBlast         = "purple_blast"
	variantRunningMinion = "running_minion"
	variantFlyingMinion  = "flying_minion"
	variantExplosion     = "explosion"
	variantExplosionOrb  = "explosion_orb"
)

func (s *BossSystem) updateAttack(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health, tr *component.Transform, dt float64) {
	attack := rt.Current
	p, ok := rt.Progress[attack]
	if !ok {
		return
	}

	var err error
	switch attack {
	case component.AttackChunkProjectiles:
		err = s.updateChunk(w, e, boss, p, tr, dt)
	case component.AttackShootBlasts:
		err = s.updateBlasts(w, e, boss, p, hp, tr, dt)
	case component.AttackLaunchRunningMinions:
		err = s.updateMinionWave(w, e, boss, p, tr, dt, component.GroupRunningMinions, boss.RunningMinions, variantRunningMinion)
	case component.AttackLaunchFlyingMinions:
		err = s.updateMinionWave(w, e, boss, p, tr, dt, component.GroupFlyingMinions, boss.FlyingMinions, variantFlyingMinion)
	}
	if err != nil {
		fmt.Printf("boss: entity=%d %s: %v\n", e, attack, err)
	}
}

// updateChunk lobs projectiles on a parabola that lands on the player.
func (s *BossSystem) updateChunk(w *ecs.World, e ecs.Entity, boss *component.Boss, p *component.AttackProgress, tr *component.Transform, dt float64) error {
	p.Timer.Update(dt)
	if !p.Timer.Finished() {
		return nil
	}

	origin := tr.Position().Add(boss.Chunk.Offset)
	target := origin.Add(cp.Vector{X: -tr.Width, Y: 0})
	if player, ok := queryPlayer(w); ok {
		target = player.Center
	}

	queueSound(w, e, "blast_2")
	_, err := spawnEntity(w, s.factory, component.KindProjectile, variantBullet, component.SpawnProps{
		Position:          origin,
		Trajectory:        common.JumpImpulse(origin, target, boss.Chunk.VelocityY, boss.Chunk.Gravity),
		Gravity:           boss.Chunk.Gravity,
		Owner:             uint64(e),
		OnDamageInflicted: ReactionCallback(w, e),
		CullOutOfBounds:   true,
	})
	p.Count++
	p.Timer.Reset()
	if p.Count >= boss.Chunk.Count {
		if ferr := s.FinishAttack(w, e, component.AttackChunkProjectiles); ferr != nil {
			return ferr
		}
	}
	return err
}

// updateBlasts fires straight blasts at angles drawn from a pool without
// repeats. The attack ends after the configured count or once the pool is
// empty.
func (s *BossSystem) updateBlasts(w *ecs.World, e ecs.Entity, boss *component.Boss, p *component.AttackProgress, hp *component.Health, tr *component.Transform, dt float64) error {
	p.Timer.Update(dt)
	if !p.Timer.Finished() {
		return nil
	}
	if len(p.Pool) == 0 {
		return s.FinishAttack(w, e, component.AttackShootBlasts)
	}

	idx := s.rng.IntRange(0, len(p.Pool)-1)
	angle := p.Pool[idx]
	p.Pool = append(p.Pool[:idx], p.Pool[idx+1:]...)

	queueSound(w, e, "bassy_blast")
	_, err := spawnEntity(w, s.factory, component.KindProjectile, variantBlast, component.SpawnProps{
		Position:          tr.Position().Add(boss.Blast.Offset),
		Trajectory:        common.AngleVector(angle, boss.Blast.Speed),
		FacingLeft:        true,
		Owner:             uint64(e),
		OnDamageInflicted: ReactionCallback(w, e),
		CullOutOfBounds:   true,
	})
	p.Count++
	p.Timer.ResetDuration(boss.Blast.Interval.At(hp.Ratio()))
	if p.Count >= boss.Blast.Count || len(p.Pool) == 0 {
		if ferr := s.FinishAttack(w, e, component.AttackShootBlasts); ferr != nil {
			return ferr
		}
	}
	return err
}

// updateMinionWave spawns one minion per interval until either the number
// launched in this wave or the number still alive reaches the cap.
func (s *BossSystem) updateMinionWave(w *ecs.World, e ecs.Entity, boss *component.Boss, p *component.AttackProgress, tr *component.Transform, dt float64, group component.ChildGroup, wave component.MinionWaveConfig, variant string) error {
	attack := component.AttackLaunchRunningMinions
	if group == component.GroupFlyingMinions {
		attack = component.AttackLaunchFlyingMinions
	}

	children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind())
	if !ok {
		children = &component.ChildRegistry{}
		_ = ecs.Add(w, e, component.ChildRegistryComponent.Kind(), children)
	}

	live := children.Count(group)
	if p.Count >= wave.Cap || live >= wave.Cap {
		return s.FinishAttack(w, e, attack)
	}

	p.Timer.Update(dt)
	if !p.Timer.Finished() {
		return nil
	}

	props := component.SpawnProps{
		Position:          tr.Position().Add(boss.MinionOffset),
		FacingLeft:        true,
		Owner:             uint64(e),
		OnDamageInflicted: ReactionCallback(w, e),
	}
	if group == component.GroupFlyingMinions {
		if arena, ok := arenaOf(w); ok {
			targets := arena.FlyTargets()
			props.Target = targets[live%len(targets)]
			props.HasTarget = true
		}
	}

	queueSound(w, e, "chill_shoot")
	minion, err := spawnEntity(w, s.factory, component.KindEnemy, variant, props)
	p.Timer.Reset()
	p.Count++
	if err != nil {
		return err
	}
	children.Track(group, uint64(minion))
	return nil
}

package system

import (
	"context"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// BossSystem runs every boss: readiness, child pruning, the attack director,
// the fist launch timer, patrol movement and the defeat sequence.
type BossSystem struct {
	factory EntityFactory
	rng     common.Random
	scripts *reweighScripts
	ctx     context.Context
}

// NewBossSystem creates a boss system. loadScript resolves reweigh script
// names and may be nil when no boss uses a script.
func NewBossSystem(factory EntityFactory, rng common.Random, loadScript func(name string) ([]byte, error)) *BossSystem {
	if rng == nil {
		rng = common.NewRandom(1)
	}
	return &BossSystem{
		factory: factory,
		rng:     rng,
		scripts: newReweighScripts(loadScript),
		ctx:     context.Background(),
	}
}

// NewBossRuntime builds fresh runtime state for a boss spawned at spawn (its
// center). Every timer starts from zero, as on a respawn.
func NewBossRuntime(boss *component.Boss, arena *component.Arena, spawn cp.Vector) *component.BossRuntime {
	rt := &component.BossRuntime{
		Spawn:              spawn,
		MoveState:          component.MoveStateMove,
		MoveToFront:        true,
		Director:           newDirectorFSM(),
		Selector:           common.NewWeightedSelector[component.BossAttack](),
		Progress:           make(map[component.BossAttack]*component.AttackProgress),
		InitTimer:          common.NewTimer(boss.InitDuration),
		AttackDelayTimer:   common.NewTimer(boss.AttackDelay.AtFull),
		MovementPauseTimer: common.NewTimer(boss.MovementPause),
		LaughTimer:         common.NewTimer(boss.LaughDuration),
		FistLaunchTimer:    common.NewTimer(boss.FistLaunchDelay),
		DefeatTimer:        common.NewTimer(boss.DefeatDuration),
		ExplosionTimer:     common.NewTimer(boss.ExplosionInterval),
	}
	rt.LaughTimer.SetToEnd()
	if arena != nil {
		rt.FrontX = arena.Front.L
		rt.BackX = arena.Back.L
	}
	for _, aw := range boss.Attacks {
		if err := rt.Selector.PutItem(aw.Attack, aw.Weight); err != nil {
			fmt.Printf("boss: %s: %v\n", boss.Name, err)
		}
	}
	for _, attack := range component.BossAttacks {
		rt.Progress[attack] = &component.AttackProgress{}
		resetProgress(boss, rt, attack, 1)
	}
	return rt
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.BossRuntimeComponent.Kind(),
		component.HealthComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health) {
			if boss == nil || rt == nil || hp == nil {
				return
			}
			s.updateBoss(w, e, boss, rt, hp, dt)
		})
}

func (s *BossSystem) updateBoss(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health, dt float64) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		vel = &component.Velocity{}
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
	}

	s.pruneChildren(w, e)

	if !rt.Ready {
		vel.Zero()
		s.updateReadiness(w, e, rt, dt)
		s.syncPlatform(w, boss, rt, tr, vel)
		return
	}

	if !rt.Defeated && hp.Depleted() {
		_ = s.TriggerDefeat(w, e)
	}
	if rt.Defeated {
		vel.Zero()
		s.updateDefeat(w, e, boss, rt, tr, dt)
		return
	}

	s.consumeReaction(w, e, boss, rt)
	if rt.Laughing() {
		rt.LaughTimer.Update(dt)
		vel.Zero()
		s.syncPlatform(w, boss, rt, tr, vel)
		return
	}

	s.updateDirector(w, e, boss, rt, hp, dt)
	s.updateFistLaunch(w, e, rt, dt)
	s.updateAttack(w, e, boss, rt, hp, tr, dt)
	s.updateMovement(boss, rt, hp, tr, vel, dt)
	s.syncPlatform(w, boss, rt, tr, vel)
}

// updateReadiness runs the intro timer, which only advances while the player
// stands on the ground.
func (s *BossSystem) updateReadiness(w *ecs.World, e ecs.Entity, rt *component.BossRuntime, dt float64) {
	if player, ok := queryPlayer(w); !ok || player.Grounded {
		rt.InitTimer.Update(dt)
	}
	if !rt.InitTimer.Finished() {
		return
	}
	rt.Ready = true
	w.Events().Push(ecs.Event{Type: EventBossReady, Data: BossEvent{Boss: uint64(e)}})
}

// pruneChildren drops dead children and destroys running minions that ran
// past the killer wall.
func (s *BossSystem) pruneChildren(w *ecs.World, e ecs.Entity) {
	children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind())
	if !ok {
		return
	}

	pruned := children.PruneDead(func(id uint64) bool {
		child := ecs.Entity(id)
		if !ecs.IsAlive(w, child) {
			return true
		}
		hp, ok := ecs.Get(w, child, component.HealthComponent.Kind())
		return ok && hp.Depleted()
	})
	for _, id := range pruned {
		w.Events().Push(ecs.Event{Type: EventChildPruned, Data: SpawnEvent{Owner: uint64(e), Entity: id}})
	}

	arena, ok := arenaOf(w)
	if !ok {
		return
	}
	for _, id := range children.Group(component.GroupRunningMinions) {
		tr, ok := ecs.Get(w, ecs.Entity(id), component.TransformComponent.Kind())
		if !ok || tr.Right() > arena.KillerWall.L {
			continue
		}
		ecs.DestroyEntity(w, ecs.Entity(id))
		children.Untrack(id)
		w.Events().Push(ecs.Event{Type: EventChildPruned, Data: SpawnEvent{Owner: uint64(e), Entity: id}})
	}
}

// consumeReaction starts the taunt when a boss-owned damager hit the player.
func (s *BossSystem) consumeReaction(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
	req, ok := ecs.Get(w, e, component.ReactionRequestComponent.Kind())
	if !ok {
		return
	}
	_ = ecs.Remove(w, e, component.ReactionRequestComponent.Kind())

	if rt.Current != component.AttackNone {
		if err := s.FinishAttack(w, e, rt.Current); err != nil {
			fmt.Printf("boss: entity=%d finish on reaction: %v\n", e, err)
		}
	}
	rt.AttackDelayTimer.Reset()
	rt.LaughTimer.ResetDuration(boss.LaughDuration)
	w.Events().Push(ecs.Event{Type: EventReaction, Data: BossEvent{
		Boss:   uint64(e),
		Detail: fmt.Sprintf("target=%d", req.Target),
	}})
}

// ReactionCallback returns the on-damage-inflicted hook given to every
// boss-owned damager. Hurting the player makes boss e laugh.
func ReactionCallback(w *ecs.World, e ecs.Entity) func(target uint64) {
	return func(target uint64) {
		if !isPlayer(w, target) || !ecs.IsAlive(w, e) {
			return
		}
		_ = ecs.Add(w, e, component.ReactionRequestComponent.Kind(), &component.ReactionRequest{Target: target})
	}
}

// syncPlatform keeps the carried block at its offset and moving with the
// boss.
func (s *BossSystem) syncPlatform(w *ecs.World, boss *component.Boss, rt *component.BossRuntime, bossTr *component.Transform, bossVel *component.Velocity) {
	if rt.Platform == 0 {
		return
	}
	platform := ecs.Entity(rt.Platform)
	tr, ok := ecs.Get(w, platform, component.TransformComponent.Kind())
	if !ok {
		rt.Platform = 0
		return
	}
	tr.SetPosition(bossTr.Position().Add(boss.Platform.Offset))
	if vel, ok := ecs.Get(w, platform, component.VelocityComponent.Kind()); ok {
		vel.X, vel.Y = bossVel.X, bossVel.Y
	}
}

func (s *BossSystem) runtime(w *ecs.World, e ecs.Entity) (*component.Boss, *component.BossRuntime, error) {
	boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrNotBoss, e)
	}
	rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrNotBoss, e)
	}
	return boss, rt, nil
}

func healthRatio(w *ecs.World, e ecs.Entity) float64 {
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return 1
	}
	return hp.Ratio()
}

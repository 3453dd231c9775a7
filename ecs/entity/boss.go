package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/prefabs"
)

var _ system.EntityFactory = (*Factory)(nil)

// BossFromSpec converts a boss prefab into its component tuning, rejecting
// unknown attacks and damager kinds.
func BossFromSpec(spec *prefabs.BossSpec) (*component.Boss, error) {
	if spec == nil {
		return nil, fmt.Errorf("boss: nil spec")
	}

	boss := &component.Boss{
		Name:            spec.Name,
		Debug:           spec.Debug,
		ReweighScript:   spec.ReweighScript,
		InitDuration:    spec.InitDuration,
		AttackDelay:     scale(spec.AttackDelay),
		Speed:           scale(spec.Speed),
		MovementPause:   spec.MovementPause,
		LaughDuration:   spec.LaughDuration,
		FistLaunchDelay: spec.FistLaunchDelay,
		Fist: component.FistConfig{
			Offset:      vec(spec.Fist.Offset),
			Size:        vec(spec.Fist.Size),
			Health:      spec.Fist.Health,
			LaunchDelay: spec.Fist.LaunchDelay,
			LaunchSpeed: spec.Fist.LaunchSpeed,
			ReturnDelay: spec.Fist.ReturnDelay,
			ReturnSpeed: spec.Fist.ReturnSpeed,
		},
		Platform: component.PlatformConfig{
			Offset: vec(spec.Platform.Offset),
			Size:   vec(spec.Platform.Size),
		},
		Chunk: component.ChunkConfig{
			Count:     spec.Chunk.Count,
			Interval:  spec.Chunk.Interval,
			VelocityY: spec.Chunk.VelocityY,
			Gravity:   spec.Chunk.Gravity,
			Offset:    vec(spec.Chunk.Offset),
		},
		Blast: component.BlastConfig{
			Count:    spec.Blast.Count,
			Interval: scale(spec.Blast.Interval),
			Speed:    spec.Blast.Speed,
			Angles:   append([]float64(nil), spec.Blast.Angles...),
			Offset:   vec(spec.Blast.Offset),
		},
		RunningMinions:    component.MinionWaveConfig{Cap: spec.RunningMinions.Cap, Interval: spec.RunningMinions.Interval},
		FlyingMinions:     component.MinionWaveConfig{Cap: spec.FlyingMinions.Cap, Interval: spec.FlyingMinions.Interval},
		MinionOffset:      vec(spec.MinionOffset),
		DamageTable:       make(map[component.DamagerKind]int, len(spec.DamageTable)),
		Invulnerability:   spec.Invulnerability,
		DefeatDuration:    spec.Defeat.Duration,
		ExplosionInterval: spec.Defeat.ExplosionInterval,
		ExplosionSpread:   spec.Defeat.ExplosionSpread,
		ExplosionOrbs:     spec.Defeat.Orbs,
		OrbSpeed:          spec.Defeat.OrbSpeed,
	}

	for _, aw := range spec.Attacks {
		attack := component.BossAttack(aw.Attack)
		if !attack.Valid() {
			return nil, fmt.Errorf("boss %s: unknown attack %q", spec.Name, aw.Attack)
		}
		if aw.Weight <= 0 {
			return nil, fmt.Errorf("boss %s: attack %s: weight must be positive", spec.Name, aw.Attack)
		}
		boss.Attacks = append(boss.Attacks, component.AttackWeight{Attack: attack, Weight: aw.Weight})
	}

	for i, rule := range spec.Reweigh {
		r := component.ReweighRule{
			PlayerAbove: rule.When.PlayerAbove,
			HealthBelow: rule.When.HealthBelow,
			Weights:     make(map[component.BossAttack]float64, len(rule.Weights)),
		}
		for name, weight := range rule.Weights {
			attack := component.BossAttack(name)
			if !attack.Valid() {
				return nil, fmt.Errorf("boss %s: reweigh rule %d: unknown attack %q", spec.Name, i, name)
			}
			r.Weights[attack] = weight
		}
		boss.Reweigh = append(boss.Reweigh, r)
	}

	for name, amount := range spec.DamageTable {
		kind := component.DamagerKind(name)
		if !kind.Valid() {
			return nil, fmt.Errorf("boss %s: unknown damager %q", spec.Name, name)
		}
		boss.DamageTable[kind] = amount
	}

	return boss, nil
}

// BuildBoss creates the boss entity centered at spawn together with its fist
// and carried platform.
func BuildBoss(w *ecs.World, factory *Factory, spec *prefabs.BossSpec, arena *component.Arena, spawn cp.Vector) (ecs.Entity, error) {
	boss, err := BossFromSpec(spec)
	if err != nil {
		return 0, err
	}

	rt := system.NewBossRuntime(boss, arena, spawn)
	steps := []componentStep{
		withComponent("boss_tag", component.BossTagComponent.Kind(), &component.BossTag{}),
		withComponent("boss", component.BossComponent.Kind(), boss),
		withComponent("boss_runtime", component.BossRuntimeComponent.Kind(), rt),
		withComponent("health", component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}),
		withComponent("transform", component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y, Width: spec.Size.X, Height: spec.Size.Y}),
		withComponent("velocity", component.VelocityComponent.Kind(), &component.Velocity{}),
		withComponent("children", component.ChildRegistryComponent.Kind(), &component.ChildRegistry{}),
	}
	if spec.ContactDamage > 0 {
		steps = append(steps, withComponent("damager", component.DamagerComponent.Kind(), &component.Damager{Kind: component.DamagerContact, Amount: spec.ContactDamage}))
	}
	e, err := BuildEntity(w, spec.Name, steps...)
	if err != nil {
		return 0, err
	}
	fail := func(step string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("boss %s: %s: %w", spec.Name, step, err)
	}

	fist, err := factory.Fetch(w, component.KindBossPart, "fist")
	if err != nil {
		return fail("fetch fist", err)
	}
	if err := factory.Spawn(w, fist, component.SpawnProps{
		Position:          spawn.Add(boss.Fist.Offset),
		Size:              boss.Fist.Size,
		Health:            boss.Fist.Health,
		Owner:             uint64(e),
		FacingLeft:        true,
		OnDamageInflicted: system.ReactionCallback(w, e),
	}); err != nil {
		ecs.DestroyEntity(w, fist)
		return fail("spawn fist", err)
	}
	if err := ecs.Add(w, fist, component.FistComponent.Kind(), system.NewFist(e, boss.Fist)); err != nil {
		ecs.DestroyEntity(w, fist)
		return fail("add fist", err)
	}
	rt.Fist = uint64(fist)

	if boss.Platform.Size.X > 0 && boss.Platform.Size.Y > 0 {
		platform, err := factory.Fetch(w, component.KindBlock, "platform")
		if err != nil {
			ecs.DestroyEntity(w, fist)
			return fail("fetch platform", err)
		}
		if err := factory.Spawn(w, platform, component.SpawnProps{
			Position: spawn.Add(boss.Platform.Offset),
			Size:     boss.Platform.Size,
			Owner:    uint64(e),
		}); err != nil {
			ecs.DestroyEntity(w, fist)
			ecs.DestroyEntity(w, platform)
			return fail("spawn platform", err)
		}
		rt.Platform = uint64(platform)
	}

	return e, nil
}

func vec(v prefabs.Vec2Spec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func scale(s prefabs.ScaleSpec) common.DifficultyScale {
	return common.DifficultyScale{AtFull: s.AtFull, AtEmpty: s.AtEmpty}
}

package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/levels"
	"github.com/milk9111/bossfight/prefabs"
)

func TestBossFromSpec(t *testing.T) {
	spec, err := prefabs.LoadBossSpec("guts_tank.yaml")
	if err != nil {
		t.Fatalf("load boss: %v", err)
	}

	boss, err := BossFromSpec(spec)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(boss.Attacks) != len(component.BossAttacks) {
		t.Fatalf("attacks = %v", boss.Attacks)
	}
	if boss.DamageTable[component.DamagerScythe] != 2 {
		t.Fatalf("damage table = %v", boss.DamageTable)
	}
	if boss.Platform.Offset != (cp.Vector{X: 32, Y: -104}) {
		t.Fatalf("platform offset = %v", boss.Platform.Offset)
	}

	tests := []struct {
		name   string
		mutate func(*prefabs.BossSpec)
	}{
		{"unknown_attack", func(s *prefabs.BossSpec) {
			s.Attacks = append(s.Attacks, prefabs.AttackWeightSpec{Attack: "tail_whip", Weight: 1})
		}},
		{"zero_weight", func(s *prefabs.BossSpec) {
			s.Attacks = []prefabs.AttackWeightSpec{{Attack: "shoot_blasts", Weight: 0}}
		}},
		{"unknown_rule_attack", func(s *prefabs.BossSpec) {
			s.Reweigh = []prefabs.ReweighRuleSpec{{Weights: map[string]float64{"tail_whip": 1}}}
		}},
		{"unknown_damager", func(s *prefabs.BossSpec) {
			s.DamageTable = map[string]int{"laser": 1}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := *spec
			tc.mutate(&bad)
			if _, err := BossFromSpec(&bad); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuildEncounter(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("guts_tank_arena.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()

	_, arena, err := BuildArena(w, lvl)
	if err != nil {
		t.Fatalf("arena: %v", err)
	}
	if arena.FloorY != 512 || arena.Front.L != 400 {
		t.Fatalf("arena = %+v", *arena)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	player, err := BuildPlayer(w, playerSpec, cp.Vector{X: 108, Y: 496})
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if !ecs.Has(w, player, component.GrounderComponent.Kind()) || !ecs.Has(w, player, component.InputComponent.Kind()) {
		t.Fatalf("player is missing movement components")
	}

	bossSpec, err := prefabs.LoadBossSpec("guts_tank.yaml")
	if err != nil {
		t.Fatalf("load boss: %v", err)
	}
	spawnAt := cp.Vector{X: 760, Y: 440}
	boss, err := BuildBoss(w, newTestFactory(t), bossSpec, arena, spawnAt)
	if err != nil {
		t.Fatalf("boss: %v", err)
	}

	rt, ok := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	if !ok {
		t.Fatalf("boss has no runtime")
	}
	if rt.Ready || rt.FrontX != 400 {
		t.Fatalf("runtime = %+v", rt)
	}

	fist := ecs.Entity(rt.Fist)
	f, ok := ecs.Get(w, fist, component.FistComponent.Kind())
	if !ok || f.Boss != uint64(boss) || f.State() != component.FistAttached {
		t.Fatalf("fist = %+v", f)
	}
	if owner, ok := ecs.Get(w, fist, component.OwnerComponent.Kind()); !ok || owner.Entity != uint64(boss) {
		t.Fatalf("fist owner = %+v", owner)
	}

	platform := ecs.Entity(rt.Platform)
	tr, ok := ecs.Get(w, platform, component.TransformComponent.Kind())
	if !ok || !ecs.Has(w, platform, component.BlockTagComponent.Kind()) {
		t.Fatalf("platform not built")
	}
	if tr.Position() != (cp.Vector{X: 792, Y: 336}) {
		t.Fatalf("platform at %v", tr.Position())
	}
}

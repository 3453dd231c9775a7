package system

import (
	"fmt"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const testDelta = 1.0 / 60.0

type recordedSpawn struct {
	Entity  ecs.Entity
	Kind    component.EntityKind
	Variant string
	Props   component.SpawnProps
	Tick    uint64
}

// recordingFactory builds bare entities and remembers every spawn.
type recordingFactory struct {
	spawns      []recordedSpawn
	failVariant string
}

func (f *recordingFactory) Fetch(w *ecs.World, kind component.EntityKind, variant string) (ecs.Entity, error) {
	if variant == f.failVariant {
		return 0, fmt.Errorf("fetch %s/%s: pool exhausted", kind, variant)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SpawnedComponent.Kind(), &component.Spawned{Kind: kind, Variant: variant}); err != nil {
		return 0, err
	}
	return e, nil
}

func (f *recordingFactory) Spawn(w *ecs.World, e ecs.Entity, props component.SpawnProps) error {
	spawned, ok := ecs.Get(w, e, component.SpawnedComponent.Kind())
	if !ok {
		return fmt.Errorf("spawn %d: not fetched", e)
	}
	f.spawns = append(f.spawns, recordedSpawn{Entity: e, Kind: spawned.Kind, Variant: spawned.Variant, Props: props, Tick: w.Tick()})

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: props.Position.X, Y: props.Position.Y, Width: 8, Height: 8}); err != nil {
		return err
	}
	if spawned.Kind == component.KindEnemy {
		if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: 1, Max: 1}); err != nil {
			return err
		}
	}
	return nil
}

func (f *recordingFactory) count(variant string) int {
	n := 0
	for _, s := range f.spawns {
		if s.Variant == variant {
			n++
		}
	}
	return n
}

// scriptedRandom replays fixed values; IntRange always picks the low end.
type scriptedRandom struct {
	values []float64
	i      int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func (r *scriptedRandom) IntRange(a, b int) int {
	if b < a {
		return b
	}
	return a
}

func (r *scriptedRandom) Bool() bool { return false }

type recordingSink struct {
	played []string
}

func (s *recordingSink) PlaySound(id string) {
	s.played = append(s.played, id)
}

func testArena() *component.Arena {
	return &component.Arena{
		Bounds:     cp.BB{L: 0, B: 0, R: 640, T: 360},
		FloorY:     320,
		Front:      cp.BB{L: 320, B: 192, R: 336, T: 320},
		Back:       cp.BB{L: 480, B: 192, R: 496, T: 320},
		Fly1:       cp.BB{L: 200, B: 60, R: 216, T: 76},
		Fly2:       cp.BB{L: 360, B: 60, R: 376, T: 76},
		KillerWall: cp.BB{L: 0, B: 0, R: 16, T: 360},
	}
}

func testBoss() *component.Boss {
	return &component.Boss{
		Name: "test_tank",
		Attacks: []component.AttackWeight{
			{Attack: component.AttackLaunchFist, Weight: 1},
			{Attack: component.AttackLaunchRunningMinions, Weight: 1},
			{Attack: component.AttackLaunchFlyingMinions, Weight: 1},
			{Attack: component.AttackChunkProjectiles, Weight: 1},
			{Attack: component.AttackShootBlasts, Weight: 1},
		},
		InitDuration:    0.5,
		AttackDelay:     common.DifficultyScale{AtFull: 1, AtEmpty: 0.5},
		Speed:           common.DifficultyScale{AtFull: 40, AtEmpty: 80},
		MovementPause:   0.5,
		LaughDuration:   1,
		FistLaunchDelay: 2,
		Fist: component.FistConfig{
			Offset:      cp.Vector{X: -75, Y: 24},
			Size:        cp.Vector{X: 40, Y: 40},
			Health:      3,
			LaunchDelay: 1,
			LaunchSpeed: 320,
			ReturnDelay: 1,
			ReturnSpeed: 64,
		},
		Chunk: component.ChunkConfig{Count: 4, Interval: 0.25, VelocityY: 320, Gravity: 600, Offset: cp.Vector{X: -52, Y: -59}},
		Blast: component.BlastConfig{
			Count:    3,
			Interval: common.DifficultyScale{AtFull: 0.5, AtEmpty: 0.25},
			Speed:    200,
			Angles:   []float64{150, 165, 180, 195, 210},
			Offset:   cp.Vector{X: -52, Y: -48},
		},
		RunningMinions: component.MinionWaveConfig{Cap: 3, Interval: 0.5},
		FlyingMinions:  component.MinionWaveConfig{Cap: 2, Interval: 0.75},
		DamageTable: map[component.DamagerKind]int{
			component.DamagerBullet:           1,
			component.DamagerChargedShot:      1,
			component.DamagerChargedExplosion: 2,
			component.DamagerScythe:           2,
			component.DamagerAxe:              3,
		},
		Invulnerability:   0.5,
		DefeatDuration:    2,
		ExplosionInterval: 0.25,
		ExplosionSpread:   40,
		ExplosionOrbs:     8,
		OrbSpeed:          120,
	}
}

type fixture struct {
	w       *ecs.World
	boss    ecs.Entity
	player  ecs.Entity
	sys     *BossSystem
	factory *recordingFactory
	sched   *ecs.Scheduler
	events  []ecs.Event
}

// newFixture builds an arena with a grounded player on the left and a boss
// standing right of the back waypoint.
func newFixture(t *testing.T, boss *component.Boss, rng common.Random, extra ...func(*fixture) ecs.System) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	f := &fixture{w: w, factory: &recordingFactory{}}
	f.sys = NewBossSystem(f.factory, rng, nil)

	arena := testArena()
	arenaEnt := ecs.CreateEntity(w)
	mustAdd(t, w, arenaEnt, component.ArenaComponent.Kind(), arena)

	f.player = ecs.CreateEntity(w)
	mustAdd(t, w, f.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, f.player, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 304, Width: 24, Height: 32})
	mustAdd(t, w, f.player, component.GrounderComponent.Kind(), &component.Grounder{Grounded: true})
	mustAdd(t, w, f.player, component.HealthComponent.Kind(), &component.Health{Current: 28, Max: 28})

	spawn := cp.Vector{X: 500, Y: 256}
	f.boss = ecs.CreateEntity(w)
	mustAdd(t, w, f.boss, component.BossTagComponent.Kind(), &component.BossTag{})
	mustAdd(t, w, f.boss, component.BossComponent.Kind(), boss)
	mustAdd(t, w, f.boss, component.BossRuntimeComponent.Kind(), NewBossRuntime(boss, arena, spawn))
	mustAdd(t, w, f.boss, component.HealthComponent.Kind(), &component.Health{Current: 10, Max: 10})
	mustAdd(t, w, f.boss, component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y, Width: 96, Height: 128})
	mustAdd(t, w, f.boss, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, f.boss, component.ChildRegistryComponent.Kind(), &component.ChildRegistry{})

	systems := []ecs.System{f.sys}
	for _, mk := range extra {
		systems = append(systems, mk(f))
	}
	f.sched = ecs.NewScheduler(systems...)
	return f
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (f *fixture) runtime(t *testing.T) *component.BossRuntime {
	t.Helper()
	rt, ok := ecs.Get(f.w, f.boss, component.BossRuntimeComponent.Kind())
	if !ok {
		t.Fatal("boss runtime missing")
	}
	return rt
}

// ready skips the intro.
func (f *fixture) ready(t *testing.T) *component.BossRuntime {
	rt := f.runtime(t)
	rt.Ready = true
	return rt
}

func (f *fixture) step(n int) {
	for i := 0; i < n; i++ {
		f.sched.Step(f.w, testDelta)
		f.events = append(f.events, f.w.Events().Drain()...)
	}
}

func (f *fixture) countEvents(typ string) int {
	n := 0
	for _, evt := range f.events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func withMotion(*fixture) ecs.System { return NewMotionSystem() }

func withFists(f *fixture) ecs.System { return NewFistSystem(f.sys) }

func withDamage(f *fixture) ecs.System { return NewDamageSystem(f.sys) }

// addFist attaches a fist to the boss the way the builder does.
func (f *fixture) addFist(t *testing.T) ecs.Entity {
	t.Helper()
	boss, _ := ecs.Get(f.w, f.boss, component.BossComponent.Kind())
	bossTr, _ := ecs.Get(f.w, f.boss, component.TransformComponent.Kind())
	at := bossTr.Position().Add(boss.Fist.Offset)

	fist := ecs.CreateEntity(f.w)
	mustAdd(t, f.w, fist, component.FistComponent.Kind(), NewFist(f.boss, boss.Fist))
	mustAdd(t, f.w, fist, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, Width: boss.Fist.Size.X, Height: boss.Fist.Size.Y})
	mustAdd(t, f.w, fist, component.HealthComponent.Kind(), &component.Health{Current: boss.Fist.Health, Max: boss.Fist.Health})
	f.runtime(t).Fist = uint64(fist)
	return fist
}

package system

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

func TestBossReadiness(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	grounder, _ := ecs.Get(f.w, f.player, component.GrounderComponent.Kind())

	grounder.Grounded = false
	f.step(60)
	if f.runtime(t).Ready {
		t.Fatal("intro must not advance while the player is airborne")
	}

	grounder.Grounded = true
	f.step(29)
	if f.runtime(t).Ready {
		t.Fatal("ready before the intro finished")
	}
	f.step(2)
	if !f.runtime(t).Ready {
		t.Fatal("expected boss ready after the intro")
	}
	f.step(10)
	if got := f.countEvents(EventBossReady); got != 1 {
		t.Fatalf("expected one boss_ready, got %d", got)
	}
}

func TestStartAttackSingleActive(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	f.ready(t)

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatalf("start chunk: %v", err)
	}
	if err := f.sys.StartAttack(f.w, f.boss, component.AttackShootBlasts); err == nil {
		t.Fatal("starting a second attack must fail")
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackChunkProjectiles {
		t.Fatalf("active attack = %q", got)
	}

	if err := f.sys.FinishAttack(f.w, f.boss, component.AttackShootBlasts); !errors.Is(err, ErrAttackMismatch) {
		t.Fatalf("finish of inactive attack: %v", err)
	}
	if err := f.sys.FinishAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatalf("finish chunk: %v", err)
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("active attack after finish = %q", got)
	}

	cases := []struct {
		name   string
		attack component.BossAttack
		want   error
	}{
		{"fist_not_director_move", component.AttackLaunchFist, ErrNotDirectorMove},
		{"unknown", component.BossAttack("tail_whip"), ErrUnknownAttack},
		{"none", component.AttackNone, ErrUnknownAttack},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := f.sys.StartAttack(f.w, f.boss, c.attack); !errors.Is(err, c.want) {
				t.Fatalf("StartAttack(%q) = %v, want %v", c.attack, err, c.want)
			}
		})
	}
}

func TestChunkProjectilesCadence(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	f.ready(t)

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatal(err)
	}
	f.step(60)

	var ticks []uint64
	for _, s := range f.factory.spawns {
		if s.Variant == variantBullet {
			ticks = append(ticks, s.Tick)
		}
	}
	want := []uint64{14, 29, 44, 59}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d bullets, got %d (%v)", len(want), len(ticks), ticks)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("bullet %d fired on tick %d, want %d", i, ticks[i], want[i])
		}
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("expected director idle after the last shot, got %q", got)
	}
	if got := f.countEvents(EventAttackFinished); got != 1 {
		t.Fatalf("expected one attack_finished, got %d", got)
	}

	// every bullet is owned by the boss and culled off-screen
	for _, s := range f.factory.spawns {
		if s.Props.Owner != uint64(f.boss) || !s.Props.CullOutOfBounds || s.Props.OnDamageInflicted == nil {
			t.Fatalf("unexpected chunk props: %+v", s.Props)
		}
		if s.Props.Trajectory.Y >= 0 {
			t.Fatalf("chunk must launch upward, got %v", s.Props.Trajectory)
		}
	}
}

func TestShootBlastsNoRepeat(t *testing.T) {
	cases := []struct {
		name  string
		count int
		want  int
	}{
		{"fewer_than_pool", 3, 3},
		{"pool_exhausts_first", 8, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			boss := stillBoss()
			boss.Blast.Count = c.count
			f := newFixture(t, boss, common.NewRandom(7))
			f.ready(t)

			if err := f.sys.StartAttack(f.w, f.boss, component.AttackShootBlasts); err != nil {
				t.Fatal(err)
			}
			f.step(1)
			if got := f.factory.count(variantBlast); got != 0 {
				t.Fatalf("first blast waits one interval, got %d", got)
			}
			f.step(31)
			if got := f.factory.count(variantBlast); got != 1 {
				t.Fatalf("expected the first blast after one interval, got %d", got)
			}
			f.step(300)

			if got := f.factory.count(variantBlast); got != c.want {
				t.Fatalf("expected %d blasts, got %d", c.want, got)
			}
			if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
				t.Fatalf("expected idle, got %q", got)
			}

			seen := map[float64]bool{}
			for _, s := range f.factory.spawns {
				if s.Variant != variantBlast {
					continue
				}
				angle := matchAngle(t, boss.Blast.Angles, s.Props.Trajectory.X, s.Props.Trajectory.Y, boss.Blast.Speed)
				if seen[angle] {
					t.Fatalf("angle %v fired twice", angle)
				}
				seen[angle] = true
			}
		})
	}
}

func matchAngle(t *testing.T, pool []float64, x, y, speed float64) float64 {
	t.Helper()
	for _, a := range pool {
		v := common.AngleVector(a, speed)
		if math.Abs(v.X-x) < 1e-6 && math.Abs(v.Y-y) < 1e-6 {
			return a
		}
	}
	t.Fatalf("trajectory (%v, %v) matches no pool angle", x, y)
	return 0
}

func TestLaunchFistDrawIsDiscarded(t *testing.T) {
	boss := testBoss()
	boss.Attacks = []component.AttackWeight{{Attack: component.AttackLaunchFist, Weight: 1}}
	f := newFixture(t, boss, common.NewRandom(1))
	rt := f.ready(t)
	rt.ReachedFront = true
	rt.AttackDelayTimer.SetToEnd()

	f.step(1)
	if got := f.countEvents(EventAttackDiscarded); got != 1 {
		t.Fatalf("expected one discarded draw, got %d", got)
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("a fist draw must start nothing, got %q", got)
	}
	if rt.AttackDelayTimer.Finished() {
		t.Fatal("attack delay must restart after a draw")
	}
}

func TestEmptySelector(t *testing.T) {
	t.Run("skips_and_retries", func(t *testing.T) {
		f := newFixture(t, testBoss(), common.NewRandom(1))
		rt := f.ready(t)
		rt.ReachedFront = true
		rt.AttackDelayTimer.SetToEnd()
		for _, attack := range component.BossAttacks {
			rt.Selector.RemoveItem(attack)
		}

		f.step(3)
		if got := f.countEvents(EventSelectorError); got != 3 {
			t.Fatalf("expected a selector error per tick, got %d", got)
		}
	})

	t.Run("panics_in_debug", func(t *testing.T) {
		boss := testBoss()
		boss.Debug = true
		f := newFixture(t, boss, common.NewRandom(1))
		rt := f.ready(t)
		rt.ReachedFront = true
		rt.AttackDelayTimer.SetToEnd()
		for _, attack := range component.BossAttacks {
			rt.Selector.RemoveItem(attack)
		}

		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic with an empty selector in debug")
			}
		}()
		f.step(1)
	})
}

func TestMinionWaveCapAndPruning(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	f.ready(t)

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackLaunchRunningMinions); err != nil {
		t.Fatal(err)
	}
	f.step(120)

	children, _ := ecs.Get(f.w, f.boss, component.ChildRegistryComponent.Kind())
	if got := children.Count(component.GroupRunningMinions); got != 3 {
		t.Fatalf("expected the wave to stop at the cap of 3, got %d", got)
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("expected the wave to finish, got %q", got)
	}

	ids := children.Group(component.GroupRunningMinions)
	ecs.DestroyEntity(f.w, ecs.Entity(ids[0]))
	f.step(1)
	if got := children.Count(component.GroupRunningMinions); got != 2 {
		t.Fatalf("destroyed minion must be pruned within a tick, count %d", got)
	}

	hp, _ := ecs.Get(f.w, ecs.Entity(ids[1]), component.HealthComponent.Kind())
	hp.Current = 0
	f.step(1)
	if children.Contains(ids[1]) {
		t.Fatal("minion at zero health must be pruned")
	}

	tr, _ := ecs.Get(f.w, ecs.Entity(ids[2]), component.TransformComponent.Kind())
	tr.X = 8
	f.step(1)
	if !children.Contains(ids[2]) {
		t.Fatal("minion still overlapping the killer wall must survive")
	}
	tr.X = -4
	f.step(1)
	if children.Contains(ids[2]) || ecs.IsAlive(f.w, ecs.Entity(ids[2])) {
		t.Fatal("minion past the killer wall must be destroyed and untracked")
	}
	if got := f.countEvents(EventChildPruned); got != 3 {
		t.Fatalf("expected 3 child_pruned events, got %d", got)
	}
}

func TestMinionWaveSkipsFailedSpawns(t *testing.T) {
	f := newFixture(t, stillBoss(), common.NewRandom(1))
	f.ready(t)
	f.factory.failVariant = variantRunningMinion

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackLaunchRunningMinions); err != nil {
		t.Fatal(err)
	}
	f.step(120)

	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("wave with failing spawns must still finish, active %q", got)
	}
	if got := f.countEvents(EventAttackFinished); got != 1 {
		t.Fatalf("expected one attack_finished, got %d", got)
	}
	children, _ := ecs.Get(f.w, f.boss, component.ChildRegistryComponent.Kind())
	if got := children.Count(component.GroupRunningMinions); got != 0 {
		t.Fatalf("failed spawns must not be tracked, count %d", got)
	}
	if err := f.sys.StartAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatalf("director must accept a new attack: %v", err)
	}
}

func TestFlyingMinionsTakeHoverPoints(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	f.ready(t)
	arena := testArena()

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackLaunchFlyingMinions); err != nil {
		t.Fatal(err)
	}
	f.step(120)

	var targets []cp.Vector
	for _, s := range f.factory.spawns {
		if s.Variant != variantFlyingMinion {
			continue
		}
		if !s.Props.HasTarget {
			t.Fatal("flying minion spawned without a hover point")
		}
		targets = append(targets, s.Props.Target)
	}
	want := arena.FlyTargets()
	if len(targets) != len(want) {
		t.Fatalf("expected %d flying minions, got %d", len(want), len(targets))
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("minion %d hover point %v, want %v", i, targets[i], want[i])
		}
	}
}

func TestDefeatIsTerminal(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(3), withDamage)
	rt := f.ready(t)

	minion := ecs.CreateEntity(f.w)
	mustAdd(t, f.w, minion, component.HealthComponent.Kind(), &component.Health{Current: 1, Max: 1})
	mustAdd(t, f.w, minion, component.TransformComponent.Kind(), &component.Transform{X: 300, Y: 300, Width: 8, Height: 8})
	children, _ := ecs.Get(f.w, f.boss, component.ChildRegistryComponent.Kind())
	children.Track(component.GroupRunningMinions, uint64(minion))

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatal(err)
	}
	hp, _ := ecs.Get(f.w, f.boss, component.HealthComponent.Kind())
	hp.Current = 0

	f.step(1)
	if !rt.Defeated {
		t.Fatal("boss at zero health must be defeated")
	}
	if ecs.IsAlive(f.w, minion) {
		t.Fatal("children must die with the boss")
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("defeat must drop the active attack, got %q", got)
	}
	if err := f.sys.StartAttack(f.w, f.boss, component.AttackShootBlasts); !errors.Is(err, ErrBossDefeated) {
		t.Fatalf("StartAttack after defeat = %v", err)
	}
	if err := f.sys.TriggerDefeat(f.w, f.boss); err != nil {
		t.Fatalf("second TriggerDefeat: %v", err)
	}

	f.step(150)
	if got := f.countEvents(EventBossDefeated); got != 1 {
		t.Fatalf("expected one boss_defeated, got %d", got)
	}
	if got := f.countEvents(EventBossDead); got != 1 {
		t.Fatalf("expected one boss_dead, got %d", got)
	}
	if ecs.IsAlive(f.w, f.boss) {
		t.Fatal("boss must be destroyed after the defeat sequence")
	}
	if got := f.factory.count(variantExplosion); got == 0 {
		t.Fatal("expected explosions during the defeat sequence")
	}
	if got := f.factory.count(variantExplosionOrb); got != 8 {
		t.Fatalf("expected 8 explosion orbs, got %d", got)
	}
	if got := f.factory.count(variantBullet); got != 0 {
		t.Fatalf("no attack may fire after defeat, got %d bullets", got)
	}
}

func TestReactionStartsLaugh(t *testing.T) {
	f := newFixture(t, testBoss(), common.NewRandom(1))
	rt := f.ready(t)
	f.addFist(t)

	if err := f.sys.StartAttack(f.w, f.boss, component.AttackChunkProjectiles); err != nil {
		t.Fatal(err)
	}
	f.step(1)
	fistElapsed := rt.FistLaunchTimer.Elapsed()

	ReactionCallback(f.w, f.boss)(uint64(f.boss))
	f.step(1)
	if rt.Laughing() {
		t.Fatal("hitting a non-player must not trigger a laugh")
	}

	ReactionCallback(f.w, f.boss)(uint64(f.player))
	f.step(1)
	if !rt.Laughing() {
		t.Fatal("expected the boss to laugh after hurting the player")
	}
	if got := f.sys.ActiveAttack(f.w, f.boss); got != component.AttackNone {
		t.Fatalf("a laugh must finish the active attack, got %q", got)
	}
	if got := f.countEvents(EventReaction); got != 1 {
		t.Fatalf("expected one reaction, got %d", got)
	}

	frozen := rt.FistLaunchTimer.Elapsed()
	f.step(30)
	if rt.FistLaunchTimer.Elapsed() != frozen {
		t.Fatal("fist launch timer must hold still during the laugh")
	}
	if frozen <= fistElapsed {
		t.Fatal("fist launch timer should have advanced before the laugh")
	}
	f.step(40)
	if rt.Laughing() {
		t.Fatal("laugh must end after its duration")
	}
}

func TestMovementReachesFront(t *testing.T) {
	boss := testBoss()
	boss.Attacks = []component.AttackWeight{{Attack: component.AttackLaunchFist, Weight: 1}}
	f := newFixture(t, boss, common.NewRandom(1), withMotion)
	rt := f.ready(t)
	tr, _ := ecs.Get(f.w, f.boss, component.TransformComponent.Kind())

	for i := 0; i < 600 && !rt.ReachedFront; i++ {
		f.step(1)
	}
	if !rt.ReachedFront {
		t.Fatal("boss never reached the front waypoint")
	}
	if tr.Left() != rt.FrontX {
		t.Fatalf("left edge %v, want clamped to %v", tr.Left(), rt.FrontX)
	}
	if rt.MoveState != component.MoveStatePause || rt.MoveToFront {
		t.Fatalf("expected a pause before heading back, got %s toFront=%v", rt.MoveState, rt.MoveToFront)
	}

	f.step(60)
	if rt.MoveState != component.MoveStateMove || tr.Left() <= rt.FrontX {
		t.Fatalf("expected the boss to head back after the pause, left %v", tr.Left())
	}
}

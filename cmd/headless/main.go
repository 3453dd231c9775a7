package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/encounter"
)

const tickDelta = 1.0 / 60.0

type runStats struct {
	runIndex int
	seed     uint64
	ticks    int

	readyTick    int
	defeatedTick int
	deadTick     int
	outcome      string

	attacks    map[string]int
	discarded  int
	spawns     map[string]int
	reactions  int
	bossDamage int
	playerHP   int

	log *encounter.Log
}

func main() {
	var runs int
	var seconds float64
	var seedBase uint64
	var level string
	var autopilot bool
	var dumpLog bool

	flag.IntVar(&runs, "runs", 3, "number of headless encounter runs")
	flag.Float64Var(&seconds, "seconds", 90, "simulated seconds per run")
	flag.Uint64Var(&seedBase, "seed", 1, "seed of run 1; later runs add their index")
	flag.StringVar(&level, "level", encounter.DefaultLevel, "level name in levels/")
	flag.BoolVar(&autopilot, "autopilot", true, "let a scripted player fight back")
	flag.BoolVar(&dumpLog, "log", false, "print the full encounter log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}

	fmt.Printf("=== Headless Boss Report ===\n")
	fmt.Printf("level=%s runs=%d seconds=%.0f seed=%d autopilot=%v\n\n", level, runs, seconds, seedBase, autopilot)

	for i := 0; i < runs; i++ {
		stats, err := runEncounter(i+1, seedBase+uint64(i), level, int(seconds/tickDelta), autopilot)
		if err != nil {
			fmt.Printf("run %d: error: %v\n", i+1, err)
			return
		}
		printRun(stats)
		if dumpLog {
			fmt.Println(stats.log.Format())
		}
	}
}

func runEncounter(index int, seed uint64, level string, ticks int, autopilot bool) (runStats, error) {
	enc, err := encounter.New(encounter.Config{Level: level, Seed: seed})
	if err != nil {
		return runStats{}, err
	}

	stats := runStats{
		runIndex:     index,
		seed:         seed,
		readyTick:    -1,
		defeatedTick: -1,
		deadTick:     -1,
		outcome:      "timeout",
		attacks:      make(map[string]int),
		spawns:       make(map[string]int),
	}
	enc.OnSignal(func(rec encounter.SignalRecord) {
		switch rec.Signal {
		case encounter.SignalBossReady:
			stats.readyTick = int(rec.Tick)
		case encounter.SignalBossDefeated:
			stats.defeatedTick = int(rec.Tick)
		case encounter.SignalBossDead:
			stats.deadTick = int(rec.Tick)
		}
	})

	for tick := 0; tick < ticks && !enc.Ended(); tick++ {
		if autopilot {
			enc.SetInput(pilot(enc, tick))
		}
		if err := enc.Step(tickDelta); err != nil {
			return stats, err
		}
		stats.ticks = tick + 1
		if stats.deadTick >= 0 {
			stats.outcome = "boss_dead"
			break
		}
	}
	if enc.PlayerDead() {
		stats.outcome = "player_dead"
	}

	log := enc.Log()
	for _, e := range log.Filter("attack", "started") {
		stats.attacks[e.Value]++
	}
	stats.discarded = log.CountCategory("attack", "discarded")
	for _, e := range log.Filter("spawn", "") {
		stats.spawns[e.Key]++
	}
	stats.reactions = log.CountCategory("reaction", "")
	bossLabel := fmt.Sprintf("target#%d", enc.Boss())
	for _, e := range log.Filter("damage", "") {
		if e.Entity == bossLabel {
			stats.bossDamage += int(e.NumVal)
		}
	}
	if hp, ok := ecs.Get(enc.World(), enc.Player(), component.HealthComponent.Kind()); ok {
		stats.playerHP = hp.Current
	}
	stats.log = log
	return stats, nil
}

// pilot keeps the player near its spawn, facing the boss, firing a charged
// shot every third second and hopping over running minions on a fixed beat.
func pilot(enc *encounter.Encounter, tick int) component.Input {
	in := component.Input{Shoot: true}
	w := enc.World()

	player, ok := ecs.Get(w, enc.Player(), component.TransformComponent.Kind())
	if !ok {
		return in
	}
	if boss, ok := ecs.Get(w, enc.Boss(), component.TransformComponent.Kind()); ok {
		in.MoveX = 0.01
		if boss.X < player.X {
			in.MoveX = -0.01
		}
	}
	if player.X > 160 {
		in.MoveX = -1
	}
	in.Charged = tick%180 == 0
	in.JumpPressed = tick%75 == 0
	return in
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed %d) ---\n", s.runIndex, s.seed)
	fmt.Printf("outcome=%s ticks=%d ready=%s defeated=%s dead=%s\n",
		s.outcome, s.ticks, tickOrDash(s.readyTick), tickOrDash(s.defeatedTick), tickOrDash(s.deadTick))
	fmt.Printf("attacks: %s (fist draws discarded: %d)\n", formatCounts(s.attacks), s.discarded)
	fmt.Printf("spawns:  %s\n", formatCounts(s.spawns))
	fmt.Printf("reactions=%d boss_damage=%d player_hp=%d\n\n", s.reactions, s.bossDamage, s.playerHP)
}

func tickOrDash(t int) string {
	if t < 0 {
		return "-"
	}
	return fmt.Sprintf("T=%d", t)
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

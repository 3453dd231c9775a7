package encounter

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/levels"
	"github.com/milk9111/bossfight/prefabs"
)

const DefaultLevel = "guts_tank_arena.json"

var ErrEnded = errors.New("encounter: room has ended")

// Signal is a notification raised to whoever runs the room.
type Signal string

const (
	SignalBossReady    Signal = system.EventBossReady
	SignalBossDefeated Signal = system.EventBossDefeated
	SignalBossDead     Signal = system.EventBossDead
)

// SignalRecord is a raised signal with the boss it concerns.
type SignalRecord struct {
	Signal Signal
	Boss   uint64
	Tick   uint64
}

type SignalHandler func(rec SignalRecord)

type Config struct {
	Level string
	Seed  uint64
	// Debug turns an empty attack selector into a panic and echoes the
	// encounter log to stdout.
	Debug bool
	Audio system.AudioSink
	// Input, when set, runs first each step and fills the player's Input.
	// Without it input comes only from SetInput.
	Input ecs.System
}

// Encounter owns one boss room: the world, its systems, and the signals the
// boss raises.
type Encounter struct {
	cfg Config

	world   *ecs.World
	sched   *ecs.Scheduler
	bossSys *system.BossSystem
	factory *entity.Factory

	level      *levels.Level
	bossSpec   *prefabs.BossSpec
	playerSpec *prefabs.PlayerSpec
	arena      *component.Arena
	boss       ecs.Entity
	player     ecs.Entity

	log      *Log
	signals  []SignalRecord
	handlers []SignalHandler
	ended    bool
}

// New loads the level, the prefabs it names and the entity catalog, then
// builds the room.
func New(cfg Config) (*Encounter, error) {
	if cfg.Level == "" {
		cfg.Level = DefaultLevel
	}
	e := &Encounter{cfg: cfg, log: NewLog()}
	if err := e.build(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Encounter) build() error {
	lvl, err := levels.LoadLevelFromFS(e.cfg.Level)
	if err != nil {
		return fmt.Errorf("encounter: %s: %w", e.cfg.Level, err)
	}
	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}

	bossEnt, ok := lvl.Find("boss")
	if !ok {
		return fmt.Errorf("encounter: level %s has no boss", lvl.Name)
	}
	bossSpec, err := prefabs.LoadBossSpec(bossEnt.Text("prefab"))
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	bossSpec.Debug = bossSpec.Debug || e.cfg.Debug

	playerRect, err := lvl.Rect("player")
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}

	w := ecs.NewWorld()
	factory := entity.NewFactory(catalog)

	_, arena, err := entity.BuildArena(w, lvl)
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	player, err := entity.BuildPlayer(w, playerSpec, playerRect.Center())
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	boss, err := entity.BuildBoss(w, factory, bossSpec, arena, bossEnt.Bounds().Center())
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}

	bossSys := system.NewBossSystem(factory, common.NewRandom(e.cfg.Seed), prefabs.LoadScript)
	sched := ecs.NewScheduler()
	sched.Add(e.cfg.Input)
	for _, s := range []ecs.System{
		system.NewPlayerControllerSystem(factory),
		bossSys,
		system.NewFistSystem(bossSys),
		system.NewMinionSystem(factory),
		system.NewMotionSystem(),
		system.NewDamageSystem(bossSys),
		system.NewTTLSystem(),
		system.NewAudioSystem(e.cfg.Audio),
	} {
		sched.Add(s)
	}
	e.sched = sched
	e.world = w
	e.bossSys = bossSys
	e.factory = factory
	e.level = lvl
	e.bossSpec = bossSpec
	e.playerSpec = playerSpec
	e.arena = arena
	e.boss = boss
	e.player = player
	e.ended = false
	return nil
}

// Step advances the room by dt seconds, then turns the tick's world events
// into log entries and signals. A dead player ends the room.
func (e *Encounter) Step(dt float64) error {
	if e.ended {
		return ErrEnded
	}
	tick := e.world.Tick()
	e.sched.Step(e.world, dt)
	for _, evt := range e.world.Events().Drain() {
		e.record(tick, evt)
	}
	if e.PlayerDead() {
		e.log.Add(tick, entityLabel("player", uint64(e.player)), "room", "player_dead", "", 0)
		e.EndRoom()
	}
	return nil
}

func (e *Encounter) record(tick uint64, evt ecs.Event) {
	switch data := evt.Data.(type) {
	case system.BossEvent:
		who := entityLabel("boss", data.Boss)
		switch evt.Type {
		case system.EventBossReady, system.EventBossDefeated, system.EventBossDead:
			e.add(tick, who, "signal", evt.Type, data.Detail, 0)
			e.raise(SignalRecord{Signal: Signal(evt.Type), Boss: data.Boss, Tick: tick})
		case system.EventAttackStarted:
			e.add(tick, who, "attack", "started", string(data.Attack), 0)
		case system.EventAttackFinished:
			e.add(tick, who, "attack", "finished", string(data.Attack), 0)
		case system.EventAttackDiscarded:
			e.add(tick, who, "attack", "discarded", string(data.Attack), 0)
		case system.EventSelectorError:
			e.add(tick, who, "attack", "selector_error", data.Detail, 0)
		case system.EventReaction:
			e.add(tick, who, "reaction", "laugh", data.Detail, 0)
		case system.EventFistState:
			e.add(tick, who, "fist", "state", data.Detail, 0)
		default:
			e.add(tick, who, "boss", evt.Type, data.Detail, 0)
		}
	case system.SpawnEvent:
		switch evt.Type {
		case system.EventChildPruned:
			e.add(tick, entityLabel("boss", data.Owner), "child", "pruned", fmt.Sprintf("entity=%d", data.Entity), 0)
		default:
			e.add(tick, entityLabel("owner", data.Owner), "spawn", data.Variant, fmt.Sprintf("entity=%d kind=%s", data.Entity, data.Kind), 0)
		}
	case system.DamageEvent:
		e.add(tick, entityLabel("target", data.Target), "damage", string(data.Kind),
			fmt.Sprintf("source=%d amount=%d", data.Source, data.Amount), float64(data.Amount))
	default:
		e.add(tick, "--", "world", evt.Type, fmt.Sprint(evt.Data), 0)
	}
}

func (e *Encounter) add(tick uint64, entity, category, key, value string, numVal float64) {
	e.log.Add(tick, entity, category, key, value, numVal)
	if e.cfg.Debug {
		entries := e.log.Entries()
		log.Println(entries[len(entries)-1].String())
	}
}

func (e *Encounter) raise(rec SignalRecord) {
	e.signals = append(e.signals, rec)
	for _, h := range e.handlers {
		h(rec)
	}
}

// OnSignal registers a handler called for every signal, in raise order.
func (e *Encounter) OnSignal(h SignalHandler) {
	if h != nil {
		e.handlers = append(e.handlers, h)
	}
}

// Signals returns every signal raised so far.
func (e *Encounter) Signals() []SignalRecord {
	return append([]SignalRecord(nil), e.signals...)
}

// EndRoom tears the boss down at once, with its fist, platform and children,
// and raises no signal. Further steps return ErrEnded.
func (e *Encounter) EndRoom() {
	if e.ended {
		return
	}
	e.ended = true
	if ecs.IsAlive(e.world, e.boss) {
		e.bossSys.Destroy(e.world, e.boss)
	}
	e.world.Events().Drain()
	e.log.Add(e.world.Tick(), "--", "room", "ended", "", 0)
}

func (e *Encounter) Ended() bool {
	return e.ended
}

// Reload rebuilds the room from the current prefab and level files. Signal
// handlers and the log survive; the world does not.
func (e *Encounter) Reload() error {
	if err := e.build(); err != nil {
		return err
	}
	e.log.Add(0, "--", "room", "reloaded", e.level.Name, 0)
	return nil
}

// InvalidateScript drops the cached compile of a reweigh script so the next
// draw reads it again.
func (e *Encounter) InvalidateScript(name string) {
	e.bossSys.InvalidateScript(name)
}

// SetInput replaces the player's input for the next step.
func (e *Encounter) SetInput(in component.Input) {
	if cur, ok := ecs.Get(e.world, e.player, component.InputComponent.Kind()); ok {
		*cur = in
	}
}

// PlayerDead reports whether the player is gone or out of health.
func (e *Encounter) PlayerDead() bool {
	hp, ok := ecs.Get(e.world, e.player, component.HealthComponent.Kind())
	return !ok || hp.Depleted()
}

// BossAlive reports whether the boss entity still exists.
func (e *Encounter) BossAlive() bool {
	return ecs.IsAlive(e.world, e.boss)
}

func (e *Encounter) World() *ecs.World               { return e.world }
func (e *Encounter) Boss() ecs.Entity                { return e.boss }
func (e *Encounter) Player() ecs.Entity              { return e.player }
func (e *Encounter) Arena() *component.Arena         { return e.arena }
func (e *Encounter) Level() *levels.Level            { return e.level }
func (e *Encounter) BossSpec() *prefabs.BossSpec     { return e.bossSpec }
func (e *Encounter) PlayerSpec() *prefabs.PlayerSpec { return e.playerSpec }
func (e *Encounter) Log() *Log                       { return e.log }
func (e *Encounter) Factory() *entity.Factory        { return e.factory }

func entityLabel(prefix string, id uint64) string {
	return fmt.Sprintf("%s#%d", prefix, id)
}

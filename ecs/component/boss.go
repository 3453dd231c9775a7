package component

import (
	"github.com/jakecoffman/cp"
	"github.com/looplab/fsm"
	"github.com/milk9111/bossfight/common"
)

// BossAttack is the closed set of attacks a boss can draw.
type BossAttack string

const (
	AttackNone                 BossAttack = ""
	AttackLaunchFist           BossAttack = "launch_fist"
	AttackLaunchRunningMinions BossAttack = "launch_running_minions"
	AttackLaunchFlyingMinions  BossAttack = "launch_flying_minions"
	AttackChunkProjectiles     BossAttack = "chunk_projectiles"
	AttackShootBlasts          BossAttack = "shoot_blasts"
)

// BossAttacks lists every attack in selector insertion order.
var BossAttacks = []BossAttack{
	AttackLaunchFist,
	AttackLaunchRunningMinions,
	AttackLaunchFlyingMinions,
	AttackChunkProjectiles,
	AttackShootBlasts,
}

func (a BossAttack) Valid() bool {
	for _, known := range BossAttacks {
		if a == known {
			return true
		}
	}
	return false
}

type AttackWeight struct {
	Attack BossAttack
	Weight float64
}

// ReweighRule overrides attack weights before a draw when all of its set
// conditions hold. A weight of zero removes the attack from that draw.
type ReweighRule struct {
	PlayerAbove *bool
	HealthBelow float64
	Weights     map[BossAttack]float64
}

type ChunkConfig struct {
	Count     int
	Interval  float64
	VelocityY float64
	Gravity   float64
	Offset    cp.Vector
}

type BlastConfig struct {
	Count    int
	Interval common.DifficultyScale
	Speed    float64
	Angles   []float64
	Offset   cp.Vector
}

type MinionWaveConfig struct {
	Cap      int
	Interval float64
}

type FistConfig struct {
	Offset      cp.Vector
	Size        cp.Vector
	Health      int
	LaunchDelay float64
	LaunchSpeed float64
	ReturnDelay float64
	ReturnSpeed float64
}

type PlatformConfig struct {
	Offset cp.Vector
	Size   cp.Vector
}

// Boss stores the tuning of one boss. It does not change while the boss is
// alive.
type Boss struct {
	Name  string
	Debug bool

	Attacks       []AttackWeight
	Reweigh       []ReweighRule
	ReweighScript string

	InitDuration  float64
	AttackDelay   common.DifficultyScale
	Speed         common.DifficultyScale
	MovementPause float64
	LaughDuration float64

	FistLaunchDelay float64
	Fist            FistConfig
	Platform        PlatformConfig

	Chunk          ChunkConfig
	Blast          BlastConfig
	RunningMinions MinionWaveConfig
	FlyingMinions  MinionWaveConfig
	MinionOffset   cp.Vector

	DamageTable     map[DamagerKind]int
	Invulnerability float64

	DefeatDuration    float64
	ExplosionInterval float64
	ExplosionSpread   float64
	ExplosionOrbs     int
	OrbSpeed          float64
}

type MoveState string

const (
	MoveStateMove  MoveState = "move"
	MoveStatePause MoveState = "pause"
)

// AttackProgress is the per-attack sub-state: a pacing timer, the number of
// shots or spawns so far, and the remaining angle pool for blasts.
type AttackProgress struct {
	Timer common.Timer
	Count int
	Pool  []float64
}

// BossRuntime stores everything a boss mutates while it runs.
type BossRuntime struct {
	Spawn cp.Vector

	Ready    bool
	Defeated bool
	Dead     bool

	MoveState    MoveState
	MoveToFront  bool
	ReachedFront bool
	FrontX       float64
	BackX        float64

	Director *fsm.FSM
	Current  BossAttack
	Selector *common.WeightedSelector[BossAttack]
	Progress map[BossAttack]*AttackProgress

	InitTimer          common.Timer
	AttackDelayTimer   common.Timer
	MovementPauseTimer common.Timer
	LaughTimer         common.Timer
	FistLaunchTimer    common.Timer
	DefeatTimer        common.Timer
	ExplosionTimer     common.Timer

	Fist     uint64
	Platform uint64
}

// Laughing reports whether the taunt reaction is holding the boss still.
func (r *BossRuntime) Laughing() bool {
	return !r.LaughTimer.Finished()
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()

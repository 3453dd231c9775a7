package system

import (
	"errors"

	"github.com/milk9111/bossfight/ecs/component"
)

var (
	ErrNoFactory       = errors.New("system: no entity factory")
	ErrBossDefeated    = errors.New("system: boss already defeated")
	ErrNotBoss         = errors.New("system: entity is not a boss")
	ErrUnknownAttack   = errors.New("system: unknown attack")
	ErrAttackMismatch  = errors.New("system: attack is not the active attack")
	ErrNotDirectorMove = errors.New("system: attack is not driven by the director")
)

// World event types. Encounter turns these into signals and log entries.
const (
	EventBossReady       = "boss_ready"
	EventBossDefeated    = "boss_defeated"
	EventBossDead        = "boss_dead"
	EventAttackStarted   = "attack_started"
	EventAttackFinished  = "attack_finished"
	EventAttackDiscarded = "attack_discarded"
	EventSelectorError   = "selector_error"
	EventReaction        = "reaction"
	EventFistState       = "fist_state"
	EventSpawned         = "spawned"
	EventDamage          = "damage"
	EventChildPruned     = "child_pruned"
)

// BossEvent carries the boss id plus the attack or state involved.
type BossEvent struct {
	Boss   uint64
	Attack component.BossAttack
	Detail string
}

type SpawnEvent struct {
	Owner   uint64
	Entity  uint64
	Kind    component.EntityKind
	Variant string
}

type DamageEvent struct {
	Source uint64
	Target uint64
	Kind   component.DamagerKind
	Amount int
}

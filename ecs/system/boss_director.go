package system

import (
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const (
	directorIdle      = "idle"
	directorExecuting = "executing"

	directorStart  = "start"
	directorFinish = "finish"
)

func newDirectorFSM() *fsm.FSM {
	return fsm.NewFSM(
		directorIdle,
		fsm.Events{
			{Name: directorStart, Src: []string{directorIdle}, Dst: directorExecuting},
			{Name: directorFinish, Src: []string{directorExecuting}, Dst: directorIdle},
		},
		fsm.Callbacks{},
	)
}

// updateDirector draws the next attack once the boss has reached the front
// waypoint and the attack delay has run out.
func (s *BossSystem) updateDirector(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health, dt float64) {
	if rt.Current != component.AttackNone || !rt.ReachedFront {
		return
	}

	rt.AttackDelayTimer.Update(dt)
	if !rt.AttackDelayTimer.Finished() {
		return
	}

	s.reweigh(w, e, boss, rt, hp)
	attack, err := rt.Selector.RandomItem(s.rng)
	if err != nil {
		if boss.Debug {
			panic(fmt.Sprintf("boss: entity=%d draw: %v", e, err))
		}
		// the delay timer stays finished, so the draw is retried next tick
		fmt.Printf("boss: entity=%d draw: %v\n", e, err)
		w.Events().Push(ecs.Event{Type: EventSelectorError, Data: BossEvent{Boss: uint64(e), Detail: err.Error()}})
		return
	}

	rt.AttackDelayTimer.ResetDuration(boss.AttackDelay.At(hp.Ratio()))

	if attack == component.AttackLaunchFist {
		// The fist runs on its own launch timer; a draw of it starts nothing.
		w.Events().Push(ecs.Event{Type: EventAttackDiscarded, Data: BossEvent{Boss: uint64(e), Attack: attack}})
		return
	}

	if err := s.StartAttack(w, e, attack); err != nil {
		fmt.Printf("boss: entity=%d start %s: %v\n", e, attack, err)
	}
}

// StartAttack moves the director from idle to executing attack. Starting
// while another attack runs is an invalid transition and is returned as an
// error.
func (s *BossSystem) StartAttack(w *ecs.World, e ecs.Entity, attack component.BossAttack) error {
	boss, rt, err := s.runtime(w, e)
	if err != nil {
		return err
	}
	if rt.Defeated {
		return ErrBossDefeated
	}
	if !attack.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAttack, attack)
	}
	if attack == component.AttackLaunchFist {
		return fmt.Errorf("%w: %s", ErrNotDirectorMove, attack)
	}

	if err := rt.Director.Event(s.ctx, directorStart); err != nil {
		return fmt.Errorf("boss: start %s while %s: %w", attack, rt.Current, err)
	}
	rt.Current = attack
	resetProgress(boss, rt, attack, healthRatio(w, e))

	if attack == component.AttackShootBlasts {
		queueSound(w, e, "mecha_dragon")
	}
	w.Events().Push(ecs.Event{Type: EventAttackStarted, Data: BossEvent{Boss: uint64(e), Attack: attack}})
	return nil
}

// FinishAttack closes out attack: its counters and timer are reset so it can
// be drawn again, and the director returns to idle. Finishing the fist only
// restarts the fist launch timer.
func (s *BossSystem) FinishAttack(w *ecs.World, e ecs.Entity, attack component.BossAttack) error {
	boss, rt, err := s.runtime(w, e)
	if err != nil {
		return err
	}

	if attack == component.AttackLaunchFist {
		rt.FistLaunchTimer.Reset()
		w.Events().Push(ecs.Event{Type: EventAttackFinished, Data: BossEvent{Boss: uint64(e), Attack: attack}})
		return nil
	}
	if attack != rt.Current {
		return fmt.Errorf("%w: %s (active %q)", ErrAttackMismatch, attack, rt.Current)
	}

	resetProgress(boss, rt, attack, healthRatio(w, e))
	rt.Current = component.AttackNone
	if err := rt.Director.Event(s.ctx, directorFinish); err != nil {
		var invalid fsm.InvalidEventError
		if !errors.As(err, &invalid) {
			return fmt.Errorf("boss: finish %s: %w", attack, err)
		}
		// keep the FSM consistent with the now empty current attack
		rt.Director.SetState(directorIdle)
		return fmt.Errorf("boss: finish %s: %w", attack, err)
	}
	w.Events().Push(ecs.Event{Type: EventAttackFinished, Data: BossEvent{Boss: uint64(e), Attack: attack}})
	return nil
}

// ActiveAttack returns the attack the director is executing.
func (s *BossSystem) ActiveAttack(w *ecs.World, e ecs.Entity) component.BossAttack {
	_, rt, err := s.runtime(w, e)
	if err != nil {
		return component.AttackNone
	}
	return rt.Current
}

// resetProgress rewinds the counters and pacing timer of attack.
func resetProgress(boss *component.Boss, rt *component.BossRuntime, attack component.BossAttack, ratio float64) {
	p, ok := rt.Progress[attack]
	if !ok {
		p = &component.AttackProgress{}
		rt.Progress[attack] = p
	}
	p.Count = 0
	p.Pool = nil

	switch attack {
	case component.AttackChunkProjectiles:
		p.Timer = common.NewTimer(boss.Chunk.Interval)
	case component.AttackShootBlasts:
		p.Timer = common.NewTimer(boss.Blast.Interval.At(ratio))
		p.Pool = append([]float64(nil), boss.Blast.Angles...)
	case component.AttackLaunchRunningMinions:
		p.Timer = common.NewTimer(boss.RunningMinions.Interval)
	case component.AttackLaunchFlyingMinions:
		p.Timer = common.NewTimer(boss.FlyingMinions.Interval)
	default:
		p.Timer = common.NewTimer(0)
	}
}

package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/looplab/fsm"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const (
	fistLaunch   = "launch"
	fistStrike   = "strike"
	fistReattach = "reattach"
)

// NewFistFSM returns the attached/launched/returning machine of a fist.
func NewFistFSM() *fsm.FSM {
	return fsm.NewFSM(
		component.FistAttached,
		fsm.Events{
			{Name: fistLaunch, Src: []string{component.FistAttached}, Dst: component.FistLaunched},
			{Name: fistStrike, Src: []string{component.FistLaunched}, Dst: component.FistReturning},
			{Name: fistReattach, Src: []string{component.FistReturning}, Dst: component.FistAttached},
		},
		fsm.Callbacks{},
	)
}

// NewFist builds the fist component for boss from its tuning.
func NewFist(boss ecs.Entity, cfg component.FistConfig) *component.Fist {
	return &component.Fist{
		Boss:        uint64(boss),
		Offset:      cfg.Offset,
		LaunchSpeed: cfg.LaunchSpeed,
		ReturnSpeed: cfg.ReturnSpeed,
		LaunchDelay: common.NewTimer(cfg.LaunchDelay),
		ReturnDelay: common.NewTimer(cfg.ReturnDelay),
		FacingLeft:  true,
		FSM:         NewFistFSM(),
	}
}

// updateFistLaunch runs the independent fist launch timer. The fist never
// launches while the player already overlaps it.
func (s *BossSystem) updateFistLaunch(w *ecs.World, e ecs.Entity, rt *component.BossRuntime, dt float64) {
	if rt.Fist == 0 {
		return
	}
	fistEnt := ecs.Entity(rt.Fist)
	if !ecs.IsAlive(w, fistEnt) {
		rt.Fist = 0
		return
	}
	fist, ok := ecs.Get(w, fistEnt, component.FistComponent.Kind())
	if !ok || fist.State() != component.FistAttached {
		return
	}
	tr, ok := ecs.Get(w, fistEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	rt.FistLaunchTimer.Update(dt)
	if !rt.FistLaunchTimer.Finished() {
		return
	}
	player, hasPlayer := queryPlayer(w)
	if hasPlayer && tr.Bounds().Intersects(player.Bounds) {
		return
	}

	rt.FistLaunchTimer.Reset()
	if err := fist.FSM.Event(s.ctx, fistLaunch); err != nil {
		fmt.Printf("boss: entity=%d fist launch: %v\n", e, err)
		return
	}
	if hasPlayer {
		fist.FacingLeft = player.Bounds.L < tr.X
	}
	fist.LaunchDelay.Reset()
	w.Events().Push(ecs.Event{Type: EventFistState, Data: BossEvent{Boss: uint64(e), Attack: component.AttackLaunchFist, Detail: component.FistLaunched}})
}

// FistSystem flies launched fists at the player and back to the boss.
type FistSystem struct {
	boss *BossSystem
}

func NewFistSystem(boss *BossSystem) *FistSystem {
	return &FistSystem{boss: boss}
}

func (s *FistSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.FistComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fist *component.Fist, tr *component.Transform) {
		bossEnt := ecs.Entity(fist.Boss)
		bossTr, ok := ecs.Get(w, bossEnt, component.TransformComponent.Kind())
		if !ok {
			return
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			vel = &component.Velocity{}
			_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
		}
		attachment := bossTr.Position().Add(fist.Offset)

		switch fist.State() {
		case component.FistAttached:
			fist.FacingLeft = true
			vel.Zero()
			tr.SetPosition(attachment)
		case component.FistLaunched:
			s.updateLaunched(w, e, bossEnt, fist, tr, vel, dt)
		case component.FistReturning:
			s.updateReturning(w, e, bossEnt, fist, tr, vel, attachment, dt)
		}
	})
}

func (s *FistSystem) updateLaunched(w *ecs.World, e, bossEnt ecs.Entity, fist *component.Fist, tr *component.Transform, vel *component.Velocity, dt float64) {
	fist.LaunchDelay.Update(dt)
	if !fist.LaunchDelay.Finished() {
		vel.Zero()
		return
	}
	if fist.LaunchDelay.JustFinished() {
		fist.Target = tr.Position().Add(cp.Vector{X: -tr.Width * 4})
		if player, ok := queryPlayer(w); ok {
			fist.Target = cp.Vector{X: player.Bounds.L, Y: player.Center.Y}
		}
		queueSound(w, bossEnt, "burst")
	}

	vel.Set(common.Toward(tr.Position(), fist.Target, fist.LaunchSpeed))
	if !tr.Bounds().ContainsVect(fist.Target) {
		return
	}
	if err := fist.FSM.Event(s.boss.ctx, fistStrike); err != nil {
		fmt.Printf("boss: fist=%d strike: %v\n", e, err)
		return
	}
	vel.Zero()
	fist.ReturnDelay.Reset()
	w.Events().Push(ecs.Event{Type: EventFistState, Data: BossEvent{Boss: uint64(bossEnt), Attack: component.AttackLaunchFist, Detail: component.FistReturning}})
}

func (s *FistSystem) updateReturning(w *ecs.World, e, bossEnt ecs.Entity, fist *component.Fist, tr *component.Transform, vel *component.Velocity, attachment cp.Vector, dt float64) {
	fist.FacingLeft = attachment.X < tr.X
	fist.ReturnDelay.Update(dt)
	if !fist.ReturnDelay.Finished() {
		vel.Zero()
		return
	}

	vel.Set(common.Toward(tr.Position(), attachment, fist.ReturnSpeed))
	if !tr.Bounds().ContainsVect(attachment) {
		return
	}
	if err := fist.FSM.Event(s.boss.ctx, fistReattach); err != nil {
		fmt.Printf("boss: fist=%d reattach: %v\n", e, err)
		return
	}
	vel.Zero()
	tr.SetPosition(attachment)
	w.Events().Push(ecs.Event{Type: EventFistState, Data: BossEvent{Boss: uint64(bossEnt), Attack: component.AttackLaunchFist, Detail: component.FistAttached}})
	if err := s.boss.FinishAttack(w, bossEnt, component.AttackLaunchFist); err != nil {
		fmt.Printf("boss: fist=%d finish: %v\n", e, err)
	}
}

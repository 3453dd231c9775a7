package system

import "github.com/milk9111/bossfight/ecs/component"

// updateMovement patrols between the front and back waypoints. Waypoints are
// compared against the boss's left edge and the position is clamped on
// arrival.
func (s *BossSystem) updateMovement(boss *component.Boss, rt *component.BossRuntime, hp *component.Health, tr *component.Transform, vel *component.Velocity, dt float64) {
	switch rt.MoveState {
	case component.MoveStateMove:
		speed := boss.Speed.At(hp.Ratio())
		if rt.MoveToFront {
			vel.X = -speed
			if tr.Left() <= rt.FrontX {
				tr.SetLeft(rt.FrontX)
				rt.ReachedFront = true
				s.pause(rt, vel)
			}
			return
		}
		vel.X = speed
		if tr.Left() >= rt.BackX {
			tr.SetLeft(rt.BackX)
			s.pause(rt, vel)
		}
	case component.MoveStatePause:
		vel.X = 0
		rt.MovementPauseTimer.Update(dt)
		if rt.MovementPauseTimer.Finished() {
			rt.MoveState = component.MoveStateMove
		}
	}
}

func (s *BossSystem) pause(rt *component.BossRuntime, vel *component.Velocity) {
	vel.X = 0
	rt.MoveState = component.MoveStatePause
	rt.MoveToFront = !rt.MoveToFront
	rt.MovementPauseTimer.Reset()
}

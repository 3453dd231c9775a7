package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// MinionSystem steers boss-spawned minions. Running minions run left once
// they touch the floor. Flying minions fly to their hover point and shoot at
// the player from there.
type MinionSystem struct {
	factory EntityFactory
}

func NewMinionSystem(factory EntityFactory) *MinionSystem {
	return &MinionSystem{factory: factory}
}

func (s *MinionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.MinionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Minion, tr *component.Transform) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			vel = &component.Velocity{}
			_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
		}

		switch m.Kind {
		case component.MinionRunning:
			s.updateRunning(w, e, m, vel)
		case component.MinionFlying:
			s.updateFlying(w, e, m, tr, vel, dt)
		}
	})
}

func (s *MinionSystem) updateRunning(w *ecs.World, e ecs.Entity, m *component.Minion, vel *component.Velocity) {
	grounder, ok := ecs.Get(w, e, component.GrounderComponent.Kind())
	if ok && !grounder.Grounded {
		vel.X = 0
		return
	}
	vel.X = -m.Speed
	if !m.FacingLeft {
		vel.X = m.Speed
	}
}

func (s *MinionSystem) updateFlying(w *ecs.World, e ecs.Entity, m *component.Minion, tr *component.Transform, vel *component.Velocity, dt float64) {
	if !m.Arrived {
		step := m.Speed * dt
		if tr.Position().Distance(m.Target) <= step {
			tr.SetPosition(m.Target)
			vel.Zero()
			m.Arrived = true
			return
		}
		vel.Set(common.Toward(tr.Position(), m.Target, m.Speed))
		return
	}

	vel.Zero()
	player, ok := queryPlayer(w)
	if !ok {
		return
	}
	m.FacingLeft = player.Center.X < tr.X

	m.ShotTimer.Update(dt)
	if !m.ShotTimer.Finished() {
		return
	}
	m.ShotTimer.Reset()

	origin := tr.Position().Add(cp.Vector{X: 0, Y: tr.Height / 2})
	if _, err := spawnEntity(w, s.factory, component.KindProjectile, variantBullet, component.SpawnProps{
		Position:          origin,
		Trajectory:        common.Toward(origin, player.Center, m.ShotSpeed),
		FacingLeft:        m.FacingLeft,
		Owner:             uint64(e),
		OnDamageInflicted: m.OnDamageInflicted,
		CullOutOfBounds:   true,
	}); err != nil {
		fmt.Printf("minion: entity=%d shoot: %v\n", e, err)
	}
}

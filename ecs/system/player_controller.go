package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

const (
	variantBuster      = "buster"
	variantChargedShot = "charged_shot"
)

// PlayerControllerSystem turns the per-tick Input into movement and shots.
type PlayerControllerSystem struct {
	factory EntityFactory
}

func NewPlayerControllerSystem(factory EntityFactory) *PlayerControllerSystem {
	return &PlayerControllerSystem{factory: factory}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, tr *component.Transform) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			vel = &component.Velocity{}
			_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
		}

		vel.X = input.MoveX * player.MoveSpeed
		if input.MoveX < 0 {
			player.FacingLeft = true
		} else if input.MoveX > 0 {
			player.FacingLeft = false
		}

		if g, ok := ecs.Get(w, e, component.GrounderComponent.Kind()); ok && g.Grounded && input.JumpPressed {
			vel.Y = -player.JumpSpeed
			g.Grounded = false
		}

		if arena, ok := arenaOf(w); ok {
			if tr.Left() < arena.Bounds.L {
				tr.SetLeft(arena.Bounds.L)
			}
			if tr.Right() > arena.Bounds.R {
				tr.SetLeft(arena.Bounds.R - tr.Width)
			}
		}

		player.Shooting = false
		ready := player.ReadyToShoot(dt)
		if !input.Shoot || !ready {
			return
		}
		p.shoot(w, e, player, input, tr)
	})
}

func (p *PlayerControllerSystem) shoot(w *ecs.World, e ecs.Entity, player *component.Player, input *component.Input, tr *component.Transform) {
	dir := 1.0
	if player.FacingLeft {
		dir = -1
	}
	variant := variantBuster
	if input.Charged {
		variant = variantChargedShot
	}

	if _, err := spawnEntity(w, p.factory, component.KindProjectile, variant, component.SpawnProps{
		Position:        tr.Position().Add(cp.Vector{X: dir * tr.Width / 2}),
		Trajectory:      cp.Vector{X: dir * player.ShotSpeed},
		FacingLeft:      player.FacingLeft,
		Owner:           uint64(e),
		CullOutOfBounds: true,
	}); err != nil {
		fmt.Printf("player: entity=%d shoot: %v\n", e, err)
		return
	}
	player.Shooting = true
	player.StartShotCooldown()
	queueSound(w, e, "shoot")
}

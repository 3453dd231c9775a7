package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

// BuildPlayer creates the player centered at spawn.
func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, spawn cp.Vector) (ecs.Entity, error) {
	return BuildEntity(w, spec.Name,
		withComponent("player_tag", component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		withComponent("player", component.PlayerComponent.Kind(), &component.Player{
			MoveSpeed:    spec.MoveSpeed,
			JumpSpeed:    spec.JumpSpeed,
			ShotSpeed:    spec.ShotSpeed,
			ShotCooldown: spec.ShotCooldown,
		}),
		withComponent("input", component.InputComponent.Kind(), &component.Input{}),
		withComponent("transform", component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y, Width: spec.Size.X, Height: spec.Size.Y}),
		withComponent("velocity", component.VelocityComponent.Kind(), &component.Velocity{}),
		withComponent("gravity", component.GravityComponent.Kind(), &component.Gravity{Accel: spec.Gravity}),
		withComponent("grounder", component.GrounderComponent.Kind(), &component.Grounder{}),
		withComponent("health", component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}),
	)
}

package system

import (
	"math"

	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
)

// MovementSystem integrates entities that are not driven by a physics body,
// such as drifting loot.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	return &MovementSystem{dt: dt}
}

func (s *MovementSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, pos *component.Position, vel *component.Velocity) {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		pos.Position = pos.Position.Add(vel.Velocity.Mult(s.dt))
	})
	ecs.ForEach(w, component.AngleComponent.Kind(), func(e ecs.Entity, angle *component.Angle) {
		if angle.Spin == 0 || ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		angle.Degrees = math.Mod(angle.Degrees+angle.Spin*s.dt, 360)
	})
}

package system

import (
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/physics"
	"go.uber.org/zap"
)

const bodyCleanupReceiver = "physics-body-cleanup"

// PhysicsSystem creates cp bodies for new PhysicsBody components, steps the
// space, and ticks the non-entity objects. Contact callbacks fire inside the
// step and reach the ECS through the space's listener.
type PhysicsSystem struct {
	space   *physics.Space
	objects *physics.ObjectManager
	dt      float64
	log     *zap.Logger
}

func NewPhysicsSystem(space *physics.Space, objects *physics.ObjectManager, dt float64, log *zap.Logger) *PhysicsSystem {
	if space == nil {
		panic("system: physics system needs a space")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PhysicsSystem{space: space, objects: objects, dt: dt, log: log}
}

// Register subscribes the native body cleanup to the deletion event.
func (ps *PhysicsSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Deletion]{
		Name:     bodyCleanupReceiver,
		Phase:    ecs.PhaseReact,
		Before:   []string{DestructionReceiver},
		Requires: component.Set(component.PhysicsBodyComponent),
		Handle: func(w *ecs.World, e ecs.Entity, _ event.Deletion) ecs.Result {
			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if body != nil {
				ps.space.Remove(body.Body, body.Shape)
				body.Body, body.Shape = nil, nil
			}
			ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
			return ecs.Continue
		},
	})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ps.createBodies(w)
	ps.space.Step(ps.dt)

	if ps.objects != nil {
		ps.objects.Update(physics.Context{World: w, Objects: ps.objects}, ps.dt)
		w.Commands().Do(func(*ecs.World) {
			if added, removed := ps.objects.Flush(); added+removed > 0 {
				ps.log.Debug("physics objects flushed", zap.Int("added", added), zap.Int("removed", removed))
			}
		})
	}
}

func (ps *PhysicsSystem) createBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.PositionComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, pos *component.Position) {
		if pb.Body != nil || ecs.Has(w, e, component.DeletionMarkerComponent.Kind()) {
			return
		}

		radius := 0.5
		if size, ok := ecs.Get(w, e, component.SizeComponent.Kind()); ok && size.Size > 0 {
			radius = size.Size / 2
		}
		mass := pb.Mass
		if pb.Static {
			mass = 0
		} else if mass <= 0 {
			mass = 1
		}

		body, shape := physics.NewCircleBody(mass, radius, pos.Position)
		shape.SetFriction(pb.Friction)
		shape.SetElasticity(pb.Elasticity)
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok && !pb.Static {
			body.SetVelocityVector(vel.Velocity)
		}
		if angle, ok := ecs.Get(w, e, component.AngleComponent.Kind()); ok {
			body.SetAngle(common.Radians(angle.Degrees))
			if !pb.Static {
				body.SetAngularVelocity(common.Radians(angle.Spin))
			}
		}

		ps.space.Add(physics.EntityObject(e), body, shape)
		pb.Body, pb.Shape = body, shape
	})
}

// BodyUpdateSystem broadcasts event.BodyUpdate to every body-linked entity
// once per tick and copies the body state back into the components.
type BodyUpdateSystem struct{}

func NewBodyUpdateSystem() *BodyUpdateSystem {
	return &BodyUpdateSystem{}
}

func (s *BodyUpdateSystem) Register(bus *ecs.EventBus) error {
	if err := ecs.Subscribe(bus, ecs.Receiver[event.BodyUpdate]{
		Name:     "body-sync",
		Requires: component.Set(component.PhysicsBodyComponent, component.PositionComponent),
		Handle:   syncBody,
	}); err != nil {
		return err
	}
	return ecs.Subscribe(bus, ecs.Receiver[event.PositionUpdate]{
		Name:     "position-update",
		Requires: component.Set(component.PositionComponent),
		Handle: func(w *ecs.World, e ecs.Entity, ev event.PositionUpdate) ecs.Result {
			pos := ecs.MustGet(w, e, component.PositionComponent.Kind(), "position-update")
			pos.Position = ev.Position
			if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
				pb.Body.SetPosition(ev.Position)
			}
			return ecs.Continue
		},
	})
}

func (s *BodyUpdateSystem) Update(w *ecs.World) {
	ecs.Broadcast(w, event.BodyUpdate{}, component.PhysicsBodyComponent)
}

func syncBody(w *ecs.World, e ecs.Entity, _ event.BodyUpdate) ecs.Result {
	pb := ecs.MustGet(w, e, component.PhysicsBodyComponent.Kind(), "body-sync")
	if pb.Body == nil {
		return ecs.Continue
	}
	pos := ecs.MustGet(w, e, component.PositionComponent.Kind(), "body-sync")
	pos.Position = pb.Body.Position()
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Velocity = pb.Body.Velocity()
	}
	if angle, ok := ecs.Get(w, e, component.AngleComponent.Kind()); ok {
		angle.Degrees = common.Degrees(pb.Body.Angle())
		angle.Spin = common.Degrees(pb.Body.AngularVelocity())
	}
	return ecs.Continue
}

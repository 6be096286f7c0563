package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/physics"
	"github.com/milk9111/spacecombat/prefabs"
)

// Controls is one tick of player intent.
type Controls struct {
	Thrust float64 // -1..1, forward along the heading
	Turn   float64 // -1..1, counter-clockwise positive
	Fire   bool
	Beam   bool
}

// Input reports the current player intent.
type Input interface {
	Controls() Controls
}

// PlayerControlSystem steers the player ship and fires projectiles into the
// object manager.
type PlayerControlSystem struct {
	input    Input
	objects  *physics.ObjectManager
	bolt     prefabs.ProjectileSpec
	beam     prefabs.ProjectileSpec
	Thrust   float64 // impulse per tick at full throttle
	TurnRate float64 // radians per second at full turn
	Cooldown int     // ticks between shots

	cooldown int
}

func NewPlayerControlSystem(input Input, objects *physics.ObjectManager, bolt, beam prefabs.ProjectileSpec) *PlayerControlSystem {
	return &PlayerControlSystem{
		input:    input,
		objects:  objects,
		bolt:     bolt,
		beam:     beam,
		Thrust:   0.2,
		TurnRate: 3,
		Cooldown: 8,
	}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s.input == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent, component.PhysicsBodyComponent)
	if !ok || ecs.Has(w, player, component.DeletionMarkerComponent.Kind()) {
		return
	}
	pb, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if pb == nil || pb.Body == nil {
		return
	}

	c := s.input.Controls()
	if c.Thrust != 0 {
		pb.Body.ApplyImpulseAtLocalPoint(cp.Vector{X: c.Thrust * s.Thrust}, cp.Vector{})
	}
	pb.Body.SetAngularVelocity(c.Turn * s.TurnRate)

	if s.cooldown > 0 {
		s.cooldown--
		return
	}
	if s.objects == nil || (!c.Fire && !c.Beam) {
		return
	}
	spec := s.bolt
	if c.Beam {
		spec = s.beam
	}

	heading := common.Degrees(pb.Body.Angle())
	radius := 0.5
	if size, ok := ecs.Get(w, player, component.SizeComponent.Kind()); ok {
		radius = size.Size / 2
	}
	muzzle := pb.Body.Position().Add(common.FromAngle(heading, radius+spec.Radius+0.05))
	s.objects.AddDelayed(physics.NewProjectile(spec, muzzle, heading, pb.Body.Velocity()))
	s.cooldown = s.Cooldown
}

package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/prefabs"
)

// Damageable is a non-entity object that projectiles can hurt.
type Damageable interface {
	TakeDamage(amount int)
}

// Projectile is a bolt or beam flying through the space. It is not an
// entity; the object manager owns it.
type Projectile struct {
	Name string
	// Density <= 0 makes the projectile impulse-free: a sensor that never
	// pushes what it touches.
	Density float64
	Damage  int
	// Lifetime counts remaining ticks.
	Lifetime int

	body     *cp.Body
	shape    *cp.Shape
	obstacle Object
	impacted bool
}

// NewProjectile fires spec from pos along heading (degrees), adding the
// shooter's velocity.
func NewProjectile(spec prefabs.ProjectileSpec, pos cp.Vector, heading float64, inherited cp.Vector) *Projectile {
	radius := spec.Radius
	if radius <= 0 {
		radius = 0.05
	}
	p := &Projectile{
		Name:     spec.Name,
		Density:  spec.Density,
		Damage:   spec.Damage,
		Lifetime: spec.LifeTicks,
	}

	rad := heading * math.Pi / 180
	vel := inherited.Add(cp.Vector{X: math.Cos(rad), Y: math.Sin(rad)}.Mult(spec.Speed))
	if p.Density > 0 {
		mass := p.Density * math.Pi * radius * radius
		p.body, p.shape = NewCircleBody(mass, radius, pos)
	} else {
		p.body = cp.NewKinematicBody()
		p.body.SetPosition(pos)
		p.shape = cp.NewCircle(p.body, radius, cp.Vector{})
		p.shape.SetSensor(true)
	}
	p.body.SetVelocityVector(vel)
	p.body.SetAngle(rad)
	return p
}

func (p *Projectile) SetObstacle(o Object) {
	p.obstacle = o
}

// Obstacle returns what the projectile ran into, if anything.
func (p *Projectile) Obstacle() (Object, bool) {
	return p.obstacle, p.obstacle.Kind() != KindUnknown
}

// HandleContact stops the projectile on any physical hit.
func (p *Projectile) HandleContact(_ Context, _ Object, _ float64, _ cp.Vector) {
	p.impacted = true
}

// Update deals damage to the obstacle once and expires the projectile on
// impact or when its lifetime runs out.
func (p *Projectile) Update(ctx Context, _ float64) bool {
	if o, ok := p.Obstacle(); ok {
		switch o.Kind() {
		case KindEntity:
			e, _ := o.Entity()
			if p.Damage > 0 {
				ecs.Send(ctx.World, event.Damage{Amount: p.Damage}, e)
			}
		case KindOther:
			if c, _ := o.Collider(); c != nil {
				if d, ok := c.(Damageable); ok {
					d.TakeDamage(p.Damage)
				}
			}
		}
		return false
	}
	if p.impacted {
		return false
	}
	p.Lifetime--
	return p.Lifetime > 0
}

func (p *Projectile) Body() *cp.Body   { return p.body }
func (p *Projectile) Shape() *cp.Shape { return p.shape }

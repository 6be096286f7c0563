// Package physics bridges Chipmunk2D contact callbacks into ECS events and
// owns the non-entity objects that live in the physics space.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/ecs"
)

// Kind tags the variant held by an Object.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEntity
	KindProjectile
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindProjectile:
		return "projectile"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Object is whatever sits in a cp body's UserData slot. The zero value is
// KindUnknown, which is what bodies without user data (arena walls) read as.
type Object struct {
	kind       Kind
	entity     ecs.Entity
	projectile *Projectile
	collider   Collider
}

// Collider is a non-entity object that responds to resolved contacts itself.
type Collider interface {
	HandleContact(ctx Context, other Object, impulse float64, point cp.Vector)
}

// Context is what a collider may touch while responding to a contact.
type Context struct {
	World   *ecs.World
	Objects *ObjectManager
}

func EntityObject(e ecs.Entity) Object {
	if !e.Valid() {
		return Object{}
	}
	return Object{kind: KindEntity, entity: e}
}

func ProjectileObject(p *Projectile) Object {
	if p == nil {
		return Object{}
	}
	return Object{kind: KindProjectile, projectile: p, collider: p}
}

func OtherObject(c Collider) Object {
	if c == nil {
		return Object{}
	}
	if p, ok := c.(*Projectile); ok {
		return ProjectileObject(p)
	}
	return Object{kind: KindOther, collider: c}
}

// ObjectFromUserData reads a cp body's user data.
func ObjectFromUserData(data any) Object {
	switch v := data.(type) {
	case Object:
		return v
	case *Object:
		if v == nil {
			return Object{}
		}
		return *v
	default:
		return Object{}
	}
}

func (o Object) Kind() Kind { return o.kind }

func (o Object) Entity() (ecs.Entity, bool) {
	return o.entity, o.kind == KindEntity
}

func (o Object) Projectile() (*Projectile, bool) {
	return o.projectile, o.kind == KindProjectile
}

// Collider returns the contact handler of a projectile or other object.
func (o Object) Collider() (Collider, bool) {
	return o.collider, o.collider != nil
}

// impulseFree reports projectiles with density <= 0, such as beams, that
// must never produce a physical collision response.
func (o Object) impulseFree() bool {
	return o.kind == KindProjectile && o.projectile.Density <= 0
}

func (o Object) String() string {
	switch o.kind {
	case KindEntity:
		return "entity " + o.entity.String()
	case KindProjectile:
		return "projectile " + o.projectile.Name
	default:
		return o.kind.String()
	}
}

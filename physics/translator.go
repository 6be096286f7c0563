package physics

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/event"
	"go.uber.org/zap"
)

// ContactListener receives the two callbacks the translator needs from a
// physics step.
type ContactListener interface {
	BeginContact(a, b Object)
	PostSolve(a, b Object, point cp.Vector, impulses []float64)
}

// SoundPlayer plays the collision sound of one contact side.
type SoundPlayer interface {
	PlayCollision(o Object, impulse float64)
}

// Translator turns contact callbacks into ECS events for entity-backed
// bodies and drives the collision response of non-entity objects.
type Translator struct {
	world   *ecs.World
	objects *ObjectManager
	sounds  SoundPlayer
	log     *zap.Logger
}

func NewTranslator(w *ecs.World, objects *ObjectManager, sounds SoundPlayer, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{world: w, objects: objects, sounds: sounds, log: log}
}

// BeginContact gives a projectile the object it ran into. Nothing happens
// when neither or both sides are projectiles.
func (t *Translator) BeginContact(a, b Object) {
	pa, aIsProjectile := a.Projectile()
	pb, bIsProjectile := b.Projectile()
	switch {
	case aIsProjectile && !bIsProjectile:
		pa.SetObstacle(b)
	case bIsProjectile && !aIsProjectile:
		pb.SetObstacle(a)
	}
}

// PostSolve forwards one resolved contact. Every entity side gets an Impulse
// event. Two entities also get Contact events naming each other and nothing
// else happens. Otherwise each non-entity side handles the contact itself,
// unless an impulse-free projectile is involved.
func (t *Translator) PostSolve(a, b Object, point cp.Vector, impulses []float64) {
	magnitude := MaxImpulse(impulses)

	ea, aIsEntity := a.Entity()
	eb, bIsEntity := b.Entity()
	if aIsEntity {
		ecs.Send(t.world, event.Impulse{Point: point, Magnitude: magnitude}, ea)
	}
	if bIsEntity {
		ecs.Send(t.world, event.Impulse{Point: point, Magnitude: magnitude}, eb)
	}
	if aIsEntity && bIsEntity {
		manifold := event.Manifold{Point: point, NormalImpulses: slices.Clone(impulses)}
		ecs.Send(t.world, event.Contact{Other: eb, Contact: manifold}, ea)
		ecs.Send(t.world, event.Contact{Other: ea, Contact: manifold}, eb)
		return
	}

	if a.impulseFree() || b.impulseFree() {
		return
	}

	// An entity facing a non-entity object is seen by that object as a plain
	// entity Object; only the non-entity side responds.
	t.respond(a, b, magnitude, point)
	t.respond(b, a, magnitude, point)
}

func (t *Translator) respond(self, other Object, impulse float64, point cp.Vector) {
	c, ok := self.Collider()
	if !ok {
		return
	}
	c.HandleContact(Context{World: t.world, Objects: t.objects}, other, impulse, point)
	if t.sounds != nil {
		t.sounds.PlayCollision(self, impulse)
	}
	t.log.Debug("contact response",
		zap.Stringer("self", self),
		zap.Stringer("other", other),
		zap.Float64("impulse", impulse))
}

// MaxImpulse is the largest absolute per-point normal impulse. Curved
// manifolds report several points for one hit, so summing would inflate it.
func MaxImpulse(impulses []float64) float64 {
	var m float64
	for _, j := range impulses {
		m = max(m, math.Abs(j))
	}
	return m
}

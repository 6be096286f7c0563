// Package event holds the typed payloads delivered through the ECS event bus.
package event

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/ecs"
)

// Impulse reports the strongest normal impulse of one resolved contact.
type Impulse struct {
	Point     cp.Vector
	Magnitude float64
}

// Contact tells an entity which other entity it touched this step.
type Contact struct {
	Other   ecs.Entity
	Contact Manifold
}

// Manifold is the raw contact data of one post-solve callback.
type Manifold struct {
	Point          cp.Vector
	NormalImpulses []float64
}

// Deletion is the pre-removal signal fired one tick after an entity was
// marked. Receivers that need the entity's components must be ordered before
// the terminal destruction receiver.
type Deletion struct{}

// BodyUpdate is broadcast every tick to entities linked to a physics body.
type BodyUpdate struct{}

// Render is broadcast once per drawn frame to renderable entities.
type Render struct{}

// Damage subtracts Amount from the target's health.
type Damage struct {
	Amount int
}

// PositionUpdate teleports the target.
type PositionUpdate struct {
	Position cp.Vector
}

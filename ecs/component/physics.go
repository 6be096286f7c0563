package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to a Chipmunk2D body. Body and Shape are filled
// by the physics system when it creates the native objects.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

package component

import "github.com/jakecoffman/cp"

// Velocity is in world units per second.
type Velocity struct {
	Velocity cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

package component

import "github.com/jakecoffman/cp"

// Position is the world-space location of an entity's center.
type Position struct {
	Position cp.Vector
}

var PositionComponent = NewComponent[Position]()

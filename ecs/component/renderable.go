package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// RenderableElement is one textured quad attached to an entity.
type RenderableElement struct {
	Texture *ebiten.Image
	Width   float64
	Height  float64
	// RelativePosition is the offset from the entity position before rotation.
	RelativePosition cp.Vector
	// RelativeAngle is added to the entity angle, in degrees.
	RelativeAngle float64
	// GraphicsOffset is scaled by the entity size and shifts the texture so it
	// lines up with the collision shape.
	GraphicsOffset cp.Vector
	Tint           color.Color
}

type Renderable struct {
	Elements    []RenderableElement
	IsInvisible bool
}

var RenderableComponent = NewComponent[Renderable]()

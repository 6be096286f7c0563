// Package render draws per-entity instructions onto an ebiten screen.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Drawer receives one textured quad per call. Width, height and the shifts
// are in world units; x and y are the world position of the quad's anchor;
// angle is in degrees counter-clockwise.
type Drawer interface {
	Draw(texture *ebiten.Image, width, height, xShift, yShift, x, y, angle float64, tint color.Color)
}

// View maps world coordinates to screen pixels. World Y points up.
type View struct {
	Center        cp.Vector
	Zoom          float64
	PixelsPerUnit float64
	ScreenWidth   float64
	ScreenHeight  float64
}

func (v View) scale() float64 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	ppu := v.PixelsPerUnit
	if ppu <= 0 {
		ppu = 32
	}
	return zoom * ppu
}

// ToScreen converts a world point to screen pixels.
func (v View) ToScreen(p cp.Vector) (float64, float64) {
	s := v.scale()
	return (p.X-v.Center.X)*s + v.ScreenWidth/2, -(p.Y-v.Center.Y)*s + v.ScreenHeight/2
}

// ScreenDrawer draws onto an ebiten image through a View.
type ScreenDrawer struct {
	Target *ebiten.Image
	View   View
	draws  int
}

func NewScreenDrawer(target *ebiten.Image, view View) *ScreenDrawer {
	return &ScreenDrawer{Target: target, View: view}
}

func (d *ScreenDrawer) Draw(texture *ebiten.Image, width, height, xShift, yShift, x, y, angle float64, tint color.Color) {
	if d == nil || d.Target == nil || texture == nil {
		return
	}
	b := texture.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	// texture pixels -> world units, anchored at the shift
	op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	op.GeoM.Translate(-xShift, -yShift)
	// screen Y points down, so the world rotation flips sign
	op.GeoM.Rotate(-angle * math.Pi / 180)
	sx, sy := d.View.ToScreen(cp.Vector{X: x, Y: y})
	s := d.View.scale()
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(sx, sy)
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint)
	}
	op.Filter = ebiten.FilterLinear
	d.Target.DrawImage(texture, op)
	d.draws++
}

// Draws reports how many quads were drawn since the drawer was made.
func (d *ScreenDrawer) Draws() int {
	return d.draws
}

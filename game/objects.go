package game

import (
	"image/color"

	"github.com/milk9111/spacecombat/physics"
	"github.com/milk9111/spacecombat/render"
	"golang.org/x/image/colornames"
)

// DrawObjects renders the non-entity physics objects. They have no
// Renderable, so each one is drawn as a single disc sized to its shape.
func (s *Sim) DrawObjects(d render.Drawer) {
	if d == nil {
		return
	}
	for _, o := range s.Objects.Live() {
		body, shape := o.Body(), o.Shape()
		if body == nil || shape == nil {
			continue
		}
		bb := shape.BB()
		w, h := bb.R-bb.L, bb.T-bb.B
		tex, tint := s.texture("bolt"), objectTint(o)
		if _, ok := o.(*physics.Debris); ok {
			tex = s.texture("rock")
		}
		p := body.Position()
		d.Draw(tex, w, h, w/2, h/2, p.X, p.Y, 0, tint)
	}
}

func objectTint(o physics.Simulated) color.Color {
	switch v := o.(type) {
	case *physics.Projectile:
		if v.Density <= 0 {
			return colornames.Aqua
		}
		return colornames.Orange
	case *physics.Debris:
		return colornames.Dimgray
	}
	return colornames.White
}

package system

import (
	"sort"

	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/render"
)

// RenderingSystem broadcasts event.Render once per drawn frame. Its receiver
// turns every element of a visible Renderable into one draw call.
type RenderingSystem struct {
	drawer render.Drawer
}

func NewRenderingSystem() *RenderingSystem {
	return &RenderingSystem{}
}

func (r *RenderingSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Render]{
		Name:     "render",
		Phase:    ecs.PhaseRender,
		Requires: component.Set(component.RenderableComponent, component.PositionComponent),
		Handle:   r.render,
	})
}

// Draw sends the render event to renderable entities in layer order.
func (r *RenderingSystem) Draw(w *ecs.World, d render.Drawer) {
	if r == nil || w == nil || d == nil {
		return
	}
	r.drawer = d
	defer func() { r.drawer = nil }()

	entities := w.Query(component.RenderableComponent, component.PositionComponent)
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := 0, 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		return li < lj
	})
	for _, e := range entities {
		ecs.Send(w, event.Render{}, e)
	}
}

func (r *RenderingSystem) render(w *ecs.World, e ecs.Entity, _ event.Render) ecs.Result {
	if r.drawer == nil {
		return ecs.Continue
	}
	renderable := ecs.MustGet(w, e, component.RenderableComponent.Kind(), "render")
	if renderable.IsInvisible {
		return ecs.Continue
	}
	base := ecs.MustGet(w, e, component.PositionComponent.Kind(), "render").Position

	baseAngle := 0.0
	if angle, ok := ecs.Get(w, e, component.AngleComponent.Kind()); ok {
		baseAngle = angle.Degrees
	}
	size := 1.0
	if s, ok := ecs.Get(w, e, component.SizeComponent.Kind()); ok {
		size = s.Size
	}

	for _, el := range renderable.Elements {
		angle := el.RelativeAngle + baseAngle
		pos := base.Add(common.Rotate(el.RelativePosition, angle))
		xShift := el.Width/2 + el.GraphicsOffset.X*size
		yShift := el.Height/2 + el.GraphicsOffset.Y*size
		r.drawer.Draw(el.Texture, el.Width, el.Height, xShift, yShift, pos.X, pos.Y, angle, el.Tint)
	}
	return ecs.Continue
}

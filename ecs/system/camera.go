package system

import (
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/render"
)

// CameraSystem eases the camera entity toward the player ship.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = w.First(component.CameraComponent, component.PositionComponent)
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity, _ = w.First(component.PlayerTagComponent, component.PositionComponent)
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camPos, ok := ecs.Get(w, cs.camEntity, component.PositionComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.PositionComponent.Kind())
	if !ok {
		return
	}
	if cs.camEntity == cs.targetEntity {
		return
	}

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	camPos.Position = common.LerpVector(camPos.Position, target.Position, smooth)
}

// View describes what the camera sees on a screen of the given size.
func (cs *CameraSystem) View(w *ecs.World, screenW, screenH int) render.View {
	v := render.View{ScreenWidth: float64(screenW), ScreenHeight: float64(screenH)}
	if cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind()); ok {
		v.Zoom = cam.Zoom
		v.PixelsPerUnit = cam.PixelsPerUnit
	}
	if pos, ok := ecs.Get(w, cs.camEntity, component.PositionComponent.Kind()); ok {
		v.Center = pos.Position
	}
	return v
}

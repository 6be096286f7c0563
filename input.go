package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spacecombat/ecs/system"
)

const stickDeadzone = 0.2

// Input reads the keyboard and the first gamepad.
type Input struct{}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Controls() system.Controls {
	var c system.Controls
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		c.Thrust++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		c.Thrust--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		c.Turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		c.Turn--
	}
	c.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	c.Beam = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return c
		}
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -stickDeadzone || lx > stickDeadzone {
			c.Turn = -lx
		}
		if ly < -stickDeadzone || ly > stickDeadzone {
			c.Thrust = -ly
		}
		c.Fire = c.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		c.Beam = c.Beam || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}
	return c
}

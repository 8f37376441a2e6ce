package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs/component"
)

const stickDeadzone = 0.2

// control maps one player slot to a key cluster and the gamepad with the
// same index.
type control struct {
	slot                  component.PlayerSlot
	up, down, left, right ebiten.Key
	attack                ebiten.Key
	gamepad               int
}

var controls = []control{
	{slot: component.PlayerOne, up: ebiten.KeyW, down: ebiten.KeyS, left: ebiten.KeyA, right: ebiten.KeyD, attack: ebiten.KeySpace, gamepad: 0},
	{slot: component.PlayerTwo, up: ebiten.KeyArrowUp, down: ebiten.KeyArrowDown, left: ebiten.KeyArrowLeft, right: ebiten.KeyArrowRight, attack: ebiten.KeyEnter, gamepad: 1},
}

func (c control) read() component.Input {
	var move common.Vec2
	if ebiten.IsKeyPressed(c.left) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(c.right) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(c.up) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(c.down) {
		move.Y += 1
	}
	attack := inpututil.IsKeyJustPressed(c.attack)

	if gamepads := ebiten.AppendGamepadIDs(nil); c.gamepad < len(gamepads) {
		id := gamepads[c.gamepad]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) > stickDeadzone {
			move = common.Vec2{X: x, Y: y}
		}
		attack = attack ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	return component.Input{Move: move, Attack: attack}
}

package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stealth/ecs/component"
)

const stickDeadzone = 0.2

// deviceInput reads the keyboard and the first gamepad.
type deviceInput struct{}

func (deviceInput) Read() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	var in component.Input
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if left {
		in.MoveX -= 1
	}
	if right {
		in.MoveX += 1
	}
	// screen y grows downward
	if up {
		in.MoveY -= 1
	}
	if down {
		in.MoveY += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = ly
		}
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return in
}

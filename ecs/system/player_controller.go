package system

import (
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
)

const (
	defaultMoveSpeed = 3.5
	defaultJumpSpeed = 9.0
	moveDeadzone     = 0.1
)

// PlayerControllerSystem drives characters in the default movement mode.
// Climbing characters are left to the MagGripSystem.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if clock := clockOf(w); clock != nil && clock.Scale <= 0 {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}

		if stats, ok := ecs.Get(w, e, component.CharacterStatsComponent.Kind()); ok {
			if stats.Master != focus.MasterDefault {
				continue
			}
			if input.MoveX < -moveDeadzone {
				stats.Facing = focus.FacingLeft
			} else if input.MoveX > moveDeadzone {
				stats.Facing = focus.FacingRight
			}
		}

		moveSpeed, jumpSpeed := defaultMoveSpeed, defaultJumpSpeed
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			if player.MoveSpeed > 0 {
				moveSpeed = player.MoveSpeed
			}
			if player.JumpSpeed > 0 {
				jumpSpeed = player.JumpSpeed
			}
		}

		canJump := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			canJump = pc.Grounded || pc.GroundGrace > 0
			if input.JumpPressed && canJump {
				pc.GroundGrace = 0
			}
		}

		vel := bodyComp.Body.Velocity()
		vel.X = input.MoveX * moveSpeed
		if input.JumpPressed && canJump {
			vel.Y = -jumpSpeed
		}

		bodyComp.Body.SetVelocityVector(vel)
		bodyComp.Body.SetAngle(0)
		bodyComp.Body.SetAngularVelocity(0)
	}
}

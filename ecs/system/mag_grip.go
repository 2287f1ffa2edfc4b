package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
	"github.com/milk9111/stealth/logger"
	"go.uber.org/zap"
)

const (
	defaultClimbSpeed = 2.5
	// gripPress keeps the body pushed into the surface so the contact
	// survives the next step.
	gripPress = 0.5
)

// MagGripSystem attaches characters to climbable walls and ceilings and
// moves them along the surface while attached.
type MagGripSystem struct {
	log *zap.Logger
}

func NewMagGripSystem() *MagGripSystem {
	return &MagGripSystem{log: logger.Named("maggrip")}
}

func (m *MagGripSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if clock := clockOf(w); clock != nil && clock.Scale <= 0 {
		return
	}

	entities := w.Query(
		component.MagGripComponent.Kind(),
		component.CharacterStatsComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerCollisionComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		grip, _ := ecs.Get(w, e, component.MagGripComponent.Kind())
		stats, _ := ecs.Get(w, e, component.CharacterStatsComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}

		if stats.Master == focus.MasterDefault {
			m.tryAttach(e, grip, stats, input, pc, bodyComp.Body)
		} else if m.shouldRelease(grip, input, pc) {
			m.release(w, e, grip, stats, input, bodyComp.Body)
			continue
		}
		if stats.Master != focus.MasterClimb {
			continue
		}

		grip.LookingAway = lookingAway(grip, input)
		climb(grip, stats, input, bodyComp.Body)
	}
}

func (m *MagGripSystem) tryAttach(e ecs.Entity, grip *component.MagGrip, stats *component.CharacterStats, input *component.Input, pc *component.PlayerCollision, body *cp.Body) {
	switch {
	case pc.Wall != wallNone && pc.WallClimbable && pressingInto(pc.Wall, input.MoveX):
		grip.Climb = focus.ClimbWall
		grip.Side = pc.Wall
		stats.Facing = focus.FacingRight
		if pc.Wall == wallLeft {
			stats.Facing = focus.FacingLeft
		}
	case pc.Ceiling && pc.CeilingClimbable && input.MoveY < -moveDeadzone:
		grip.Climb = focus.ClimbCeiling
		grip.Side = wallNone
	default:
		return
	}

	stats.Master = focus.MasterClimb
	setGravity(body, false)
	body.SetVelocity(0, 0)
	m.log.Debug("grip attached", zap.Stringer("entity", e), zap.Stringer("climb", grip.Climb))
}

func (m *MagGripSystem) shouldRelease(grip *component.MagGrip, input *component.Input, pc *component.PlayerCollision) bool {
	if input.JumpPressed {
		return true
	}
	switch grip.Climb {
	case focus.ClimbWall:
		return pc.Wall != grip.Side || !pc.WallClimbable
	case focus.ClimbCeiling:
		return !pc.Ceiling || !pc.CeilingClimbable
	}
	return true
}

func (m *MagGripSystem) release(w *ecs.World, e ecs.Entity, grip *component.MagGrip, stats *component.CharacterStats, input *component.Input, body *cp.Body) {
	wasWall := grip.Climb == focus.ClimbWall
	side := grip.Side

	stats.Master = focus.MasterDefault
	grip.Climb = focus.ClimbNone
	grip.LookingAway = false
	grip.Side = wallNone
	setGravity(body, true)

	vel := body.Velocity()
	vel.Y = 0
	if input.JumpPressed && wasWall {
		moveSpeed, jumpSpeed := defaultMoveSpeed, defaultJumpSpeed
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			if player.MoveSpeed > 0 {
				moveSpeed = player.MoveSpeed
			}
			if player.JumpSpeed > 0 {
				jumpSpeed = player.JumpSpeed
			}
		}
		vel.Y = -jumpSpeed
		vel.X = moveSpeed
		stats.Facing = focus.FacingRight
		if side == wallRight {
			vel.X = -moveSpeed
			stats.Facing = focus.FacingLeft
		}
	}
	body.SetVelocityVector(vel)
	m.log.Debug("grip released", zap.Stringer("entity", e), zap.Bool("jump", input.JumpPressed))
}

// lookingAway reports whether the input points off the gripped surface:
// horizontally away from a wall, or down from a ceiling.
func lookingAway(grip *component.MagGrip, input *component.Input) bool {
	switch grip.Climb {
	case focus.ClimbWall:
		if grip.Side == wallLeft {
			return input.MoveX > moveDeadzone
		}
		return input.MoveX < -moveDeadzone
	case focus.ClimbCeiling:
		return input.MoveY > moveDeadzone
	}
	return false
}

func climb(grip *component.MagGrip, stats *component.CharacterStats, input *component.Input, body *cp.Body) {
	speed := grip.ClimbSpeed
	if speed <= 0 {
		speed = defaultClimbSpeed
	}

	var vel cp.Vector
	switch grip.Climb {
	case focus.ClimbWall:
		vel.Y = input.MoveY * speed
		vel.X = gripPress
		if grip.Side == wallLeft {
			vel.X = -gripPress
		}
	case focus.ClimbCeiling:
		vel.X = input.MoveX * speed
		vel.Y = -gripPress
		if input.MoveX < -moveDeadzone {
			stats.Facing = focus.FacingLeft
		} else if input.MoveX > moveDeadzone {
			stats.Facing = focus.FacingRight
		}
	}
	body.SetVelocityVector(vel)
	body.SetAngle(0)
	body.SetAngularVelocity(0)
}

func pressingInto(wall int, moveX float64) bool {
	switch wall {
	case wallLeft:
		return moveX < -moveDeadzone
	case wallRight:
		return moveX > moveDeadzone
	}
	return false
}

func setGravity(body *cp.Body, enabled bool) {
	if enabled {
		body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
	})
}

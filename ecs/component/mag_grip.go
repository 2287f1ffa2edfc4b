package component

import "github.com/milk9111/stealth/focus"

// MagGrip lets a character cling to climbable walls and ceilings.
type MagGrip struct {
	Climb       focus.ClimbState
	LookingAway bool
	// Side of the wall being climbed: 1 = left, 2 = right.
	Side       int
	ClimbSpeed float64
}

var MagGripComponent = NewComponent[MagGrip]()

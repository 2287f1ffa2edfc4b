package focus

// Facing is the horizontal direction a subject is looking.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// MasterState is the subject's top-level behavior mode.
type MasterState int

const (
	MasterDefault MasterState = iota
	MasterClimb
)

func (m MasterState) String() string {
	if m == MasterClimb {
		return "climb"
	}
	return "default"
}

// ClimbState is the sub-mode while climbing.
type ClimbState int

const (
	ClimbNone ClimbState = iota
	ClimbWall
	ClimbCeiling
)

func (c ClimbState) String() string {
	switch c {
	case ClimbWall:
		return "wall"
	case ClimbCeiling:
		return "ceiling"
	default:
		return "none"
	}
}

// Subject is the per-frame snapshot of the tracked character.
// LookingAway is read as-is; how it is derived is up to the caller.
type Subject struct {
	Facing      Facing
	Master      MasterState
	Climb       ClimbState
	LookingAway bool
}

func (s Subject) wallClimbing() bool {
	return s.Master == MasterClimb && s.Climb == ClimbWall
}

func (s Subject) ceilingClimbing() bool {
	return s.Master == MasterClimb && s.Climb == ClimbCeiling
}

// Package focus moves a camera focal point around its subject.
//
// A Controller keeps a normalized slider in [0,1]x[0,1] and eases it toward
// a target picked from the subject's facing and climb state. The slider is
// mapped onto four extreme offsets (left, right, center, below), so the
// output never leaves the rectangle they span.
package focus

import (
	"github.com/milk9111/stealth/common"
)

const (
	DefaultX            = 40
	DefaultY            = 20
	DefaultBelowDrop    = 40
	DefaultFlipDuration = 0.4 // seconds
	DefaultDepth        = -10
)

// Config sets the extreme offsets and transition speed of a Controller.
type Config struct {
	X            float64
	Y            float64
	BelowDrop    float64
	FlipDuration float64
	Depth        float64
}

// DefaultConfig returns the stock focal point tuning.
func DefaultConfig() Config {
	return Config{
		X:            DefaultX,
		Y:            DefaultY,
		BelowDrop:    DefaultBelowDrop,
		FlipDuration: DefaultFlipDuration,
		Depth:        DefaultDepth,
	}
}

// Controller owns the focal point state of one subject.
type Controller struct {
	center common.Vec3
	right  common.Vec3
	left   common.Vec3
	below  common.Vec3

	slider    common.Vec2
	following bool

	flipDuration float64
	depth        float64

	offset common.Vec3
}

// NewController builds a controller that starts fully right and centered,
// following its subject.
func NewController(cfg Config) *Controller {
	if cfg.FlipDuration <= 0 {
		cfg.FlipDuration = DefaultFlipDuration
	}
	c := &Controller{
		center:       common.Vec3{X: 0, Y: cfg.Y, Z: cfg.Depth},
		below:        common.Vec3{X: 0, Y: cfg.Y - cfg.BelowDrop, Z: cfg.Depth},
		slider:       common.Vec2{X: 1, Y: 1},
		following:    true,
		flipDuration: cfg.FlipDuration,
		depth:        cfg.Depth,
	}
	c.setSides(cfg.X, cfg.Y)
	c.offset = c.project()
	return c
}

// Update advances the slider by one frame and returns the new local offset.
// dtScaled is the frame time already multiplied by the time scale.
// While not following, the previous offset is returned unchanged.
func (c *Controller) Update(dtScaled float64, s Subject) common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	if !c.following {
		return c.offset
	}
	if dtScaled < 0 {
		dtScaled = 0
	}
	step := dtScaled / c.flipDuration

	c.slider.X = common.Clamp01(c.slider.X + c.xIncrement(step, s))
	c.slider.Y = common.Clamp01(c.slider.Y + yIncrement(step, s))

	c.offset = c.project()
	return c.offset
}

func (c *Controller) xIncrement(step float64, s Subject) float64 {
	switch {
	case (s.Master == MasterDefault && s.Facing == FacingRight) ||
		(s.wallClimbing() && s.Facing == FacingLeft && s.LookingAway):
		return step
	case (s.Master == MasterDefault && s.Facing == FacingLeft) ||
		(s.wallClimbing() && s.Facing == FacingRight && s.LookingAway):
		return -step
	case (s.wallClimbing() && !s.LookingAway) || s.ceilingClimbing():
		// settle on the midpoint without overshooting it
		delta := 0.5 - c.slider.X
		inc := step
		if delta < 0 {
			inc = -inc
		}
		if abs(delta) < abs(inc) {
			inc = delta
		}
		return inc
	}
	return 0
}

func yIncrement(step float64, s Subject) float64 {
	if s.ceilingClimbing() && s.LookingAway {
		return -step
	}
	return step
}

func (c *Controller) project() common.Vec3 {
	return common.Vec3{
		X: common.Lerp(c.left.X, c.right.X, c.slider.X),
		Y: common.Lerp(c.below.Y, c.center.Y, c.slider.Y),
		Z: c.depth,
	}
}

// StopFollowing freezes the slider and offset at their current values.
func (c *Controller) StopFollowing() {
	if c == nil {
		return
	}
	c.following = false
}

// StartFollowing resumes updates from the frozen slider.
func (c *Controller) StartFollowing() {
	if c == nil {
		return
	}
	c.following = true
}

// Reconfigure moves the left/right extremes to (-x, y) and (x, y).
// The center and below extremes keep their construction values.
func (c *Controller) Reconfigure(x, y int) {
	if c == nil {
		return
	}
	c.setSides(float64(x), float64(y))
}

func (c *Controller) setSides(x, y float64) {
	c.right = common.Vec3{X: x, Y: y, Z: c.depth}
	c.left = common.Vec3{X: -x, Y: y, Z: c.depth}
}

func (c *Controller) Following() bool {
	return c != nil && c.following
}

func (c *Controller) Slider() common.Vec2 {
	if c == nil {
		return common.Vec2{}
	}
	return c.slider
}

// Offset returns the last emitted local offset.
func (c *Controller) Offset() common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	return c.offset
}

// Extremes returns the left, right, center and below offsets in that order.
func (c *Controller) Extremes() (left, right, center, below common.Vec3) {
	return c.left, c.right, c.center, c.below
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

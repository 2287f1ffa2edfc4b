package system

import (
	"testing"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/ecs/entity"
	"github.com/milk9111/stealth/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type focusRig struct {
	w       *ecs.World
	subject ecs.Entity
	focal   ecs.Entity
	stats   *component.CharacterStats
	grip    *component.MagGrip
	clock   *component.Clock
}

func newFocusRig(t *testing.T) *focusRig {
	t.Helper()
	w := ecs.NewWorld()
	r := &focusRig{
		w:     w,
		stats: &component.CharacterStats{},
		grip:  &component.MagGrip{},
		clock: &component.Clock{Delta: 0.1, Scale: 1},
	}
	r.subject = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, r.subject, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 200}))
	require.NoError(t, ecs.Add(w, r.subject, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 20, Height: 40}))
	require.NoError(t, ecs.Add(w, r.subject, component.CharacterStatsComponent.Kind(), r.stats))
	require.NoError(t, ecs.Add(w, r.subject, component.MagGripComponent.Kind(), r.grip))

	clock := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, clock, component.ClockComponent.Kind(), r.clock))

	focal, err := entity.NewFocalPointFromConfig(w, r.subject, "", focus.DefaultConfig())
	require.NoError(t, err)
	r.focal = focal
	return r
}

func (r *focusRig) parent(t *testing.T) *component.Parent {
	t.Helper()
	p, ok := ecs.Get(r.w, r.focal, component.ParentComponent.Kind())
	require.True(t, ok)
	return p
}

func TestFocalPointSystemFollowsFacing(t *testing.T) {
	r := newFocusRig(t)
	r.stats.Facing = focus.FacingLeft

	NewFocalPointSystem().Update(r.w)

	// slider x: 1 - 0.1/0.4 = 0.75 -> lerp(-40, 40, 0.75) = 20
	p := r.parent(t)
	assert.InDelta(t, 20, p.LocalX, 1e-9)
	assert.InDelta(t, -20, p.LocalY, 1e-9)
	assert.InDelta(t, focus.DefaultDepth, p.LocalZ, 1e-9)
	assert.Equal(t, uint64(r.subject), p.Entity)
}

func TestFocalPointSystemCeilingLookAwayDropsBelow(t *testing.T) {
	r := newFocusRig(t)
	r.stats.Master = focus.MasterClimb
	r.grip.Climb = focus.ClimbCeiling
	r.grip.LookingAway = true

	NewFocalPointSystem().Update(r.w)

	// slider y: 1 - 0.25 = 0.75 -> lerp(-20, 20, 0.75) = 10, flipped
	p := r.parent(t)
	assert.InDelta(t, -10, p.LocalY, 1e-9)
	// slider x: 1 -> 0.75 toward the midpoint -> 20
	assert.InDelta(t, 20, p.LocalX, 1e-9)
}

func TestFocalPointSystemIgnoresClimbStateOutsideClimbMode(t *testing.T) {
	r := newFocusRig(t)
	r.grip.Climb = focus.ClimbCeiling
	r.grip.LookingAway = true

	s := SubjectOf(r.w, r.subject)
	assert.Equal(t, focus.MasterDefault, s.Master)
	assert.Equal(t, focus.ClimbNone, s.Climb)
	assert.False(t, s.LookingAway)
}

func TestFocalPointSystemTimeScale(t *testing.T) {
	r := newFocusRig(t)
	r.stats.Facing = focus.FacingLeft
	r.clock.Scale = 0

	NewFocalPointSystem().Update(r.w)
	assert.InDelta(t, 40, r.parent(t).LocalX, 1e-9)

	r.clock.Scale = 0.5
	NewFocalPointSystem().Update(r.w)
	// 0.05/0.4 = 0.125 -> slider 0.875 -> 30
	assert.InDelta(t, 30, r.parent(t).LocalX, 1e-9)
}

func TestHierarchyPlacesFocalPoint(t *testing.T) {
	r := newFocusRig(t)
	r.stats.Facing = focus.FacingLeft

	NewFocalPointSystem().Update(r.w)
	NewHierarchySystem().Update(r.w)

	transform, ok := ecs.Get(r.w, r.focal, component.TransformComponent.Kind())
	require.True(t, ok)
	// subject pivot is its body center (110, 220)
	assert.InDelta(t, 130, transform.X, 1e-9)
	assert.InDelta(t, 200, transform.Y, 1e-9)
	assert.InDelta(t, focus.DefaultDepth, transform.Depth, 1e-9)
}

func TestHierarchySkipsDeadParent(t *testing.T) {
	r := newFocusRig(t)
	require.True(t, r.w.DestroyEntity(r.subject))

	NewHierarchySystem().Update(r.w)
	transform, _ := ecs.Get(r.w, r.focal, component.TransformComponent.Kind())
	assert.Zero(t, transform.X)
	assert.Zero(t, transform.Y)
}

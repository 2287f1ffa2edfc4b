package system

import (
	"testing"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockSystem(t *testing.T) {
	w := ecs.NewWorld()
	paused := false
	cs := NewClockSystem(60, func() bool { return paused })

	cs.Update(w)
	e, ok := w.First(component.ClockComponent.Kind())
	require.True(t, ok)
	clock, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	assert.InDelta(t, 1.0/60, clock.Delta, 1e-12)
	assert.Equal(t, 1.0, clock.Scale)
	assert.Equal(t, 1, clock.Frames)

	cs.SetScale(0.5)
	cs.Update(w)
	assert.InDelta(t, 0.5/60, clock.Scaled(), 1e-12)

	paused = true
	cs.Update(w)
	assert.Zero(t, clock.Scale)
	assert.Zero(t, clock.Scaled())
	assert.Equal(t, 2, clock.Frames)

	// unpausing restores the dilation set before the pause
	paused = false
	cs.Update(w)
	assert.Equal(t, 0.5, clock.Scale)
}

func TestClockSystemRejectsNegativeScale(t *testing.T) {
	cs := NewClockSystem(0, nil)
	cs.SetScale(-1)
	assert.Zero(t, cs.Scale())
	assert.InDelta(t, 1.0/60, cs.delta, 1e-12)
}

func TestClockScaledNil(t *testing.T) {
	var c *component.Clock
	assert.Zero(t, c.Scaled())
}

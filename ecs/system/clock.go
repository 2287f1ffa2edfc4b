package system

import (
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

// ClockSystem advances the world clock. It runs first so every later system
// sees the same scaled delta for the frame.
type ClockSystem struct {
	delta  float64
	paused func() bool
	scale  float64
}

// NewClockSystem ticks at 1/tps seconds per frame. paused may be nil.
func NewClockSystem(tps int, paused func() bool) *ClockSystem {
	if tps <= 0 {
		tps = 60
	}
	return &ClockSystem{delta: 1.0 / float64(tps), paused: paused, scale: 1}
}

// SetScale sets the time dilation applied while the game is not paused.
func (c *ClockSystem) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

func (c *ClockSystem) Scale() float64 {
	return c.scale
}

func (c *ClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(component.ClockComponent.Kind())
	if !ok {
		e = w.CreateEntity()
		if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
			panic("clock system: add clock: " + err.Error())
		}
	}
	clock, _ := ecs.Get(w, e, component.ClockComponent.Kind())

	clock.Delta = c.delta
	clock.Scale = c.scale
	if c.paused != nil && c.paused() {
		clock.Scale = 0
	}
	if clock.Scale > 0 {
		clock.Frames++
	}
}

package component

// Clock is the world's frame timing singleton. Delta is real seconds per
// frame and Scale dilates it; scaled time is Delta*Scale.
type Clock struct {
	Delta  float64
	Scale  float64
	Frames int
}

func (c *Clock) Scaled() float64 {
	if c == nil {
		return 0
	}
	return c.Delta * c.Scale
}

var ClockComponent = NewComponent[Clock]()

package component

type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	// Depth orders drawing; it does not affect physics.
	Depth float64
}

var TransformComponent = NewComponent[Transform]()

// Parent pins an entity to another entity's transform at a local offset.
// The hierarchy system derives the child's Transform from it every frame.
type Parent struct {
	Entity uint64
	LocalX float64
	LocalY float64
	LocalZ float64
}

var ParentComponent = NewComponent[Parent]()

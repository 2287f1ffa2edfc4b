package component

type Camera struct {
	TargetName string
	// Target is resolved from TargetName on first use (ecs.Entity is uint64).
	Target     uint64
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()

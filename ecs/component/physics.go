package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool
	// NoGravity bodies integrate velocity without world gravity.
	NoGravity bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

package component

import "github.com/milk9111/stealth/focus"

// FocalPoint drives a camera focus entity from the state of its subject.
// Subject is set explicitly when the entity is built (ecs.Entity is uint64).
type FocalPoint struct {
	Controller *focus.Controller
	Subject    uint64
}

var FocalPointComponent = NewComponent[FocalPoint]()

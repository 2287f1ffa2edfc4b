package system

import (
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
)

// FocalPointSystem feeds each focal point its subject's state and pins the
// resulting offset onto the focal entity's Parent link.
type FocalPointSystem struct{}

func NewFocalPointSystem() *FocalPointSystem {
	return &FocalPointSystem{}
}

func (f *FocalPointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := 0.0
	if clock := clockOf(w); clock != nil {
		dt = clock.Scaled()
	}

	ecs.ForEach2(w, component.FocalPointComponent.Kind(), component.ParentComponent.Kind(), func(e ecs.Entity, fp *component.FocalPoint, parent *component.Parent) {
		if fp.Controller == nil {
			return
		}
		subject := ecs.Entity(fp.Subject)
		if !w.IsAlive(subject) {
			return
		}

		offset := fp.Controller.Update(dt, SubjectOf(w, subject))

		// Focus offsets are y-up, the screen is y-down.
		parent.Entity = fp.Subject
		parent.LocalX = offset.X
		parent.LocalY = -offset.Y
		parent.LocalZ = offset.Z
	})
}

// SubjectOf snapshots the focus-relevant state of a character.
func SubjectOf(w *ecs.World, e ecs.Entity) focus.Subject {
	var s focus.Subject
	if stats, ok := ecs.Get(w, e, component.CharacterStatsComponent.Kind()); ok {
		s.Facing = stats.Facing
		s.Master = stats.Master
	}
	if s.Master != focus.MasterClimb {
		return s
	}
	if grip, ok := ecs.Get(w, e, component.MagGripComponent.Kind()); ok {
		s.Climb = grip.Climb
		s.LookingAway = grip.LookingAway
	}
	return s
}

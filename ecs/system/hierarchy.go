package system

import (
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

// HierarchySystem places children at their local offset from the parent's
// pivot. Bodies pivot on their center, everything else on its position.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem {
	return &HierarchySystem{}
}

func (h *HierarchySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ParentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, parent *component.Parent, transform *component.Transform) {
		pe := ecs.Entity(parent.Entity)
		if pe == e || !w.IsAlive(pe) {
			return
		}
		px, py, ok := Pivot(w, pe)
		if !ok {
			return
		}
		transform.X = px + parent.LocalX
		transform.Y = py + parent.LocalY
		transform.Depth = parent.LocalZ
	})
}

// Pivot returns the world point children of e are positioned from.
func Pivot(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	x, y := transform.X, transform.Y
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		x += body.Width / 2
		y += body.Height / 2
	}
	return x, y, true
}

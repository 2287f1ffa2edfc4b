package system

import (
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

// CameraSystem eases the camera toward its target. The camera transform is
// the top-left corner of the view in world space.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	snapped      bool
	viewW        float64
	viewH        float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{viewW: common.BaseWidth, viewH: common.BaseHeight}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
		cs.snapped = false
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		target := findEntityByNameOrTag(w, camComp.TargetName)
		if !target.Valid() {
			return
		}
		cs.targetEntity = target
		camComp.Target = uint64(target)
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := cs.viewW/zoom, cs.viewH/zoom

	goalX := targetTransform.X - viewW/2
	goalY := targetTransform.Y - viewH/2
	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		bounds, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
		goalX = clampView(goalX, viewW, bounds.Width)
		goalY = clampView(goalY, viewH, bounds.Height)
	}

	t := 1.0
	if cs.snapped && camComp.Smoothness > 0 {
		t = common.Clamp01(camComp.Smoothness)
	}
	camTransform.X = common.Lerp(camTransform.X, goalX, t)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, t)
	cs.snapped = true
}

func clampView(pos, view, world float64) float64 {
	if world <= view {
		return (world - view) / 2
	}
	return common.Clamp(pos, 0, world-view)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "player":
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	case "focal_point":
		if e, ok := w.First(component.FocalPointTagComponent.Kind()); ok {
			return e
		}
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found
}

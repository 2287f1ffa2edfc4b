package entity

import (
	"fmt"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
	"github.com/milk9111/stealth/prefabs"
)

// NewFocalPoint builds the camera focal point for subject. The focal point
// rides on the subject through a Parent link whose offset the controller
// owns.
func NewFocalPoint(w *ecs.World, subject ecs.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadFocalPointSpec()
	if err != nil {
		return 0, fmt.Errorf("focal point: load spec: %w", err)
	}
	return NewFocalPointFromConfig(w, subject, spec.Name, spec.Config())
}

func NewFocalPointFromConfig(w *ecs.World, subject ecs.Entity, name string, cfg focus.Config) (ecs.Entity, error) {
	if !w.IsAlive(subject) {
		return 0, fmt.Errorf("focal point: subject %s: %w", subject, component.ErrEntityNotAlive)
	}
	if name == "" {
		name = "focal_point"
	}

	controller := focus.NewController(cfg)
	offset := controller.Offset()

	fp := ecs.CreateEntity(w)
	if err := ecs.Add(w, fp, component.FocalPointTagComponent.Kind(), &component.FocalPointTag{}); err != nil {
		return 0, fmt.Errorf("focal point: add tag: %w", err)
	}
	if err := ecs.Add(w, fp, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("focal point: add name: %w", err)
	}
	if err := ecs.Add(w, fp, component.FocalPointComponent.Kind(), &component.FocalPoint{
		Controller: controller,
		Subject:    uint64(subject),
	}); err != nil {
		return 0, fmt.Errorf("focal point: add focal point: %w", err)
	}
	if err := ecs.Add(w, fp, component.ParentComponent.Kind(), &component.Parent{
		Entity: uint64(subject),
		LocalX: offset.X,
		LocalY: -offset.Y,
		LocalZ: offset.Z,
	}); err != nil {
		return 0, fmt.Errorf("focal point: add parent: %w", err)
	}
	if err := ecs.Add(w, fp, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1, Depth: offset.Z}); err != nil {
		return 0, fmt.Errorf("focal point: add transform: %w", err)
	}
	return fp, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/prefabs"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transformFromSpec(cameraSpec.Transform)); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	target := cameraSpec.Target
	if target == "" {
		target = "focal_point"
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: target,
		Zoom:       cameraSpec.Zoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
	"github.com/milk9111/stealth/prefabs"
)

const playerRenderLayer = 10

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	layer := spec.Collider.Layer
	if layer == collider.LayerNone {
		layer = collider.LayerCharacterObjects
	}
	name := spec.Name
	if name == "" {
		name = "player"
	}

	player := ecs.CreateEntity(w)
	steps := []struct {
		what string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"name", func() error {
			return ecs.Add(w, player, component.NameComponent.Kind(), &component.Name{Value: name})
		}},
		{"player", func() error {
			return ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
				MoveSpeed:    spec.MoveSpeed,
				JumpSpeed:    spec.JumpSpeed,
				CoyoteFrames: spec.CoyoteFrames,
			})
		}},
		{"transform", func() error {
			return ecs.Add(w, player, component.TransformComponent.Kind(), transformFromSpec(spec.Transform))
		}},
		{"input", func() error {
			return ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})
		}},
		{"character stats", func() error {
			return ecs.Add(w, player, component.CharacterStatsComponent.Kind(), &component.CharacterStats{
				Facing: focus.FacingRight,
				Master: focus.MasterDefault,
			})
		}},
		{"mag grip", func() error {
			return ecs.Add(w, player, component.MagGripComponent.Kind(), &component.MagGrip{ClimbSpeed: spec.ClimbSpeed})
		}},
		{"player collision", func() error {
			return ecs.Add(w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
		}},
		{"physics body", func() error {
			return ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:    spec.Collider.Width,
				Height:   spec.Collider.Height,
				Mass:     spec.Collider.Mass,
				Friction: spec.Collider.Friction,
			})
		}},
		{"collision layer", func() error {
			return ecs.Add(w, player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: layer})
		}},
		{"render layer", func() error {
			return ecs.Add(w, player, component.RenderLayerComponent.Kind(), &component.RenderLayer{
				Index: playerRenderLayer,
				Color: color.RGBA{R: spec.Color.R, G: spec.Color.G, B: spec.Color.B, A: spec.Color.A},
			})
		}},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			return 0, fmt.Errorf("player: add %s: %w", step.what, err)
		}
	}
	return player, nil
}

func transformFromSpec(t prefabs.TransformSpec) *component.Transform {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return &component.Transform{
		X:        t.X,
		Y:        t.Y,
		ScaleX:   sx,
		ScaleY:   sy,
		Rotation: t.Rotation,
	}
}

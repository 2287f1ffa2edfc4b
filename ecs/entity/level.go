package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/levels"
	"golang.org/x/image/colornames"
)

const (
	solidRenderLayer = 0
	enemyRenderLayer = 5
)

var surfaceColors = map[collider.Surface]color.RGBA{
	collider.SurfaceDefault: colornames.Dimgray,
	collider.SurfaceMetal:   colornames.Slategray,
	collider.SurfaceGlass:   colornames.Lightblue,
	collider.SurfaceVent:    colornames.Darkolivegreen,
}

// LoadLevelToWorld creates the bounds, geometry, enemies and camera cues of lvl.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width),
		Height: float64(lvl.Height),
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for i, solid := range lvl.Solids {
		if _, err := NewSolid(w, solid); err != nil {
			return fmt.Errorf("level: solid %d: %w", i, err)
		}
	}
	for i, box := range lvl.Enemies {
		if _, err := NewEnemy(w, box); err != nil {
			return fmt.Errorf("level: enemy %d: %w", i, err)
		}
	}
	for i, cue := range lvl.Cues {
		if _, err := NewCameraCue(w, cue); err != nil {
			return fmt.Errorf("level: cue %d: %w", i, err)
		}
	}
	return nil
}

func NewSolid(w *ecs.World, solid levels.Solid) (ecs.Entity, error) {
	layer := solid.Layer
	if layer == collider.LayerNone {
		layer = collider.LayerGeometry
	}
	e := ecs.CreateEntity(w)
	if err := addBox(w, e, solid.Box, &component.PhysicsBody{Static: true, Friction: 0.8}, layer); err != nil {
		return 0, err
	}

	tint := surfaceColors[collider.SurfaceDefault]
	if solid.Tile != nil {
		tile := *solid.Tile
		if err := ecs.Add(w, e, component.TileDataComponent.Kind(), &component.TileData{Data: &tile}); err != nil {
			return 0, fmt.Errorf("add tile data: %w", err)
		}
		if c, ok := surfaceColors[tile.Surface]; ok {
			tint = c
		}
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: solidRenderLayer, Color: tint}); err != nil {
		return 0, fmt.Errorf("add render layer: %w", err)
	}
	return e, nil
}

func NewEnemy(w *ecs.World, box levels.Box) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("add enemy tag: %w", err)
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: "enemy"}); err != nil {
		return 0, fmt.Errorf("add name: %w", err)
	}
	if err := addBox(w, e, box, &component.PhysicsBody{Mass: 4, Friction: 0.8}, collider.LayerEnemy); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: enemyRenderLayer, Color: colornames.Crimson}); err != nil {
		return 0, fmt.Errorf("add render layer: %w", err)
	}
	return e, nil
}

// NewCameraCue builds an invisible trigger that runs cue.Script when a
// character walks through it.
func NewCameraCue(w *ecs.World, cue levels.Cue) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: cue.Name}); err != nil {
		return 0, fmt.Errorf("add name: %w", err)
	}
	if err := addBox(w, e, cue.Box, &component.PhysicsBody{Static: true, Sensor: true}, collider.LayerTrigger); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.CameraCueComponent.Kind(), &component.CameraCue{Name: cue.Name, Script: cue.Script}); err != nil {
		return 0, fmt.Errorf("add camera cue: %w", err)
	}
	return e, nil
}

func addBox(w *ecs.World, e ecs.Entity, box levels.Box, body *component.PhysicsBody, layer collider.Layer) error {
	if box.W <= 0 || box.H <= 0 {
		return fmt.Errorf("empty box %dx%d", box.W, box.H)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      float64(box.X),
		Y:      float64(box.Y),
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	body.Width = float64(box.W)
	body.Height = float64(box.H)
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Layer: layer}); err != nil {
		return fmt.Errorf("add collision layer: %w", err)
	}
	return nil
}

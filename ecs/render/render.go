// Package render draws the world with flat boxes and debug overlays.
package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"golang.org/x/image/colornames"
)

const defaultBoxSize = 8

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)

	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	camX, camY, zoom := cameraTransform(w, r.camEntity)

	entities := w.Query(component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind())
		if li.Index != lj.Index {
			return li.Index < lj.Index
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	img := pixel()
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())

		bw, bh := float64(defaultBoxSize), float64(defaultBoxSize)
		offX, offY := -bw/2, -bh/2
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Width > 0 && body.Height > 0 {
			bw, bh = body.Width, body.Height
			offX, offY = 0, 0
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(bw*sx, bh*sy)
		op.GeoM.Translate(offX, offY)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)
		op.ColorScale.ScaleWithColor(layer.Color)
		screen.DrawImage(img, op)
	}
}

func cameraTransform(w *ecs.World, camEntity ecs.Entity) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	if !w.IsAlive(camEntity) {
		e, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return camX, camY, zoom
		}
		camEntity = e
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}

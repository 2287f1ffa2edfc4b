package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/ecs/system"
	"golang.org/x/image/colornames"
)

const (
	sliderPanelSize = 80
	sliderPanelPad  = 12
)

// DrawFocusDebug draws the focal point's extremes around its subject and a
// panel with the normalized slider.
func DrawFocusDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	e, ok := w.First(component.FocalPointComponent.Kind())
	if !ok {
		return
	}
	fp, _ := ecs.Get(w, e, component.FocalPointComponent.Kind())
	if fp.Controller == nil {
		return
	}
	camX, camY, zoom := cameraTransform(w, 0)

	parent, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if ok {
		if px, py, ok := system.Pivot(w, ecs.Entity(parent.Entity)); ok {
			left, right, center, below := fp.Controller.Extremes()
			for _, p := range []common.Vec3{left, right, center, below} {
				// extremes are y-up
				x := (px + p.X - camX) * zoom
				y := (py - p.Y - camY) * zoom
				vector.StrokeRect(screen, float32(x-3), float32(y-3), 6, 6, 1, colornames.Orange, false)
			}
			// the rectangle spanned by the extremes
			x0 := (px + left.X - camX) * zoom
			x1 := (px + right.X - camX) * zoom
			y0 := (py - center.Y - camY) * zoom
			y1 := (py - below.Y - camY) * zoom
			vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, colornames.Darkorange, false)
		}
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x := (t.X - camX) * zoom
		y := (t.Y - camY) * zoom
		vector.StrokeLine(screen, float32(x-6), float32(y), float32(x+6), float32(y), 2, colornames.Yellow, false)
		vector.StrokeLine(screen, float32(x), float32(y-6), float32(x), float32(y+6), 2, colornames.Yellow, false)
	}

	sw := screen.Bounds().Dx()
	panelX := float32(sw - sliderPanelSize - sliderPanelPad)
	panelY := float32(sliderPanelPad)
	vector.FillRect(screen, panelX, panelY, sliderPanelSize, sliderPanelSize, colornames.Black, false)
	vector.StrokeRect(screen, panelX, panelY, sliderPanelSize, sliderPanelSize, 1, colornames.White, false)

	// slider y=1 is the top of the panel
	slider := fp.Controller.Slider()
	dotX := panelX + float32(slider.X)*sliderPanelSize
	dotY := panelY + float32(1-slider.Y)*sliderPanelSize
	vector.FillRect(screen, dotX-3, dotY-3, 6, 6, colornames.Yellow, false)

	follow := "following"
	if !fp.Controller.Following() {
		follow = "frozen"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("slider %.2f,%.2f\n%s", slider.X, slider.Y, follow), int(panelX), int(panelY)+sliderPanelSize+4)
}

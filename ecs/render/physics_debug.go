package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	playerShapeColor   = cp.FColor{R: 0.2, G: 1, B: 0.3, A: 0.9}
	geometryShapeColor = cp.FColor{R: 0.7, G: 0.7, B: 0.75, A: 0.9}
	enemyShapeColor    = cp.FColor{R: 1, G: 0.25, B: 0.25, A: 0.9}
	triggerShapeColor  = cp.FColor{R: 1, G: 0.85, B: 0.2, A: 0.6}
	otherShapeColor    = cp.FColor{R: 0.4, G: 0.5, B: 1, A: 0.7}
)

// DrawPhysicsDebug outlines every shape in space, coloured by what the
// shape's owner is classified as.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := cameraTransform(w, 0)
	drawer := &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
	}
	cp.DrawSpace(space, drawer)
}

// DrawPlayerStateDebug prints the player's contact and climb state.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	master, climb, facing := "default", "none", "right"
	if stats, ok := ecs.Get(w, player, component.CharacterStatsComponent.Kind()); ok {
		master = stats.Master.String()
		facing = stats.Facing.String()
	}
	lookingAway := false
	if grip, ok := ecs.Get(w, player, component.MagGripComponent.Kind()); ok {
		climb = grip.Climb.String()
		lookingAway = grip.LookingAway
	}
	grounded, enemy := false, false
	wall := 0
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded || pc.GroundGrace > 0
		wall = pc.Wall
		enemy = pc.Enemy
	}
	text := fmt.Sprintf("Mode: %s\nClimb: %s\nFacing: %s\nLooking away: %v\nGrounded: %v\nWall: %d\nEnemy contact: %v",
		master, climb, facing, lookingAway, grounded, wall, enemy)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, fill)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, fill)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
	if radius > 0 {
		d.drawCircle(a, radius, fill)
		d.drawCircle(b, radius, fill)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return ShapeColor(shape)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

// ShapeColor picks the debug colour of a shape from its classification.
func ShapeColor(shape *cp.Shape) cp.FColor {
	switch {
	case collider.IsPlayer(shape):
		return playerShapeColor
	case collider.IsGeometry(shape):
		return geometryShapeColor
	case collider.IsEnemy(shape):
		return enemyShapeColor
	case collider.LayerOf(shape) == collider.LayerTrigger:
		return triggerShapeColor
	}
	return otherShapeColor
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

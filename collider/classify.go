// Package collider classifies physics shapes by the gameplay object that
// owns them.
package collider

import "github.com/jakecoffman/cp"

// Object is the gameplay object a shape belongs to. It is stored in the
// shape's UserData when the shape is built.
type Object struct {
	Name  string
	Layer Layer
	Tile  *TileData
	// Ref is the owning entity, opaque to this package.
	Ref any
}

// Attach tags shape with its owner and applies the owner's layer filter.
func Attach(shape *cp.Shape, obj *Object) {
	if shape == nil || obj == nil {
		return
	}
	shape.UserData = obj
	shape.SetFilter(obj.Layer.Filter())
}

// Owner returns the object attached to shape, if any.
func Owner(shape *cp.Shape) (*Object, bool) {
	if shape == nil {
		return nil, false
	}
	obj, ok := shape.UserData.(*Object)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// LayerOf returns the layer of the shape's owner, or LayerNone.
func LayerOf(shape *cp.Shape) Layer {
	obj, ok := Owner(shape)
	if !ok {
		return LayerNone
	}
	return obj.Layer
}

// IsPlayer reports whether shape is on the character objects layer.
func IsPlayer(shape *cp.Shape) bool {
	return LayerOf(shape) == LayerCharacterObjects
}

// IsGeometry reports whether shape is level geometry.
func IsGeometry(shape *cp.Shape) bool {
	return LayerOf(shape) == LayerGeometry
}

// IsEnemy reports whether shape belongs to an enemy.
func IsEnemy(shape *cp.Shape) bool {
	return LayerOf(shape) == LayerEnemy
}

// TileMetadata returns the tile data attached to the shape's owner.
func TileMetadata(shape *cp.Shape) (*TileData, bool) {
	obj, ok := Owner(shape)
	if !ok || obj.Tile == nil {
		return nil, false
	}
	return obj.Tile, true
}

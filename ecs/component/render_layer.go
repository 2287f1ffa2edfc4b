package component

import "image/color"

// RenderLayer sorts draw order deterministically and tints the entity.
type RenderLayer struct {
	Index int
	Color color.RGBA
}

var RenderLayerComponent = NewComponent[RenderLayer]()

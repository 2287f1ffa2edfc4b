package component

import "github.com/milk9111/stealth/collider"

// TileData attaches tile metadata to a tile-bound entity.
type TileData struct {
	Data *collider.TileData
}

var TileDataComponent = NewComponent[TileData]()

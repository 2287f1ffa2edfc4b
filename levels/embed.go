package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/milk9111/stealth/collider"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultLevel = "warehouse.json"

type Level struct {
	Name    string  `json:"name"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Solids  []Solid `json:"solids"`
	Enemies []Box   `json:"enemies,omitempty"`
	Cues    []Cue   `json:"cues,omitempty"`
}

// Box is an axis-aligned rectangle in world pixels, top-left anchored.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Solid is a piece of level geometry, optionally carrying tile metadata.
type Solid struct {
	Box
	Layer collider.Layer     `json:"layer"`
	Tile  *collider.TileData `json:"tile,omitempty"`
}

// Cue is a trigger area that runs a camera script.
type Cue struct {
	Box
	Name   string `json:"name"`
	Script string `json:"script"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i := range lvl.Solids {
		if lvl.Solids[i].Layer == collider.LayerNone {
			lvl.Solids[i].Layer = collider.LayerGeometry
		}
	}
	return &lvl, nil
}

package collider

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Surface is the material of a level tile.
type Surface uint8

const (
	SurfaceDefault Surface = iota
	SurfaceMetal
	SurfaceGlass
	SurfaceVent
)

var surfaceNames = map[Surface]string{
	SurfaceDefault: "default",
	SurfaceMetal:   "metal",
	SurfaceGlass:   "glass",
	SurfaceVent:    "vent",
}

func (s Surface) String() string {
	return surfaceNames[s]
}

func ParseSurface(name string) (Surface, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	if clean == "" {
		return SurfaceDefault, nil
	}
	for s, n := range surfaceNames {
		if n == clean {
			return s, nil
		}
	}
	return SurfaceDefault, fmt.Errorf("collider: unknown surface %q", name)
}

func (s *Surface) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSurface(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Surface) UnmarshalText(text []byte) error {
	parsed, err := ParseSurface(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TileData is the per-tile record attached to a tile-bound object.
type TileData struct {
	Surface Surface `yaml:"surface" json:"surface"`
	// Climbable surfaces can be gripped by the MagGrip.
	Climbable bool `yaml:"climbable" json:"climbable"`
}

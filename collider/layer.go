package collider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

var ErrUnknownLayer = errors.New("collider: unknown layer")

// Layer is the gameplay category of a collider. It is resolved from its
// configured name once, when the collider is created.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerDefault
	LayerCharacterObjects
	LayerGeometry
	LayerEnemy
	LayerTrigger
)

var layerNames = map[Layer]string{
	LayerDefault:          "default",
	LayerCharacterObjects: "character objects",
	LayerGeometry:         "geometry",
	LayerEnemy:            "enemy",
	LayerTrigger:          "trigger",
}

// collides lists, per layer, which layers it makes contact with.
var collides = map[Layer][]Layer{
	LayerDefault:          {LayerDefault, LayerGeometry},
	LayerCharacterObjects: {LayerGeometry, LayerEnemy, LayerTrigger},
	LayerGeometry:         {LayerDefault, LayerCharacterObjects, LayerEnemy},
	LayerEnemy:            {LayerCharacterObjects, LayerGeometry},
	LayerTrigger:          {LayerCharacterObjects},
}

// ParseLayer resolves a layer by its registered name.
func ParseLayer(name string) (Layer, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for l, n := range layerNames {
		if n == clean {
			return l, nil
		}
	}
	return LayerNone, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

func (l Layer) String() string {
	if n, ok := layerNames[l]; ok {
		return n
	}
	return "none"
}

// Category is the single physics category bit of the layer.
func (l Layer) Category() uint {
	if l == LayerNone {
		return 0
	}
	return 1 << uint(l)
}

// Mask is the set of category bits this layer collides with.
func (l Layer) Mask() uint {
	var mask uint
	for _, other := range collides[l] {
		mask |= other.Category()
	}
	return mask
}

// Filter builds the cp shape filter for the layer.
func (l Layer) Filter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, l.Category(), l.Mask())
}

func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseLayer(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l *Layer) UnmarshalText(text []byte) error {
	parsed, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

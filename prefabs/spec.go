package prefabs

import (
	"fmt"

	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/focus"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width    float64        `yaml:"width"`
	Height   float64        `yaml:"height"`
	Mass     float64        `yaml:"mass"`
	Friction float64        `yaml:"friction"`
	Layer    collider.Layer `yaml:"layer"`
}

type ColorSpec struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// FocalPointSpec tunes the camera focal point. X and Y are whole pixels,
// matching what cue scripts pass to set_focal_point.
type FocalPointSpec struct {
	Name         string  `yaml:"name"`
	X            int     `yaml:"x"`
	Y            int     `yaml:"y"`
	BelowDrop    float64 `yaml:"below_drop"`
	FlipDuration float64 `yaml:"flip_duration"`
	Depth        float64 `yaml:"depth"`
}

// Config converts the spec, filling unset fields with the stock tuning.
func (s FocalPointSpec) Config() focus.Config {
	cfg := focus.DefaultConfig()
	if s.X != 0 {
		cfg.X = float64(s.X)
	}
	if s.Y != 0 {
		cfg.Y = float64(s.Y)
	}
	if s.BelowDrop != 0 {
		cfg.BelowDrop = s.BelowDrop
	}
	if s.FlipDuration > 0 {
		cfg.FlipDuration = s.FlipDuration
	}
	if s.Depth != 0 {
		cfg.Depth = s.Depth
	}
	return cfg
}

// Extremes returns the whole-pixel extremes used by Reconfigure, with
// unset values resolved the same way as Config.
func (s FocalPointSpec) Extremes() (x, y int) {
	cfg := s.Config()
	return int(cfg.X), int(cfg.Y)
}

func LoadFocalPointSpec() (*FocalPointSpec, error) {
	spec, err := LoadSpec[FocalPointSpec]("focal_point.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name         string        `yaml:"name"`
	MoveSpeed    float64       `yaml:"move_speed"`
	JumpSpeed    float64       `yaml:"jump_speed"`
	CoyoteFrames int           `yaml:"coyote_frames"`
	ClimbSpeed   float64       `yaml:"climb_speed"`
	Transform    TransformSpec `yaml:"transform"`
	Collider     ColliderSpec  `yaml:"collider"`
	Color        ColorSpec     `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string        `yaml:"name"`
	Transform  TransformSpec `yaml:"transform"`
	Target     string        `yaml:"target"`
	Zoom       float64       `yaml:"zoom"`
	Smoothness float64       `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

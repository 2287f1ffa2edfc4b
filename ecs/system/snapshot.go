package system

import (
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"gopkg.in/yaml.v3"
)

// Snapshot is a readable dump of the focus rig, for pasting into bug reports.
type Snapshot struct {
	Frame     int          `yaml:"frame"`
	TimeScale float64      `yaml:"time_scale"`
	Subject   SubjectDump  `yaml:"subject"`
	Focus     FocusDump    `yaml:"focus"`
	Contacts  ContactsDump `yaml:"contacts"`
}

type SubjectDump struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Facing      string  `yaml:"facing"`
	Mode        string  `yaml:"mode"`
	Climb       string  `yaml:"climb"`
	LookingAway bool    `yaml:"looking_away"`
}

type FocusDump struct {
	Following bool        `yaml:"following"`
	Slider    common.Vec2 `yaml:"slider,flow"`
	Offset    common.Vec3 `yaml:"offset,flow"`
}

type ContactsDump struct {
	Grounded         bool `yaml:"grounded"`
	Wall             int  `yaml:"wall"`
	WallClimbable    bool `yaml:"wall_climbable"`
	Ceiling          bool `yaml:"ceiling"`
	CeilingClimbable bool `yaml:"ceiling_climbable"`
	Enemy            bool `yaml:"enemy"`
}

func TakeSnapshot(w *ecs.World, subject, focal ecs.Entity) Snapshot {
	var snap Snapshot
	if clock := clockOf(w); clock != nil {
		snap.Frame = clock.Frames
		snap.TimeScale = clock.Scale
	}

	s := SubjectOf(w, subject)
	snap.Subject = SubjectDump{
		Facing:      s.Facing.String(),
		Mode:        s.Master.String(),
		Climb:       s.Climb.String(),
		LookingAway: s.LookingAway,
	}
	if t, ok := ecs.Get(w, subject, component.TransformComponent.Kind()); ok {
		snap.Subject.X, snap.Subject.Y = t.X, t.Y
	}
	if pc, ok := ecs.Get(w, subject, component.PlayerCollisionComponent.Kind()); ok {
		snap.Contacts = ContactsDump{
			Grounded:         pc.Grounded || pc.GroundGrace > 0,
			Wall:             pc.Wall,
			WallClimbable:    pc.WallClimbable,
			Ceiling:          pc.Ceiling,
			CeilingClimbable: pc.CeilingClimbable,
			Enemy:            pc.Enemy,
		}
	}
	if fp, ok := ecs.Get(w, focal, component.FocalPointComponent.Kind()); ok && fp.Controller != nil {
		snap.Focus = FocusDump{
			Following: fp.Controller.Following(),
			Slider:    fp.Controller.Slider(),
			Offset:    fp.Controller.Offset(),
		}
	}
	return snap
}

func (s Snapshot) String() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "snapshot: " + err.Error()
	}
	return string(out)
}

package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/focus"
	"github.com/milk9111/stealth/logger"
	"github.com/milk9111/stealth/prefabs"
	"go.uber.org/zap"
)

// TimeScaler owns the global time dilation.
type TimeScaler interface {
	SetScale(scale float64)
	Scale() float64
}

// CameraCueSystem runs a cue's script when a character enters or leaves
// its trigger. Scripts define onEnter(cam) and onLeave(cam).
type CameraCueSystem struct {
	time    TimeScaler
	log     *zap.Logger
	scripts map[string]*cueScript
	load    func(name string) ([]byte, error)
}

type cueScript struct {
	compiled *tengo.Compiled
}

const cueDispatchScript = `
if __phase == "enter" {
	onEnter(__cam)
} else if __phase == "leave" {
	onLeave(__cam)
}
`

func NewCameraCueSystem(time TimeScaler) *CameraCueSystem {
	return &CameraCueSystem{
		time:    time,
		log:     logger.Named("cue"),
		scripts: make(map[string]*cueScript),
		load:    prefabs.LoadScript,
	}
}

// Invalidate drops the compiled copy of a script so the next run reloads it.
func (cs *CameraCueSystem) Invalidate(name string) {
	for key := range cs.scripts {
		if key == name || strings.TrimSuffix(key, ".tengo") == strings.TrimSuffix(name, ".tengo") {
			delete(cs.scripts, key)
		}
	}
}

func (cs *CameraCueSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Take(ecs.EventTriggerEnter) {
		cs.handle(w, evt, "enter")
	}
	for _, evt := range w.Events().Take(ecs.EventTriggerExit) {
		cs.handle(w, evt, "leave")
	}
}

func (cs *CameraCueSystem) handle(w *ecs.World, evt ecs.Event, phase string) {
	te, ok := evt.Data.(ecs.TriggerEvent)
	if !ok {
		return
	}
	cue, ok := ecs.Get(w, te.Trigger, component.CameraCueComponent.Kind())
	if !ok {
		return
	}

	entering := phase == "enter"
	if cue.Inside == entering {
		return
	}
	cue.Inside = entering

	if strings.TrimSpace(cue.Script) == "" {
		return
	}
	if err := cs.run(w, cue, phase); err != nil {
		cs.log.Warn("cue script failed",
			zap.String("cue", cue.Name),
			zap.String("script", cue.Script),
			zap.String("phase", phase),
			zap.Error(err),
		)
	}
}

func (cs *CameraCueSystem) run(w *ecs.World, cue *component.CameraCue, phase string) error {
	script, err := cs.compile(cue.Script)
	if err != nil {
		return err
	}
	if err := script.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := script.compiled.Set("__cam", cs.buildCueEngine(w, cue)); err != nil {
		return err
	}
	return script.compiled.Run()
}

func (cs *CameraCueSystem) compile(name string) (*cueScript, error) {
	if script, ok := cs.scripts[name]; ok {
		return script, nil
	}

	src, err := cs.load(name)
	if err != nil {
		return nil, err
	}

	s := tengo.NewScript([]byte(string(src) + "\n" + cueDispatchScript))
	_ = s.Add("__phase", "")
	_ = s.Add("__cam", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile cue script %q: %w", name, err)
	}
	script := &cueScript{compiled: compiled}
	cs.scripts[name] = script
	return script, nil
}

func (cs *CameraCueSystem) buildCueEngine(w *ecs.World, cue *component.CameraCue) *tengo.ImmutableMap {
	controller := firstFocalController(w)
	values := map[string]tengo.Object{
		"cue": &tengo.String{Value: cue.Name},
	}

	values["set_focal_point"] = &tengo.UserFunction{Name: "set_focal_point", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if controller == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToInt(args[0])
		y, okY := tengo.ToInt(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "x/y", Expected: "int", Found: args[0].TypeName()}
		}
		controller.Reconfigure(x, y)
		return tengo.TrueValue, nil
	}}

	values["stop_following"] = &tengo.UserFunction{Name: "stop_following", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if controller == nil {
			return tengo.FalseValue, nil
		}
		controller.StopFollowing()
		return tengo.TrueValue, nil
	}}

	values["start_following"] = &tengo.UserFunction{Name: "start_following", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if controller == nil {
			return tengo.FalseValue, nil
		}
		controller.StartFollowing()
		return tengo.TrueValue, nil
	}}

	values["set_time_scale"] = &tengo.UserFunction{Name: "set_time_scale", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if cs.time == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		scale, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "scale", Expected: "float", Found: args[0].TypeName()}
		}
		cs.time.SetScale(scale)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		cs.log.Info(strings.Join(parts, " "), zap.String("cue", cue.Name))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func firstFocalController(w *ecs.World) *focus.Controller {
	e, ok := w.First(component.FocalPointComponent.Kind())
	if !ok {
		return nil
	}
	fp, _ := ecs.Get(w, e, component.FocalPointComponent.Kind())
	return fp.Controller
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

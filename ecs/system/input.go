package system

import (
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
)

// InputSource samples the device state once per frame.
type InputSource interface {
	Read() component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	sample := i.source.Read()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
	})
}

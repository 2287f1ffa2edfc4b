package ecs

import "github.com/milk9111/stealth/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		if store.Has(e) {
			store.Remove(e)
		}
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddComponent stores value under the component id for a live entity.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	store := w.store(id, false)
	if !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	return w.IsAlive(e) && w.store(id, false).Has(e)
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(id, false).Remove(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := newSparseSet()
	w.stores[id] = s
	return s
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// EndFrame drops events nobody drained this frame.
func (w *World) EndFrame() {
	if w == nil {
		return
	}
	w.events.flush()
}

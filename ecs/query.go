package ecs

import "github.com/milk9111/stealth/ecs/component"

// Query returns live entities that have every one of kinds.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate the smallest store
	smallest := 0
	for i, s := range stores {
		if s.Len() < stores[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, stores[smallest].Len())
	for _, e := range stores[smallest].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for i, s := range stores {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns one live entity having kind. Used for singletons.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

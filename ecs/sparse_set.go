package ecs

// SparseSet is a cache-friendly component store keyed by entity slot id.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

func newSparseSet() *SparseSet {
	return &SparseSet{}
}

// Has reports whether e (including its generation) has a value in the set.
func (s *SparseSet) Has(e Entity) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index(e.id())
	return ok && s.denseEntities[idx] == e
}

func (s *SparseSet) index(id entityID) (int, bool) {
	if id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx].id() != id {
		return 0, false
	}
	return idx, true
}

// Get returns the value stored for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	return s.denseValues[s.sparse[e.id()-1]]
}

// Set inserts or replaces the value for e. A value left by an older
// generation of the same slot is overwritten.
func (s *SparseSet) Set(e Entity, v any) {
	id := e.id()
	if id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e's slot if present.
func (s *SparseSet) Remove(e Entity) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index(e.id())
	if !ok {
		return false
	}
	last := len(s.denseEntities) - 1
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.id()-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity list. Callers must not mutate it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

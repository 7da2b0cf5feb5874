package ecs

import "github.com/milk9111/slicerman/ecs/component"

// Query returns the entities that have every listed component. The result is
// a fresh slice and is safe to iterate while mutating the world.
func (w *World) Query(kinds ...component.Identified) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	out := make([]Entity, 0, sets[smallest].Len())
	for _, e := range sets[smallest].Entities() {
		hasAll := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				hasAll = false
				break
			}
		}
		if hasAll {
			out = append(out, e)
		}
	}
	return out
}

// First returns any entity that has every listed component.
func (w *World) First(kinds ...component.Identified) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Count returns how many entities have every listed component.
func (w *World) Count(kinds ...component.Identified) int {
	return len(w.Query(kinds...))
}

package system

import (
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// TTLSystem counts frame lifetimes down. An entity is destroyed on the update
// its TTL reaches zero; a TTL that starts at zero expires on the first update.
type TTLSystem struct {
	expired int
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
		s.expired++
	})
}

// Expired counts the entities this system has removed.
func (s *TTLSystem) Expired() int {
	if s == nil {
		return 0
	}
	return s.expired
}

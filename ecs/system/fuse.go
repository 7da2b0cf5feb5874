package system

import (
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// FuseSound is the looping hiss that plays while a bomb is in flight.
const FuseSound = "fuse"

// FuseSystem silences the fuse loop once no active bomb remains.
type FuseSystem struct {
	mixer Mixer
}

func NewFuseSystem(mixer Mixer) *FuseSystem {
	return &FuseSystem{mixer: mixer}
}

func (f *FuseSystem) Update(w *ecs.World) {
	if f == nil || f.mixer == nil || w == nil {
		return
	}
	if !f.mixer.IsPlaying(FuseSound) {
		return
	}

	for _, e := range w.Query(component.ActiveTagComponent, component.EnemyComponent) {
		if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && enemy.Kind == component.EnemyBomb {
			return
		}
	}
	f.mixer.Stop(FuseSound)
}

package system

import (
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// Mixer plays named sound effects. Loop restarts the named sound from the
// beginning and repeats it until stopped.
type Mixer interface {
	Play(name string)
	Loop(name string)
	Stop(name string)
	IsPlaying(name string) bool
}

// AudioSystem hands queued sound requests to the mixer.
type AudioSystem struct {
	mixer Mixer
}

func NewAudioSystem(mixer Mixer) *AudioSystem {
	return &AudioSystem{mixer: mixer}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, req *component.SoundRequest) {
		if a.mixer != nil && req.Name != "" {
			switch {
			case req.Stop:
				a.mixer.Stop(req.Name)
			case req.Loop:
				a.mixer.Loop(req.Name)
			default:
				a.mixer.Play(req.Name)
			}
		}
		ecs.DestroyEntity(w, e)
	})
}

package entity

import (
	"fmt"

	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// NewSoundRequest queues a sound for the audio system.
func NewSoundRequest(w *ecs.World, req component.SoundRequest) (ecs.Entity, error) {
	if req.Name == "" {
		return 0, fmt.Errorf("sound request: empty name")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SoundRequestComponent.Kind(), &req); err != nil {
		return 0, fmt.Errorf("sound request %q: %w", req.Name, err)
	}
	return e, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
	"github.com/milk9111/slicerman/prefabs"
)

const defaultEffectTTL = 60

// NewHitEffect places a one-shot particle burst at (x, y) that removes itself
// after spec.TTL frames.
func NewHitEffect(w *ecs.World, spec prefabs.EmitterSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("hit effect: add transform: %w", err)
	}

	em := emitterFromSpec(spec)
	em.Interval = 0
	if err := ecs.Add(w, e, component.EmitterComponent.Kind(), em); err != nil {
		return 0, fmt.Errorf("hit effect: add emitter: %w", err)
	}

	ttl := spec.TTL
	if ttl <= 0 {
		ttl = defaultEffectTTL
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: ttl}); err != nil {
		return 0, fmt.Errorf("hit effect: add ttl: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.LayerEffect}); err != nil {
		return 0, fmt.Errorf("hit effect: add render layer: %w", err)
	}
	return e, nil
}

// NewSliceProbe queues a point test for the slice system.
func NewSliceProbe(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SliceProbeComponent.Kind(), &component.SliceProbe{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("slice probe: %w", err)
	}
	return e, nil
}

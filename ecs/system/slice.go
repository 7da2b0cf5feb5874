package system

import (
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

const (
	slicedScale    = 0.001
	slicedDuration = 0.2
)

// SliceSystem resolves slice probes against the physics world. A hit entity
// leaves the active set, loses its body and shrinks out of view.
type SliceSystem struct {
	pw *ecs.PhysicsWorld
}

func NewSliceSystem(pw *ecs.PhysicsWorld) *SliceSystem {
	return &SliceSystem{pw: pw}
}

func (s *SliceSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.SliceProbeComponent.Kind(), func(probe ecs.Entity, p *component.SliceProbe) {
		for _, hit := range s.pw.PointQuery(p.X, p.Y) {
			s.slice(w, hit)
		}
		ecs.DestroyEntity(w, probe)
	})
}

func (s *SliceSystem) slice(w *ecs.World, e ecs.Entity) {
	if !w.IsAlive(e) || !ecs.Has(w, e, component.ActiveTagComponent.Kind()) {
		return
	}
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}

	x, y := 0.0, 0.0
	scale := 1.0
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
		if t.ScaleX != 0 {
			scale = t.ScaleX
		}
	}

	ecs.Remove(w, e, component.ActiveTagComponent.Kind())
	ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
	ecs.Remove(w, e, component.EmitterComponent.Kind())
	s.pw.Remove(e)

	_ = ecs.Add(w, e, component.SlicedTagComponent.Kind(), &component.SlicedTag{})
	_ = ecs.Add(w, e, component.TweenComponent.Kind(), &component.Tween{
		ScaleFrom: scale,
		ScaleTo:   slicedScale,
		AlphaFrom: 1,
		AlphaTo:   0,
		Duration:  slicedDuration,
		Destroy:   true,
	})

	w.Events().Push(ecs.Event{Type: ecs.EventSliced, Data: ecs.SlicedEvent{Entity: e, Kind: enemy.Kind, X: x, Y: y}})
}

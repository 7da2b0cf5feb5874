package system

import (
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// PhysicsSystem steps the Chipmunk space and copies body poses back into
// transforms.
type PhysicsSystem struct {
	pw *ecs.PhysicsWorld
}

func NewPhysicsSystem(pw *ecs.PhysicsWorld) *PhysicsSystem {
	return &PhysicsSystem{pw: pw}
}

func (ps *PhysicsSystem) World() *ecs.PhysicsWorld {
	if ps == nil {
		return nil
	}
	return ps.pw
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.pw == nil || w == nil {
		return
	}

	// Bodies whose entity died or lost its body component leave the space.
	for _, e := range ps.pw.Entities() {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ps.pw.Remove(e)
		}
	}

	ps.pw.Step(common.TickSeconds)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, t *component.Transform) {
		x, y, angle, ok := ps.pw.Pose(e)
		if !ok {
			return
		}
		t.X = x
		t.Y = y
		t.Rotation = angle
	})
}

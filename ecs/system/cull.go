package system

import (
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// DefaultCullY is the world height below which launched entities are gone.
const DefaultCullY = -140.0

// CullSystem destroys active entities that fell below the screen and reports
// each one as a missed event.
type CullSystem struct {
	Floor float64
}

func NewCullSystem(floor float64) *CullSystem {
	return &CullSystem{Floor: floor}
}

func (c *CullSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.ActiveTagComponent, component.EnemyComponent, component.TransformComponent) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok || t.Y >= c.Floor {
			continue
		}
		enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
		w.Events().Push(ecs.Event{Type: ecs.EventMissed, Data: ecs.MissedEvent{Entity: e, Kind: enemy.Kind, X: t.X}})
		ecs.DestroyEntity(w, e)
	}
}

package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
	"github.com/milk9111/slicerman/launch"
	"github.com/milk9111/slicerman/prefabs"
)

// Art holds the sprites builders attach. Nil images are allowed; the entity
// is simulated but not drawn.
type Art struct {
	Penguin   *ebiten.Image
	FastMover *ebiten.Image
	Bomb      *ebiten.Image
	LifeFull  *ebiten.Image
	LifeGone  *ebiten.Image
}

func (a Art) enemyImage(kind component.EnemyKind) *ebiten.Image {
	switch kind {
	case component.EnemyBomb:
		return a.Bomb
	case component.EnemyFastMover:
		return a.FastMover
	default:
		return a.Penguin
	}
}

// NewEnemy launches an entity of the given kind from x at the spawn height.
func NewEnemy(w *ecs.World, pw *ecs.PhysicsWorld, spec *prefabs.EnemySpec, art Art, kind component.EnemyKind, x float64, v launch.Velocity) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("enemy: nil spec")
	}

	e := ecs.CreateEntity(w)
	y := spec.Spawn.Y

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	sprite := &component.Sprite{Image: art.enemyImage(kind), Alpha: 1}
	if sprite.Image != nil {
		b := sprite.Image.Bounds()
		sprite.OriginX = float64(b.Dx()) / 2
		sprite.OriginY = float64(b.Dy()) / 2
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return 0, fmt.Errorf("enemy: add sprite: %w", err)
	}

	rl := common.LayerEnemy
	if spec.RenderLayer.Index != 0 {
		rl = spec.RenderLayer.Index
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: rl}); err != nil {
		return 0, fmt.Errorf("enemy: add render layer: %w", err)
	}

	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Kind: kind}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}
	if err := ecs.Add(w, e, component.ActiveTagComponent.Kind(), &component.ActiveTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add active tag: %w", err)
	}

	body, shape := pw.AddCircle(e, ecs.BodySpec{
		X:      x,
		Y:      y,
		VX:     v.VX,
		VY:     v.VY,
		Spin:   v.Spin,
		Radius: spec.Spawn.Radius,
		Mass:   spec.Spawn.Mass,
	})
	if body == nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("enemy: no physics body")
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Shape:  shape,
		Radius: spec.Spawn.Radius,
		Mass:   spec.Spawn.Mass,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}

	if kind == component.EnemyBomb {
		if err := ecs.Add(w, e, component.EmitterComponent.Kind(), emitterFromSpec(spec.Fuse)); err != nil {
			return 0, fmt.Errorf("enemy: add fuse emitter: %w", err)
		}
	}

	return e, nil
}

func emitterFromSpec(s prefabs.EmitterSpec) *component.Emitter {
	return &component.Emitter{
		OffsetX:  s.OffsetX,
		OffsetY:  s.OffsetY,
		Interval: s.Interval,
		Burst:    s.Burst,
		Speed:    s.Speed,
		Life:     s.Life,
		Size:     s.Size,
		Color:    s.Color.RGBA,
	}
}

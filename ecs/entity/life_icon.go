package entity

import (
	"fmt"

	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// Life icon row, top right of the screen.
const (
	LifeIconX       = 834.0
	LifeIconSpacing = 70.0
	LifeIconY       = 720.0
)

// NewLifeIcons creates one HUD marker per life, left to right.
func NewLifeIcons(w *ecs.World, n int, art Art) ([]ecs.Entity, error) {
	icons := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		e := ecs.CreateEntity(w)

		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X:      LifeIconX + float64(i)*LifeIconSpacing,
			Y:      LifeIconY,
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			return nil, fmt.Errorf("life icon %d: add transform: %w", i, err)
		}

		sprite := &component.Sprite{Image: art.LifeFull, Alpha: 1}
		if sprite.Image != nil {
			b := sprite.Image.Bounds()
			sprite.OriginX = float64(b.Dx()) / 2
			sprite.OriginY = float64(b.Dy()) / 2
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			return nil, fmt.Errorf("life icon %d: add sprite: %w", i, err)
		}
		if err := ecs.Add(w, e, component.LifeIconComponent.Kind(), &component.LifeIcon{Index: i, Gone: art.LifeGone}); err != nil {
			return nil, fmt.Errorf("life icon %d: add icon: %w", i, err)
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.LayerHUD}); err != nil {
			return nil, fmt.Errorf("life icon %d: add render layer: %w", i, err)
		}

		icons = append(icons, e)
	}
	return icons, nil
}

// MarkLifeLost swaps icon index to its spent image and pops it from 1.3x back
// to normal size over 0.1s.
func MarkLifeLost(w *ecs.World, index int) bool {
	for _, e := range w.Query(component.LifeIconComponent) {
		icon, _ := ecs.Get(w, e, component.LifeIconComponent.Kind())
		if icon.Index != index || icon.Lost {
			continue
		}
		icon.Lost = true
		if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && icon.Gone != nil {
			sp.Image = icon.Gone
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.ScaleX, t.ScaleY = 1.3, 1.3
		}
		_ = ecs.Add(w, e, component.TweenComponent.Kind(), &component.Tween{
			ScaleFrom: 1.3,
			ScaleTo:   1,
			AlphaFrom: 1,
			AlphaTo:   1,
			Duration:  0.1,
		})
		return true
	}
	return false
}

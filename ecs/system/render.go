package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// RenderSystem draws sprites and particles back to front, flipping the y-up
// world onto the screen.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update is a no-op; rendering happens in Draw.
func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent)
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			drawSprite(screen, t, s)
		}
		if p, ok := ecs.Get(w, e, component.ParticleComponent.Kind()); ok {
			drawParticle(screen, t, p)
		}
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	if s.Image == nil || s.Alpha <= 0 {
		return
	}

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)
	op.GeoM.Scale(sx, sy)
	// Counter-clockwise in world space is clockwise once y is flipped.
	op.GeoM.Rotate(-t.Rotation)
	op.GeoM.Translate(t.X, common.ToScreenY(t.Y))
	op.ColorScale.ScaleAlpha(float32(s.Alpha))
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(s.Image, op)
}

func drawParticle(screen *ebiten.Image, t *component.Transform, p *component.Particle) {
	size := p.Size
	if size <= 0 {
		size = 3
	}
	if p.MaxLife > 0 {
		size *= 0.5 + 0.5*float64(p.Life)/float64(p.MaxLife)
	}
	vector.DrawFilledCircle(screen, float32(t.X), float32(common.ToScreenY(t.Y)), float32(size), p.Color, true)
}

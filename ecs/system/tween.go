package system

import (
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// TweenSystem advances scale/alpha tweens by one tick.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (s *TweenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TweenComponent.Kind(), func(e ecs.Entity, tw *component.Tween) {
		tw.Elapsed += common.TickSeconds
		p := 1.0
		if tw.Duration > 0 {
			p = common.Clamp01(tw.Elapsed / tw.Duration)
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			scale := common.Lerp(tw.ScaleFrom, tw.ScaleTo, p)
			t.ScaleX = scale
			t.ScaleY = scale
		}
		if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sp.Alpha = common.Lerp(tw.AlphaFrom, tw.AlphaTo, p)
		}

		if p < 1 {
			return
		}
		if tw.Destroy {
			ecs.DestroyEntity(w, e)
			return
		}
		ecs.Remove(w, e, component.TweenComponent.Kind())
	})
}

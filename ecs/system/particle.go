package system

import (
	"math"
	"math/rand"

	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
)

// ParticleSystem emits sparks from emitters and moves, fades and expires
// live particles.
type ParticleSystem struct {
	rng *rand.Rand
}

func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ParticleSystem{rng: rng}
}

func (ps *ParticleSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.EmitterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, em *component.Emitter, t *component.Transform) {
		ox, oy := common.Rotate(em.OffsetX, em.OffsetY, t.Rotation)
		x, y := t.X+ox, t.Y+oy

		if !em.Fired {
			em.Fired = true
			for i := 0; i < em.Burst; i++ {
				ps.spawn(w, em, x, y)
			}
		}
		if em.Interval <= 0 {
			return
		}
		em.Timer++
		if em.Timer >= em.Interval {
			em.Timer = 0
			ps.spawn(w, em, x, y)
		}
	})

	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Particle, t *component.Transform) {
		p.Life--
		if p.Life <= 0 {
			ecs.DestroyEntity(w, e)
			return
		}
		t.X += p.VX * common.TickSeconds
		t.Y += p.VY * common.TickSeconds
		if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && p.MaxLife > 0 {
			sp.Alpha = float64(p.Life) / float64(p.MaxLife)
		}
	})
}

func (ps *ParticleSystem) spawn(w *ecs.World, em *component.Emitter, x, y float64) {
	angle := ps.rng.Float64() * 2 * math.Pi
	speed := em.Speed * (0.5 + ps.rng.Float64()*0.5)
	life := em.Life
	if life <= 0 {
		life = 30
	}

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Life:    life,
		MaxLife: life,
		Size:    em.Size,
		Color:   em.Color,
	})
	_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.LayerEffect})
}

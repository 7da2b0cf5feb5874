package ecs

import (
	"github.com/jakecoffman/cp"
)

// enemyGroup puts every launched body in one collision group so they pass
// through each other.
const enemyGroup uint = 1

// BodySpec describes a launched circle body in world units (y-up).
type BodySpec struct {
	X, Y   float64
	VX, VY float64
	Spin   float64
	Radius float64
	Mass   float64
}

// PhysicsWorld owns the Chipmunk space the launched entities fly in.
type PhysicsWorld struct {
	space *cp.Space
	speed float64

	bodies        map[Entity]*cp.Body
	shapes        map[Entity]*cp.Shape
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates a space with vertical gravity.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	return &PhysicsWorld{
		space:         space,
		speed:         1,
		bodies:        make(map[Entity]*cp.Body),
		shapes:        make(map[Entity]*cp.Shape),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// SetSpeed scales simulated time relative to real time.
func (pw *PhysicsWorld) SetSpeed(factor float64) {
	if pw == nil || factor <= 0 {
		return
	}
	pw.speed = factor
}

func (pw *PhysicsWorld) Speed() float64 {
	if pw == nil {
		return 0
	}
	return pw.speed
}

// AddCircle creates a dynamic circle body for e.
func (pw *PhysicsWorld) AddCircle(e Entity, spec BodySpec) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil || spec.Radius <= 0 {
		return nil, nil
	}
	pw.Remove(e)

	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, spec.Radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
	body.SetVelocity(spec.VX, spec.VY)
	body.SetAngularVelocity(spec.Spin)

	shape := cp.NewCircle(body, spec.Radius, cp.Vector{})
	shape.SetFilter(cp.NewShapeFilter(enemyGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pw.bodies[e] = body
	pw.shapes[e] = shape
	pw.shapeToEntity[shape] = e
	return body, shape
}

// Remove takes e's body out of the simulation.
func (pw *PhysicsWorld) Remove(e Entity) bool {
	if pw == nil {
		return false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return false
	}
	if shape := pw.shapes[e]; shape != nil {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
	}
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
	delete(pw.shapes, e)
	return true
}

// Step advances the simulation by dt real seconds scaled by the world speed.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt * pw.speed)
}

// Pose returns e's position and rotation.
func (pw *PhysicsWorld) Pose(e Entity) (x, y, angle float64, ok bool) {
	if pw == nil {
		return 0, 0, 0, false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return 0, 0, 0, false
	}
	p := body.Position()
	return p.X, p.Y, body.Angle(), true
}

// Velocity returns e's linear velocity.
func (pw *PhysicsWorld) Velocity(e Entity) (vx, vy float64, ok bool) {
	if pw == nil {
		return 0, 0, false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return 0, 0, false
	}
	v := body.Velocity()
	return v.X, v.Y, true
}

// PointQuery returns every entity whose shape contains the world point.
func (pw *PhysicsWorld) PointQuery(x, y float64) []Entity {
	if pw == nil || pw.space == nil {
		return nil
	}
	var hits []Entity
	pw.space.PointQuery(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		if e, ok := pw.shapeToEntity[shape]; ok {
			hits = append(hits, e)
		}
	}, nil)
	return hits
}

// Len returns the number of simulated bodies.
func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}

// Entities returns the entities that currently own a body.
func (pw *PhysicsWorld) Entities() []Entity {
	if pw == nil {
		return nil
	}
	out := make([]Entity, 0, len(pw.bodies))
	for e := range pw.bodies {
		out = append(out, e)
	}
	return out
}

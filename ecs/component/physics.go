package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body an entity flies with.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Mass   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Package scene hosts a round: it realizes spawn requests from the sequencer,
// owns the active set, resolves slices and draws the HUD.
package scene

// Point is a position in world coordinates (y-up).
type Point struct {
	X, Y float64
}

// Handler receives the game loop's ticks and pointer gestures.
type Handler interface {
	OnTick(dt float64)
	OnInputStart(p Point)
	OnInputMove(p Point)
	OnInputEnd()
}

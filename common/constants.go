package common

// Logical screen size. World space shares these bounds but is y-up.
const (
	BaseWidth  = 1024
	BaseHeight = 768
)

// TPS is the fixed update rate; every tick advances the game by TickSeconds.
const (
	TPS         = 60
	TickSeconds = 1.0 / TPS
)

// Gravity is the downward world acceleration in points per second squared
// (6 m/s² at 150 points per metre).
const Gravity = -900.0

// Render layers, back to front.
const (
	LayerBackground = iota
	LayerEnemy
	LayerEffect
	LayerTrail
	LayerHUD
)

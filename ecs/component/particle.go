package component

import "image/color"

// Emitter spawns particles around its entity. Interval > 0 emits continuously
// every Interval frames; Burst particles are emitted once on the first tick.
type Emitter struct {
	OffsetX  float64
	OffsetY  float64
	Interval int
	Timer    int
	Burst    int
	Fired    bool
	Speed    float64
	Life     int
	Size     float64
	Color    color.RGBA
}

var EmitterComponent = NewComponent[Emitter]()

// Particle is a single spark moving in world space.
type Particle struct {
	VX      float64
	VY      float64
	Life    int
	MaxLife int
	Size    float64
	Color   color.RGBA
}

var ParticleComponent = NewComponent[Particle]()

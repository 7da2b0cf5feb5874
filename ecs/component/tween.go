package component

// Tween interpolates a sprite's scale and alpha over a fixed duration in
// seconds. When Destroy is set the entity is removed once it finishes.
type Tween struct {
	ScaleFrom float64
	ScaleTo   float64
	AlphaFrom float64
	AlphaTo   float64
	Duration  float64
	Elapsed   float64
	Destroy   bool
}

var TweenComponent = NewComponent[Tween]()

package component

// SliceProbe is a one-shot request to test a world point against every
// launched body.
type SliceProbe struct {
	X float64
	Y float64
}

var SliceProbeComponent = NewComponent[SliceProbe]()

package component

// ActiveTag marks a launched entity that still counts toward the active set.
type ActiveTag struct{}

var ActiveTagComponent = NewComponent[ActiveTag]()

// SlicedTag marks an entity that was hit and is playing its exit animation.
type SlicedTag struct{}

var SlicedTagComponent = NewComponent[SlicedTag]()

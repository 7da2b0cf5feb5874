package component

import "github.com/hajimehoshi/ebiten/v2"

// LifeIcon is one of the HUD markers for the remaining lives.
type LifeIcon struct {
	Index int
	Lost  bool
	Gone  *ebiten.Image
}

var LifeIconComponent = NewComponent[LifeIcon]()

package assets

import (
	"bytes"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceOnce   sync.Once
	faceSource *text.GoTextFaceSource
)

// Face returns the HUD font at size points.
func Face(size float64) text.Face {
	faceOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[Assets] load goregular: %v", err)
			return
		}
		faceSource = s
	})
	if faceSource == nil {
		return UIFace()
	}
	return &text.GoTextFace{Source: faceSource, Size: size}
}

// UIFace is the small bitmap font used by menus.
func UIFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

package assets

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

const (
	EnemySize = 128
	IconSize  = 64
)

// Pictures are the procedural sprites as plain images.
type Pictures struct {
	Background *image.RGBA
	Penguin    *image.RGBA
	FastMover  *image.RGBA
	Bomb       *image.RGBA
	LifeFull   *image.RGBA
	LifeGone   *image.RGBA
}

// Images are the same sprites uploaded for drawing.
type Images struct {
	Background *ebiten.Image
	Penguin    *ebiten.Image
	FastMover  *ebiten.Image
	Bomb       *ebiten.Image
	LifeFull   *ebiten.Image
	LifeGone   *ebiten.Image
}

var (
	imagesOnce sync.Once
	images     *Images
)

// LoadImages draws every sprite once and returns the shared set.
func LoadImages() *Images {
	imagesOnce.Do(func() {
		p := Paint()
		images = &Images{
			Background: ebiten.NewImageFromImage(p.Background),
			Penguin:    ebiten.NewImageFromImage(p.Penguin),
			FastMover:  ebiten.NewImageFromImage(p.FastMover),
			Bomb:       ebiten.NewImageFromImage(p.Bomb),
			LifeFull:   ebiten.NewImageFromImage(p.LifeFull),
			LifeGone:   ebiten.NewImageFromImage(p.LifeGone),
		}
	})
	return images
}

// Paint renders every sprite into memory.
func Paint() Pictures {
	return Pictures{
		Background: paintBackground(1024, 768),
		Penguin:    paintPenguin(EnemySize, colornames.Black),
		FastMover:  paintPenguin(EnemySize, colornames.Firebrick),
		Bomb:       paintBomb(EnemySize),
		LifeFull:   paintPenguin(IconSize, colornames.Black),
		LifeGone:   paintLifeGone(IconSize),
	}
}

type canvas struct {
	img  *image.RGBA
	r    *vector.Rasterizer
	size float32
}

func newCanvas(size int) *canvas {
	return &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, size, size)),
		r:    vector.NewRasterizer(size, size),
		size: float32(size),
	}
}

// Coordinates are fractions of the canvas size.
func (c *canvas) ellipse(cx, cy, rx, ry float32, col color.Color) {
	const k = 0.5523
	cx, cy, rx, ry = cx*c.size, cy*c.size, rx*c.size, ry*c.size
	c.r.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	c.r.MoveTo(cx+rx, cy)
	c.r.CubeTo(cx+rx, cy+k*ry, cx+k*rx, cy+ry, cx, cy+ry)
	c.r.CubeTo(cx-k*rx, cy+ry, cx-rx, cy+k*ry, cx-rx, cy)
	c.r.CubeTo(cx-rx, cy-k*ry, cx-k*rx, cy-ry, cx, cy-ry)
	c.r.CubeTo(cx+k*rx, cy-ry, cx+rx, cy-k*ry, cx+rx, cy)
	c.r.ClosePath()
	c.fill(col)
}

func (c *canvas) polygon(col color.Color, pts ...float32) {
	if len(pts) < 6 {
		return
	}
	c.r.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	c.r.MoveTo(pts[0]*c.size, pts[1]*c.size)
	for i := 2; i+1 < len(pts); i += 2 {
		c.r.LineTo(pts[i]*c.size, pts[i+1]*c.size)
	}
	c.r.ClosePath()
	c.fill(col)
}

func (c *canvas) fill(col color.Color) {
	c.r.DrawOp = draw.Over
	c.r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func paintPenguin(size int, body color.Color) *image.RGBA {
	c := newCanvas(size)
	c.ellipse(0.34, 0.9, 0.12, 0.06, colornames.Orange)
	c.ellipse(0.66, 0.9, 0.12, 0.06, colornames.Orange)
	c.ellipse(0.5, 0.52, 0.34, 0.42, body)
	c.ellipse(0.5, 0.6, 0.22, 0.3, colornames.White)
	c.ellipse(0.4, 0.32, 0.07, 0.08, colornames.White)
	c.ellipse(0.6, 0.32, 0.07, 0.08, colornames.White)
	c.ellipse(0.41, 0.33, 0.035, 0.04, colornames.Black)
	c.ellipse(0.59, 0.33, 0.035, 0.04, colornames.Black)
	c.polygon(colornames.Orange, 0.44, 0.42, 0.56, 0.42, 0.5, 0.5)
	return c.img
}

func paintBomb(size int) *image.RGBA {
	c := newCanvas(size)
	c.polygon(colornames.Saddlebrown, 0.62, 0.26, 0.86, 0.04, 0.9, 0.08, 0.68, 0.3)
	c.polygon(colornames.Dimgray, 0.56, 0.2, 0.72, 0.2, 0.72, 0.34, 0.56, 0.34)
	c.ellipse(0.47, 0.58, 0.38, 0.38, colornames.Black)
	c.ellipse(0.34, 0.44, 0.08, 0.06, colornames.Gray)
	return c.img
}

func paintLifeGone(size int) *image.RGBA {
	img := paintPenguin(size, colornames.Gray)
	c := &canvas{img: img, r: vector.NewRasterizer(size, size), size: float32(size)}
	c.polygon(colornames.Red, 0.1, 0.18, 0.18, 0.1, 0.9, 0.82, 0.82, 0.9)
	c.polygon(colornames.Red, 0.82, 0.1, 0.9, 0.18, 0.18, 0.9, 0.1, 0.82)
	return img
}

func paintBackground(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	top := colornames.Midnightblue
	bottom := colornames.Steelblue
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		row := color.RGBA{
			R: mix(top.R, bottom.R, t),
			G: mix(top.G, bottom.G, t),
			B: mix(top.B, bottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(0, y, w, y+1), image.NewUniform(row), image.Point{}, draw.Src)
	}
	return img
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

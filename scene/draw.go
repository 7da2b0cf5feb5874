package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slicerman/assets"
	"github.com/milk9111/slicerman/common"
)

// Label is a line of HUD text anchored at a world position (y-up, baseline).
type Label struct {
	Text     string
	X, Y     float64
	Size     float64
	Centered bool
}

var (
	trailOuter = color.RGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
	trailInner = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ScoreLabel is the running score shown while the HUD is visible.
func (s *GameScene) ScoreLabel() Label {
	return Label{Text: s.round.ScoreLabel(), X: 20, Y: 700, Size: 48}
}

func (s *GameScene) Draw(screen *ebiten.Image) {
	if s.cfg.Background != nil {
		screen.DrawImage(s.cfg.Background, nil)
	}
	s.systems.Draw(s.world, screen)
	s.drawTrail(screen)

	if s.hud {
		drawLabel(screen, s.ScoreLabel())
	}
	for _, l := range s.overlay {
		drawLabel(screen, l)
	}
}

func (s *GameScene) drawTrail(screen *ebiten.Image) {
	if !s.trail.visible || len(s.trail.points) < 2 {
		return
	}
	outer := fade(trailOuter, s.trail.alpha)
	inner := fade(trailInner, s.trail.alpha)

	pts := s.trail.points
	for i := 1; i < len(pts); i++ {
		x0, y0 := float32(pts[i-1].X), float32(common.ToScreenY(pts[i-1].Y))
		x1, y1 := float32(pts[i].X), float32(common.ToScreenY(pts[i].Y))
		vector.StrokeLine(screen, x0, y0, x1, y1, 9, outer, true)
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := float32(pts[i-1].X), float32(common.ToScreenY(pts[i-1].Y))
		x1, y1 := float32(pts[i].X), float32(common.ToScreenY(pts[i].Y))
		vector.StrokeLine(screen, x0, y0, x1, y1, 5, inner, true)
	}
}

func fade(c color.RGBA, alpha float64) color.RGBA {
	a := common.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func drawLabel(screen *ebiten.Image, l Label) {
	if l.Text == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(l.X, common.ToScreenY(l.Y))
	if l.Centered {
		op.PrimaryAlign = text.AlignCenter
	}
	op.SecondaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, l.Text, assets.Face(l.Size), op)
}

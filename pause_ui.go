package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/slicerman/assets"
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/scene"
)

var (
	panelColor    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	buttonHover   = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	buttonOff     = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
	textColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	textColorDim  = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	highlightText = color.NRGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
)

type menuButton struct {
	label    string
	disabled bool
	onClick  func()
}

// NewPauseUI builds the centered pause menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := assets.UIFace()
	panel := newPanel(common.BaseWidth/2, common.BaseHeight/2, widget.AnchorLayoutPositionCenter)

	panel.AddChild(newText("Paused", &face, textColor))
	panel.AddChild(newText("Esc or P to resume, M to mute", &face, textColorDim))
	for _, b := range []menuButton{
		{label: "Resume", onClick: func() { g.SetPaused(false) }},
		{label: "Restart", onClick: func() {
			g.SetPaused(false)
			g.Restart()
		}},
		{label: "Quit", onClick: func() { g.quit = true }},
	} {
		panel.AddChild(newButton(b, &face))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewGameOverUI builds the panel shown under the game-over labels.
func NewGameOverUI(g *Game, r scene.Result, best int, newBest bool) *ebitenui.UI {
	face := assets.UIFace()
	panel := newPanel(common.BaseWidth/3, 0, widget.AnchorLayoutPositionEnd)

	if newBest {
		panel.AddChild(newText(fmt.Sprintf("New best: %d", r.Score), &face, highlightText))
	} else {
		panel.AddChild(newText(fmt.Sprintf("Best: %d", best), &face, textColor))
	}
	panel.AddChild(newButton(menuButton{label: "Play again", onClick: g.Restart}, &face))
	panel.AddChild(newButton(menuButton{label: "Copy score", disabled: !g.clipboard, onClick: g.CopyScore}, &face))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func newPanel(minW, minH int, vertical widget.AnchorLayoutPosition) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   vertical,
			}),
		),
	)
}

func newText(label string, face *ebtext.Face, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func newButton(b menuButton, face *ebtext.Face) *widget.Button {
	idle := imageui.NewNineSliceColor(buttonColor)
	btn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     idle,
			Hover:    imageui.NewNineSliceColor(buttonHover),
			Pressed:  idle,
			Disabled: imageui.NewNineSliceColor(buttonOff),
		}),
		widget.ButtonOpts.Text(b.label, face, &widget.ButtonTextColor{Idle: textColor, Disabled: textColorDim}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
			Stretch:  true,
		})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if b.onClick != nil {
				b.onClick()
			}
		}),
	)
	btn.GetWidget().Disabled = b.disabled
	return btn
}

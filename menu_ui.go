package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MenuUI is the movement-mode selection scene.
type MenuUI struct {
	UI        *ebitenui.UI
	modeLabel *widget.Text
	infoLabel *widget.Text
}

// NewMenuUI builds a centered panel with one button per movement mode and a
// Start button. Buttons are plain colored nine-slices labeled with the
// built-in basic font.
func NewMenuUI(g *Game) *MenuUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})
	startImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x26, G: 0xa2, B: 0x69, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("VR Locomotion", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	m := &MenuUI{}
	m.modeLabel = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	m.infoLabel = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xc0, G: 0xbf, B: 0xbc, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(m.modeLabel)

	for _, mode := range component.MovementModes {
		mode := mode
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: hoverImg}),
			widget.ButtonOpts.Text(mode.Label(), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.SetMode(mode)
			}),
		))
	}

	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: startImg, Pressed: startImg}),
		widget.ButtonOpts.Text("Start", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.LoadScene(sceneArena)
		}),
	))
	panel.AddChild(m.infoLabel)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	m.UI = &ebitenui.UI{Container: root}
	m.Refresh(g)
	return m
}

// Refresh updates the labels from the game state.
func (m *MenuUI) Refresh(g *Game) {
	if m == nil || g == nil {
		return
	}
	m.modeLabel.Label = fmt.Sprintf("Mode: %s  (D-pad left/right)", g.mode.Label())
	if g.lastResult != nil {
		m.infoLabel.Label = fmt.Sprintf("Last session: %d points with %s", g.lastResult.Score, g.lastResult.Mode.Label())
	} else {
		m.infoLabel.Label = "D-pad up or Enter to start"
	}
}

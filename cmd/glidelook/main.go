// Command glidelook is a small playstage demo: a green triangle turns
// towards the pointer, glides after it, and shouts when it catches up.
// Escape pauses, C copies the pointer's world position to the clipboard.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/playstage"
)

type game struct {
	scene  *playstage.Scene
	ui     *ebitenui.UI
	paused bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *game) Layout(ow, oh int) (int, int) {
	return g.scene.Layout(ow, oh)
}

// newPauseUI builds a centered panel with a Resume button, using colored
// nine-slices and the built-in basic font.
func newPauseUI(g *game, width, height int) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.paused = false
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func main() {
	cfg := playstage.DefaultConfig()
	cfg.Title = "glide look"
	cfg.Width = 800
	cfg.Height = 600
	cfg.BackgroundColor = "midnightblue"

	scene := playstage.NewScene(cfg)

	triangle, err := scene.NewPolygonFromPoints([]cp.Vector{
		{X: 50, Y: 50}, {X: 20, Y: 150}, {X: 80, Y: 150},
	}, playstage.Options{Color: playstage.ColorByName("green")})
	if err != nil {
		log.Fatal(err)
	}

	clipboardReady := clipboard.Init() == nil

	scene.OnFrame(func() {
		mouse := scene.MouseXY()

		triangle.TurnTowards(mouse)
		triangle.GlideTo(mouse, 2)

		if triangle.TouchesAt(mouse) {
			triangle.AddText("boom", "BOOM!!")
		} else {
			triangle.RemoveText("boom")
		}

		if clipboardReady && inpututil.IsKeyJustPressed(ebiten.KeyC) {
			clipboard.Write(clipboard.FmtText, []byte(fmt.Sprintf("%.1f, %.1f", mouse.X, mouse.Y)))
		}
	})

	g := &game{scene: scene}
	g.ui = newPauseUI(g, cfg.Width, cfg.Height)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.FPS)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

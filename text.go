package playstage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp/v2"

	"github.com/milk9111/playstage/render"
)

// TextInfo is a text overlay. Actor overlays position relative to the
// actor's bounding box; scene overlays position in screen pixels.
type TextInfo struct {
	Text     string
	Pos      cp.Vector
	FontName string
	FontSize float64
	Color    color.Color

	// Background, when non-nil, fills the measured text box first.
	Background color.Color
}

func (ti *TextInfo) face() text.Face {
	size := ti.FontSize
	if size <= 0 {
		size = 16
	}
	return text.NewGoXFace(render.Face(ti.FontName, size))
}

// drawText renders ti onto dst with its top-left corner at (x, y) in
// pixel coordinates.
func drawText(dst *ebiten.Image, ti *TextInfo, x, y float64) {
	face := ti.face()

	if ti.Background != nil {
		w, h := text.Measure(ti.Text, face, face.Metrics().HLineGap)
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), ti.Background, false)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	c := ti.Color
	if c == nil {
		c = color.White
	}
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, ti.Text, face, op)
}

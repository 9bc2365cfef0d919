package playstage

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp/v2"

	"github.com/milk9111/playstage/common"
	"github.com/milk9111/playstage/render"
)

// blendMask keeps the destination only where the source has alpha,
// clipping a painted costume to the shape silhouette.
var blendMask = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

var pixel *ebiten.Image

func whitePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

type outlineKind int

const (
	outlineCircle outlineKind = iota
	outlinePolygon
)

// outlineVertices returns the shape's outline in body-local coordinates.
// Circles yield their bounding square plus a retained radius; segments
// yield the quad around the endpoints.
func outlineVertices(shape *cp.Shape) ([]cp.Vector, float64, outlineKind, error) {
	switch class := shape.Class.(type) {
	case *cp.Circle:
		r := class.Radius()
		verts := []cp.Vector{
			{X: -r, Y: r}, {X: r, Y: r}, {X: r, Y: -r}, {X: -r, Y: -r},
		}
		return verts, r, outlineCircle, nil
	case *cp.PolyShape:
		n := class.Count()
		verts := make([]cp.Vector, 0, n)
		for i := 0; i < n; i++ {
			verts = append(verts, class.Vert(i))
		}
		return verts, 0, outlinePolygon, nil
	case *cp.Segment:
		thickness := math.Max(class.Radius()*2, 1)
		return common.SegmentQuad(class.A(), class.B(), thickness), 0, outlinePolygon, nil
	default:
		return nil, 0, 0, ErrUnsupportedShape
	}
}

// projection is a shape outline mapped to top-down screen pixels.
type projection struct {
	verts    []cp.Vector
	centroid cp.Vector
	heading  cp.Vector
	radius   float64
	kind     outlineKind
}

// projectOutline carries local outline vertices through body rotation,
// world translation, the camera and the vertical flip. Two synthetic
// points ride along: the body origin and a unit heading point.
func projectOutline(verts []cp.Vector, radius float64, kind outlineKind, pos cp.Vector, angle float64, cam *Camera, screenH float64) projection {
	all := make([]cp.Vector, len(verts), len(verts)+2)
	copy(all, verts)
	all = append(all, cp.Vector{}, cp.Vector{X: 1, Y: 0})

	rot := cp.ForAngle(angle)
	for i, p := range all {
		all[i] = p.Rotate(rot).Add(pos)
	}
	all = cam.Apply(all)

	for i, p := range all {
		all[i] = cp.Vector{X: p.X, Y: screenH - p.Y}
	}

	n := len(all)
	return projection{
		verts:    all[:n-2],
		centroid: all[n-2],
		heading:  all[n-1],
		radius:   radius * cam.Scale(),
		kind:     kind,
	}
}

func fanTriangles(dst *ebiten.Image, verts []cp.Vector, c color.Color) {
	if len(verts) < 3 {
		return
	}
	r, g, b, a := c.RGBA()
	cr := float32(r) / 0xffff
	cg := float32(g) / 0xffff
	cb := float32(b) / 0xffff
	ca := float32(a) / 0xffff

	vs := make([]ebiten.Vertex, len(verts))
	for i, p := range verts {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	is := make([]uint16, 0, (len(verts)-2)*3)
	for i := 1; i < len(verts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(vs, is, whitePixel(), nil)
}

func strokeOutline(dst *ebiten.Image, verts []cp.Vector, width float32, c color.Color) {
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}

// paintShape fills or strokes the projected outline onto dst, with
// vertices already offset into dst's pixel space.
func paintShape(dst *ebiten.Image, p projection, local []cp.Vector, center cp.Vector, c color.Color, border float64) {
	switch p.kind {
	case outlineCircle:
		if border > 0 {
			vector.StrokeCircle(dst, float32(center.X), float32(center.Y), float32(p.radius), float32(border), c, true)
		} else {
			vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(p.radius), c, true)
		}
	case outlinePolygon:
		if border > 0 {
			strokeOutline(dst, local, float32(border), c)
		} else {
			fanTriangles(dst, local, c)
		}
	}
}

// silhouette paints the filled shape in solid white, used as an alpha
// mask for costume clipping.
func silhouette(size cp.Vector, p projection, local []cp.Vector, center cp.Vector) *ebiten.Image {
	mask := ebiten.NewImage(int(math.Ceil(size.X)), int(math.Ceil(size.Y)))
	switch p.kind {
	case outlineCircle:
		vector.DrawFilledCircle(mask, float32(center.X), float32(center.Y), float32(p.radius), color.White, true)
	case outlinePolygon:
		fanTriangles(mask, local, color.White)
	}
	return mask
}

// rotateAbout returns a transform rotating by angle around c.
func rotateAbout(angle float64, c cp.Vector) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-c.X, -c.Y)
	g.Rotate(angle)
	g.Translate(c.X, c.Y)
	return g
}

// paintCostume draws the current costume frame clipped to the shape.
func paintCostume(scratch *ebiten.Image, a *Actor, p projection, local []cp.Vector, center cp.Vector, size cp.Vector, cam *Camera, bodyAngle float64) {
	img, err := a.current.Image()
	if err != nil {
		return
	}
	if s := cam.Scale(); s != 1 {
		img = render.Scaled(img, s, s)
	}

	layer := ebiten.NewImage(scratch.Bounds().Dx(), scratch.Bounds().Dy())
	fw := float64(img.Bounds().Dx())
	fh := float64(img.Bounds().Dy())

	switch a.current.Mode {
	case PaintTile:
		tiles := ebiten.NewImage(scratch.Bounds().Dx(), scratch.Bounds().Dy())
		for y := 0.0; y < size.Y; y += fh {
			for x := 0.0; x < size.X; x += fw {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(x, y)
				tiles.DrawImage(img, op)
			}
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = rotateAbout(-(bodyAngle + cam.Theta()), center)
		layer.DrawImage(tiles, op)
	default:
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-fw/2, -fh/2)
		op.GeoM.Rotate(-(bodyAngle + cam.Theta()))
		op.GeoM.Translate(center.X, center.Y)
		layer.DrawImage(img, op)
	}

	mask := silhouette(size, p, local, center)
	mop := &ebiten.DrawImageOptions{}
	mop.Blend = blendMask
	layer.DrawImage(mask, mop)

	scratch.DrawImage(layer, nil)
}

// Draw renders the actor onto screen through cam. Hidden actors are
// skipped.
func (a *Actor) Draw(screen *ebiten.Image, cam *Camera) error {
	if !a.visible {
		return nil
	}

	verts, radius, kind, err := outlineVertices(a.shape)
	if err != nil {
		return err
	}
	screenH := float64(screen.Bounds().Dy())
	p := projectOutline(verts, radius, kind, a.Position(), a.Body().Angle(), cam, screenH)

	b := common.BoundsOf(p.verts)
	if p.kind == outlineCircle {
		b = common.Bounds{
			MinX: p.centroid.X - p.radius, MinY: p.centroid.Y - p.radius,
			MaxX: p.centroid.X + p.radius, MaxY: p.centroid.Y + p.radius,
		}
	}
	size := cp.Vector{X: math.Max(b.Width(), 1), Y: math.Max(b.Height(), 1)}
	scratch := ebiten.NewImage(int(math.Ceil(size.X)), int(math.Ceil(size.Y)))

	origin := cp.Vector{X: b.MinX, Y: b.MinY}
	local := make([]cp.Vector, len(p.verts))
	for i, v := range p.verts {
		local[i] = v.Sub(origin)
	}
	center := p.centroid.Sub(origin)

	paintShape(scratch, p, local, center, a.color, a.border*cam.Scale())

	if a.current != nil && a.current.FrameCount() > 0 {
		paintCostume(scratch, a, p, local, center, size, cam, a.Body().Angle())
	}

	if a.draw.HeadingLineWidth > 0 {
		length := p.radius
		if length == 0 {
			length = math.Max(size.X, size.Y) / 2
		}
		dir := p.heading.Sub(p.centroid)
		if l := dir.Length(); l > 0 {
			dir = dir.Mult(length / l)
		}
		end := center.Add(dir)
		hc := a.draw.HeadingLineColor
		if hc == nil {
			hc = color.White
		}
		vector.StrokeLine(scratch,
			float32(center.X), float32(center.Y),
			float32(end.X), float32(end.Y),
			float32(a.draw.HeadingLineWidth*cam.Scale()), hc, true)
	}

	if a.draw.CenterRadius > 0 {
		cc := a.draw.CenterColor
		if cc == nil {
			cc = color.White
		}
		vector.DrawFilledCircle(scratch, float32(center.X), float32(center.Y), float32(a.draw.CenterRadius*cam.Scale()), cc, true)
	}

	for _, ti := range a.texts {
		drawText(scratch, ti, ti.Pos.X, ti.Pos.Y)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.MinX, b.MinY)
	screen.DrawImage(scratch, op)
	return nil
}

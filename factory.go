package playstage

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/milk9111/playstage/common"
	"github.com/milk9111/playstage/render"
)

// Options configure a new actor. The zero value makes a visible red
// kinematic actor centered at the origin.
type Options struct {
	Color color.Color

	// ImagePaths become the frames of the actor's default costume.
	ImagePaths       []string
	TransparentColor color.Color
	DisableAlpha     bool
	ScaleX, ScaleY   float64
	Paint            PaintMode
	CostumeName      string

	// Placement: at most one of BottomLeft and Center may be set.
	// Neither centers the actor at the origin.
	BottomLeft *cp.Vector
	Center     *cp.Vector

	Angle  float64
	Border float64
	Hidden bool
	Draw   DrawOptions

	// Any of Density, Mass or Moment makes the body dynamic. Fixed
	// makes it static. Otherwise it is kinematic.
	Density *float64
	Mass    *float64
	Moment  *float64
	Fixed   bool

	// NoRotate pins the body with an infinite moment.
	NoRotate bool

	Elasticity *float64
	Friction   *float64

	Velocity        cp.Vector
	AngularVelocity float64
}

// resolvePosition turns the placement options into a body position,
// given the shape's local bounding box around the body origin.
func resolvePosition(o Options, local common.Bounds) (cp.Vector, error) {
	if o.BottomLeft != nil && o.Center != nil {
		return cp.Vector{}, ErrConflictingPlacement
	}
	if o.BottomLeft != nil {
		return o.BottomLeft.Sub(cp.Vector{X: local.MinX, Y: local.MinY}), nil
	}
	if o.Center != nil {
		return o.Center.Sub(cp.Vector{
			X: (local.MinX + local.MaxX) / 2,
			Y: (local.MinY + local.MaxY) / 2,
		}), nil
	}
	return cp.Vector{}, nil
}

// bodyFor derives the body kind from the options. For dynamic bodies,
// mass defaults to density times area (or 1) and defaultMoment receives
// the mass actually used.
func bodyFor(o Options, area float64, defaultMoment func(mass float64) float64) *cp.Body {
	dynamic := o.Density != nil || o.Mass != nil || o.Moment != nil
	switch {
	case dynamic:
		mass := 1.0
		if o.Density != nil {
			mass = *o.Density * area
		}
		if o.Mass != nil {
			mass = *o.Mass
		}
		moment := defaultMoment(mass)
		if o.Moment != nil {
			moment = *o.Moment
		}
		if o.NoRotate {
			moment = math.Inf(1)
		}
		return cp.NewBody(mass, moment)
	case o.Fixed:
		return cp.NewStaticBody()
	default:
		return cp.NewKinematicBody()
	}
}

// finish applies shared options, wraps the shape in an actor and adds it
// to the scene.
func (s *Scene) finish(shape *cp.Shape, o Options) (*Actor, error) {
	if o.Friction != nil {
		shape.SetFriction(*o.Friction)
	}
	if o.Elasticity != nil {
		shape.SetElasticity(*o.Elasticity)
	}

	c := o.Color
	if c == nil {
		c = ColorByName("red")
	}
	a := newActor(s, shape, c, o.Border, o.Draw, !o.Hidden)

	body := shape.Body()
	body.SetAngle(o.Angle * math.Pi / 180)
	if body.GetType() != cp.BODY_STATIC {
		body.SetVelocityVector(o.Velocity)
		body.SetAngularVelocity(o.AngularVelocity * math.Pi / 180)
	}

	if len(o.ImagePaths) > 0 {
		name := o.CostumeName
		if name == "" {
			name = "default"
		}
		costume := NewCostume(name, o.TransparentColor, !o.DisableAlpha, o.Paint)
		sx, sy := o.ScaleX, o.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		costume.ScaleX, costume.ScaleY = sx, sy
		if err := costume.AddImages(o.ImagePaths...); err != nil {
			return nil, fmt.Errorf("costume images: %w", err)
		}
		a.AddCostume(costume)
	}

	s.add(a)
	return a, nil
}

// NewRect creates a rectangular actor of the given size.
func (s *Scene) NewRect(width, height float64, o Options) (*Actor, error) {
	local := common.Bounds{MinX: -width / 2, MinY: -height / 2, MaxX: width / 2, MaxY: height / 2}
	pos, err := resolvePosition(o, local)
	if err != nil {
		return nil, err
	}

	body := bodyFor(o, width*height, func(mass float64) float64 {
		return cp.MomentForBox(mass, width, height)
	})
	body.SetPosition(pos)
	shape := cp.NewBox(body, width, height, 0)
	return s.finish(shape, o)
}

// NewCircle creates a circular actor of the given radius.
func (s *Scene) NewCircle(radius float64, o Options) (*Actor, error) {
	local := common.Bounds{MinX: -radius, MinY: -radius, MaxX: radius, MaxY: radius}
	pos, err := resolvePosition(o, local)
	if err != nil {
		return nil, err
	}

	body := bodyFor(o, math.Pi*radius*radius, func(mass float64) float64 {
		return cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	})
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	return s.finish(shape, o)
}

// NewPolygon creates a regular polygon actor inscribed in a width by
// height box.
func (s *Scene) NewPolygon(sides int, width, height float64, o Options) (*Actor, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", sides)
	}
	points := common.RegularPolygon(sides, -width/2, -height/2, width, height)
	return s.NewPolygonFromPoints(points, o)
}

// NewPolygonFromPoints creates a polygon actor from world-space points.
// The body sits at the points' centroid; placement options override it.
func (s *Scene) NewPolygonFromPoints(points []cp.Vector, o Options) (*Actor, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
	}

	centroid := common.Centroid(points)
	local := make([]cp.Vector, len(points))
	for i, p := range points {
		local[i] = p.Sub(centroid)
	}

	b := common.BoundsOf(local)
	pos, err := resolvePosition(o, b)
	if err != nil {
		return nil, err
	}
	if o.BottomLeft == nil && o.Center == nil {
		pos = centroid
	}

	area := math.Abs(cp.AreaForPoly(len(local), local, 0))
	body := bodyFor(o, area, func(mass float64) float64 {
		return cp.MomentForPoly(mass, len(local), local, cp.Vector{}, 0)
	})
	body.SetPosition(pos)
	shape := cp.NewPolyShapeRaw(body, len(local), local, 1)
	return s.finish(shape, o)
}

// NewSegmentActor creates a segment actor between two world points with
// the given thickness.
func (s *Scene) NewSegmentActor(a, b cp.Vector, thickness float64, o Options) (*Actor, error) {
	mid := a.Add(b).Mult(0.5)
	la := a.Sub(mid)
	lb := b.Sub(mid)

	bounds := common.BoundsOf(common.SegmentQuad(la, lb, thickness))
	pos, err := resolvePosition(o, bounds)
	if err != nil {
		return nil, err
	}
	if o.BottomLeft == nil && o.Center == nil {
		pos = mid
	}

	length := b.Sub(a).Length()
	body := bodyFor(o, length*thickness, func(mass float64) float64 {
		return cp.MomentForBox(mass, length, thickness)
	})
	body.SetPosition(pos)
	shape := cp.NewSegment(body, la, lb, thickness/2)
	return s.finish(shape, o)
}

// NewImage creates a rectangular actor sized to the first image in
// o.ImagePaths, which also becomes its costume.
func (s *Scene) NewImage(o Options) (*Actor, error) {
	if len(o.ImagePaths) == 0 {
		return nil, ErrNoImages
	}
	im, err := render.LoadRaw(o.ImagePaths[0])
	if err != nil {
		return nil, err
	}
	sx, sy := o.ScaleX, o.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	w := float64(im.Bounds().Dx()) * sx
	h := float64(im.Bounds().Dy()) * sy
	return s.NewRect(w, h, o)
}

// NewScreenWalls builds four static segment walls just inside the screen
// edges and returns them in left, right, bottom, top order.
func (s *Scene) NewScreenWalls(thickness float64, o Options) ([]*Actor, error) {
	if o.BottomLeft != nil || o.Center != nil {
		return nil, ErrConflictingPlacement
	}
	o.Fixed = true
	o.Density, o.Mass, o.Moment = nil, nil, nil

	w := s.ScreenWidth()
	h := s.ScreenHeight()
	edges := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: 0, Y: h}},
		{{X: w, Y: 0}, {X: w, Y: h}},
		{{X: 0, Y: 0}, {X: w, Y: 0}},
		{{X: 0, Y: h}, {X: w, Y: h}},
	}

	walls := make([]*Actor, 0, len(edges))
	for _, e := range edges {
		wall, err := s.NewSegmentActor(e[0], e[1], thickness, o)
		if err != nil {
			return nil, err
		}
		walls = append(walls, wall)
	}
	return walls, nil
}

// recreateShape swaps the actor's shape for a rebuilt one on the same
// body, carrying the material over. The body stays in the space.
func (a *Actor) recreateShape(build func(*cp.Body) *cp.Shape) {
	old := a.shape
	fresh := build(old.Body())
	fresh.SetFriction(old.Friction())
	fresh.SetElasticity(old.Elasticity())
	fresh.SetCollisionType(old.CollisionType())
	fresh.SetFilter(old.Filter)
	fresh.SetSurfaceV(a.surfaceV)

	if a.scene != nil {
		a.scene.space.RemoveShape(old)
		a.scene.space.AddShape(fresh)
	}
	a.shape = fresh
}

// FitToImage resizes the shape to the current costume frame. Shape
// classes other than circle, polygon and segment are unsupported.
func (a *Actor) FitToImage() error {
	if a.current == nil {
		return ErrNoImages
	}
	img, err := a.current.Image()
	if err != nil {
		return err
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	switch class := a.shape.Class.(type) {
	case *cp.Circle:
		r := math.Max(w, h) / 2
		a.recreateShape(func(b *cp.Body) *cp.Shape {
			return cp.NewCircle(b, r, cp.Vector{})
		})
	case *cp.PolyShape:
		n := class.Count()
		verts := make([]cp.Vector, n)
		for i := 0; i < n; i++ {
			verts[i] = class.Vert(i)
		}
		b := common.BoundsOf(verts)
		sx, sy := 1.0, 1.0
		if b.Width() > 0 {
			sx = w / b.Width()
		}
		if b.Height() > 0 {
			sy = h / b.Height()
		}
		for i, v := range verts {
			verts[i] = cp.Vector{X: v.X * sx, Y: v.Y * sy}
		}
		a.recreateShape(func(body *cp.Body) *cp.Shape {
			return cp.NewPolyShapeRaw(body, n, verts, 1)
		})
	case *cp.Segment:
		va, vb := class.A(), class.B()
		length := vb.Sub(va).Length()
		if length > 0 {
			scale := w / length
			va = va.Mult(scale)
			vb = vb.Mult(scale)
		}
		radius := h / 2
		a.recreateShape(func(body *cp.Body) *cp.Shape {
			return cp.NewSegment(body, va, vb, radius)
		})
	default:
		return ErrUnsupportedShape
	}
	return nil
}

// FitImage rescales the current costume so its frames match the shape's
// bounding box.
func (a *Actor) FitImage() error {
	if a.current == nil {
		return ErrNoImages
	}
	ow, oh, err := a.current.OriginalSize()
	if err != nil {
		return err
	}

	switch a.shape.Class.(type) {
	case *cp.Circle, *cp.PolyShape, *cp.Segment:
	default:
		return ErrUnsupportedShape
	}

	w := a.Width()
	h := a.Height()
	if ow == 0 || oh == 0 {
		return nil
	}
	a.current.SetScale(w/ow, h/oh)
	return nil
}

package playstage

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp/v2"
)

func TestProjectOutlineFlipsY(t *testing.T) {
	verts := []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	p := projectOutline(verts, 0, outlinePolygon, cp.Vector{}, 0, NewCamera(), 100)

	if p.verts[0].Y != 100 {
		t.Errorf("origin Y = %v, want 100 (flipped)", p.verts[0].Y)
	}
	if p.verts[2].Y != 90 {
		t.Errorf("top vertex Y = %v, want 90", p.verts[2].Y)
	}
}

func TestProjectOutlineTranslates(t *testing.T) {
	verts := []cp.Vector{{X: 0, Y: 0}}
	p := projectOutline(verts, 0, outlinePolygon, cp.Vector{X: 30, Y: 40}, 0, NewCamera(), 100)
	want := cp.Vector{X: 30, Y: 60}
	if !vecAlmostEqual(p.verts[0], want) {
		t.Errorf("got %+v, want %+v", p.verts[0], want)
	}
}

func TestProjectOutlineSyntheticPoints(t *testing.T) {
	verts := []cp.Vector{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 0, Y: 5}}
	p := projectOutline(verts, 0, outlinePolygon, cp.Vector{X: 10, Y: 10}, 0, NewCamera(), 100)

	if len(p.verts) != 3 {
		t.Fatalf("synthetic points leaked into outline: %d verts", len(p.verts))
	}
	if !vecAlmostEqual(p.centroid, cp.Vector{X: 10, Y: 90}) {
		t.Errorf("centroid = %+v, want (10, 90)", p.centroid)
	}
	// Unrotated heading points along +X.
	if !vecAlmostEqual(p.heading, cp.Vector{X: 11, Y: 90}) {
		t.Errorf("heading = %+v, want (11, 90)", p.heading)
	}
}

func TestProjectOutlineRotatesHeading(t *testing.T) {
	verts := []cp.Vector{{X: 0, Y: 0}}
	p := projectOutline(verts, 0, outlinePolygon, cp.Vector{}, math.Pi/2, NewCamera(), 100)

	// Heading rotated 90 degrees CCW in world space points up, which is
	// -Y after the flip.
	want := cp.Vector{X: 0, Y: 99}
	if !vecAlmostEqual(p.heading, want) {
		t.Errorf("heading = %+v, want %+v", p.heading, want)
	}
}

func TestProjectOutlineScalesRadius(t *testing.T) {
	cam := NewCamera()
	cam.ZoomTo(3)
	p := projectOutline([]cp.Vector{{}}, 5, outlineCircle, cp.Vector{}, 0, cam, 100)
	if p.radius != 15 {
		t.Errorf("radius = %v, want 15", p.radius)
	}
}

func TestRotateAbout(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		center cp.Vector
		in     cp.Vector
		want   cp.Vector
	}{
		{"zero angle is identity", 0, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 3, Y: 4}, cp.Vector{X: 3, Y: 4}},
		{"pivot is fixed", math.Pi / 2, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 10, Y: 10}},
		{"quarter turn about pivot", math.Pi / 2, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 20, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rotateAbout(tt.angle, tt.center)
			x, y := g.Apply(tt.in.X, tt.in.Y)
			if math.Abs(x-tt.want.X) > 1e-9 || math.Abs(y-tt.want.Y) > 1e-9 {
				t.Errorf("got (%v, %v), want %+v", x, y, tt.want)
			}
		})
	}
}

func TestOutlineVerticesPolygon(t *testing.T) {
	body := cp.NewBody(1, 1)
	raw := []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}
	shape := cp.NewPolyShapeRaw(body, 3, raw, 0)

	verts, radius, kind, err := outlineVertices(shape)
	if err != nil {
		t.Fatal(err)
	}
	if kind != outlinePolygon {
		t.Error("wrong kind")
	}
	if radius != 0 {
		t.Errorf("radius = %v, want 0", radius)
	}
	if len(verts) != 3 {
		t.Errorf("got %d verts, want 3", len(verts))
	}
}

func TestOutlineVerticesCircle(t *testing.T) {
	body := cp.NewBody(1, 1)
	shape := cp.NewCircle(body, 7, cp.Vector{})

	verts, radius, kind, err := outlineVertices(shape)
	if err != nil {
		t.Fatal(err)
	}
	if kind != outlineCircle {
		t.Error("wrong kind")
	}
	if radius != 7 {
		t.Errorf("radius = %v, want 7", radius)
	}
	b := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range verts {
		b.L = math.Min(b.L, v.X)
		b.B = math.Min(b.B, v.Y)
		b.R = math.Max(b.R, v.X)
		b.T = math.Max(b.T, v.Y)
	}
	if b.R-b.L != 14 || b.T-b.B != 14 {
		t.Errorf("bounding square = %+v, want 14x14", b)
	}
}

func TestOutlineVerticesSegment(t *testing.T) {
	body := cp.NewStaticBody()
	shape := cp.NewSegment(body, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 20, Y: 0}, 2)

	verts, _, kind, err := outlineVertices(shape)
	if err != nil {
		t.Fatal(err)
	}
	if kind != outlinePolygon {
		t.Error("wrong kind")
	}
	if len(verts) != 4 {
		t.Errorf("got %d verts, want 4", len(verts))
	}
}

// Package common holds small geometry helpers shared across playstage.
package common

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate returns the point a fraction t of the way from a to b.
func Interpolate(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Bounds is an axis-aligned bounding rectangle of a point set.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf computes the axis-aligned bounds of points. An empty slice
// yields the zero Bounds.
func BoundsOf(points []cp.Vector) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: points[0].X, MinY: points[0].Y,
		MaxX: points[0].X, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// RegularPolygon returns the vertices of a regular polygon with the given
// number of sides, inscribed in the rectangle at (left, top) with the given
// width and height. The first vertex points straight up.
func RegularPolygon(sides int, left, top, width, height float64) []cp.Vector {
	if sides < 3 {
		return nil
	}
	cx := left + width/2
	cy := top + height/2
	rx := width / 2
	ry := height / 2

	points := make([]cp.Vector, 0, sides)
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		a := -math.Pi/2 + step*float64(i)
		points = append(points, cp.Vector{
			X: cx + rx*math.Cos(a),
			Y: cy + ry*math.Sin(a),
		})
	}
	return points
}

// SegmentQuad returns the four corners of a rectangle of the given
// thickness centered on the segment from a to b. A zero-length segment
// yields a degenerate quad at a.
func SegmentQuad(a, b cp.Vector, thickness float64) []cp.Vector {
	d := b.Sub(a)
	if d.Length() == 0 {
		return []cp.Vector{a, a, a, a}
	}
	n := cp.Vector{X: -d.Y, Y: d.X}.Normalize().Mult(thickness / 2)
	return []cp.Vector{
		a.Add(n),
		b.Add(n),
		b.Sub(n),
		a.Sub(n),
	}
}

// Centroid returns the arithmetic mean of points, or the zero vector for
// an empty slice.
func Centroid(points []cp.Vector) cp.Vector {
	if len(points) == 0 {
		return cp.Vector{}
	}
	var c cp.Vector
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mult(1 / float64(len(points)))
}

package playstage

import (
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera pans, rotates and zooms the view of the world. Apply projects
// world points into camera space: scale about the origin, rotate, then
// translate by the negated camera position.
type Camera struct {
	pos   cp.Vector
	angle float64
	scale float64

	cos, sin float64

	scrollX *gween.Tween
	scrollY *gween.Tween
}

// NewCamera returns a camera at the origin with no rotation or zoom.
func NewCamera() *Camera {
	c := &Camera{scale: 1}
	c.updateTransform()
	return c
}

func (c *Camera) updateTransform() {
	rad := c.angle * math.Pi / 180
	c.cos = math.Cos(rad)
	c.sin = math.Sin(rad)
}

// Position returns the camera's bottom-left anchor in world units.
func (c *Camera) Position() cp.Vector { return c.pos }

// Angle returns the camera rotation in degrees.
func (c *Camera) Angle() float64 { return c.angle }

// Scale returns the camera zoom factor.
func (c *Camera) Scale() float64 { return c.scale }

// Theta returns the camera rotation in radians.
func (c *Camera) Theta() float64 { return c.angle * math.Pi / 180 }

func (c *Camera) MoveBy(d cp.Vector) {
	c.pos = c.pos.Add(d)
	c.updateTransform()
}

func (c *Camera) MoveTo(p cp.Vector) {
	c.pos = p
	c.updateTransform()
}

func (c *Camera) TurnBy(degrees float64) {
	c.angle += degrees
	c.updateTransform()
}

func (c *Camera) TurnTo(degrees float64) {
	c.angle = degrees
	c.updateTransform()
}

func (c *Camera) ZoomBy(factor float64) {
	c.scale *= factor
	c.updateTransform()
}

func (c *Camera) ZoomTo(scale float64) {
	c.scale = scale
	c.updateTransform()
}

// Reset restores the identity view.
func (c *Camera) Reset() {
	c.pos = cp.Vector{}
	c.angle = 0
	c.scale = 1
	c.scrollX, c.scrollY = nil, nil
	c.updateTransform()
}

// IsIdentity reports whether Apply would leave points unchanged.
func (c *Camera) IsIdentity() bool {
	return c.pos.X == 0 && c.pos.Y == 0 && c.angle == 0 && c.scale == 1
}

// Apply projects world points into camera space. With an identity camera
// the input slice is returned unchanged; otherwise a new slice is
// allocated.
func (c *Camera) Apply(points []cp.Vector) []cp.Vector {
	if c.IsIdentity() {
		return points
	}
	out := make([]cp.Vector, len(points))
	for i, p := range points {
		x := p.X * c.scale
		y := p.Y * c.scale
		rx := x*c.cos - y*c.sin
		ry := x*c.sin + y*c.cos
		out[i] = cp.Vector{X: rx - c.pos.X, Y: ry - c.pos.Y}
	}
	return out
}

// ApplyPoint projects a single world point into camera space.
func (c *Camera) ApplyPoint(p cp.Vector) cp.Vector {
	return c.Apply([]cp.Vector{p})[0]
}

// ScrollTo starts a smooth glide of the camera position over the given
// duration in seconds. The scene advances it each frame.
func (c *Camera) ScrollTo(target cp.Vector, duration float32) {
	c.scrollX = gween.New(float32(c.pos.X), float32(target.X), duration, ease.OutQuad)
	c.scrollY = gween.New(float32(c.pos.Y), float32(target.Y), duration, ease.OutQuad)
}

// Scrolling reports whether a ScrollTo glide is still in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollX != nil
}

func (c *Camera) updateScroll(dt float32) {
	if c.scrollX == nil {
		return
	}
	x, doneX := c.scrollX.Update(dt)
	y, doneY := c.scrollY.Update(dt)
	c.pos = cp.Vector{X: float64(x), Y: float64(y)}
	c.updateTransform()
	if doneX && doneY {
		c.scrollX, c.scrollY = nil, nil
	}
}

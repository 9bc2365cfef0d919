package playstage

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/milk9111/playstage/common"
)

// Actor couples one physics body and shape with a costume, text overlays
// and visibility. All positions are world units, all angles degrees.
type Actor struct {
	scene *Scene
	shape *cp.Shape

	color  color.Color
	border float64
	draw   DrawOptions

	visible  bool
	costumes map[string]*Costume
	current  *Costume
	texts    map[string]*TextInfo

	behavior *Behavior
	glide    *glideTween

	// cp has no surface velocity getter, so the last set value is kept
	// here.
	surfaceV cp.Vector
}

func newActor(scene *Scene, shape *cp.Shape, c color.Color, border float64, draw DrawOptions, visible bool) *Actor {
	return &Actor{
		scene:    scene,
		shape:    shape,
		color:    c,
		border:   border,
		draw:     draw,
		visible:  visible,
		costumes: map[string]*Costume{},
		texts:    map[string]*TextInfo{},
	}
}

// Shape returns the underlying physics shape.
func (a *Actor) Shape() *cp.Shape { return a.shape }

// Body returns the underlying physics body.
func (a *Actor) Body() *cp.Body { return a.shape.Body() }

// Color returns the fill (or stroke) color.
func (a *Actor) Color() color.Color { return a.color }

// SetColor sets the fill (or stroke) color.
func (a *Actor) SetColor(c color.Color) { a.color = c }

// Border returns the stroke width; 0 means filled.
func (a *Actor) Border() float64 { return a.border }

// SetBorder sets the stroke width; 0 means filled.
func (a *Actor) SetBorder(w float64) { a.border = w }

// SetDrawOptions replaces the debug drawing options.
func (a *Actor) SetDrawOptions(o DrawOptions) { a.draw = o }

// Position and motion.

func (a *Actor) Position() cp.Vector { return a.Body().Position() }

func (a *Actor) SetPosition(p cp.Vector) { a.Body().SetPosition(p) }

func (a *Actor) X() float64 { return a.Body().Position().X }

func (a *Actor) Y() float64 { return a.Body().Position().Y }

func (a *Actor) Velocity() cp.Vector { return a.Body().Velocity() }

func (a *Actor) SetVelocity(v cp.Vector) { a.Body().SetVelocityVector(v) }

// Angle returns the body rotation in degrees.
func (a *Actor) Angle() float64 { return a.Body().Angle() * 180 / math.Pi }

// SetAngle sets the body rotation in degrees.
func (a *Actor) SetAngle(degrees float64) { a.Body().SetAngle(degrees * math.Pi / 180) }

// AngularVelocity returns the spin in degrees per second.
func (a *Actor) AngularVelocity() float64 { return a.Body().AngularVelocity() * 180 / math.Pi }

// SetAngularVelocity sets the spin in degrees per second.
func (a *Actor) SetAngularVelocity(degreesPerSec float64) {
	a.Body().SetAngularVelocity(degreesPerSec * math.Pi / 180)
}

func (a *Actor) Mass() float64 { return a.Body().Mass() }

func (a *Actor) SetMass(m float64) { a.Body().SetMass(m) }

func (a *Actor) Moment() float64 { return a.Body().Moment() }

func (a *Actor) SetMoment(i float64) { a.Body().SetMoment(i) }

// MoveBy offsets the position by d.
func (a *Actor) MoveBy(d cp.Vector) {
	a.SetPosition(a.Position().Add(d))
}

// MoveTo teleports the actor to p.
func (a *Actor) MoveTo(p cp.Vector) { a.SetPosition(p) }

// TurnBy rotates by the given degrees.
func (a *Actor) TurnBy(degrees float64) { a.SetAngle(a.Angle() + degrees) }

// TurnTo sets the absolute rotation in degrees.
func (a *Actor) TurnTo(degrees float64) { a.SetAngle(degrees) }

// TurnTowards aims the actor's heading at target. Aiming at the actor's
// own position is a no-op.
func (a *Actor) TurnTowards(target cp.Vector) {
	d := target.Sub(a.Position())
	if d.Length() == 0 {
		return
	}
	a.Body().SetAngle(d.ToAngle())
}

// GlideTo moves up to speed world units towards target. Each call covers
// a fixed displacement, so calling it every frame produces a constant
// glide that converges and then holds.
func (a *Actor) GlideTo(target cp.Vector, speed float64) {
	d := target.Sub(a.Position())
	dist := d.Length()
	if dist == 0 {
		return
	}
	step := math.Min(speed, dist)
	a.SetPosition(a.Position().Add(d.Normalize().Mult(step)))
}

// Forces and impulses.

func (a *Actor) ApplyForce(f cp.Vector) {
	a.Body().ApplyForceAtLocalPoint(f, cp.Vector{})
}

func (a *Actor) ApplyForceAt(f, localPoint cp.Vector) {
	a.Body().ApplyForceAtLocalPoint(f, localPoint)
}

func (a *Actor) ApplyImpulse(j cp.Vector) {
	a.Body().ApplyImpulseAtLocalPoint(j, cp.Vector{})
}

func (a *Actor) ApplyImpulseAt(j, localPoint cp.Vector) {
	a.Body().ApplyImpulseAtLocalPoint(j, localPoint)
}

// ApplyTorque accumulates torque for the next physics step.
func (a *Actor) ApplyTorque(torque float64) {
	b := a.Body()
	b.SetTorque(b.Torque() + torque)
}

// ApplyImpulseTorque changes angular velocity instantaneously by
// magnitude/moment. A zero or infinite moment makes this a no-op.
func (a *Actor) ApplyImpulseTorque(magnitude float64) {
	m := a.Moment()
	if m == 0 || math.IsInf(m, 0) {
		return
	}
	b := a.Body()
	b.SetAngularVelocity(b.AngularVelocity() + magnitude/m)
}

// Queries.

// DistanceTo returns the distance from the actor's position to p.
func (a *Actor) DistanceTo(p cp.Vector) float64 {
	return p.Sub(a.Position()).Length()
}

// TouchesAt reports whether p is on or inside the shape.
func (a *Actor) TouchesAt(p cp.Vector) bool {
	return a.shape.PointQuery(p).Distance <= 0
}

// Touches reports whether this actor overlaps any of the given actors,
// or, with no arguments, anything at all in the space.
func (a *Actor) Touches(others ...*Actor) bool {
	touched := map[*cp.Shape]bool{}
	a.scene.space.ShapeQuery(a.shape, func(s *cp.Shape, _ *cp.ContactPointSet) {
		touched[s] = true
	})
	if len(others) == 0 {
		return len(touched) > 0
	}
	for _, o := range others {
		if touched[o.shape] {
			return true
		}
	}
	return false
}

// Bounding box accessors. The box is recomputed from the shape on every
// call.

func (a *Actor) bb() cp.BB { return a.shape.CacheBB() }

func (a *Actor) Width() float64  { b := a.bb(); return b.R - b.L }
func (a *Actor) Height() float64 { b := a.bb(); return b.T - b.B }
func (a *Actor) Left() float64   { return a.bb().L }
func (a *Actor) Right() float64  { return a.bb().R }
func (a *Actor) Top() float64    { return a.bb().T }
func (a *Actor) Bottom() float64 { return a.bb().B }

func (a *Actor) TopLeft() cp.Vector     { b := a.bb(); return cp.Vector{X: b.L, Y: b.T} }
func (a *Actor) TopRight() cp.Vector    { b := a.bb(); return cp.Vector{X: b.R, Y: b.T} }
func (a *Actor) BottomLeft() cp.Vector  { b := a.bb(); return cp.Vector{X: b.L, Y: b.B} }
func (a *Actor) BottomRight() cp.Vector { b := a.bb(); return cp.Vector{X: b.R, Y: b.B} }

func (a *Actor) Center() cp.Vector {
	b := a.bb()
	return cp.Vector{X: (b.L + b.R) / 2, Y: (b.B + b.T) / 2}
}

// Rect returns the world-space bounding box.
func (a *Actor) Rect() common.Bounds {
	b := a.bb()
	return common.Bounds{MinX: b.L, MinY: b.B, MaxX: b.R, MaxY: b.T}
}

// Grounding describes the best supporting contact under the actor.
// Friction is the slope estimate |n.x / n.y| of the contact normal.
type Grounding struct {
	Normal      cp.Vector
	Penetration float64
	Impulse     cp.Vector
	Position    cp.Vector
	Velocity    cp.Vector
	Friction    float64
	HasBody     bool
	Body        *cp.Body
}

// GetGrounding scans the body's arbiters for the contact whose upward
// normal is largest.
func (a *Actor) GetGrounding() Grounding {
	g := Grounding{}
	body := a.Body()
	body.EachArbiter(func(arb *cp.Arbiter) {
		set := arb.ContactPointSet()
		if set.Count == 0 {
			return
		}
		n := set.Normal.Neg()
		if n.Y > g.Normal.Y {
			sa, sb := arb.Shapes()
			other := sa.Body()
			if other == body {
				other = sb.Body()
			}
			g.Normal = n
			g.Penetration = -set.Points[0].Distance
			g.Impulse = arb.TotalImpulse()
			g.Position = set.Points[0].PointB
			g.Velocity = other.Velocity()
			g.Friction = math.Abs(n.X / n.Y)
			g.HasBody = true
			g.Body = other
		}
	})
	return g
}

// IsGrounded reports whether the actor rests on another body, that is,
// some contact under it has an upward normal.
func (a *Actor) IsGrounded() bool {
	g := a.GetGrounding()
	return g.HasBody && g.Normal.Y > 1e-9
}

// Material pass-throughs.

func (a *Actor) Friction() float64 { return a.shape.Friction() }

func (a *Actor) SetFriction(f float64) { a.shape.SetFriction(f) }

func (a *Actor) Elasticity() float64 { return a.shape.Elasticity() }

func (a *Actor) SetElasticity(e float64) { a.shape.SetElasticity(e) }

func (a *Actor) SurfaceVelocity() cp.Vector { return a.surfaceV }

func (a *Actor) SetSurfaceVelocity(v cp.Vector) {
	a.surfaceV = v
	a.shape.SetSurfaceV(v)
}

func (a *Actor) CollisionType() cp.CollisionType { return a.shape.CollisionType() }

func (a *Actor) SetCollisionType(t cp.CollisionType) { a.shape.SetCollisionType(t) }

// Group returns the shape's collision filter group.
func (a *Actor) Group() uint { return a.shape.Filter.Group }

// SetGroup puts the shape in a collision filter group; shapes sharing a
// non-zero group never collide with each other.
func (a *Actor) SetGroup(group uint) {
	f := a.shape.Filter
	f.Group = group
	a.shape.SetFilter(f)
}

// Costumes.

// AddCostume stores c by name and makes it current when it is the first.
func (a *Actor) AddCostume(c *Costume) {
	a.costumes[c.Name] = c
	if a.current == nil {
		a.current = c
	}
}

// SetCostume makes the named costume current. An empty name leaves the
// actor with no costume; unknown names are ignored.
func (a *Actor) SetCostume(name string) {
	if name == "" {
		a.current = nil
		return
	}
	if c, ok := a.costumes[name]; ok {
		a.current = c
	}
}

// RemoveCostume drops the named costume. Removing the current costume
// leaves the actor with none.
func (a *Actor) RemoveCostume(name string) {
	c, ok := a.costumes[name]
	if !ok {
		return
	}
	delete(a.costumes, name)
	if a.current == c {
		a.current = nil
	}
}

// CurrentCostume returns the active costume, or nil.
func (a *Actor) CurrentCostume() *Costume { return a.current }

// StartAnimation starts the current costume's animation.
func (a *Actor) StartAnimation(loop bool, fromIndex int, frameTime float64) {
	if a.current != nil {
		a.current.Anim.Start(loop, fromIndex, frameTime)
	}
}

// StopAnimation stops the current costume's animation.
func (a *Actor) StopAnimation() {
	if a.current != nil {
		a.current.Anim.Stop()
	}
}

// Text overlays.

// AddText attaches a text overlay keyed by name. An empty name keys the
// overlay by the text itself. The returned TextInfo may be mutated to
// set font, color or position.
func (a *Actor) AddText(name, txt string) *TextInfo {
	if name == "" {
		name = txt
	}
	ti := &TextInfo{Text: txt, Color: color.White}
	a.texts[name] = ti
	return ti
}

// RemoveText drops the named overlay. Missing names are no-ops.
func (a *Actor) RemoveText(name string) {
	delete(a.texts, name)
}

// Visibility.

func (a *Actor) Show()          { a.visible = true }
func (a *Actor) Hide()          { a.visible = false }
func (a *Actor) IsHidden() bool { return !a.visible }

// SetBehavior attaches a per-frame script, replacing any existing one.
func (a *Actor) SetBehavior(b *Behavior) { a.behavior = b }

// Remove detaches the actor from its scene and physics space.
func (a *Actor) Remove() {
	if a.scene != nil {
		a.scene.Remove(a)
	}
}

// Update advances the actor's costume animation and glide tween. The
// scene calls it once per frame before drawing.
func (a *Actor) Update() {
	if a.current != nil {
		a.current.Update()
	}
	a.updateGlide()
}

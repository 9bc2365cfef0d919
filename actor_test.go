package playstage

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp/v2"
)

func testScene(t *testing.T) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = 800
	cfg.Height = 600
	return NewScene(cfg)
}

func floatPtr(v float64) *float64 { return &v }

func TestActorAngleDegrees(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}

	a.SetAngle(90)
	if got := a.Body().Angle(); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("body angle = %v rad, want pi/2", got)
	}
	if got := a.Angle(); math.Abs(got-90) > 1e-9 {
		t.Errorf("Angle() = %v, want 90", got)
	}

	a.TurnBy(45)
	if got := a.Angle(); math.Abs(got-135) > 1e-9 {
		t.Errorf("after TurnBy(45): %v, want 135", got)
	}
}

func TestActorTurnTowards(t *testing.T) {
	s := testScene(t)
	a, err := s.NewCircle(5, Options{Center: &cp.Vector{X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target cp.Vector
		want   float64
	}{
		{"east", cp.Vector{X: 10, Y: 0}, 0},
		{"north", cp.Vector{X: 0, Y: 10}, 90},
		{"northeast", cp.Vector{X: 5, Y: 5}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.TurnTowards(tt.target)
			if got := a.Angle(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("angle = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("own position is a no-op", func(t *testing.T) {
		a.SetAngle(33)
		a.TurnTowards(a.Position())
		if got := a.Angle(); math.Abs(got-33) > 1e-9 {
			t.Errorf("angle changed to %v", got)
		}
	})
}

func TestActorGlideToConverges(t *testing.T) {
	s := testScene(t)
	a, err := s.NewCircle(5, Options{Center: &cp.Vector{X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	target := cp.Vector{X: 30, Y: 40}
	const speed = 2.0
	dist := target.Sub(a.Position()).Length()
	steps := int(math.Ceil(dist / speed))

	for i := 0; i < steps; i++ {
		a.GlideTo(target, speed)
	}
	if got := a.Position(); !vecAlmostEqual(got, target) {
		t.Fatalf("after %d steps: %+v, want %+v", steps, got, target)
	}

	// Converged glides are no-ops.
	a.GlideTo(target, speed)
	if got := a.Position(); !vecAlmostEqual(got, target) {
		t.Errorf("glide at target moved actor to %+v", got)
	}
}

func TestActorGlideToStepLength(t *testing.T) {
	s := testScene(t)
	a, err := s.NewCircle(5, Options{Center: &cp.Vector{X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	a.GlideTo(cp.Vector{X: 100, Y: 0}, 2)
	if got := a.Position().X; math.Abs(got-2) > 1e-9 {
		t.Errorf("moved %v, want exactly 2", got)
	}
}

func TestActorBBoxFollowsMove(t *testing.T) {
	s := testScene(t)
	a, err := s.NewPolygonFromPoints([]cp.Vector{
		{X: 50, Y: 50}, {X: 20, Y: 150}, {X: 80, Y: 150},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	w, h := a.Width(), a.Height()
	left := a.Left()
	a.MoveBy(cp.Vector{X: 25, Y: 0})

	if math.Abs(a.Width()-w) > 1e-6 || math.Abs(a.Height()-h) > 1e-6 {
		t.Errorf("size changed after move: %vx%v, was %vx%v", a.Width(), a.Height(), w, h)
	}
	if math.Abs(a.Left()-(left+25)) > 1e-6 {
		t.Errorf("left = %v, want %v", a.Left(), left+25)
	}
}

func TestActorBBoxCorners(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(40, 20, Options{Center: &cp.Vector{X: 100, Y: 50}})
	if err != nil {
		t.Fatal(err)
	}

	if got := a.BottomLeft(); !vecAlmostEqual(got, cp.Vector{X: 80, Y: 40}) {
		t.Errorf("BottomLeft = %+v", got)
	}
	if got := a.TopRight(); !vecAlmostEqual(got, cp.Vector{X: 120, Y: 60}) {
		t.Errorf("TopRight = %+v", got)
	}
	if got := a.Center(); !vecAlmostEqual(got, cp.Vector{X: 100, Y: 50}) {
		t.Errorf("Center = %+v", got)
	}
	r := a.Rect()
	if r.Width() != 40 || r.Height() != 20 {
		t.Errorf("Rect = %+v", r)
	}
}

func TestActorTouchesAt(t *testing.T) {
	s := testScene(t)
	a, err := s.NewPolygonFromPoints([]cp.Vector{
		{X: 50, Y: 50}, {X: 20, Y: 150}, {X: 80, Y: 150},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		point cp.Vector
		want  bool
	}{
		{"inside", cp.Vector{X: 50, Y: 120}, true},
		{"far outside", cp.Vector{X: 300, Y: 300}, false},
		{"outside near edge", cp.Vector{X: 10, Y: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.TouchesAt(tt.point); got != tt.want {
				t.Errorf("TouchesAt(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestActorTouchesSymmetry(t *testing.T) {
	s := testScene(t)
	a, err := s.NewCircle(10, Options{Center: &cp.Vector{X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.NewCircle(10, Options{Center: &cp.Vector{X: 15, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	far, err := s.NewCircle(10, Options{Center: &cp.Vector{X: 500, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	if !a.Touches(b) || !b.Touches(a) {
		t.Error("overlapping circles should touch both ways")
	}
	if a.Touches(far) || far.Touches(a) {
		t.Error("distant circles should not touch")
	}
	if !a.Touches() {
		t.Error("Touches() with no arguments should report any overlap")
	}
}

func TestActorImpulseTorque(t *testing.T) {
	s := testScene(t)

	t.Run("applies angular velocity", func(t *testing.T) {
		a, err := s.NewRect(10, 10, Options{Mass: floatPtr(1)})
		if err != nil {
			t.Fatal(err)
		}
		moment := a.Moment()
		a.ApplyImpulseTorque(moment * math.Pi / 2)
		if got := a.Body().AngularVelocity(); math.Abs(got-math.Pi/2) > 1e-9 {
			t.Errorf("angular velocity = %v, want pi/2", got)
		}
	})

	t.Run("infinite moment is a no-op", func(t *testing.T) {
		a, err := s.NewRect(10, 10, Options{Mass: floatPtr(1), NoRotate: true})
		if err != nil {
			t.Fatal(err)
		}
		a.ApplyImpulseTorque(100)
		if got := a.Body().AngularVelocity(); got != 0 {
			t.Errorf("angular velocity = %v, want 0", got)
		}
	})
}

func TestActorGroundedOnFloor(t *testing.T) {
	dropBox := func(t *testing.T, friction *float64) *Actor {
		t.Helper()
		cfg := DefaultConfig()
		cfg.Gravity = 900
		s := NewScene(cfg)

		if _, err := s.NewSegmentActor(cp.Vector{X: -200, Y: 0}, cp.Vector{X: 200, Y: 0}, 10, Options{
			Fixed:    true,
			Friction: friction,
		}); err != nil {
			t.Fatal(err)
		}
		box, err := s.NewRect(20, 20, Options{
			Center:   &cp.Vector{X: 0, Y: 40},
			Mass:     floatPtr(1),
			Friction: friction,
		})
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 120; i++ {
			s.stepPhysics()
		}
		return box
	}

	t.Run("with friction", func(t *testing.T) {
		box := dropBox(t, floatPtr(0.8))
		if !box.IsGrounded() {
			t.Fatal("box should be resting on the floor")
		}
	})

	// Resting flat needs no friction at all.
	t.Run("frictionless", func(t *testing.T) {
		box := dropBox(t, nil)
		if !box.IsGrounded() {
			t.Fatal("frictionless box on a flat floor should be grounded")
		}

		g := box.GetGrounding()
		if !g.HasBody || g.Body == nil {
			t.Fatal("no grounding body")
		}
		if g.Normal.Y <= 0 {
			t.Errorf("grounding normal = %+v, want upward", g.Normal)
		}
		// Flat contact: the slope estimate |n.x / n.y| is about zero.
		if g.Friction > 0.01 {
			t.Errorf("friction estimate = %v, want about 0", g.Friction)
		}
		if g.Velocity.Length() > 1e-6 {
			t.Errorf("floor velocity = %+v, want zero", g.Velocity)
		}
	})

	t.Run("airborne has no grounding", func(t *testing.T) {
		cfg := DefaultConfig()
		s := NewScene(cfg)
		box, err := s.NewRect(20, 20, Options{Center: &cp.Vector{X: 0, Y: 500}, Mass: floatPtr(1)})
		if err != nil {
			t.Fatal(err)
		}
		if box.IsGrounded() {
			t.Error("free box should not be grounded")
		}
		if g := box.GetGrounding(); g.HasBody {
			t.Error("free box reported a grounding body")
		}
	})
}

func TestActorDistanceTo(t *testing.T) {
	s := testScene(t)
	a, err := s.NewCircle(5, Options{Center: &cp.Vector{X: 0, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		point cp.Vector
		want  float64
	}{
		// Measured from the actor's position, not the shape surface.
		{"outside", cp.Vector{X: 10, Y: 0}, 10},
		{"inside shape", cp.Vector{X: 3, Y: 0}, 3},
		{"own position", cp.Vector{X: 0, Y: 0}, 0},
		{"diagonal", cp.Vector{X: 3, Y: 4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.DistanceTo(tt.point); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceTo(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestActorCostumeLifecycle(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}

	walk := NewCostume("walk", nil, false, PaintCenter)
	idle := NewCostume("idle", nil, false, PaintCenter)
	a.AddCostume(walk)
	a.AddCostume(idle)

	if a.CurrentCostume() != walk {
		t.Error("first added costume should be current")
	}

	a.SetCostume("idle")
	if a.CurrentCostume() != idle {
		t.Error("SetCostume did not switch")
	}

	a.SetCostume("missing")
	if a.CurrentCostume() != idle {
		t.Error("unknown costume name should be ignored")
	}

	a.SetCostume("")
	if a.CurrentCostume() != nil {
		t.Error("empty name should clear the current costume")
	}
	a.SetCostume("idle")
	if a.CurrentCostume() != idle {
		t.Error("costume should be selectable again after clearing")
	}

	a.RemoveCostume("idle")
	if a.CurrentCostume() != nil {
		t.Error("removing the current costume should clear it")
	}

	a.RemoveCostume("missing")
}

func TestActorTextOverlays(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}

	ti := a.AddText("boom", "BOOM!!")
	if ti.Text != "BOOM!!" {
		t.Errorf("text = %q", ti.Text)
	}
	if _, ok := a.texts["boom"]; !ok {
		t.Error("overlay not stored under its name")
	}

	a.AddText("", "plain")
	if _, ok := a.texts["plain"]; !ok {
		t.Error("empty name should key by text")
	}

	a.RemoveText("boom")
	if _, ok := a.texts["boom"]; ok {
		t.Error("overlay not removed")
	}
	a.RemoveText("never-added")
}

func TestActorVisibility(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.IsHidden() {
		t.Error("new actor should be visible")
	}
	a.Hide()
	if !a.IsHidden() {
		t.Error("Hide did not hide")
	}
	a.Show()
	if a.IsHidden() {
		t.Error("Show did not show")
	}

	hidden, err := s.NewRect(10, 10, Options{Hidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if !hidden.IsHidden() {
		t.Error("Options.Hidden ignored")
	}
}

func TestActorMaterialAccessors(t *testing.T) {
	s := testScene(t)
	a, err := s.NewRect(10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}

	a.SetFriction(0.5)
	if a.Friction() != 0.5 {
		t.Errorf("friction = %v", a.Friction())
	}
	a.SetElasticity(0.9)
	if a.Elasticity() != 0.9 {
		t.Errorf("elasticity = %v", a.Elasticity())
	}
	a.SetSurfaceVelocity(cp.Vector{X: 3, Y: 0})
	if got := a.SurfaceVelocity(); got.X != 3 {
		t.Errorf("surface velocity = %+v", got)
	}
	a.SetGroup(7)
	if a.Group() != 7 {
		t.Errorf("group = %v", a.Group())
	}
	a.SetCollisionType(cp.CollisionType(3))
	if a.CollisionType() != 3 {
		t.Errorf("collision type = %v", a.CollisionType())
	}
}

func TestTriangleFollowsMouseScenario(t *testing.T) {
	s := testScene(t)
	tri, err := s.NewPolygonFromPoints([]cp.Vector{
		{X: 50, Y: 50}, {X: 20, Y: 150}, {X: 80, Y: 150},
	}, Options{Color: ColorByName("green")})
	if err != nil {
		t.Fatal(err)
	}

	pointer := cp.Vector{X: 400, Y: 300}
	for i := 0; i < 1000; i++ {
		tri.TurnTowards(pointer)
		tri.GlideTo(pointer, 2)
		if tri.TouchesAt(pointer) {
			break
		}
	}
	if !tri.TouchesAt(pointer) {
		t.Fatal("triangle never reached the pointer")
	}

	heading := pointer.Sub(tri.Position())
	if heading.Length() > 1e-6 {
		want := heading.ToAngle() * 180 / math.Pi
		if math.Abs(tri.Angle()-want) > 1e-6 {
			t.Errorf("angle = %v, want %v", tri.Angle(), want)
		}
	}
}

package camera

import (
	"testing"

	"github.com/Faultbox/neowatch/pkg/math"
)

type body struct {
	pos   math.Vector[float32]
	orbit math.Matrix[float32]
}

func (b *body) WorldPosition() math.Vector[float32] { return b.pos }
func (b *body) OrbitMatrix() math.Matrix[float32]   { return b.orbit }

var origin = math.Point[float32](0, 0, 0)

func TestModeCycle(t *testing.T) {
	c := New(5)
	want := []Mode{Detached, Free, Tracking, Locked}
	for i, w := range want {
		if got := c.CycleMode(); got != w {
			t.Errorf("cycle %d: got %v, want %v", i, got, w)
		}
	}
}

func TestModeString(t *testing.T) {
	if Tracking.String() != "tracking" {
		t.Errorf("Tracking.String() = %q", Tracking.String())
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("invalid mode string = %q", Mode(42).String())
	}
}

func TestFreeToLockedResetsOrientation(t *testing.T) {
	c := New(5)
	c.SetMode(Free)
	c.Update(Motion{Pitch: 0.3, Yaw: -0.2, Roll: 0.1}, origin)
	if c.M.ApproxEqual(math.Identity[float32](4), 1e-6) {
		t.Fatal("free-mode update did not rotate orientation")
	}

	c.SetMode(Locked)
	c.Update(Motion{Pitch: 0.3}, origin)
	if !c.M.Equal(math.Identity[float32](4)) {
		t.Errorf("orientation after locked update =\n%v", c.M)
	}
}

func TestLockedIgnoresInput(t *testing.T) {
	c := New(5)
	c.Update(Motion{Strafe: 3, Forward: 2, Yaw: 1}, origin)
	if !c.Position().ApproxEqual(math.Point[float32](0, 0, 5), 1e-6) {
		t.Errorf("locked position = %v, want (0,0,5)", c.Position().Data())
	}

	// rides with the primary body
	c.Update(Motion{}, math.Point[float32](1, 2, 3))
	if !c.Position().ApproxEqual(math.Point[float32](1, 2, 8), 1e-6) {
		t.Errorf("locked position after body moved = %v, want (1,2,8)", c.Position().Data())
	}
}

func TestDetachedOrbitsAtDistance(t *testing.T) {
	c := New(5)
	c.SetMode(Detached)
	anchor := math.Point[float32](1, 0, 0)
	for i := 0; i < 20; i++ {
		c.Update(Motion{Pitch: 0.05, Yaw: 0.1}, anchor)
		d := c.Position().Sub(anchor).Norm()
		if d < 4.999 || d > 5.001 {
			t.Fatalf("frame %d: distance from body = %f, want 5", i, d)
		}
	}
	if c.Position().ApproxEqual(math.Point[float32](1, 0, 5), 1e-3) {
		t.Error("detached camera did not move around the body")
	}
}

func TestDetachedZoomClamps(t *testing.T) {
	c := New(2)
	c.SetMode(Detached)
	c.Update(Motion{Forward: 10}, origin)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want clamp to %f", c.Distance, c.MinDistance)
	}
}

func TestFreeMovesAlongView(t *testing.T) {
	c := New(5)
	c.SetMode(Free)
	c.Update(Motion{Forward: 1}, origin)
	if !c.Position().ApproxEqual(math.Point[float32](0, 0, 4), 1e-6) {
		t.Errorf("position after forward = %v, want (0,0,4)", c.Position().Data())
	}

	// after yawing 90 degrees left, forward points down -X
	c.Update(Motion{Yaw: 3.14159265 / 2}, origin)
	c.Update(Motion{Forward: 1}, origin)
	if !c.Position().ApproxEqual(math.Point[float32](-1, 0, 4), 1e-5) {
		t.Errorf("position after yaw+forward = %v, want (-1,0,4)", c.Position().Data())
	}
}

func TestTrackingKeepsCapturedOffset(t *testing.T) {
	c := New(5)
	c.SetMode(Free)
	c.SetPosition(3, 1, 2)

	b := &body{pos: math.Point[float32](2, 0, 0), orbit: math.RotationY[float32](0.8)}
	c.SetMode(Tracking)
	c.Mark(b)

	rel := math.Point[float32](3, 1, 2).Sub(b.pos)
	for i := 0; i < 30; i++ {
		c.Update(Motion{Yaw: 0.05}, origin)
		got := c.Position().Sub(b.pos)
		if !got.ApproxEqual(rel, 1e-5) {
			t.Fatalf("frame %d: relative position %v, want %v", i, got.Data(), rel.Data())
		}
	}
}

func TestTrackingFollowsOrbit(t *testing.T) {
	c := New(5)
	c.SetPosition(0, 0, 3)
	b := &body{pos: math.Point[float32](0, 0, 2), orbit: math.Identity[float32](4)}
	c.SetMode(Tracking)
	c.Mark(b)

	// body advances a quarter turn around the origin
	b.orbit = math.RotationY[float32](3.14159265 / 2)
	b.pos = math.Point[float32](2, 0, 0)
	c.Update(Motion{}, origin)
	if !c.Position().ApproxEqual(math.Point[float32](3, 0, 0), 1e-5) {
		t.Errorf("tracked position = %v, want (3,0,0)", c.Position().Data())
	}
}

func TestMarkNilDiscardsOffset(t *testing.T) {
	c := New(5)
	b := &body{pos: math.Point[float32](1, 0, 0), orbit: math.Identity[float32](4)}
	c.Mark(b)
	if c.Offset().IsZero() {
		t.Fatal("offset not captured")
	}
	c.Mark(nil)
	if !c.Offset().IsZero() || c.Marked() != nil {
		t.Error("Mark(nil) did not discard the offset")
	}

	// tracking with nothing marked holds position
	c.SetMode(Tracking)
	before := c.Position()
	c.Update(Motion{Yaw: 0.2}, origin)
	if !c.Position().Equal(before) {
		t.Errorf("position moved without a marked body: %v", c.Position().Data())
	}
}

func TestViewInvertsWorld(t *testing.T) {
	c := New(5)
	c.SetMode(Free)
	c.Update(Motion{Pitch: 0.2, Yaw: 0.4, Strafe: 1}, origin)
	p := c.View().Mul(c.World())
	if !p.ApproxEqual(math.Identity[float32](4), 1e-5) {
		t.Errorf("View * World =\n%v", p)
	}
}

func TestForward(t *testing.T) {
	c := New(5)
	if !c.Forward().ApproxEqual(math.Direction[float32](0, 0, -1), 1e-6) {
		t.Errorf("Forward = %v", c.Forward().Data())
	}
}

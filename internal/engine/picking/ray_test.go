package picking

import (
	"testing"

	"github.com/Faultbox/neowatch/pkg/math"
)

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestIntersectSphereHit(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, -1}}
	near, far, ok := r.IntersectSphere(Sphere{Center: [3]float32{0, 0, -5}, Radius: 1})
	if !ok {
		t.Fatal("expected intersection")
	}
	if !approx(near, 4) || !approx(far, 6) {
		t.Errorf("roots = (%f, %f), want (4, 6)", near, far)
	}

	d, ok := r.Nearest(Sphere{Center: [3]float32{0, 0, -5}, Radius: 1})
	if !ok || !approx(d, 4) {
		t.Errorf("Nearest = %f (hit=%v), want 4", d, ok)
	}
}

func TestIntersectSphereMiss(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, -1}}
	if _, _, ok := r.IntersectSphere(Sphere{Center: [3]float32{0, 5, -5}, Radius: 1}); ok {
		t.Error("expected no intersection for offset sphere")
	}
}

func TestIntersectDegenerateRay(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}}
	if _, _, ok := r.IntersectSphere(Sphere{Center: [3]float32{0, 0, -5}, Radius: 1}); ok {
		t.Error("zero-direction ray should not intersect")
	}
}

func TestNearestBehindAndInside(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, -1}}

	// sphere behind the origin
	if _, ok := r.Nearest(Sphere{Center: [3]float32{0, 0, 5}, Radius: 1}); ok {
		t.Error("sphere behind the ray should not be hit")
	}

	// origin inside the sphere returns the exit distance
	d, ok := r.Nearest(Sphere{Center: [3]float32{0, 0, 0}, Radius: 2})
	if !ok || !approx(d, 2) {
		t.Errorf("inside Nearest = %f (hit=%v), want 2", d, ok)
	}
}

func TestUnnormalizedDirection(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, -2}}
	near, far, ok := r.IntersectSphere(Sphere{Center: [3]float32{0, 0, -5}, Radius: 1})
	if !ok || !approx(near, 2) || !approx(far, 3) {
		t.Errorf("roots = (%f, %f), want (2, 3) in ray parameter units", near, far)
	}
}

func TestPickNearest(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, -1}}
	candidates := []Sphere{
		{Center: [3]float32{0, 0, -20}, Radius: 1},
		{Center: [3]float32{0, 5, -5}, Radius: 1},
		{Center: [3]float32{0, 0, -8}, Radius: 1},
	}
	idx, d := Pick(r, candidates)
	if idx != 2 || !approx(d, 7) {
		t.Errorf("Pick = (%d, %f), want (2, 7)", idx, d)
	}

	if idx, _ := Pick(r, candidates[1:2]); idx != -1 {
		t.Errorf("Pick with only misses = %d, want -1", idx)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	// identity view-projection: center of the screen looks down +Z in NDC space
	r := ScreenToRay(50, 50, 100, 100, math.Identity[float32](4))
	if !approx(r.Origin[0], 0) || !approx(r.Origin[1], 0) || !approx(r.Origin[2], -1) {
		t.Errorf("origin = %v, want (0, 0, -1)", r.Origin)
	}
	if !approx(r.Direction[2], 1) {
		t.Errorf("direction = %v, want (0, 0, 1)", r.Direction)
	}
}

// Package picking provides ray casting and sphere picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/neowatch/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // need not be normalized
}

// Sphere is a pick target.
type Sphere struct {
	Center [3]float32
	Radius float32
}

// NewRay builds a ray from homogeneous or 3-component vectors.
func NewRay(origin, direction math.Vector[float32]) Ray {
	return Ray{
		Origin:    [3]float32{origin.X(), origin.Y(), origin.Z()},
		Direction: [3]float32{direction.X(), direction.Y(), direction.Z()},
	}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Matrix[float32]) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := invViewProj.Mul(math.Vec[float32](ndcX, ndcY, -1, 1))
	farWorld := invViewProj.Mul(math.Vec[float32](ndcX, ndcY, 1, 1))

	// Perspective divide
	for _, p := range []math.Vector[float32]{nearWorld, farWorld} {
		if w := p.W(); w != 0 {
			math.ScaleTo(p, p, 1/w)
		}
	}

	origin := [3]float32{nearWorld.X(), nearWorld.Y(), nearWorld.Z()}
	dir := [3]float32{
		farWorld.X() - nearWorld.X(),
		farWorld.Y() - nearWorld.Y(),
		farWorld.Z() - nearWorld.Z(),
	}

	rayLen := math32.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	if rayLen > 0 {
		dir[0] /= rayLen
		dir[1] /= rayLen
		dir[2] /= rayLen
	}

	return Ray{Origin: origin, Direction: dir}
}

// IntersectSphere solves |O + tD - C|² = r² for t.
// Returns both roots (near <= far) and whether the ray's line meets the sphere.
// A zero-length direction or a negative discriminant reports no intersection.
func (r Ray) IntersectSphere(s Sphere) (near, far float32, hit bool) {
	ox := r.Origin[0] - s.Center[0]
	oy := r.Origin[1] - s.Center[1]
	oz := r.Origin[2] - s.Center[2]
	dx, dy, dz := r.Direction[0], r.Direction[1], r.Direction[2]

	a := dx*dx + dy*dy + dz*dz
	if a == 0 {
		return 0, 0, false
	}
	b := 2 * (ox*dx + oy*dy + oz*dz)
	c := ox*ox + oy*oy + oz*oz - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math32.Sqrt(disc)
	near = (-b - sq) / (2 * a)
	far = (-b + sq) / (2 * a)
	return near, far, true
}

// Nearest returns the smallest positive hit distance along the ray.
// If the origin is inside the sphere the exit distance is returned.
func (r Ray) Nearest(s Sphere) (t float32, hit bool) {
	near, far, ok := r.IntersectSphere(s)
	if !ok {
		return 0, false
	}
	if near > 0 {
		return near, true
	}
	if far > 0 {
		return far, true
	}
	return 0, false
}

// Pick tests every candidate and returns the index of the nearest hit.
// index is -1 when nothing is hit.
func Pick(r Ray, candidates []Sphere) (index int, distance float32) {
	index = -1
	for i, s := range candidates {
		t, ok := r.Nearest(s)
		if !ok {
			continue
		}
		if index < 0 || t < distance {
			index, distance = i, t
		}
	}
	return index, distance
}

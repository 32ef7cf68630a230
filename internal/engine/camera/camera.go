// Package camera provides the orbit/free camera used by the globe view.
package camera

import (
	"github.com/Faultbox/neowatch/pkg/math"
)

// Mode selects how the camera reacts to input each frame.
type Mode int

const (
	// Locked rides rigidly at the last orbit and distance from the primary body
	// with identity orientation.
	Locked Mode = iota
	// Detached keeps the camera at a distance from the primary body and
	// orbits it with input.
	Detached
	// Free flies through the scene.
	Free
	// Tracking follows the marked body at a fixed relative offset.
	Tracking

	modeCount
)

// Next returns the mode that follows m in the cycle.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case Locked:
		return "locked"
	case Detached:
		return "detached"
	case Free:
		return "free"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Motion is one frame of already-scaled input.
// Strafe, Vertical and Forward are distances in camera space; Pitch, Yaw and
// Roll are angles in radians.
type Motion struct {
	Strafe, Vertical, Forward float32
	Pitch, Yaw, Roll          float32
}

// Target is a body the camera can track.
type Target interface {
	// WorldPosition returns the body's homogeneous world position.
	WorldPosition() math.Vector[float32]
	// OrbitMatrix returns the body's current orbit rotation.
	OrbitMatrix() math.Matrix[float32]
}

// Camera holds orientation M, an orbit rotation, a distance and a position.
// The camera's world transform is T(position)·orbit·M and it looks down -Z.
type Camera struct {
	M           math.Matrix[float32]
	orbit       math.Matrix[float32]
	Distance    float32
	MinDistance float32
	position    math.Vector[float32]
	mode        Mode

	marked Target
	offset math.Vector[float32] // orbit⁻¹·(position - body) captured at mark time

	arena *math.Arena[float32]
	rot   math.Matrix[float32]
	vec   math.Vector[float32]
	tmp   math.Vector[float32]
}

// orbitAxis points from the primary body towards the camera in orbit space.
var orbitAxis = math.Direction[float32](0, 0, 1)

// New returns a locked camera at distance from the origin.
func New(distance float32) *Camera {
	c := &Camera{
		M:           math.Identity[float32](4),
		orbit:       math.Identity[float32](4),
		Distance:    distance,
		MinDistance: 1.2,
		position:    math.Point[float32](0, 0, distance),
		mode:        Locked,
		arena:       math.NewArena[float32](),
		rot:         math.New[float32](4, 4),
		vec:         math.NewVector[float32](4),
		tmp:         math.NewVector[float32](4),
	}
	return c
}

// Mode returns the active mode.
func (c *Camera) Mode() Mode { return c.mode }

// SetMode switches mode. Entering Locked snaps the orientation to identity.
func (c *Camera) SetMode(m Mode) {
	c.mode = m
	if m == Locked {
		c.M.SetIdentity()
	}
}

// CycleMode advances to the next mode and returns it.
func (c *Camera) CycleMode() Mode {
	c.SetMode(c.mode.Next())
	return c.mode
}

// Position returns a copy of the homogeneous camera position.
func (c *Camera) Position() math.Vector[float32] {
	return c.position.Clone()
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(x, y, z float32) {
	c.position.SetXYZ(x, y, z)
}

// Orbit returns the orbit rotation. Callers must not modify it.
func (c *Camera) Orbit() math.Matrix[float32] { return c.orbit }

// Marked returns the tracked target, or nil.
func (c *Camera) Marked() Target { return c.marked }

// Offset returns the captured tracking offset, or a zero matrix when nothing is marked.
func (c *Camera) Offset() math.Vector[float32] { return c.offset }

// Mark starts tracking t, capturing orbit⁻¹·(position − bodyPosition)
// where orbit is t's orbit matrix. Passing nil discards the offset.
func (c *Camera) Mark(t Target) {
	if t == nil {
		c.marked = nil
		c.offset = math.Vector[float32]{}
		return
	}
	c.marked = t

	rel := math.NewVector[float32](4)
	math.SubTo(rel, c.position, t.WorldPosition())
	rel.SetElem(3, 0)

	// orbit matrices are rotations; the transpose is the inverse
	inv := t.OrbitMatrix().T()
	c.offset = inv.Mul(rel)
}

// Update applies one frame of motion under the active mode.
// anchor is the primary body's world position.
func (c *Camera) Update(m Motion, anchor math.Vector[float32]) {
	switch c.mode {
	case Locked:
		c.M.SetIdentity()
		c.placeOnOrbit(anchor)

	case Detached:
		c.rotate(c.orbit, m.Pitch, m.Yaw, m.Roll)
		c.Distance -= m.Forward
		if c.Distance < c.MinDistance {
			c.Distance = c.MinDistance
		}
		c.placeOnOrbit(anchor)

	case Free:
		c.rotate(c.M, m.Pitch, m.Yaw, m.Roll)
		// position += orbit·M·offset
		c.vec.SetXYZ(m.Strafe, m.Vertical, -m.Forward)
		c.vec.SetElem(3, 0)
		c.arena.Mul(c.vec, c.M, c.vec)
		c.arena.Mul(c.vec, c.orbit, c.vec)
		math.AddTo(c.position, c.position, c.vec)

	case Tracking:
		c.rotate(c.M, m.Pitch, m.Yaw, m.Roll)
		if c.marked == nil {
			return
		}
		math.MulTo(c.tmp, c.marked.OrbitMatrix(), c.offset)
		math.AddTo(c.position, c.marked.WorldPosition(), c.tmp)
		c.position.SetElem(3, 1)
	}
}

// placeOnOrbit sets position = anchor + orbit·orbitAxis·distance.
func (c *Camera) placeOnOrbit(anchor math.Vector[float32]) {
	math.MulTo(c.vec, c.orbit, orbitAxis)
	math.ScaleTo(c.vec, c.vec, c.Distance)
	math.AddTo(c.position, anchor, c.vec)
	c.position.SetElem(3, 1)
}

// rotate post-multiplies target by Rx(pitch)·Ry(yaw)·Rz(roll) so that the
// rotation happens around the target's own axes.
func (c *Camera) rotate(target math.Matrix[float32], pitch, yaw, roll float32) {
	if pitch == 0 && yaw == 0 && roll == 0 {
		return
	}
	math.RotationTo(c.rot, pitch, yaw, roll)
	c.arena.Mul(target, target, c.rot)
}

// World returns the camera's world transform T(position)·orbit·M.
func (c *Camera) World() math.Matrix[float32] {
	w := c.orbit.Mul(c.M)
	w.Set(0, 3, c.position.X())
	w.Set(1, 3, c.position.Y())
	w.Set(2, 3, c.position.Z())
	return w
}

// View returns the inverse of World: Mᵀ·orbitᵀ·T(-position).
func (c *Camera) View() math.Matrix[float32] {
	rt := c.orbit.Mul(c.M).T()
	v := rt.Mul(math.Translation(-c.position.X(), -c.position.Y(), -c.position.Z()))
	return v
}

// Forward returns the unit view direction orbit·M·(0,0,-1,0).
func (c *Camera) Forward() math.Vector[float32] {
	return c.orbit.Mul(c.M).Mul(math.Direction[float32](0, 0, -1))
}

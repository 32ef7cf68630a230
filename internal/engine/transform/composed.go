// Package transform builds cached affine transforms from rotation, translation
// and scale components.
package transform

import (
	"github.com/Faultbox/neowatch/pkg/math"
)

// Composed is an RTS transform. The forward matrix is T·R·S (scale, then
// rotate, then translate a column point) and the inverse is S⁻¹·R⁻¹·T⁻¹.
//
// Both results are cached behind independent dirty flags. Every mutating
// method sets both flags; Composed and Inverted recompute only when their flag
// is set. The returned matrices are owned by the transform and must be
// treated as read-only.
type Composed struct {
	r math.Vector[float32] // rx, ry, rz
	t math.Vector[float32] // homogeneous translation, w = 1
	s math.Vector[float32] // homogeneous scale, w = 1

	rot, rotInv     math.Matrix[float32]
	trans, transInv math.Matrix[float32]
	scale, scaleInv math.Matrix[float32]

	// rotation set directly as a matrix; angles are then stale
	rotExplicit bool
	rotDirty    bool

	composed, inverted           math.Matrix[float32]
	composedDirty, invertedDirty bool

	tmp math.Matrix[float32]
}

// New returns an identity transform.
func New() *Composed {
	c := &Composed{
		r:        math.NewVector[float32](3),
		t:        math.Point[float32](0, 0, 0),
		s:        math.Point[float32](1, 1, 1),
		rot:      math.Identity[float32](4),
		rotInv:   math.Identity[float32](4),
		trans:    math.Identity[float32](4),
		transInv: math.Identity[float32](4),
		scale:    math.Identity[float32](4),
		scaleInv: math.Identity[float32](4),
		composed: math.Identity[float32](4),
		inverted: math.Identity[float32](4),
		tmp:      math.New[float32](4, 4),
	}
	return c
}

func (c *Composed) invalidate() {
	c.composedDirty = true
	c.invertedDirty = true
}

// SetRotation sets the rotation angles in radians.
func (c *Composed) SetRotation(rx, ry, rz float32) {
	c.r.SetXYZ(rx, ry, rz)
	c.rotExplicit = false
	c.rotDirty = true
	c.invalidate()
}

// Rotate adds to the rotation angles.
func (c *Composed) Rotate(dx, dy, dz float32) {
	c.SetRotation(c.r.X()+dx, c.r.Y()+dy, c.r.Z()+dz)
}

// SetRotationMatrix sets R directly. m must be an orthonormal 4×4 rotation.
func (c *Composed) SetRotationMatrix(m math.Matrix[float32]) {
	c.rot.CopyFrom(m)
	c.rotExplicit = true
	c.rotDirty = true
	c.invalidate()
}

// SetTranslation sets the translation.
func (c *Composed) SetTranslation(x, y, z float32) {
	c.t.SetXYZ(x, y, z)
	c.invalidate()
}

// SetTranslationVector sets the translation from the first three components of v.
func (c *Composed) SetTranslationVector(v math.Vector[float32]) {
	c.SetTranslation(v.X(), v.Y(), v.Z())
}

// Translate adds to the translation.
func (c *Composed) Translate(dx, dy, dz float32) {
	c.SetTranslation(c.t.X()+dx, c.t.Y()+dy, c.t.Z()+dz)
}

// SetScale sets per-axis scale. Components must be non-zero.
func (c *Composed) SetScale(x, y, z float32) {
	c.s.SetXYZ(x, y, z)
	c.invalidate()
}

// SetUniformScale scales all axes by k.
func (c *Composed) SetUniformScale(k float32) {
	c.SetScale(k, k, k)
}

// Angles returns the rotation angles.
func (c *Composed) Angles() (rx, ry, rz float32) {
	return c.r.X(), c.r.Y(), c.r.Z()
}

// Translation returns a copy of the homogeneous translation.
func (c *Composed) Translation() math.Vector[float32] {
	return c.t.Clone()
}

// Scale returns a copy of the homogeneous scale.
func (c *Composed) Scale() math.Vector[float32] {
	return c.s.Clone()
}

// RotationMatrix returns R.
func (c *Composed) RotationMatrix() math.Matrix[float32] {
	c.refreshRotation()
	return c.rot
}

func (c *Composed) refreshRotation() {
	if !c.rotDirty {
		return
	}
	if !c.rotExplicit {
		math.RotationTo(c.rot, c.r.X(), c.r.Y(), c.r.Z())
	}
	// R is orthonormal, so R⁻¹ = Rᵀ
	math.TransposeTo(c.rotInv, c.rot)
	c.rotDirty = false
}

func (c *Composed) refreshTranslationScale() {
	tx, ty, tz := c.t.X(), c.t.Y(), c.t.Z()
	c.trans.Set(0, 3, tx)
	c.trans.Set(1, 3, ty)
	c.trans.Set(2, 3, tz)
	c.transInv.Set(0, 3, -tx)
	c.transInv.Set(1, 3, -ty)
	c.transInv.Set(2, 3, -tz)

	for i := 0; i < 3; i++ {
		k := c.s.Elem(i)
		c.scale.Set(i, i, k)
		c.scaleInv.Set(i, i, 1/k)
	}
}

// Composed returns the forward matrix T·R·S.
func (c *Composed) Composed() math.Matrix[float32] {
	if c.composedDirty {
		c.refreshRotation()
		c.refreshTranslationScale()
		math.MulTo(c.tmp, c.rot, c.scale)
		math.MulTo(c.composed, c.trans, c.tmp)
		c.composedDirty = false
	}
	return c.composed
}

// Inverted returns the inverse matrix S⁻¹·R⁻¹·T⁻¹.
func (c *Composed) Inverted() math.Matrix[float32] {
	if c.invertedDirty {
		c.refreshRotation()
		c.refreshTranslationScale()
		math.MulTo(c.tmp, c.rotInv, c.transInv)
		math.MulTo(c.inverted, c.scaleInv, c.tmp)
		c.invertedDirty = false
	}
	return c.inverted
}

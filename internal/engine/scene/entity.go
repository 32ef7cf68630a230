package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/neowatch/internal/engine/transform"
	"github.com/Faultbox/neowatch/pkg/math"
)

// HighlightAmplitude is the peak relative color change of a pulsing entity.
const HighlightAmplitude = 0.6

// Entity is a node in the scene tree. A child is owned by exactly one parent
// and is destroyed with it.
type Entity struct {
	Name      string
	Transform *transform.Composed
	Mesh      Mesh
	Texture   Texture
	Pass      Pass
	Behavior  Behavior

	// Hidden skips the entity and its subtree when rendering.
	Hidden bool

	// Radius is the picking radius in world units.
	Radius float32

	// Color is the current color modifier; base is what the highlight
	// pulses around.
	Color [4]float32
	base  [4]float32
	phase float32

	parent   *Entity
	children []*Entity

	world  math.Matrix[float32]
	normal math.Matrix[float32]
	invT   math.Matrix[float32]
	draw   DrawCall
}

// NewEntity returns an entity with an identity transform and white color.
func NewEntity(name string) *Entity {
	e := &Entity{
		Name:      name,
		Transform: transform.New(),
		world:     math.New[float32](4, 4),
		normal:    math.New[float32](4, 4),
		invT:      math.New[float32](4, 4),
	}
	e.SetBaseColor([4]float32{1, 1, 1, 1})
	return e
}

// Parent returns the owning entity, or nil for a root.
func (e *Entity) Parent() *Entity { return e.parent }

// Children returns the owned children in draw order.
func (e *Entity) Children() []*Entity { return e.children }

// AddChild appends child to e. It panics if child already has a parent or
// if the link would create a cycle.
func (e *Entity) AddChild(child *Entity) {
	if child.parent != nil {
		panic(fmt.Sprintf("scene: %q already belongs to %q", child.Name, child.parent.Name))
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			panic(fmt.Sprintf("scene: adding %q under %q would create a cycle", child.Name, e.Name))
		}
	}
	child.parent = e
	e.children = append(e.children, child)
}

// Destroy detaches e from its parent and tears down its subtree.
func (e *Entity) Destroy() {
	if p := e.parent; p != nil {
		for i, c := range p.children {
			if c == e {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		e.parent = nil
	}
	for _, c := range e.children {
		c.parent = nil
		c.Destroy()
	}
	e.children = nil
	e.Behavior = nil
	e.Mesh = nil
	e.Texture = nil
}

// SetBaseColor sets the color the highlight returns to and resets it.
func (e *Entity) SetBaseColor(c [4]float32) {
	e.base = c
	e.ResetHighlight()
}

// Pulse advances the highlight phase by rate radians and rescales the RGB
// channels of the color modifier. Alpha is left alone.
func (e *Entity) Pulse(rate float32) {
	e.phase += rate
	k := 1 + HighlightAmplitude*math32.Sin(e.phase)
	for i := 0; i < 3; i++ {
		e.Color[i] = e.base[i] * k
	}
	e.Color[3] = e.base[3]
}

// ResetHighlight zeroes the phase and restores the base color.
func (e *Entity) ResetHighlight() {
	e.phase = 0
	e.Color = e.base
}

// Phase returns the highlight phase.
func (e *Entity) Phase() float32 { return e.phase }

// WorldMatrix returns the product of every local transform from the root
// down to e.
func (e *Entity) WorldMatrix() math.Matrix[float32] {
	w := e.Transform.Composed().Clone()
	for p := e.parent; p != nil; p = p.parent {
		w = p.Transform.Composed().Mul(w)
	}
	return w
}

// WorldPosition returns e's origin in world space as a homogeneous point.
func (e *Entity) WorldPosition() math.Vector[float32] {
	if e.parent == nil {
		return e.Transform.Translation()
	}
	w := e.WorldMatrix()
	return math.Point(w.At(0, 3), w.At(1, 3), w.At(2, 3))
}

// OrbitMatrix returns the orbit rotation of an orbiting entity and the
// rotation part of the world matrix otherwise.
func (e *Entity) OrbitMatrix() math.Matrix[float32] {
	if o, ok := e.Behavior.(*Orbiter); ok {
		return o.Orbit
	}
	if e.parent == nil {
		return e.Transform.RotationMatrix()
	}
	w := e.WorldMatrix()
	w.Set(0, 3, 0)
	w.Set(1, 3, 0)
	w.Set(2, 3, 0)
	return w
}

// Up returns the unit Y axis of e's orbit frame.
func (e *Entity) Up() math.Vector[float32] {
	return e.OrbitMatrix().Mul(math.Direction[float32](0, 1, 0)).Normalized()
}

// Update runs behaviors for the subtree, children first.
func (e *Entity) Update(f *Frame) {
	for _, c := range e.children {
		c.Update(f)
	}
	if e.Behavior != nil {
		e.Behavior.Update(e, f)
	}
}

// Render computes world and normal matrices for the subtree and issues a
// draw call for every visible entity with a mesh, children first.
//
//	world  = parentWorld · local
//	normal = parentNormal · transpose(inverse(local))
func (e *Entity) Render(d Drawer, parentWorld, parentNormal math.Matrix[float32]) {
	if e.Hidden {
		return
	}
	math.MulTo(e.world, parentWorld, e.Transform.Composed())
	math.TransposeTo(e.invT, e.Transform.Inverted())
	math.MulTo(e.normal, parentNormal, e.invT)

	for _, c := range e.children {
		c.Render(d, e.world, e.normal)
	}
	if e.Mesh == nil {
		return
	}
	e.draw = DrawCall{
		Name:       e.Name,
		Pass:       e.Pass,
		Model:      e.world,
		Normal:     e.normal,
		Mesh:       e.Mesh,
		Texture:    e.Texture,
		Color:      e.Color,
		Brightness: 1,
	}
	d.Draw(&e.draw)
}

// RenderRoot renders e as a tree root.
func (e *Entity) RenderRoot(d Drawer) {
	id := math.Identity[float32](4)
	e.Render(d, id, id)
}

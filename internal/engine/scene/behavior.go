package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/pkg/math"
)

// Frame is the per-frame context handed to behaviors.
type Frame struct {
	Arena     *math.Arena[float32]
	Particles *Particles
	Rand      *rand.Rand
}

// NewFrame returns a frame context with its own arena and a seeded RNG.
func NewFrame(particles *Particles, seed uint64) *Frame {
	return &Frame{
		Arena:     math.NewArena[float32](),
		Particles: particles,
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Behavior is the per-kind update logic attached to an entity.
// The set of kinds is closed: Spinner, Orbiter and Pin.
type Behavior interface {
	Update(e *Entity, f *Frame)
}

// Spinner rotates its entity by a fixed increment every frame.
type Spinner struct {
	Rate [3]float32 // radians per frame around x, y, z
}

func (s *Spinner) Update(e *Entity, _ *Frame) {
	e.Transform.Rotate(s.Rate[0], s.Rate[1], s.Rate[2])
}

// Orbiter moves its entity around an anchor body.
//
// Each frame the orbit angle advances by Step and Orbit is rebuilt as the
// initial orientation turned about its own Y axis by that angle, so it stays
// orthonormal however long the session runs. The entity is placed at
// anchor + Orbit·(Radius,0,0) and its spin advances. When Countdown reaches
// zero a particle is emitted near the entity.
type Orbiter struct {
	Anchor *Entity
	Orbit  math.Matrix[float32]
	Radius float32
	Step   float32 // orbit advance per frame, radians
	Spin   float32
	// SpinRate is the spin advance per frame.
	SpinRate float32

	Countdown    int
	EmitInterval int
	Jitter       float32

	// Record is the approach this body stands for. Never modified.
	Record feed.Record

	base  math.Matrix[float32]
	angle float32
	step  math.Matrix[float32]
	pos   math.Vector[float32]
	off   math.Vector[float32]
}

// NewOrbiter returns an orbiter with the given initial orbit rotation.
func NewOrbiter(anchor *Entity, orbit math.Matrix[float32], radius, step float32, rec feed.Record) *Orbiter {
	return &Orbiter{
		Anchor:       anchor,
		Orbit:        orbit.Clone(),
		base:         orbit.Clone(),
		Radius:       radius,
		Step:         step,
		SpinRate:     0.02,
		EmitInterval: 6,
		Countdown:    6,
		Jitter:       0.02,
		Record:       rec,
		step:         math.RotationY(step),
		pos:          math.NewVector[float32](4),
		off:          math.Direction(radius, 0, 0),
	}
}

func (o *Orbiter) Update(e *Entity, f *Frame) {
	o.angle = math32.Mod(o.angle+o.Step, 2*math32.Pi)
	math.RotationTo(o.step, 0, o.angle, 0)
	math.MulTo(o.Orbit, o.base, o.step)

	math.MulTo(o.pos, o.Orbit, o.off)
	math.AddTo(o.pos, o.pos, o.Anchor.WorldPosition())
	e.Transform.SetTranslation(o.pos.X(), o.pos.Y(), o.pos.Z())

	o.Spin += o.SpinRate
	e.Transform.SetRotation(o.Spin, o.Spin*0.7, 0)

	o.Countdown--
	if o.Countdown > 0 {
		return
	}
	o.Countdown = o.EmitInterval
	if f.Particles == nil {
		return
	}
	j := func() float32 {
		return (f.Rand.Float32()*2 - 1) * o.Jitter
	}
	f.Particles.Emit([3]float32{o.pos.X() + j(), o.pos.Y() + j(), o.pos.Z() + j()})
}

// Pin hovers above a reference body and spins.
// A pin without a reference hides itself.
type Pin struct {
	Reference *Entity
	Lift      float32
	Amplitude float32
	Rate      float32 // hover phase advance per frame
	SpinRate  float32

	phase float32
	spin  float32
}

func (p *Pin) Update(e *Entity, _ *Frame) {
	if p.Reference == nil {
		e.Hidden = true
		return
	}
	e.Hidden = false
	p.phase += p.Rate
	p.spin += p.SpinRate

	up := p.Reference.Up()
	h := p.Lift + p.Amplitude*math32.Sin(p.phase)
	at := p.Reference.WorldPosition()
	e.Transform.SetTranslation(at.X()+up.X()*h, at.Y()+up.Y()*h, at.Z()+up.Z()*h)

	// keep the pin upright along the reference's up axis, then spin it
	e.Transform.SetRotationMatrix(p.Reference.OrbitMatrix().Mul(math.RotationY(p.spin)))
}

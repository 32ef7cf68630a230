package scene

import "github.com/Faultbox/neowatch/pkg/math"

// Default particle lifetime parameters.
const (
	DefaultBrightness = 1.0
	DefaultDecay      = 0.01
	DefaultThreshold  = 0.2
)

// Particle is a fading trail point.
type Particle struct {
	Position   [3]float32
	Brightness float64
}

// Particles owns every live particle in a world.
type Particles struct {
	Start     float64
	Decay     float64
	Threshold float64
	Size      float32
	Mesh      Mesh
	Color     [4]float32

	list  []Particle
	model math.Matrix[float32]
	ident math.Matrix[float32]
	draw  DrawCall
}

// NewParticles returns an empty set with default lifetime parameters.
func NewParticles(mesh Mesh) *Particles {
	return &Particles{
		Start:     DefaultBrightness,
		Decay:     DefaultDecay,
		Threshold: DefaultThreshold,
		Size:      0.01,
		Mesh:      mesh,
		Color:     [4]float32{1, 0.8, 0.5, 1},
		model:     math.Identity[float32](4),
		ident:     math.Identity[float32](4),
	}
}

// Emit adds a particle at full brightness.
func (p *Particles) Emit(pos [3]float32) {
	p.list = append(p.list, Particle{Position: pos, Brightness: p.Start})
}

// Len returns the number of particles held.
func (p *Particles) Len() int { return len(p.list) }

// All returns the held particles. The slice is reused by Sweep.
func (p *Particles) All() []Particle { return p.list }

// Update decays every particle by one frame.
func (p *Particles) Update() {
	for i := range p.list {
		p.list[i].Brightness -= p.Decay
	}
}

// Alive reports whether pt is still above the removal threshold.
func (p *Particles) Alive(pt Particle) bool {
	return pt.Brightness > p.Threshold
}

// Sweep drops expired particles in place and returns how many were removed.
func (p *Particles) Sweep() int {
	kept := p.list[:0]
	for _, pt := range p.list {
		if p.Alive(pt) {
			kept = append(kept, pt)
		}
	}
	removed := len(p.list) - len(kept)
	clear(p.list[len(kept):])
	p.list = kept
	return removed
}

// Clear drops every particle.
func (p *Particles) Clear() {
	p.list = p.list[:0]
}

// Render issues one additive draw per particle.
func (p *Particles) Render(d Drawer) {
	if p.Mesh == nil {
		return
	}
	p.model.SetIdentity()
	p.model.Set(0, 0, p.Size)
	p.model.Set(1, 1, p.Size)
	p.model.Set(2, 2, p.Size)
	for _, pt := range p.list {
		p.model.Set(0, 3, pt.Position[0])
		p.model.Set(1, 3, pt.Position[1])
		p.model.Set(2, 3, pt.Position[2])
		p.draw = DrawCall{
			Name:       "particle",
			Pass:       PassAdditive,
			Model:      p.model,
			Normal:     p.ident,
			Mesh:       p.Mesh,
			Color:      p.Color,
			Brightness: float32(pt.Brightness),
		}
		d.Draw(&p.draw)
	}
}

// Package mesh builds and uploads the procedural meshes of the globe view.
package mesh

import (
	"github.com/chewxy/math32"
)

// Vertex matches the attribute layout of the entity shader:
// position (0), normal (1), color (2), texture coordinate (3).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
	TexCoord [2]float32
}

// Geometry holds mesh data ready for GPU upload.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func (g *Geometry) computeBounds() {
	if len(g.Vertices) == 0 {
		g.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: g.Vertices[0].Position, Max: g.Vertices[0].Position}
	for _, v := range g.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	g.Bounds = b
}

// Sphere builds a unit UV sphere. Texture coordinates map an
// equirectangular image with u running east and v running south.
func Sphere(stacks, slices int, color [4]float32) *Geometry {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	g := &Geometry{
		Vertices: make([]Vertex, 0, (stacks+1)*(slices+1)),
		Indices:  make([]uint32, 0, stacks*slices*6),
	}
	for i := 0; i <= stacks; i++ {
		v := float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sincos(v * math32.Pi)
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sincos(u * 2 * math32.Pi)
			p := [3]float32{sinPhi * cosTheta, cosPhi, -sinPhi * sinTheta}
			g.Vertices = append(g.Vertices, Vertex{
				Position: p,
				Normal:   p,
				Color:    color,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	g.computeBounds()
	return g
}

// Cone builds a cone with its apex at the origin and its base disk at
// y = height, so that it points down -Y.
func Cone(segments int, radius, height float32, color [4]float32) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{}

	rim := func(k int) [3]float32 {
		s, c := math32.Sincos(float32(k) / float32(segments) * 2 * math32.Pi)
		return [3]float32{radius * c, height, -radius * s}
	}
	apex := [3]float32{0, 0, 0}
	center := [3]float32{0, height, 0}

	for k := 0; k < segments; k++ {
		p0, p1 := rim(k), rim(k+1)
		// side faces outward, cap faces +Y
		g.addTriangle(apex, p1, p0, color)
		g.addTriangle(center, p0, p1, color)
	}
	g.computeBounds()
	return g
}

// Octahedron builds a flat-shaded unit octahedron, used for particles.
func Octahedron(color [4]float32) *Geometry {
	px, nx := [3]float32{1, 0, 0}, [3]float32{-1, 0, 0}
	py, ny := [3]float32{0, 1, 0}, [3]float32{0, -1, 0}
	pz, nz := [3]float32{0, 0, 1}, [3]float32{0, 0, -1}

	g := &Geometry{}
	faces := [8][3][3]float32{
		{px, py, pz}, {pz, py, nx}, {nx, py, nz}, {nz, py, px},
		{px, pz, ny}, {pz, nx, ny}, {nx, nz, ny}, {nz, px, ny},
	}
	for _, f := range faces {
		g.addTriangle(f[0], f[1], f[2], color)
	}
	g.computeBounds()
	return g
}

// addTriangle appends a flat-shaded counter-clockwise triangle.
func (g *Geometry) addTriangle(a, b, c [3]float32, color [4]float32) {
	n := faceNormal(a, b, c)
	base := uint32(len(g.Vertices))
	for _, p := range [3][3]float32{a, b, c} {
		g.Vertices = append(g.Vertices, Vertex{Position: p, Normal: n, Color: color})
	}
	g.Indices = append(g.Indices, base, base+1, base+2)
}

func faceNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}

// Inside returns a copy of g meant to be viewed from within: winding is
// reversed and normals point inward.
func Inside(g *Geometry) *Geometry {
	out := &Geometry{
		Vertices: make([]Vertex, len(g.Vertices)),
		Indices:  make([]uint32, len(g.Indices)),
		Bounds:   g.Bounds,
	}
	copy(out.Vertices, g.Vertices)
	for i := range out.Vertices {
		n := &out.Vertices[i].Normal
		n[0], n[1], n[2] = -n[0], -n[1], -n[2]
	}
	for i := 0; i+2 < len(g.Indices); i += 3 {
		out.Indices[i] = g.Indices[i]
		out.Indices[i+1] = g.Indices[i+2]
		out.Indices[i+2] = g.Indices[i+1]
	}
	return out
}

package mesh

import (
	"testing"
	"unsafe"

	"github.com/chewxy/math32"
)

var white = [4]float32{1, 1, 1, 1}

func TestVertexLayout(t *testing.T) {
	if got := unsafe.Sizeof(Vertex{}); got != 48 {
		t.Errorf("Vertex size = %d, want 48", got)
	}
	if got := unsafe.Offsetof(Vertex{}.Color); got != 24 {
		t.Errorf("Color offset = %d, want 24", got)
	}
	if got := unsafe.Offsetof(Vertex{}.TexCoord); got != 40 {
		t.Errorf("TexCoord offset = %d, want 40", got)
	}
}

func TestSphereCounts(t *testing.T) {
	g := Sphere(8, 16, white)
	if len(g.Vertices) != 9*17 {
		t.Errorf("vertices = %d, want %d", len(g.Vertices), 9*17)
	}
	if len(g.Indices) != 8*16*6 {
		t.Errorf("indices = %d, want %d", len(g.Indices), 8*16*6)
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSphereUnitAndOutward(t *testing.T) {
	g := Sphere(6, 12, white)
	for i, v := range g.Vertices {
		p := v.Position
		l := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		if math32.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d length %f", i, l)
		}
		if v.Normal != v.Position {
			t.Fatalf("vertex %d normal %v != position %v", i, v.Normal, v.Position)
		}
	}
	checkOutward(t, g)

	if g.Bounds.Max[1] != 1 || g.Bounds.Min[1] != -1 {
		t.Errorf("bounds = %+v", g.Bounds)
	}
}

func TestOctahedron(t *testing.T) {
	g := Octahedron(white)
	if len(g.Vertices) != 24 || len(g.Indices) != 24 {
		t.Errorf("got %d vertices, %d indices", len(g.Vertices), len(g.Indices))
	}
	checkOutward(t, g)
}

func TestConePointsDown(t *testing.T) {
	g := Cone(12, 0.5, 2, white)
	if g.Bounds.Min[1] != 0 || g.Bounds.Max[1] != 2 {
		t.Errorf("cone bounds = %+v", g.Bounds)
	}
	// the cap faces up, every side faces down and out
	for i := 0; i < len(g.Indices); i += 3 {
		n := g.Vertices[g.Indices[i]].Normal
		if n[1] == 0 {
			t.Fatalf("triangle %d has horizontal normal %v", i/3, n)
		}
	}
}

func TestInsideFlips(t *testing.T) {
	g := Sphere(4, 8, white)
	in := Inside(g)
	if len(in.Indices) != len(g.Indices) {
		t.Fatal("index count changed")
	}
	if in.Vertices[5].Normal[1] != -g.Vertices[5].Normal[1] {
		t.Error("normal not flipped")
	}
	if in.Indices[1] != g.Indices[2] || in.Indices[2] != g.Indices[1] {
		t.Error("winding not reversed")
	}
	if g.Vertices[5].Normal != g.Vertices[5].Position {
		t.Error("Inside modified its input")
	}
}

// checkOutward verifies that every non-degenerate triangle winds
// counter-clockwise when seen from outside a shape centered on the origin.
func checkOutward(t *testing.T, g *Geometry) {
	t.Helper()
	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Position
		b := g.Vertices[g.Indices[i+1]].Position
		c := g.Vertices[g.Indices[i+2]].Position
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		area := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if area < 1e-6 {
			continue // pole triangles collapse
		}
		centroid := [3]float32{a[0] + b[0] + c[0], a[1] + b[1] + c[1], a[2] + b[2] + c[2]}
		if n[0]*centroid[0]+n[1]*centroid[1]+n[2]*centroid[2] <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
}

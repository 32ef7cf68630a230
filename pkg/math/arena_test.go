package math

import "testing"

func TestArenaMulAliasing(t *testing.T) {
	ar := NewArena[float32]()

	a := Translation[float32](1, 2, 3)
	b := Scaling[float32](2, 2, 2)
	want := a.Mul(b)

	// result overwrites the left operand
	left := a.Clone()
	ar.Mul(left, left, b)
	if !left.Equal(want) {
		t.Errorf("Arena.Mul into left = \n%v\nwant\n%v", left, want)
	}

	// result overwrites the right operand
	right := b.Clone()
	ar.Mul(right, a, right)
	if !right.Equal(want) {
		t.Errorf("Arena.Mul into right = \n%v\nwant\n%v", right, want)
	}
}

func TestArenaScratchNotExposed(t *testing.T) {
	ar := NewArena[float32]()
	a := Identity[float32](4)
	b := Translation[float32](1, 0, 0)

	first := New[float32](4, 4)
	ar.Mul(first, a, b)
	second := New[float32](4, 4)
	ar.Mul(second, b, b)

	// the second product reuses the 4x4 scratch buffer but must not change the first result
	if !first.Equal(b) {
		t.Errorf("first result changed after reuse of scratch:\n%v", first)
	}
	if second.At(0, 3) != 2 {
		t.Errorf("second result (0,3) = %f, want 2", second.At(0, 3))
	}
}

func TestArenaTransposeInPlace(t *testing.T) {
	ar := NewArena[float32]()
	r := Rotation[float32](0.1, 0.2, 0.3)
	want := r.T()
	ar.Transpose(r, r)
	if !r.Equal(want) {
		t.Errorf("in-place transpose = \n%v\nwant\n%v", r, want)
	}
}

func TestArenaMulMismatch(t *testing.T) {
	ar := NewArena[float32]()
	expectDimensionPanic(t, "Arena.Mul", func() {
		ar.Mul(New[float32](4, 4), New[float32](4, 3), New[float32](4, 4))
	})
}

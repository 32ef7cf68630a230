package math

// Arena holds scratch buffers keyed by matrix shape so that products can be
// written back over one of their own operands without allocating.
//
// An Arena belongs to exactly one owner (a world, a camera, a worker) and is
// not safe for concurrent use. Buffers never leave the arena: results are
// always copied into a caller-supplied destination.
type Arena[T Float] struct {
	scratch map[[2]int][]T
}

// NewArena returns an empty arena.
func NewArena[T Float]() *Arena[T] {
	return &Arena[T]{scratch: make(map[[2]int][]T)}
}

func (ar *Arena[T]) buffer(rows, cols int) []T {
	key := [2]int{rows, cols}
	buf, ok := ar.scratch[key]
	if !ok {
		buf = make([]T, rows*cols)
		ar.scratch[key] = buf
	}
	return buf
}

// Mul stores a·b in dst. dst may alias a or b.
func (ar *Arena[T]) Mul(dst, a, b Matrix[T]) {
	if a.cols != b.rows {
		mismatch("Mul", a.cols, b.cols, b.rows, b.cols)
	}
	if dst.rows != a.rows || dst.cols != b.cols {
		mismatch("Mul", a.rows, b.cols, dst.rows, dst.cols)
	}
	buf := ar.buffer(dst.rows, dst.cols)
	mulInto(buf, a, b)
	copy(dst.data, buf)
}

// Transpose stores aᵀ in dst. dst may alias a when a is square.
func (ar *Arena[T]) Transpose(dst, a Matrix[T]) {
	if dst.rows != a.cols || dst.cols != a.rows {
		mismatch("Transpose", a.cols, a.rows, dst.rows, dst.cols)
	}
	buf := ar.buffer(dst.rows, dst.cols)
	transposeInto(buf, a)
	copy(dst.data, buf)
}

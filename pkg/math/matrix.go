// Package math provides shape-checked matrices and vectors for 3D affine transforms.
//
// Matrices are stored row-major and multiply column vectors on the right (M·v).
// Every binary operation checks operand shapes and panics with a *DimensionError
// on mismatch; a wrong shape is a programming error, never resized or truncated.
package math

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the numeric field matrices are defined over.
type Float interface {
	constraints.Float
}

// Matrix is a rows×cols matrix with a fixed shape.
//
// Assigning a Matrix shares its backing store; use Clone for an independent copy.
type Matrix[T Float] struct {
	rows, cols int
	data       []T
}

// DimensionError describes an operation applied to operands of the wrong shape.
type DimensionError struct {
	Op   string
	Want [2]int
	Got  [2]int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("math: %s: shape mismatch: want %dx%d, got %dx%d",
		e.Op, e.Want[0], e.Want[1], e.Got[0], e.Got[1])
}

func mismatch(op string, wantR, wantC, gotR, gotC int) {
	panic(&DimensionError{Op: op, Want: [2]int{wantR, wantC}, Got: [2]int{gotR, gotC}})
}

// New returns a zero matrix of the given shape.
func New[T Float](rows, cols int) Matrix[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("math: invalid shape %dx%d", rows, cols))
	}
	return Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromSlice returns a rows×cols matrix holding a copy of data in row-major order.
func FromSlice[T Float](rows, cols int, data []T) Matrix[T] {
	m := New[T](rows, cols)
	if len(data) != rows*cols {
		mismatch("FromSlice", rows, cols, 1, len(data))
	}
	copy(m.data, data)
	return m
}

// FromRows builds a matrix from equally sized rows.
func FromRows[T Float](rows ...[]T) Matrix[T] {
	if len(rows) == 0 {
		panic("math: FromRows needs at least one row")
	}
	m := New[T](len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			mismatch("FromRows", 1, m.cols, 1, len(r))
		}
		copy(m.data[i*m.cols:], r)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity[T Float](n int) Matrix[T] {
	m := New[T](n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the row count.
func (m Matrix[T]) Rows() int { return m.rows }

// Cols returns the column count.
func (m Matrix[T]) Cols() int { return m.cols }

// Shape returns rows and columns.
func (m Matrix[T]) Shape() (int, int) { return m.rows, m.cols }

// IsZero reports whether m was never constructed.
func (m Matrix[T]) IsZero() bool { return m.data == nil }

// At returns the element at row i, column j.
func (m Matrix[T]) At(i, j int) T {
	m.checkIndex("At", i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m Matrix[T]) Set(i, j int, v T) {
	m.checkIndex("Set", i, j)
	m.data[i*m.cols+j] = v
}

// checkIndex panics when (i, j) lies outside the matrix. Got carries the
// one-based position that was asked for.
func (m Matrix[T]) checkIndex(op string, i, j int) {
	if i < 0 || j < 0 || i >= m.rows || j >= m.cols {
		mismatch(op, m.rows, m.cols, i+1, j+1)
	}
}

// Data returns the row-major backing store. Writes go straight into m.
func (m Matrix[T]) Data() []T {
	return m.data
}

// Clone returns an independent copy of m.
func (m Matrix[T]) Clone() Matrix[T] {
	c := Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	copy(c.data, m.data)
	return c
}

// CopyFrom overwrites m with the contents of src.
func (m Matrix[T]) CopyFrom(src Matrix[T]) {
	m.mustMatch("CopyFrom", src)
	copy(m.data, src.data)
}

// SetIdentity overwrites a square matrix with the identity.
func (m Matrix[T]) SetIdentity() {
	if m.rows != m.cols {
		mismatch("SetIdentity", m.rows, m.rows, m.rows, m.cols)
	}
	clear(m.data)
	for i := 0; i < m.rows; i++ {
		m.data[i*m.cols+i] = 1
	}
}

// Equal reports exact element equality; shapes must match.
func (m Matrix[T]) Equal(o Matrix[T]) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every element differs from o by at most eps.
func (m Matrix[T]) ApproxEqual(o Matrix[T], eps T) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(float64(v-o.data[i])) > float64(eps) {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m Matrix[T]) String() string {
	s := ""
	for i := 0; i < m.rows; i++ {
		s += fmt.Sprint(m.data[i*m.cols : (i+1)*m.cols])
		if i < m.rows-1 {
			s += "\n"
		}
	}
	return s
}

func (m Matrix[T]) mustMatch(op string, o Matrix[T]) {
	if m.rows != o.rows || m.cols != o.cols {
		mismatch(op, m.rows, m.cols, o.rows, o.cols)
	}
}

// sameStore reports whether a and b share a backing array.
func sameStore[T Float](a, b Matrix[T]) bool {
	return len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0]
}

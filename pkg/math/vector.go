package math

import "math"

// Vector is a single-column matrix. Homogeneous vectors carry a fourth
// component: 1 for points, 0 for directions.
type Vector[T Float] = Matrix[T]

// NewVector returns a zero vector with n components.
func NewVector[T Float](n int) Vector[T] {
	return New[T](n, 1)
}

// Vec returns a vector holding xs.
func Vec[T Float](xs ...T) Vector[T] {
	return FromSlice(len(xs), 1, xs)
}

// Vec3 returns a 3-component vector.
func Vec3[T Float](x, y, z T) Vector[T] {
	return Vec(x, y, z)
}

// Point returns the homogeneous point (x, y, z, 1).
func Point[T Float](x, y, z T) Vector[T] {
	return Vec(x, y, z, 1)
}

// Direction returns the homogeneous direction (x, y, z, 0).
func Direction[T Float](x, y, z T) Vector[T] {
	return Vec(x, y, z, 0)
}

// IsVector reports whether m has a single column.
func (m Matrix[T]) IsVector() bool { return m.cols == 1 }

// Len returns the component count of a vector.
func (m Matrix[T]) Len() int {
	m.mustVector("Len")
	return m.rows
}

// Elem returns component i of a vector.
func (m Matrix[T]) Elem(i int) T {
	m.mustVector("Elem")
	return m.data[i]
}

// SetElem stores v in component i of a vector.
func (m Matrix[T]) SetElem(i int, v T) {
	m.mustVector("SetElem")
	m.data[i] = v
}

// X returns component 0.
func (m Matrix[T]) X() T { return m.Elem(0) }

// Y returns component 1.
func (m Matrix[T]) Y() T { return m.Elem(1) }

// Z returns component 2.
func (m Matrix[T]) Z() T { return m.Elem(2) }

// W returns component 3.
func (m Matrix[T]) W() T { return m.Elem(3) }

// SetXYZ overwrites the first three components.
func (m Matrix[T]) SetXYZ(x, y, z T) {
	if m.rows < 3 || m.cols != 1 {
		mismatch("SetXYZ", 3, 1, m.rows, m.cols)
	}
	m.data[0], m.data[1], m.data[2] = x, y, z
}

func (m Matrix[T]) mustVector(op string) {
	if m.cols != 1 {
		mismatch(op, m.rows, 1, m.rows, m.cols)
	}
}

// Dot returns the dot product of two vectors of equal length.
func Dot[T Float](a, b Vector[T]) T {
	a.mustVector("Dot")
	a.mustMatch("Dot", b)
	var sum T
	for i, v := range a.data {
		sum += v * b.data[i]
	}
	return sum
}

// CrossTo stores the right-handed cross product a × b in dst.
// Operands have 3 or 4 components; only x, y, z take part and a fourth
// component of dst is set to 0 (the result is a direction). dst may alias a or b.
func CrossTo[T Float](dst, a, b Vector[T]) {
	a.mustMatch("Cross", b)
	dst.mustMatch("Cross", a)
	if a.cols != 1 || (a.rows != 3 && a.rows != 4) {
		mismatch("Cross", 3, 1, a.rows, a.cols)
	}
	ax, ay, az := a.data[0], a.data[1], a.data[2]
	bx, by, bz := b.data[0], b.data[1], b.data[2]
	dst.data[0] = ay*bz - az*by
	dst.data[1] = az*bx - ax*bz
	dst.data[2] = ax*by - ay*bx
	if dst.rows == 4 {
		dst.data[3] = 0
	}
}

// Cross returns a new vector a × b.
func Cross[T Float](a, b Vector[T]) Vector[T] {
	r := NewVector[T](a.rows)
	CrossTo(r, a, b)
	return r
}

// Norm returns the Euclidean (Frobenius) norm of m.
func (m Matrix[T]) Norm() T {
	var sum float64
	for _, v := range m.data {
		sum += float64(v) * float64(v)
	}
	return T(math.Sqrt(sum))
}

// Normalized returns m scaled to unit norm. A zero matrix is returned unchanged.
func (m Matrix[T]) Normalized() Matrix[T] {
	n := m.Norm()
	if n == 0 {
		return m.Clone()
	}
	return m.Scale(1 / n)
}

package math

import "math"

func sincos[T Float](angle T) (s, c T) {
	sf, cf := math.Sincos(float64(angle))
	return T(sf), T(cf)
}

// Rotation2D returns the 2×2 counter-clockwise rotation by angle radians.
func Rotation2D[T Float](angle T) Matrix[T] {
	s, c := sincos(angle)
	return FromRows(
		[]T{c, -s},
		[]T{s, c},
	)
}

// Translation2D returns the 3×3 homogeneous 2D translation.
func Translation2D[T Float](x, y T) Matrix[T] {
	return FromRows(
		[]T{1, 0, x},
		[]T{0, 1, y},
		[]T{0, 0, 1},
	)
}

// RotationX returns a 4×4 right-handed rotation around the X axis.
// angle is in radians.
func RotationX[T Float](angle T) Matrix[T] {
	s, c := sincos(angle)
	return FromRows(
		[]T{1, 0, 0, 0},
		[]T{0, c, -s, 0},
		[]T{0, s, c, 0},
		[]T{0, 0, 0, 1},
	)
}

// RotationY returns a 4×4 right-handed rotation around the Y axis.
// angle is in radians.
func RotationY[T Float](angle T) Matrix[T] {
	s, c := sincos(angle)
	return FromRows(
		[]T{c, 0, s, 0},
		[]T{0, 1, 0, 0},
		[]T{-s, 0, c, 0},
		[]T{0, 0, 0, 1},
	)
}

// RotationZ returns a 4×4 right-handed rotation around the Z axis.
// angle is in radians.
func RotationZ[T Float](angle T) Matrix[T] {
	s, c := sincos(angle)
	return FromRows(
		[]T{c, -s, 0, 0},
		[]T{s, c, 0, 0},
		[]T{0, 0, 1, 0},
		[]T{0, 0, 0, 1},
	)
}

// Rotation returns Rx·Ry·Rz: applied to a column vector, z rotates first,
// then y, then x.
func Rotation[T Float](rx, ry, rz T) Matrix[T] {
	r := New[T](4, 4)
	RotationTo(r, rx, ry, rz)
	return r
}

// RotationTo writes Rx·Ry·Rz into the 4×4 matrix dst.
func RotationTo[T Float](dst Matrix[T], rx, ry, rz T) {
	if dst.rows != 4 || dst.cols != 4 {
		mismatch("Rotation", 4, 4, dst.rows, dst.cols)
	}
	sx, cx := sincos(rx)
	sy, cy := sincos(ry)
	sz, cz := sincos(rz)
	d := dst.data
	d[0], d[1], d[2], d[3] = cy*cz, -cy*sz, sy, 0
	d[4], d[5], d[6], d[7] = sx*sy*cz+cx*sz, -sx*sy*sz+cx*cz, -sx*cy, 0
	d[8], d[9], d[10], d[11] = -cx*sy*cz+sx*sz, cx*sy*sz+sx*cz, cx*cy, 0
	d[12], d[13], d[14], d[15] = 0, 0, 0, 1
}

// Translation returns the 4×4 homogeneous translation by (x, y, z).
func Translation[T Float](x, y, z T) Matrix[T] {
	return FromRows(
		[]T{1, 0, 0, x},
		[]T{0, 1, 0, y},
		[]T{0, 0, 1, z},
		[]T{0, 0, 0, 1},
	)
}

// Scaling returns the 4×4 homogeneous scale by (x, y, z).
func Scaling[T Float](x, y, z T) Matrix[T] {
	return FromRows(
		[]T{x, 0, 0, 0},
		[]T{0, y, 0, 0},
		[]T{0, 0, z, 0},
		[]T{0, 0, 0, 1},
	)
}

// Inverse returns the inverse of a square matrix using Gauss-Jordan
// elimination with partial pivoting. ok is false when m is singular.
func Inverse[T Float](m Matrix[T]) (inv Matrix[T], ok bool) {
	if m.rows != m.cols {
		mismatch("Inverse", m.rows, m.rows, m.rows, m.cols)
	}
	n := m.rows
	a := make([]float64, n*n)
	for i, v := range m.data {
		a[i] = float64(v)
	}
	b := make([]float64, n*n)
	for i := 0; i < n; i++ {
		b[i*n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r*n+col]) > math.Abs(a[pivot*n+col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot*n+col]) < 1e-12 {
			return Matrix[T]{}, false
		}
		if pivot != col {
			for k := 0; k < n; k++ {
				a[col*n+k], a[pivot*n+k] = a[pivot*n+k], a[col*n+k]
				b[col*n+k], b[pivot*n+k] = b[pivot*n+k], b[col*n+k]
			}
		}
		p := a[col*n+col]
		for k := 0; k < n; k++ {
			a[col*n+k] /= p
			b[col*n+k] /= p
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a[r*n+col]
			if f == 0 {
				continue
			}
			for k := 0; k < n; k++ {
				a[r*n+k] -= f * a[col*n+k]
				b[r*n+k] -= f * b[col*n+k]
			}
		}
	}

	inv = New[T](n, n)
	for i, v := range b {
		inv.data[i] = T(v)
	}
	return inv, true
}

package math

// AddTo stores a + b in dst. dst may alias a or b.
func AddTo[T Float](dst, a, b Matrix[T]) {
	a.mustMatch("Add", b)
	dst.mustMatch("Add", a)
	for i := range dst.data {
		dst.data[i] = a.data[i] + b.data[i]
	}
}

// SubTo stores a - b in dst. dst may alias a or b.
func SubTo[T Float](dst, a, b Matrix[T]) {
	a.mustMatch("Sub", b)
	dst.mustMatch("Sub", a)
	for i := range dst.data {
		dst.data[i] = a.data[i] - b.data[i]
	}
}

// MulElemTo stores the elementwise product of a and b in dst. dst may alias a or b.
func MulElemTo[T Float](dst, a, b Matrix[T]) {
	a.mustMatch("MulElem", b)
	dst.mustMatch("MulElem", a)
	for i := range dst.data {
		dst.data[i] = a.data[i] * b.data[i]
	}
}

// DivElemTo stores the elementwise quotient a / b in dst. dst may alias a or b.
func DivElemTo[T Float](dst, a, b Matrix[T]) {
	a.mustMatch("DivElem", b)
	dst.mustMatch("DivElem", a)
	for i := range dst.data {
		dst.data[i] = a.data[i] / b.data[i]
	}
}

// ScaleTo stores a * s in dst. dst may alias a.
func ScaleTo[T Float](dst, a Matrix[T], s T) {
	dst.mustMatch("Scale", a)
	for i := range dst.data {
		dst.data[i] = a.data[i] * s
	}
}

// MulTo stores the matrix product a·b in dst.
// a is M×N, b is N×P and dst must be M×P. dst must not share storage with
// either operand; use an Arena when the result should overwrite an input.
func MulTo[T Float](dst, a, b Matrix[T]) {
	if a.cols != b.rows {
		mismatch("Mul", a.cols, b.cols, b.rows, b.cols)
	}
	if dst.rows != a.rows || dst.cols != b.cols {
		mismatch("Mul", a.rows, b.cols, dst.rows, dst.cols)
	}
	if sameStore(dst, a) || sameStore(dst, b) {
		panic("math: MulTo destination aliases an operand")
	}
	mulInto(dst.data, a, b)
}

func mulInto[T Float](out []T, a, b Matrix[T]) {
	n, p := a.cols, b.cols
	for i := 0; i < a.rows; i++ {
		for j := 0; j < p; j++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += a.data[i*n+k] * b.data[k*p+j]
			}
			out[i*p+j] = sum
		}
	}
}

// TransposeTo stores aᵀ in dst. dst must not share storage with a.
func TransposeTo[T Float](dst, a Matrix[T]) {
	if dst.rows != a.cols || dst.cols != a.rows {
		mismatch("Transpose", a.cols, a.rows, dst.rows, dst.cols)
	}
	if sameStore(dst, a) {
		panic("math: TransposeTo destination aliases its operand")
	}
	transposeInto(dst.data, a)
}

func transposeInto[T Float](out []T, a Matrix[T]) {
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}
}

// Add returns a new matrix m + o.
func (m Matrix[T]) Add(o Matrix[T]) Matrix[T] {
	r := New[T](m.rows, m.cols)
	AddTo(r, m, o)
	return r
}

// Sub returns a new matrix m - o.
func (m Matrix[T]) Sub(o Matrix[T]) Matrix[T] {
	r := New[T](m.rows, m.cols)
	SubTo(r, m, o)
	return r
}

// Scale returns a new matrix m * s.
func (m Matrix[T]) Scale(s T) Matrix[T] {
	r := New[T](m.rows, m.cols)
	ScaleTo(r, m, s)
	return r
}

// Mul returns a new matrix m·o.
func (m Matrix[T]) Mul(o Matrix[T]) Matrix[T] {
	r := New[T](m.rows, o.cols)
	MulTo(r, m, o)
	return r
}

// T returns a new transposed matrix.
func (m Matrix[T]) T() Matrix[T] {
	r := New[T](m.cols, m.rows)
	TransposeTo(r, m)
	return r
}

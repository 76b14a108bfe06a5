package matrix

// Dense is a float64 matrix. A float64 slice is used as the underlying
// storage and the data layout is in row major order, i.e. the (i*c + j)-th
// element in the data slice is the [i, j]-th element in the matrix.
type Dense struct {
	nrow int
	ncol int
	data []float64
}

// NewDense creates a new Dense matrix with r rows and c columns.
// It panics if either dimension is not positive.
func NewDense(r, c int) *Dense {
	if r <= 0 || c <= 0 {
		panic(ErrBadShape)
	}
	return &Dense{
		nrow: r,
		ncol: c,
		data: make([]float64, r*c),
	}
}

// get the shape of the matrix
func (m *Dense) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Dense) Get(r, c int) float64 {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Dense) Set(r, c int, val float64) {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Dense) Incr(r, c int, val float64) {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] += val
}

// RowView returns the r-th row as a slice sharing the underlying storage.
func (m *Dense) RowView(r int) []float64 {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}

// GetRow returns a copy of the r-th row of the matrix.
func (m *Dense) GetRow(r int) []float64 {
	row := make([]float64, m.ncol)
	copy(row, m.RowView(r))
	return row
}

// SetRow copies vals into the r-th row of the matrix.
func (m *Dense) SetRow(r int, vals []float64) {
	if len(vals) != m.ncol {
		panic(ErrBadShape)
	}
	copy(m.RowView(r), vals)
}

// GetCol returns a copy of the c-th column of the matrix.
func (m *Dense) GetCol(c int) []float64 {
	if c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]float64, m.nrow)
	for r := 0; r < m.nrow; r += 1 {
		column[r] = m.data[r*m.ncol+c]
	}
	return column
}

// RawData returns the underlying row major slice. Callers must treat the
// slice as read-only unless they own the matrix.
func (m *Dense) RawData() []float64 {
	return m.data
}

// Clone returns a deep copy of the matrix.
func (m *Dense) Clone() *Dense {
	out := NewDense(m.nrow, m.ncol)
	copy(out.data, m.data)
	return out
}

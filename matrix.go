package rotator

// Matrix is a row-major grid of pixels. Every cell has its own storage slot;
// a new Matrix is entirely Transparent.
type Matrix struct {
	rows  int
	cols  int
	cells []Pixel
}

// neighborOffsets is the Moore neighbourhood as {dRow, dCol}.
var neighborOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// NewMatrix allocates a rows×cols matrix. Both dimensions must be positive.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 1 || cols < 1 {
		panic("rotator: matrix dimensions must be positive")
	}
	return &Matrix{
		rows:  rows,
		cols:  cols,
		cells: make([]Pixel, rows*cols),
	}
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// InBounds reports whether (row, col) lies inside the matrix.
func (m *Matrix) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns the pixel at (row, col). Out of bounds cells read as Transparent.
func (m *Matrix) At(row, col int) Pixel {
	if !m.InBounds(row, col) {
		return Transparent
	}
	return m.cells[row*m.cols+col]
}

// Set stores p at (row, col). It panics if the cell is out of bounds.
func (m *Matrix) Set(row, col int, p Pixel) {
	if !m.InBounds(row, col) {
		panic("rotator: matrix index out of bounds")
	}
	m.cells[row*m.cols+col] = p
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		rows:  m.rows,
		cols:  m.cols,
		cells: make([]Pixel, len(m.cells)),
	}
	copy(c.cells, m.cells)
	return c
}

// Neighbors calls fn for each of the up-to-8 cells around (row, col) that is
// in bounds and not empty.
func (m *Matrix) Neighbors(row, col int, fn func(p Pixel)) {
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if !m.InBounds(r, c) {
			continue
		}
		if p := m.cells[r*m.cols+c]; !p.Empty() {
			fn(p)
		}
	}
}

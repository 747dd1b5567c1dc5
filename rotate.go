package rotator

import (
	"math"

	"golang.org/x/image/math/f64"
)

// rotation returns the clockwise rotation about (centerRow, centerCol) in
// (row, col) space, in the usual row-major affine layout
// {a, b, tx, c, d, ty}. The translation terms are the center; the transform
// is applied to offsets from it.
func rotation(centerRow, centerCol int, radians float64) f64.Aff3 {
	cos, sin := math.Cos(radians), math.Sin(radians)
	return f64.Aff3{
		cos, sin, float64(centerRow),
		-sin, cos, float64(centerCol),
	}
}

// mapCell applies t to (row, col) and reflects negative results onto the
// positive axis before rounding. Reordering the arithmetic changes which
// cells round to which destination. The float64 conversions stop the
// compiler from fusing multiply-adds.
func mapCell(t *f64.Aff3, centerRow, centerCol, row, col int) (newRow, newCol int) {
	dr := float64(row - centerRow)
	dc := float64(col - centerCol)
	r := float64(t[0]*dr) + float64(t[1]*dc) + t[2]
	c := float64(t[3]*dr) + float64(t[4]*dc) + t[5]
	return int(math.Round(math.Abs(r))), int(math.Round(math.Abs(c)))
}

// RotateMatrix forward-maps the srcRows×srcCols block of m starting at
// (rowPad, colPad) onto a new matrix of the same size, rotated clockwise by
// radians about the center. The border Scale added around that block is
// never read. Cells landing outside the matrix are dropped. Destination
// cells nothing lands on stay Transparent.
func RotateMatrix(m *Matrix, rowPad, colPad, srcRows, srcCols int, radians float64) *Matrix {
	rows, cols := m.Rows(), m.Cols()
	dst := NewMatrix(rows, cols)
	centerRow, centerCol := rows/2, cols/2
	t := rotation(centerRow, centerCol, radians)

	rowEnd := min(rowPad+srcRows, rows)
	colEnd := min(colPad+srcCols, cols)
	for r := rowPad; r < rowEnd; r++ {
		for c := colPad; c < colEnd; c++ {
			newRow, newCol := mapCell(&t, centerRow, centerCol, r, c)
			if !dst.InBounds(newRow, newCol) {
				continue
			}
			dst.Set(newRow, newCol, m.At(r, c))
		}
	}
	return dst
}

package rotator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Literal rendition of the mapping, used to pin down mapCell.
func referenceMap(centerRow, centerCol, row, col int, radians float64) (int, int) {
	cos, sin := math.Cos(radians), math.Sin(radians)
	r := float64(cos*float64(row-centerRow)) + float64(sin*float64(col-centerCol)) + float64(centerRow)
	c := float64(cos*float64(col-centerCol)) - float64(sin*float64(row-centerRow)) + float64(centerCol)
	return int(math.Round(math.Abs(r))), int(math.Round(math.Abs(c)))
}

func TestMapCellMatchesFormula(t *testing.T) {
	for _, a := range []float64{0, 0.1, 0.5, math.Pi / 4, 1, math.Pi / 2, 2, 3, 4.5, 6.2} {
		for _, center := range [][2]int{{0, 0}, {5, 5}, {7, 4}} {
			tr := rotation(center[0], center[1], a)
			for r := 0; r < 12; r++ {
				for c := 0; c < 12; c++ {
					gr, gc := mapCell(&tr, center[0], center[1], r, c)
					er, ec := referenceMap(center[0], center[1], r, c, a)
					require.Equal(t, er, gr, "angle %v center %v cell %v,%v", a, center, r, c)
					require.Equal(t, ec, gc, "angle %v center %v cell %v,%v", a, center, r, c)
				}
			}
		}
	}
}

func TestMapCellReflectsNegative(t *testing.T) {
	// Half a turn about (0,0) sends (2,3) to (-2,-3), which reflects back to (2,3).
	tr := rotation(0, 0, math.Pi)
	r, c := mapCell(&tr, 0, 0, 2, 3)
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
}

func TestRotateMatrixIdentity(t *testing.T) {
	m, err := Frame(gridImage(4, 4))
	require.NoError(t, err)
	out := RotateMatrix(m, 0, 0, 4, 4, 0)
	require.Equal(t, m, out)
	require.NotSame(t, m, out)
}

func TestRotateMatrixQuarterTurnOdd(t *testing.T) {
	m, err := Frame(gridImage(3, 3))
	require.NoError(t, err)
	out := RotateMatrix(m, 0, 0, 3, 3, math.Pi/2)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			// Clockwise: the top row becomes the right column.
			require.Equal(t, m.At(2-c, r), out.At(r, c), "cell %v,%v", r, c)
		}
	}
}

func TestRotateMatrixDropsOutOfBounds(t *testing.T) {
	// With an even side the center is off by half a cell, so the top row maps
	// one column past the right edge and is dropped.
	m, err := Frame(gridImage(4, 4))
	require.NoError(t, err)
	out := RotateMatrix(m, 0, 0, 4, 4, math.Pi/2)
	for r := 0; r < 4; r++ {
		require.True(t, out.At(r, 0).Empty(), "row %v", r)
		for c := 1; c < 4; c++ {
			require.Equal(t, m.At(4-c, r), out.At(r, c), "cell %v,%v", r, c)
		}
	}
}

func TestRotateMatrixSkipsPadding(t *testing.T) {
	// Content outside the padding border is never read.
	m := NewMatrix(5, 5)
	m.Set(0, 0, Pixel{255, 255, 255, 255})
	out := RotateMatrix(m, 1, 1, 3, 3, 0)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			require.True(t, out.At(r, c).Empty())
		}
	}
}

func TestRotateMatrixSkipsUnevenPadding(t *testing.T) {
	// 10 wide at 0.3 rad needs a 13 wide box: one cell of padding before the
	// content and two after. The trailing row and column are never read.
	framed, err := Frame(solidImage(10, 10, Pixel{9, 9, 9, 255}))
	require.NoError(t, err)
	scaled, rowPad, colPad := Scale(framed, 0.3)
	require.Equal(t, 13, scaled.Rows())
	require.Equal(t, 1, rowPad)
	require.Equal(t, 1, colPad)

	marker := Pixel{255, 0, 255, 255}
	for i := 0; i < 13; i++ {
		scaled.Set(11, i, marker)
		scaled.Set(12, i, marker)
		scaled.Set(i, 11, marker)
		scaled.Set(i, 12, marker)
	}
	out := RotateMatrix(scaled, rowPad, colPad, 10, 10, 0.3)
	opaque := 0
	for r := 0; r < out.Rows(); r++ {
		for c := 0; c < out.Cols(); c++ {
			require.NotEqual(t, marker, out.At(r, c), "cell %v,%v", r, c)
			if !out.At(r, c).Empty() {
				opaque++
			}
		}
	}
	t.Logf("opaque cells after mapping: %v", opaque)
	require.Greater(t, opaque, 0)
}

func TestRotateUnevenPaddingKeepsContent(t *testing.T) {
	// A 2×2 square at 0.45 rad lands in a 3×3 box with all padding after the
	// content. Transparent padding must not overwrite mapped pixels.
	p := Pixel{1, 2, 3, 255}
	out, err := Rotate(solidImage(2, 2, p), 0.45)
	require.NoError(t, err)
	require.Equal(t, 3, out.Width)
	require.Equal(t, 3, out.Height)
	want := [3][3]Pixel{
		{Transparent, p, Transparent},
		{p, p, Transparent},
		{Transparent, Transparent, Transparent},
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			require.Equal(t, want[r][c], pixelOf(out, r, c), "cell %v,%v", r, c)
		}
	}
}

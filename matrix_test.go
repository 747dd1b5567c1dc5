package rotator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrixCellsAreIndependent(t *testing.T) {
	m := NewMatrix(3, 4)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			require.Equal(t, Transparent, m.At(r, c))
		}
	}

	red := Pixel{255, 0, 0, 255}
	m.Set(1, 2, red)
	require.Equal(t, red, m.At(1, 2))
	require.Equal(t, Transparent, m.At(1, 1))
	require.Equal(t, Transparent, m.At(2, 2))

	c := m.Clone()
	c.Set(0, 0, red)
	require.Equal(t, Transparent, m.At(0, 0))
}

func TestMatrixBounds(t *testing.T) {
	m := NewMatrix(2, 3)
	require.True(t, m.InBounds(0, 0))
	require.True(t, m.InBounds(1, 2))
	require.False(t, m.InBounds(2, 0))
	require.False(t, m.InBounds(0, 3))
	require.False(t, m.InBounds(-1, 0))
	require.Equal(t, Transparent, m.At(5, 5))
	require.Panics(t, func() { m.Set(2, 0, Pixel{A: 255}) })
	require.Panics(t, func() { NewMatrix(0, 1) })
}

func TestMatrixNeighbors(t *testing.T) {
	m := NewMatrix(3, 3)
	opaque := Pixel{1, 2, 3, 255}
	m.Set(0, 0, opaque)
	m.Set(0, 1, Pixel{9, 9, 9, 0}) // stale color, but empty
	m.Set(1, 1, opaque)
	m.Set(2, 2, opaque)

	count := 0
	m.Neighbors(1, 1, func(p Pixel) { count++ })
	require.Equal(t, 2, count)

	// Corner: only 3 cells are in bounds, one of them is empty.
	count = 0
	m.Neighbors(0, 0, func(p Pixel) { count++ })
	require.Equal(t, 1, count)
}

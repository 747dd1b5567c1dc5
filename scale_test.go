package rotator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	require.Equal(t, 0.0, NormalizeAngle(0))
	require.Equal(t, 0.0, NormalizeAngle(math.Pi/2))
	require.InDelta(t, 0.25, NormalizeAngle(0.25+math.Pi), 1e-12)
	require.InDelta(t, 1.5, NormalizeAngle(1.5+3*math.Pi/2), 1e-12)
	for a := 0.0; a < 2*math.Pi; a += 0.01 {
		n := NormalizeAngle(a)
		require.GreaterOrEqual(t, n, 0.0)
		require.Less(t, n, math.Pi/2)
	}
}

func TestBoundingBox(t *testing.T) {
	w, h := BoundingBox(10, 10, 0)
	require.Equal(t, 10, w)
	require.Equal(t, 10, h)

	// 45 degrees: side * sqrt(2)
	w, h = BoundingBox(10, 10, math.Pi/4)
	require.Equal(t, 14, w)
	require.Equal(t, 14, h)

	w, h = BoundingBox(4, 2, 0)
	require.Equal(t, 4, w)
	require.Equal(t, 2, h)

	w, h = BoundingBox(4, 2, 0.3)
	require.Equal(t, 4, w)
	require.Equal(t, 3, h)
}

func TestBoundingBoxPeriodic(t *testing.T) {
	for _, side := range []int{5, 10, 37} {
		for _, a := range []float64{0.1, 0.3, 0.7, 1.2} {
			w, h := BoundingBox(side, side, a)
			for k := 1; k < 4; k++ {
				wk, hk := BoundingBox(side, side, a+float64(k)*math.Pi/2)
				require.Equal(t, w, wk, "side %v angle %v k %v", side, a, k)
				require.Equal(t, h, hk, "side %v angle %v k %v", side, a, k)
			}
		}
	}
}

func TestScale(t *testing.T) {
	m := NewMatrix(10, 10)
	red := Pixel{255, 0, 0, 255}
	m.Set(0, 0, red)
	m.Set(9, 9, red)

	scaled, rowPad, colPad := Scale(m, math.Pi/4)
	require.Equal(t, 14, scaled.Rows())
	require.Equal(t, 14, scaled.Cols())
	require.Equal(t, 2, rowPad)
	require.Equal(t, 2, colPad)
	require.Equal(t, red, scaled.At(2, 2))
	require.Equal(t, red, scaled.At(11, 11))
	require.True(t, scaled.At(1, 1).Empty())
	require.True(t, scaled.At(12, 12).Empty())

	for a := 0.0; a < 2*math.Pi; a += 0.05 {
		scaled, rowPad, colPad := Scale(m, a)
		require.GreaterOrEqual(t, scaled.Rows(), m.Rows())
		require.GreaterOrEqual(t, scaled.Cols(), m.Cols())
		require.GreaterOrEqual(t, rowPad, 0)
		require.GreaterOrEqual(t, colPad, 0)
	}
}

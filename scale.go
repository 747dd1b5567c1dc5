package rotator

import "math"

const quarterTurn = math.Pi / 2

// NormalizeAngle reduces a non-negative angle into [0, π/2). The bounding box
// of a rotated rectangle repeats every quarter turn.
func NormalizeAngle(radians float64) float64 {
	for radians >= quarterTurn {
		radians -= quarterTurn
	}
	return radians
}

// BoundingBox returns the dimensions of the smallest box holding a
// width×height rectangle rotated by radians.
func BoundingBox(width, height int, radians float64) (newWidth, newHeight int) {
	radians = NormalizeAngle(radians)
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	w := float64(width)*cos + float64(height)*sin
	h := float64(width)*sin + float64(height)*cos
	return int(math.Round(math.Abs(w))), int(math.Round(math.Abs(h)))
}

// Scale pads m with transparent cells up to the bounding box of its rotation
// by radians, keeping the content centered. rowPad and colPad are the number
// of cells added above and to the left; when the added total is odd, the
// extra row or column goes below or to the right.
func Scale(m *Matrix, radians float64) (scaled *Matrix, rowPad, colPad int) {
	newWidth, newHeight := BoundingBox(m.Cols(), m.Rows(), radians)
	// Guard against float error shrinking the box below the input.
	newWidth = max(newWidth, m.Cols())
	newHeight = max(newHeight, m.Rows())
	rowPad = (newHeight - m.Rows()) / 2
	colPad = (newWidth - m.Cols()) / 2

	scaled = NewMatrix(newHeight, newWidth)
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			scaled.Set(r+rowPad, c+colPad, m.At(r, c))
		}
	}
	return scaled, rowPad, colPad
}

package rotator

// DefaultGapThreshold is the neighbor count a gap must exceed to be filled.
const DefaultGapThreshold = 3

// FillGaps returns a copy of m in which every empty cell with more than
// threshold non-empty Moore neighbors is replaced by the opaque average of
// those neighbors. Neighbors are always read from m, so a filled cell never
// contributes to another fill in the same pass.
func FillGaps(m *Matrix, threshold int) *Matrix {
	// A cell with no neighbors has nothing to average.
	threshold = max(threshold, 0)
	dst := m.Clone()
	neighbors := make([]Pixel, 0, len(neighborOffsets))
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.At(r, c).Empty() {
				continue
			}
			neighbors = neighbors[:0]
			m.Neighbors(r, c, func(p Pixel) {
				neighbors = append(neighbors, p)
			})
			if len(neighbors) > threshold {
				dst.Set(r, c, averagePixel(neighbors))
			}
		}
	}
	return dst
}

package rotator

// Serialize flattens m into a row-major RGBA Image of m.Cols()×m.Rows().
func Serialize(m *Matrix) *Image {
	img := &Image{
		Width:  m.Cols(),
		Height: m.Rows(),
		Pixels: make([]byte, 0, m.Rows()*m.Cols()*4),
	}
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			p := m.At(r, c)
			img.Pixels = append(img.Pixels, p.R, p.G, p.B, p.A)
		}
	}
	return img
}

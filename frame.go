package rotator

// Frame pads img into a square matrix of side max(Width, Height), centering
// the content. Pixels missing from a short buffer, including a trailing
// partial pixel, become Transparent.
func Frame(img *Image) (*Matrix, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	side := max(img.Width, img.Height)
	rowOffset := (side - img.Height) / 2
	colOffset := (side - img.Width) / 2

	m := NewMatrix(side, side)
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			index := (r*img.Width + c) * 4
			if index+4 > len(img.Pixels) {
				// Lenient: the rest of the matrix is already transparent.
				return m, nil
			}
			p, err := PixelAt(img.Pixels, index)
			if err != nil {
				return nil, err
			}
			m.Set(rowOffset+r, colOffset+c, p)
		}
	}
	return m, nil
}

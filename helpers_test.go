package rotator

// solidImage returns a w×h image where every pixel is p.
func solidImage(w, h int, p Pixel) *Image {
	img := &Image{Width: w, Height: h, Pixels: make([]byte, 0, w*h*4)}
	for i := 0; i < w*h; i++ {
		img.Pixels = append(img.Pixels, p.R, p.G, p.B, p.A)
	}
	return img
}

// gridImage returns a w×h opaque image where every pixel is distinct.
func gridImage(w, h int) *Image {
	img := &Image{Width: w, Height: h, Pixels: make([]byte, 0, w*h*4)}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			img.Pixels = append(img.Pixels, byte(r*10+1), byte(c*10+1), 5, 255)
		}
	}
	return img
}

func pixelOf(img *Image, row, col int) Pixel {
	p, err := PixelAt(img.Pixels, (row*img.Width+col)*4)
	if err != nil {
		panic(err)
	}
	return p
}

// contentBounds returns the width and height of the box holding every non-empty pixel.
func contentBounds(img *Image) (width, height int) {
	minR, minC := img.Height, img.Width
	maxR, maxC := -1, -1
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			if pixelOf(img, r, c).Empty() {
				continue
			}
			minR, maxR = min(minR, r), max(maxR, r)
			minC, maxC = min(minC, c), max(maxC, c)
		}
	}
	if maxR < 0 {
		return 0, 0
	}
	return maxC - minC + 1, maxR - minR + 1
}

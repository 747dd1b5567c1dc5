package rotator

import "fmt"

// Pixel is a single RGBA sample. The zero value is Transparent.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is fully transparent black.
var Transparent = Pixel{}

// Empty reports whether the pixel carries no usable color (alpha == 0).
// Any stale RGB in an empty pixel is ignored.
func (p Pixel) Empty() bool {
	return p.A == 0
}

// PixelAt reads the four channels starting at index.
func PixelAt(data []byte, index int) (Pixel, error) {
	if index < 0 || index+4 > len(data) {
		return Transparent, fmt.Errorf("%w: pixel at %v, buffer length %v", ErrIndexOutOfRange, index, len(data))
	}
	return Pixel{
		R: data[index],
		G: data[index+1],
		B: data[index+2],
		A: data[index+3],
	}, nil
}

// averagePixel returns an opaque pixel whose RGB is the truncated mean of px.
// px must not be empty.
func averagePixel(px []Pixel) Pixel {
	var r, g, b int
	for _, p := range px {
		r += int(p.R)
		g += int(p.G)
		b += int(p.B)
	}
	n := len(px)
	return Pixel{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: 255,
	}
}

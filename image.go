package rotator

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Image is a non-premultiplied RGBA image with stride = Width*4.
// This is the shape a browser canvas hands out as ImageData.
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

// Validate checks that the descriptor has positive dimensions and a buffer.
// A buffer shorter than Width*Height*4 is accepted; the missing tail is
// treated as transparent by Frame.
func (s *Image) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image dimensions %vx%v", ErrInvalidInput, s.Width, s.Height)
	}
	// The framed square holds side² cells of 4 channels each.
	side := max(s.Width, s.Height)
	if side > math.MaxInt32 || side > math.MaxInt/4/side {
		return fmt.Errorf("%w: image dimensions %vx%v too large", ErrInvalidInput, s.Width, s.Height)
	}
	if s.Pixels == nil {
		return fmt.Errorf("%w: image has no pixel data", ErrInvalidInput)
	}
	return nil
}

// FromImage copies any image.Image into an Image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	dst := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]byte, b.Dx()*b.Dy()*4),
	}
	rowBytes := dst.Width * 4
	for y := 0; y < dst.Height; y++ {
		copy(dst.Pixels[y*rowBytes:(y+1)*rowBytes], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+rowBytes])
	}
	return dst
}

// NRGBA wraps a copy of the pixels as an *image.NRGBA. A short buffer leaves
// the remaining pixels transparent.
func (s *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	copy(dst.Pix, s.Pixels)
	return dst
}

// Shrink returns an image whose width and height are at most maxSize,
// preserving aspect ratio. If the image already fits, s is returned.
func (s *Image) Shrink(maxSize int) *Image {
	if maxSize <= 0 {
		return s
	}
	scaleX := float64(maxSize) / float64(s.Width)
	scaleY := float64(maxSize) / float64(s.Height)
	if scaleX >= 1 && scaleY >= 1 {
		return s
	}
	scale := min(scaleX, scaleY)
	w := max(1, int(math.Round(float64(s.Width)*scale)))
	h := max(1, int(math.Round(float64(s.Height)*scale)))
	resized := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), s.NRGBA(), image.Rect(0, 0, s.Width, s.Height), draw.Src, nil)
	if resized.Stride != w*4 {
		panic("unexpected stride")
	}
	return &Image{
		Width:  w,
		Height: h,
		Pixels: resized.Pix,
	}
}

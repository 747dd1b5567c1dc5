package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmharper/cimg/v2"
	"github.com/bmharper/rotator"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rotate [flags] <input> <output>\n")
	fmt.Fprintf(os.Stderr, "Rotates an image clockwise about its center. Input: jpeg, png, gif, bmp, tiff, webp. Output: jpeg, png, bmp, tiff.\n\n")
	flag.PrintDefaults()
}

func main() {
	var radians, degrees float64
	var threshold, maxRes int
	var verbose bool
	flag.Float64Var(&radians, "rad", math.NaN(), "Clockwise angle in radians, in [0, 2π)")
	flag.Float64Var(&degrees, "deg", math.NaN(), "Clockwise angle in degrees (any value, wrapped to a full turn)")
	flag.IntVar(&threshold, "threshold", rotator.DefaultGapThreshold, "Fill a gap only if it has more than this many neighbors")
	flag.IntVar(&maxRes, "maxres", 0, "Shrink the input to at most this width/height first. Zero to disable.")
	flag.BoolVar(&verbose, "v", false, "Log pipeline stages")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 || math.IsNaN(radians) == math.IsNaN(degrees) {
		usage()
		os.Exit(2)
	}
	if !math.IsNaN(degrees) {
		radians = rotator.NormalizeTurn(rotator.DegreesToRadians(degrees))
	}
	if verbose {
		rotator.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	inputFilename := flag.Arg(0)
	outputFilename := flag.Arg(1)
	org, err := readImage(inputFilename)
	check(err)

	params := rotator.DefaultParams()
	params.GapThreshold = threshold
	params.MaxResolution = maxRes
	rotated, err := rotator.RotateWithParams(org, radians, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rotate: %v\n", err)
		os.Exit(1)
	}
	check(writeImage(outputFilename, rotated))

	fmt.Printf("%vx%v\n", rotated.Width, rotated.Height)
}

func isJPEG(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg"
}

func readImage(filename string) (*rotator.Image, error) {
	if isJPEG(filename) {
		org, err := cimg.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		return fromRGB(org.ToRGB()), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %v: %w", filename, err)
	}
	return rotator.FromImage(img), nil
}

// fromRGB expands a 3 channel image to opaque RGBA.
func fromRGB(rgb *cimg.Image) *rotator.Image {
	dst := &rotator.Image{
		Width:  rgb.Width,
		Height: rgb.Height,
		Pixels: make([]byte, rgb.Width*rgb.Height*4),
	}
	for y := 0; y < rgb.Height; y++ {
		srcLine := rgb.Pixels[rgb.Stride*y : rgb.Stride*(y+1)]
		dstLine := dst.Pixels[y*rgb.Width*4 : (y+1)*rgb.Width*4]
		for x := 0; x < rgb.Width; x++ {
			dstLine[x*4] = srcLine[x*3]
			dstLine[x*4+1] = srcLine[x*3+1]
			dstLine[x*4+2] = srcLine[x*3+2]
			dstLine[x*4+3] = 255
		}
	}
	return dst
}

// toRGB flattens img onto a white background, since JPEG has no alpha.
func toRGB(img *rotator.Image) *cimg.Image {
	rgb := cimg.NewImage(img.Width, img.Height, cimg.PixelFormatRGB)
	for y := 0; y < img.Height; y++ {
		srcLine := img.Pixels[y*img.Width*4 : (y+1)*img.Width*4]
		dstLine := rgb.Pixels[rgb.Stride*y : rgb.Stride*(y+1)]
		for x := 0; x < img.Width; x++ {
			a := uint32(srcLine[x*4+3])
			for c := 0; c < 3; c++ {
				v := uint32(srcLine[x*4+c])
				dstLine[x*3+c] = byte((v*a + 255*(255-a)) / 255)
			}
		}
	}
	return rgb
}

func writeImage(filename string, img *rotator.Image) error {
	if isJPEG(filename) {
		return toRGB(img).WriteJPEG(filename, cimg.MakeCompressParams(cimg.Sampling444, 95, 0), 0644)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		err = png.Encode(f, img.NRGBA())
	case ".bmp":
		err = bmp.Encode(f, img.NRGBA())
	case ".tif", ".tiff":
		err = tiff.Encode(f, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(filename))
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// Package rotator rotates RGBA images by an arbitrary clockwise angle about
// their center.
//
// The image is framed into a square, padded out to the bounding box of the
// rotation, forward-mapped cell by cell, and finally the holes that forward
// mapping leaves behind are patched from their neighbors. Forward mapping is
// lossy: cells that round outside the canvas are dropped and isolated holes
// stay transparent. Output is deterministic for a given input.
//
// All functions are safe for concurrent use; nothing is shared between calls.
package rotator

import (
	"fmt"
	"math"
)

const fullTurn = 2 * math.Pi

// Parameters to RotateWithParams
type Params struct {
	GapThreshold  int // Fill an empty cell only if it has more than this many non-empty neighbors (0..8)
	MaxResolution int // If image width or height exceeds this, then shrink image to this size before rotating. Zero to disable.
}

// Create a new Params with defaults
func DefaultParams() *Params {
	return &Params{
		GapThreshold:  DefaultGapThreshold,
		MaxResolution: 0,
	}
}

// Rotate rotates img clockwise by radians, which must be in [0, 2π).
// The result is large enough to hold the rotated content.
func Rotate(img *Image, radians float64) (*Image, error) {
	return RotateWithParams(img, radians, nil)
}

// RotateWithParams is Rotate with tunable parameters. A nil params means DefaultParams.
func RotateWithParams(img *Image, radians float64, params *Params) (*Image, error) {
	if params == nil {
		params = DefaultParams()
	}
	if err := validateAngle(radians); err != nil {
		return nil, err
	}
	if params.GapThreshold < 0 || params.MaxResolution < 0 {
		return nil, fmt.Errorf("%w: params %+v", ErrInvalidInput, *params)
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	if params.MaxResolution != 0 {
		img = img.Shrink(params.MaxResolution)
	}

	framed, err := Frame(img)
	if err != nil {
		return nil, err
	}
	log.Debug("framed", "width", img.Width, "height", img.Height, "side", framed.Rows())

	scaled, rowPad, colPad := Scale(framed, radians)
	log.Debug("scaled", "rows", scaled.Rows(), "cols", scaled.Cols(), "rowPad", rowPad, "colPad", colPad)

	rotated := RotateMatrix(scaled, rowPad, colPad, framed.Rows(), framed.Cols(), radians)
	repaired := FillGaps(rotated, params.GapThreshold)
	out := Serialize(repaired)
	log.Debug("rotated", "radians", radians, "width", out.Width, "height", out.Height)
	return out, nil
}

func validateAngle(radians float64) error {
	if math.IsNaN(radians) || radians < 0 || radians >= fullTurn {
		return fmt.Errorf("%w: angle %v outside [0, 2π)", ErrInvalidInput, radians)
	}
	return nil
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// NormalizeTurn wraps any finite angle into [0, 2π), the range Rotate accepts.
func NormalizeTurn(radians float64) float64 {
	r := math.Mod(radians, fullTurn)
	if r < 0 {
		r += fullTurn
	}
	if r >= fullTurn {
		// -tiny + 2π rounds up to 2π
		r = 0
	}
	return r
}

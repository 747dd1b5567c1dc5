// Package wire holds the request and response encodings used by the rotate
// server: JSON for HTTP and websocket text frames, and a protobuf wire-format
// message for websocket binary frames.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bmharper/rotator"
)

// Channels is a flat RGBA buffer. It marshals as a JSON array of numbers and
// unmarshals from either an array or an object keyed by index, which is how
// browsers stringify a Uint8ClampedArray.
type Channels []byte

func (c Channels) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	out := make([]byte, 0, len(c)*4+2)
	out = append(out, '[')
	for i, v := range c {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (c *Channels) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	switch data[0] {
	case '[':
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		out := make(Channels, len(values))
		for i, v := range values {
			if err := checkChannel(i, v); err != nil {
				return err
			}
			out[i] = byte(v)
		}
		*c = out
	case '{':
		var values map[string]int
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		out := make(Channels, len(values))
		for k, v := range values {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(values) {
				return fmt.Errorf("channel key %q is not an index below %v", k, len(values))
			}
			if err := checkChannel(i, v); err != nil {
				return err
			}
			out[i] = byte(v)
		}
		*c = out
	default:
		return fmt.Errorf("channel data must be an array or an object")
	}
	return nil
}

func checkChannel(i, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("channel %v value %v outside 0..255", i, v)
	}
	return nil
}

// Image is the JSON form of rotator.Image.
type Image struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Data   Channels `json:"data"`
}

// RotateRequest is the body of POST /api/Rotate.
type RotateRequest struct {
	Image *Image   `json:"image"`
	Angle *float64 `json:"angle"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// Decode validates presence of the image and angle and converts the image.
// Range checks are left to the engine.
func (r *RotateRequest) Decode() (*rotator.Image, float64, error) {
	if r.Image == nil {
		return nil, 0, fmt.Errorf("%w: missing image", rotator.ErrInvalidInput)
	}
	if r.Angle == nil {
		return nil, 0, fmt.Errorf("%w: missing angle", rotator.ErrInvalidInput)
	}
	return r.Image.ToImage(), *r.Angle, nil
}

// ToImage converts to the engine representation. The pixel buffer is shared.
func (s *Image) ToImage() *rotator.Image {
	return &rotator.Image{
		Width:  s.Width,
		Height: s.Height,
		Pixels: []byte(s.Data),
	}
}

// FromImage converts an engine image for the response.
func FromImage(img *rotator.Image) *Image {
	return &Image{
		Width:  img.Width,
		Height: img.Height,
		Data:   Channels(img.Pixels),
	}
}

package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/bmharper/rotator"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the binary frame. A request sets all of them, a response
// leaves out the angle.
//
//	message Frame {
//	  uint32 width  = 1;
//	  uint32 height = 2;
//	  bytes  data   = 3;
//	  double angle  = 4;
//	  string id     = 5;
//	}
const (
	fieldWidth  protowire.Number = 1
	fieldHeight protowire.Number = 2
	fieldData   protowire.Number = 3
	fieldAngle  protowire.Number = 4
	fieldID     protowire.Number = 5
)

// ErrMalformedFrame indicates a binary frame that is not valid protobuf wire format.
var ErrMalformedFrame = errors.New("wire: malformed binary frame")

// Frame is a binary websocket message.
type Frame struct {
	ID     string
	Width  int
	Height int
	Data   []byte
	Angle  float64
}

// NewResponseFrame wraps a rotated image for the client that sent id.
func NewResponseFrame(id string, img *rotator.Image) *Frame {
	return &Frame{
		ID:     id,
		Width:  img.Width,
		Height: img.Height,
		Data:   img.Pixels,
	}
}

// Image returns the engine view of the frame. The pixel buffer is shared.
func (f *Frame) Image() *rotator.Image {
	return &rotator.Image{
		Width:  f.Width,
		Height: f.Height,
		Pixels: f.Data,
	}
}

// Marshal encodes f. Zero-valued fields are omitted.
func (f *Frame) Marshal() []byte {
	b := make([]byte, 0, len(f.Data)+len(f.ID)+32)
	if f.Width != 0 {
		b = protowire.AppendTag(b, fieldWidth, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Width))
	}
	if f.Height != 0 {
		b = protowire.AppendTag(b, fieldHeight, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Height))
	}
	if f.Data != nil {
		b = protowire.AppendTag(b, fieldData, protowire.BytesType)
		b = protowire.AppendBytes(b, f.Data)
	}
	if f.Angle != 0 {
		b = protowire.AppendTag(b, fieldAngle, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(f.Angle))
	}
	if f.ID != "" {
		b = protowire.AppendTag(b, fieldID, protowire.BytesType)
		b = protowire.AppendString(b, f.ID)
	}
	return b
}

// UnmarshalFrame decodes b. Unknown fields are skipped.
func UnmarshalFrame(b []byte) (*Frame, error) {
	f := &Frame{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldWidth && typ == protowire.VarintType,
			num == fieldHeight && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
			}
			if v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: dimension %v too large", ErrMalformedFrame, v)
			}
			if num == fieldWidth {
				f.Width = int(v)
			} else {
				f.Height = int(v)
			}
			b = b[n:]
		case num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
			}
			f.Data = append([]byte{}, v...)
			b = b[n:]
		case num == fieldAngle && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
			}
			f.Angle = math.Float64frombits(v)
			b = b[n:]
		case num == fieldID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
			}
			f.ID = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return f, nil
}

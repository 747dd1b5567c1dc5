package rotator

import "errors"

var (
	// ErrInvalidInput indicates a malformed image descriptor or an angle outside [0, 2π).
	ErrInvalidInput = errors.New("rotator: invalid input")
	// ErrIndexOutOfRange indicates a pixel was read from beyond the end of its buffer.
	ErrIndexOutOfRange = errors.New("rotator: index out of range")
)

package pictor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by buffer accessors and transform operations.
// Callers can test for them with errors.Is; wrapped forms carry the
// offending coordinates or parameters in their message.
var (
	// ErrShape reports a buffer whose data length does not match
	// width * height * channels.
	ErrShape = errors.New("pictor: buffer length does not match shape")

	// ErrOutOfBounds reports a coordinate or pixel index outside the
	// buffer extent.
	ErrOutOfBounds = errors.New("pictor: coordinate out of bounds")

	// ErrChannelMismatch reports a pixel write whose slice length does
	// not equal the buffer's channel count.
	ErrChannelMismatch = errors.New("pictor: pixel length does not match channel count")

	// ErrInvalidParam reports a degenerate or out-of-range configuration
	// value, such as a zero target dimension or a trim count that
	// exceeds the window size.
	ErrInvalidParam = errors.New("pictor: invalid parameter")

	// ErrDecode reports a failure in the decoding collaborator.
	ErrDecode = errors.New("pictor: decode failed")

	// ErrEncode reports a failure in the encoding collaborator.
	ErrEncode = errors.New("pictor: encode failed")
)

// shapeErr builds a wrapped ErrShape with the expected and actual lengths.
func shapeErr(want, got int) error {
	return fmt.Errorf("%w: want %d samples, got %d", ErrShape, want, got)
}

// boundsErr builds a wrapped ErrOutOfBounds for a 2D coordinate.
func boundsErr(x, y int, w, h uint32) error {
	return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, w, h)
}

// indexErr builds a wrapped ErrOutOfBounds for a 1D pixel index.
func indexErr(i int, size uint32) error {
	return fmt.Errorf("%w: index %d outside %d pixels", ErrOutOfBounds, i, size)
}

// channelErr builds a wrapped ErrChannelMismatch.
func channelErr(channels uint8, got int) error {
	return fmt.Errorf("%w: have %d channels, pixel length %d", ErrChannelMismatch, channels, got)
}

// InvalidParamf builds a wrapped ErrInvalidParam with a formatted detail
// message. Exported for use by the engine subpackages.
func InvalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParam, fmt.Sprintf(format, args...))
}

// OutOfBoundsf builds a wrapped ErrOutOfBounds with a formatted detail
// message. Exported for use by the engine subpackages.
func OutOfBoundsf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfBounds, fmt.Sprintf(format, args...))
}

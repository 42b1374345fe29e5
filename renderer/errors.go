package renderer

import (
	"errors"

	"github.com/ByLCY/textart/imageio"
)

var (
	// ErrInvalidDimension is returned when the measured text box, or the
	// configured point size, is not strictly positive.
	ErrInvalidDimension = errors.New("renderer: invalid dimension")

	// ErrUnsupportedFormat is returned when no encoder handles the requested
	// format name or file extension.
	ErrUnsupportedFormat = imageio.ErrUnsupportedFormat

	// ErrIO wraps failures writing the encoded image.
	ErrIO = errors.New("renderer: i/o failure")
)

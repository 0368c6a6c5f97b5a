package qrcode

import "errors"

var (
	// ErrCapacityExceeded reports that no version up to 40 can hold the
	// payload at the requested error correction level. Retrying without
	// shrinking the payload or lowering the level cannot help.
	ErrCapacityExceeded = errors.New("qrcode: payload exceeds the capacity of version 40 at the requested error correction level")

	// ErrUnsupportedCharset reports that the payload contains code points
	// outside the legal character set of the selected encoding mode.
	ErrUnsupportedCharset = errors.New("qrcode: payload contains characters outside the selected encoding mode")

	// ErrInvalidVersion reports a preferred version outside [1, 40].
	ErrInvalidVersion = errors.New("qrcode: version must be between 1 and 40")
)

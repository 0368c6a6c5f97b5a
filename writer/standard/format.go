package standard

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/portfolioblog56/upi-payment-qr"
)

type formatTyp uint8

const (
	// JPEG_FORMAT .
	JPEG_FORMAT formatTyp = iota
	// PNG_FORMAT as default output file format.
	PNG_FORMAT
	// SVG_FORMAT .
	SVG_FORMAT
)

// ImageEncoder is an interface which describes the rule how to encode
// image.Image into io.Writer
type ImageEncoder interface {
	// Encode specify which format to encode image into io.Writer.
	Encode(w io.Writer, img image.Image) error
}

// ImageEncoderWithMatrix is an interface for encoders that render the
// module matrix directly instead of rasterizing first. The SVG encoder
// uses this to emit vector shapes.
type ImageEncoderWithMatrix interface {
	ImageEncoder
	EncodeMatrix(w io.Writer, mat qrcode.Matrix, opts *outputImageOptions) error
}

type jpegEncoder struct{}

func (j jpegEncoder) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}

type pngEncoder struct{}

func (p pngEncoder) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

package standard

import (
	"fmt"
	"image"
	"image/color"

	"github.com/portfolioblog56/upi-payment-qr/writer/standard/imgkit"
)

// ImageOption configures how a symbol is rendered.
type ImageOption interface {
	apply(oo *outputImageOptions)
}

// funcOption wraps a function that modifies outputImageOptions into an
// implementation of the ImageOption interface.
type funcOption struct {
	f func(oo *outputImageOptions)
}

func (fo *funcOption) apply(oo *outputImageOptions) {
	fo.f(oo)
}

func newFuncOption(f func(oo *outputImageOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithImageSize renders to an exactly size by size pixel canvas with the
// symbol centered. The default is 300.
func WithImageSize(size int) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.imageSize = size
	})
}

// WithQRWidth sizes the output from the module up instead of an exact
// canvas: each module takes width pixels.
func WithQRWidth(width uint8) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.qrWidth = int(width)
		oo.imageSize = 0
	})
}

// WithBorderModules sets the quiet zone width in modules. The default is 4.
func WithBorderModules(n int) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.borderModules = n
	})
}

// WithBgTransparent makes the background transparent.
func WithBgTransparent() ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.bgTransparent = true
	})
}

// WithBgColor background color
func WithBgColor(c color.Color) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if c == nil {
			return
		}

		oo.bgColor = parseFromColor(c)
	})
}

// WithBgColorString background color from a keyword, hex or rgb() string.
// A malformed string fails the render with an InvalidStyleError.
func WithBgColorString(s string) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		c, err := ParseColor(s)
		if err != nil {
			oo.errs = append(oo.errs, err)
			return
		}
		oo.bgColor = c
	})
}

// WithFgColor QR foreground color
func WithFgColor(c color.Color) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if c == nil {
			return
		}

		oo.qrColor = parseFromColor(c)
	})
}

// WithFgColorString QR foreground color from a keyword, hex or rgb() string.
// A malformed string fails the render with an InvalidStyleError.
func WithFgColorString(s string) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		c, err := ParseColor(s)
		if err != nil {
			oo.errs = append(oo.errs, err)
			return
		}
		oo.qrColor = c
	})
}

// WithDataColor sets the color of every module except finder modules.
func WithDataColor(c color.Color) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if c == nil {
			return
		}
		rgba := parseFromColor(c)
		if oo.qrColors == nil {
			oo.qrColors = &QRColors{}
		}
		oo.qrColors = oo.qrColors.withDataColor(rgba)
	})
}

// WithFinderColor sets the color of finder modules.
func WithFinderColor(c color.Color) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if c == nil {
			return
		}
		rgba := parseFromColor(c)
		if oo.qrColors == nil {
			oo.qrColors = &QRColors{}
		}
		oo.qrColors = oo.qrColors.withFinderColor(rgba)
	})
}

// WithQRColors sets both data and finder colors using a QRColors struct.
// A nil field falls back to the plain foreground color.
func WithQRColors(qrColors *QRColors) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.qrColors = qrColors
	})
}

// WithFgGradient fills the foreground along a linear gradient instead of a
// solid color.
func WithFgGradient(g *LinearGradient) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if g == nil {
			return
		}

		oo.qrGradient = g
	})
}

// WithShape selects the module shape by name: square, circle, rounded or
// diamond. An unknown name fails the render with an InvalidStyleError.
func WithShape(name string) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		shape, err := ParseShape(name)
		if err != nil {
			oo.errs = append(oo.errs, err)
			return
		}
		oo.shape = shape
	})
}

// ParseShape resolves a module shape by name: square, circle, rounded or
// diamond.
func ParseShape(name string) (IShape, error) {
	switch name {
	case "square":
		return _shapeRectangle, nil
	case "circle":
		return _shapeCircle, nil
	case "rounded":
		return _shapeRounded, nil
	case "diamond":
		return _shapeDiamond, nil
	}
	return nil, &InvalidStyleError{Option: "shape", Reason: fmt.Sprintf("unknown shape %q", name)}
}

// WithCircleShape use circle modules instead of squares.
func WithCircleShape() ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.shape = _shapeCircle
	})
}

// WithRoundedShape use rounded-corner modules instead of squares.
func WithRoundedShape() ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.shape = _shapeRounded
	})
}

// WithDiamondShape use diamond modules instead of squares.
func WithDiamondShape() ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.shape = _shapeDiamond
	})
}

// WithCustomShape use a caller-provided shape.
func WithCustomShape(shape IShape) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if shape == nil {
			return
		}
		oo.shape = shape
	})
}

// WithLogoImage overlays an image at the center of the symbol. The logo is
// scaled down to the configured size ratio before drawing.
func WithLogoImage(img image.Image) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if img == nil {
			return
		}

		oo.logo = img
	})
}

// WithLogoImageFile loads the center logo from a PNG or JPEG file. A file
// that cannot be read is skipped; Render surfaces no logo in that case.
func WithLogoImageFile(path string) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		img, err := imgkit.Read(path)
		if err != nil {
			debugLogf("read logo %s: %v", path, err)
			return
		}
		oo.logo = img
	})
}

// WithLogoSizeRatio sets the logo edge as a fraction of the image edge,
// capped at 0.3 so the symbol stays decodable.
func WithLogoSizeRatio(ratio float64) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.logoSizeRatio = ratio
	})
}

// WithLogoCircleMask clips the logo to a circle before drawing.
func WithLogoCircleMask() ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.logoCircleMask = true
	})
}

// WithLogoSafeZone toggles clearing the modules under the logo. It is on
// by default; passing false keeps modules visible through transparent
// logo regions.
func WithLogoSafeZone(enabled bool) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		oo.logoSafeZone = enabled
	})
}

// WithBuiltinImageEncoder selects the output format: JPEG_FORMAT,
// PNG_FORMAT or SVG_FORMAT. The default is PNG.
func WithBuiltinImageEncoder(format formatTyp) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		var encoder ImageEncoder
		switch format {
		case JPEG_FORMAT:
			encoder = jpegEncoder{}
		case PNG_FORMAT:
			encoder = pngEncoder{}
		case SVG_FORMAT:
			encoder = svgEncoder{}
		default:
			panic("Not supported file format")
		}

		oo.imageEncoder = encoder
	})
}

// WithCustomImageEncoder to use custom image encoder to encode image.Image
// into io.Writer
func WithCustomImageEncoder(encoder ImageEncoder) ImageOption {
	return newFuncOption(func(oo *outputImageOptions) {
		if encoder == nil {
			return
		}

		oo.imageEncoder = encoder
	})
}

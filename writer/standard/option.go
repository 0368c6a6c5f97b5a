package standard

import (
	"fmt"
	"image"
	"image/color"

	"github.com/portfolioblog56/upi-payment-qr"
)

const (
	_defaultImageSize     = 300
	_defaultBorderModules = 4
	_maxLogoSizeRatio     = 0.3
	_defaultLogoSizeRatio = 0.3
)

// InvalidStyleError reports a style option that cannot be rendered.
type InvalidStyleError struct {
	Option string
	Reason string
}

func (e *InvalidStyleError) Error() string {
	return fmt.Sprintf("standard: invalid style option %s: %s", e.Option, e.Reason)
}

// RenderSizeError reports an image size too small to give every module at
// least one pixel.
type RenderSizeError struct {
	Size    int
	MinSize int
}

func (e *RenderSizeError) Error() string {
	return fmt.Sprintf("standard: image size %d is below the minimum %d for this symbol", e.Size, e.MinSize)
}

// outputImageOptions is the resolved render plan a Writer draws from.
type outputImageOptions struct {
	// shape of each module, rectangle by default
	shape IShape

	bgColor       color.RGBA
	bgTransparent bool
	qrColor       color.RGBA
	qrColors      *QRColors
	qrGradient    *LinearGradient

	logo           image.Image
	logoSizeRatio  float64
	logoCircleMask bool
	logoSafeZone   bool

	// imageSize is the exact output edge in pixels. When zero, the output
	// grows from qrWidth pixels per module instead.
	imageSize     int
	qrWidth       int
	borderModules int

	imageEncoder ImageEncoder

	// errs collects failures from options that take raw strings, so that
	// check reports them instead of rendering with a silently ignored value.
	errs []error
}

func defaultOutputImageOption() *outputImageOptions {
	return &outputImageOptions{
		shape:         _shapeRectangle,
		bgColor:       color_WHITE,
		qrColor:       color_BLACK,
		logoSizeRatio: _defaultLogoSizeRatio,
		logoSafeZone:  true,
		imageSize:     _defaultImageSize,
		borderModules: _defaultBorderModules,
		imageEncoder:  pngEncoder{},
	}
}

// check validates the resolved options before any pixel is drawn.
func (oo *outputImageOptions) check() error {
	if len(oo.errs) > 0 {
		return oo.errs[0]
	}
	if oo.imageSize <= 0 && oo.qrWidth <= 0 {
		return &InvalidStyleError{Option: "size", Reason: "must be positive"}
	}
	if oo.borderModules < 0 {
		return &InvalidStyleError{Option: "border", Reason: "must not be negative"}
	}
	if oo.logo != nil && (oo.logoSizeRatio <= 0 || oo.logoSizeRatio > _maxLogoSizeRatio) {
		return &InvalidStyleError{
			Option: "logo size ratio",
			Reason: fmt.Sprintf("must be within (0, %.1f]", _maxLogoSizeRatio),
		}
	}
	if oo.qrGradient != nil {
		if err := oo.qrGradient.check(); err != nil {
			return err
		}
	}
	return nil
}

// layout carries the pixel geometry of one render: the canvas edge, the
// module edge and the offset of the symbol's top-left module.
type layout struct {
	canvas     int
	moduleSize int
	offsetX    int
	offsetY    int
}

// layoutFor computes the geometry for a symbol of dim modules per side.
// With an exact image size the module size is floored and the symbol is
// centered, so the canvas always comes out exactly imageSize pixels square.
func (oo *outputImageOptions) layoutFor(dim int) (layout, error) {
	if oo.imageSize > 0 {
		total := dim + 2*oo.borderModules
		moduleSize := oo.imageSize / total
		if moduleSize < 1 {
			return layout{}, &RenderSizeError{Size: oo.imageSize, MinSize: total}
		}
		offset := (oo.imageSize - moduleSize*dim) / 2
		return layout{
			canvas:     oo.imageSize,
			moduleSize: moduleSize,
			offsetX:    offset,
			offsetY:    offset,
		}, nil
	}

	border := oo.borderModules * oo.qrWidth
	return layout{
		canvas:     dim*oo.qrWidth + 2*border,
		moduleSize: oo.qrWidth,
		offsetX:    border,
		offsetY:    border,
	}, nil
}

func (oo *outputImageOptions) getShape() IShape {
	if oo.shape == nil {
		return _shapeRectangle
	}
	return oo.shape
}

func (oo *outputImageOptions) backgroundColor() color.RGBA {
	if oo.bgTransparent {
		return color.RGBA{}
	}
	return oo.bgColor
}

// translateToRGBA picks the foreground color for one module, honoring the
// per-type palette when one is set.
func (oo *outputImageOptions) translateToRGBA(v qrcode.QRValue) color.RGBA {
	if !v.IsSet() {
		return oo.backgroundColor()
	}
	if oo.qrColors != nil {
		if v.Type() == qrcode.QRType_FINDER {
			return oo.qrColors.finderOr(oo.qrColor)
		}
		return oo.qrColors.dataOr(oo.qrColor)
	}
	return oo.qrColor
}

// QRColors splits the foreground palette into data and finder colors.
// A nil field falls back to the plain foreground color.
type QRColors struct {
	Data   *color.RGBA
	Finder *color.RGBA
}

func newQRColors(c color.RGBA) *QRColors {
	return &QRColors{Data: &c, Finder: &c}
}

func (qc *QRColors) withDataColor(c color.RGBA) *QRColors {
	qc.Data = &c
	return qc
}

func (qc *QRColors) withFinderColor(c color.RGBA) *QRColors {
	qc.Finder = &c
	return qc
}

func (qc *QRColors) dataOr(fallback color.RGBA) color.RGBA {
	if qc.Data != nil {
		return *qc.Data
	}
	return fallback
}

func (qc *QRColors) finderOr(fallback color.RGBA) color.RGBA {
	if qc.Finder != nil {
		return *qc.Finder
	}
	return fallback
}

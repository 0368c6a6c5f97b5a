// Package standard renders encoded symbol matrices into styled raster and
// vector images: module shapes, solid or gradient foregrounds, quiet zone
// borders and centered logo overlays.
package standard

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	drawpkg "golang.org/x/image/draw"

	"github.com/portfolioblog56/upi-payment-qr"
	"github.com/portfolioblog56/upi-payment-qr/writer/standard/imgkit"
)

var _ qrcode.Writer = (*Writer)(nil)

// RenderError reports a failure while turning a matrix into pixels.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("standard: render failed at %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Writer renders matrices into an underlying io.WriteCloser, typically a
// file. It implements qrcode.Writer.
type Writer struct {
	option *outputImageOptions
	closer io.WriteCloser
}

// New creates a Writer that renders into the named file.
func New(filename string, opts ...ImageOption) (*Writer, error) {
	if filename == "" {
		return nil, errors.New("filename could not be empty")
	}

	fd, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "create file %s", filename)
	}

	return NewWithWriter(fd, opts...), nil
}

// NewWithWriter creates a Writer that renders into writeCloser.
func NewWithWriter(writeCloser io.WriteCloser, opts ...ImageOption) *Writer {
	if writeCloser == nil {
		panic("writeCloser could not be nil")
	}

	option := defaultOutputImageOption()
	for _, opt := range opts {
		opt.apply(option)
	}

	return &Writer{
		option: option,
		closer: writeCloser,
	}
}

// Write renders mat through the configured encoder. Encoders that
// understand matrices directly, such as SVG, bypass rasterization.
func (w *Writer) Write(mat qrcode.Matrix) error {
	if enc, ok := w.option.imageEncoder.(ImageEncoderWithMatrix); ok {
		if err := w.option.check(); err != nil {
			return err
		}
		return enc.EncodeMatrix(w.closer, mat, w.option)
	}

	img, err := draw(mat, w.option)
	if err != nil {
		return err
	}
	if err := w.option.imageEncoder.Encode(w.closer, img); err != nil {
		return &RenderError{Stage: "encode", Err: err}
	}
	return nil
}

// Close closes the underlying writer.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Render rasterizes mat into an RGBA buffer with the given style options,
// without encoding it into any file format.
func Render(mat qrcode.Matrix, opts ...ImageOption) (*image.RGBA, error) {
	oo := defaultOutputImageOption()
	for _, opt := range opts {
		opt.apply(oo)
	}
	return draw(mat, oo)
}

func draw(mat qrcode.Matrix, oo *outputImageOptions) (*image.RGBA, error) {
	if err := oo.check(); err != nil {
		return nil, err
	}

	dim := mat.Width()
	lay, err := oo.layoutFor(dim)
	if err != nil {
		return nil, err
	}
	debugLogf("drawing %d modules at %dpx each onto a %dpx canvas",
		dim, lay.moduleSize, lay.canvas)

	dc := gg.NewContext(lay.canvas, lay.canvas)
	if !oo.bgTransparent {
		dc.SetColor(oo.bgColor)
		dc.Clear()
	}
	gctx := &GGContextWrapper{Context: dc}

	var logo image.Image
	var logoRect image.Rectangle
	if oo.logo != nil {
		logo = prepareLogo(oo, lay.canvas)
		lb := logo.Bounds()
		logoRect = centeredRect(lay.canvas, lb.Dx(), lb.Dy())
		if err := checkLogoPlacement(mat, lay, logoRect); err != nil {
			return nil, err
		}
	}

	bitmap := make([][]bool, mat.Height())
	for i := range bitmap {
		bitmap[i] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		bitmap[y][x] = v.IsSet()
	})
	if logo != nil && oo.logoSafeZone {
		clearLogoZone(bitmap, lay, logoRect)
	}

	var project func(x, y float64) float64
	if oo.qrGradient != nil {
		project = oo.qrGradient.projector(image.Rect(0, 0, lay.canvas, lay.canvas))
	}

	shape := oo.getShape()
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if !v.IsSet() || !bitmap[y][x] {
			return
		}

		px := float64(lay.offsetX + x*lay.moduleSize)
		py := float64(lay.offsetY + y*lay.moduleSize)

		var moduleColor color.RGBA
		if project != nil {
			half := float64(lay.moduleSize) / 2.0
			moduleColor = oo.qrGradient.colorAt(project(px+half, py+half))
		} else {
			moduleColor = oo.translateToRGBA(v)
		}

		ctx := &DrawContext{
			GraphicsContext: gctx,
			x:               px,
			y:               py,
			w:               lay.moduleSize,
			h:               lay.moduleSize,
			color:           moduleColor,
			neighbours:      getNeighbours(bitmap, x, y),
		}
		if v.Type() == qrcode.QRType_FINDER {
			shape.DrawFinder(ctx)
		} else {
			shape.Draw(ctx)
		}
	})

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, &RenderError{Stage: "rasterize", Err: errors.New("unexpected image type")}
	}

	if logo != nil {
		drawpkg.Draw(img, logoRect, logo, logo.Bounds().Min, drawpkg.Over)
	}
	return img, nil
}

// prepareLogo scales the logo down to the configured fraction of the
// canvas edge, then applies the circular mask when asked for.
func prepareLogo(oo *outputImageOptions, canvas int) image.Image {
	target := int(oo.logoSizeRatio * float64(canvas))
	if target < 1 {
		target = 1
	}
	logo := imgkit.Fit(oo.logo, target)
	if oo.logoCircleMask {
		logo = imgkit.CircleMask(logo)
	}
	return logo
}

func centeredRect(canvas, w, h int) image.Rectangle {
	x0 := (canvas - w) / 2
	y0 := (canvas - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// checkLogoPlacement rejects logos whose footprint would cover finder,
// separator or timing modules, which scanners need intact.
func checkLogoPlacement(mat qrcode.Matrix, lay layout, logoRect image.Rectangle) error {
	x0, y0, x1, y1 := moduleSpan(lay, logoRect)
	dim := mat.Width()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if x < 0 || y < 0 || x >= dim || y >= dim {
				continue
			}
			switch mat.At(x, y).Type() {
			case qrcode.QRType_FINDER, qrcode.QRType_SPLITTER, qrcode.QRType_TIMING:
				return &RenderError{
					Stage: "logo placement",
					Err:   fmt.Errorf("logo covers a function pattern module at (%d, %d)", x, y),
				}
			}
		}
	}
	return nil
}

// clearLogoZone marks every module under the logo footprint as light so
// the logo sits on clean background.
func clearLogoZone(bitmap [][]bool, lay layout, logoRect image.Rectangle) {
	x0, y0, x1, y1 := moduleSpan(lay, logoRect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if y < 0 || y >= len(bitmap) || x < 0 || x >= len(bitmap[y]) {
				continue
			}
			bitmap[y][x] = false
		}
	}
}

// moduleSpan converts a pixel rectangle into the half-open module range it
// touches.
func moduleSpan(lay layout, r image.Rectangle) (x0, y0, x1, y1 int) {
	x0 = (r.Min.X - lay.offsetX) / lay.moduleSize
	y0 = (r.Min.Y - lay.offsetY) / lay.moduleSize
	x1 = (r.Max.X - lay.offsetX + lay.moduleSize - 1) / lay.moduleSize
	y1 = (r.Max.Y - lay.offsetY + lay.moduleSize - 1) / lay.moduleSize
	return x0, y0, x1, y1
}

// getNeighbours builds the 3x3 dark-neighbour bitmask shapes use to join
// adjacent modules.
func getNeighbours(bitmap [][]bool, x, y int) uint16 {
	var mask uint16
	bit := uint16(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			ny, nx := y+dy, x+dx
			if ny >= 0 && ny < len(bitmap) && nx >= 0 && nx < len(bitmap[ny]) && bitmap[ny][nx] {
				mask |= bit
			}
			bit <<= 1
		}
	}
	return mask
}

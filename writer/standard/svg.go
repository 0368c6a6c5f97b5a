package standard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/portfolioblog56/upi-payment-qr"
)

// svgEncoder emits the matrix as vector shapes through svgo. It satisfies
// ImageEncoderWithMatrix, so Writer.Write hands it the matrix directly.
type svgEncoder struct{}

var _ ImageEncoderWithMatrix = svgEncoder{}

// Encode embeds an already rasterized image as a base64 PNG, the fallback
// for callers that only have pixels.
func (s svgEncoder) Encode(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	canvas := svgo.New(w)
	canvas.Startview(width, height, 0, 0, width, height)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	dataURL := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(buf.Bytes()))
	canvas.Image(0, 0, width, height, dataURL)

	canvas.End()
	return nil
}

// EncodeMatrix renders the matrix as native SVG elements: one rect, circle
// or path per dark module, an optional gradient definition and an optional
// embedded logo.
func (s svgEncoder) EncodeMatrix(w io.Writer, mat qrcode.Matrix, opts *outputImageOptions) error {
	if opts == nil {
		opts = defaultOutputImageOption()
	}

	dim := mat.Width()
	lay, err := opts.layoutFor(dim)
	if err != nil {
		return err
	}

	canvas := svgo.New(w)
	canvas.Startview(lay.canvas, lay.canvas, 0, 0, lay.canvas, lay.canvas)

	if bg := opts.backgroundColor(); bg.A > 0 {
		canvas.Rect(0, 0, lay.canvas, lay.canvas,
			fmt.Sprintf("fill:#%02x%02x%02x", bg.R, bg.G, bg.B))
	}

	hasGradient := opts.qrGradient != nil
	if hasGradient {
		writeGradientDef(canvas, opts.qrGradient, "qrGradient", lay.canvas)
	}

	var logo image.Image
	var logoRect image.Rectangle
	if opts.logo != nil {
		logo = prepareLogo(opts, lay.canvas)
		lb := logo.Bounds()
		logoRect = centeredRect(lay.canvas, lb.Dx(), lb.Dy())
		if err := checkLogoPlacement(mat, lay, logoRect); err != nil {
			return err
		}
	}

	bitmap := make([][]bool, mat.Height())
	for i := range bitmap {
		bitmap[i] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		bitmap[y][x] = v.IsSet()
	})
	if logo != nil && opts.logoSafeZone {
		clearLogoZone(bitmap, lay, logoRect)
	}

	shape := opts.getShape()
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if !v.IsSet() || !bitmap[y][x] {
			return
		}

		var fill string
		if hasGradient {
			fill = "url(#qrGradient)"
		} else {
			c := opts.translateToRGBA(v)
			fill = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		}

		px := lay.offsetX + x*lay.moduleSize
		py := lay.offsetY + y*lay.moduleSize
		drawSVGModule(canvas, shape, v.Type(), px, py, lay.moduleSize,
			getNeighbours(bitmap, x, y), fill)
	})

	if logo != nil {
		embedSVGLogo(canvas, logo, logoRect)
	}

	canvas.End()
	return nil
}

// drawSVGModule emits one module as the SVG element matching the shape.
// Finder modules from the rounded and diamond shapes stay square, matching
// their DrawFinder raster behavior.
func drawSVGModule(canvas *svgo.SVG, shape IShape, typ qrcode.QRType, x, y, size int, neighbours uint16, fill string) {
	style := "fill:" + fill

	if typ == qrcode.QRType_FINDER && shape != _shapeCircle {
		canvas.Rect(x, y, size, size, style)
		return
	}

	switch shape {
	case _shapeCircle:
		r := size / 2
		canvas.Circle(x+r, y+r, r, style)
	case _shapeRounded:
		// join into solid bars next to dark neighbours, like the raster path
		if neighbours&(NTop|NBot|NLeft|NRight) != 0 {
			canvas.Rect(x, y, size, size, style)
			return
		}
		r := size / 4
		canvas.Roundrect(x, y, size, size, r, r, style)
	case _shapeDiamond:
		half := size / 2
		canvas.Path(fmt.Sprintf("M%d %d L%d %d L%d %d L%d %d Z",
			x+half, y, x+size, y+half, x+half, y+size, x, y+half), style)
	default:
		canvas.Rect(x, y, size, size, style)
	}
}

// writeGradientDef projects the canvas corners onto the gradient axis and
// emits the matching linearGradient definition, so SVG output shades the
// same way the raster path does.
func writeGradientDef(canvas *svgo.SVG, g *LinearGradient, id string, edge int) {
	angleRad := g.Angle * math.Pi / 180.0
	dx := math.Cos(angleRad)
	dy := -math.Sin(angleRad)

	corners := [4][2]float64{
		{0, 0},
		{0, float64(edge)},
		{float64(edge), 0},
		{float64(edge), float64(edge)},
	}
	minProj, maxProj := math.Inf(1), math.Inf(-1)
	for _, p := range corners {
		proj := p[0]*dx + p[1]*dy
		if proj < minProj {
			minProj = proj
		}
		if proj > maxProj {
			maxProj = proj
		}
	}

	center := float64(edge) / 2
	halfRange := (maxProj - minProj) / 2
	x1 := int(center - halfRange*dx)
	y1 := int(center - halfRange*dy)
	x2 := int(center + halfRange*dx)
	y2 := int(center + halfRange*dy)

	stops := make([]svgo.Offcolor, 0, len(g.Stops))
	for _, stop := range g.Stops {
		c := parseFromColor(stop.Color)
		stops = append(stops, svgo.Offcolor{
			Offset:  uint8(stop.T * 100),
			Color:   fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
			Opacity: float64(c.A) / 255.0,
		})
	}

	// svgo takes uint8 gradient coordinates; clamp to [0,255]
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	canvas.LinearGradient(id, clamp(x1), clamp(y1), clamp(x2), clamp(y2), stops)
}

// embedSVGLogo inlines the logo as a base64 PNG image element.
func embedSVGLogo(canvas *svgo.SVG, logo image.Image, rect image.Rectangle) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, logo); err != nil {
		debugLogf("encode logo for svg: %v", err)
		return
	}
	dataURL := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(buf.Bytes()))
	canvas.Image(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), dataURL)
}

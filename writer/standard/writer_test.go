package standard_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrcode "github.com/portfolioblog56/upi-payment-qr"
	"github.com/portfolioblog56/upi-payment-qr/writer/standard"
)

func encodeMatrix(t *testing.T, text string) qrcode.Matrix {
	t.Helper()
	qrc, err := qrcode.NewWith(text)
	require.NoError(t, err)
	return qrc.Matrix()
}

func solidLogo(edge int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			img.Set(x, y, color.NRGBA{R: 230, G: 120, B: 20, A: 255})
		}
	}
	return img
}

func TestRender_exactImageSize(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	img, err := standard.Render(mat,
		standard.WithImageSize(300),
		standard.WithBorderModules(4),
		standard.WithCircleShape(),
	)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRender_sizeTooSmall(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD") // 21 modules, 29 with the quiet zone

	_, err := standard.Render(mat,
		standard.WithImageSize(20),
		standard.WithBorderModules(4),
	)
	require.Error(t, err)

	var sizeErr *standard.RenderSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 20, sizeErr.Size)
	assert.Equal(t, 29, sizeErr.MinSize)
}

func TestRender_moduleDrivenSize(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	img, err := standard.Render(mat,
		standard.WithQRWidth(10),
		standard.WithBorderModules(4),
	)
	require.NoError(t, err)
	// (21 + 2*4) * 10
	assert.Equal(t, 290, img.Bounds().Dx())
}

func TestRender_backgroundAndForeground(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	img, err := standard.Render(mat,
		standard.WithQRWidth(10),
		standard.WithBorderModules(4),
		standard.WithFgColorString("blue"),
		standard.WithBgColorString("yellow"),
	)
	require.NoError(t, err)

	// the quiet zone corner carries the background color
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 0, A: 255}, img.RGBAAt(0, 0))
	// the top-left finder corner module is foreground
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(45, 45))
}

func TestRender_everyShape(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	for _, style := range []string{"square", "circle", "rounded", "diamond"} {
		t.Run(style, func(t *testing.T) {
			img, err := standard.Render(mat,
				standard.WithImageSize(300),
				standard.WithShape(style),
			)
			require.NoError(t, err)
			assert.Equal(t, 300, img.Bounds().Dx())
		})
	}
}

func TestRender_unknownShape(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	_, err := standard.Render(mat, standard.WithShape("hexagon"))
	require.Error(t, err)

	var styleErr *standard.InvalidStyleError
	require.ErrorAs(t, err, &styleErr)
	assert.Equal(t, "shape", styleErr.Option)
}

func TestRender_malformedColorString(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	_, err := standard.Render(mat, standard.WithFgColorString("#GGHHII"))
	require.Error(t, err)

	var styleErr *standard.InvalidStyleError
	require.ErrorAs(t, err, &styleErr)

	_, err = standard.Render(mat, standard.WithBgColorString("not-a-color"))
	require.Error(t, err)
	require.ErrorAs(t, err, &styleErr)
}

func TestRender_gradient(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	img, err := standard.Render(mat,
		standard.WithImageSize(300),
		standard.WithFgGradient(standard.NewGradient(45,
			standard.ColorStop{T: 0, Color: color.RGBA{R: 255, A: 255}},
			standard.ColorStop{T: 1, Color: color.RGBA{B: 255, A: 255}},
		)),
	)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestRender_gradientNeedsTwoStops(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	_, err := standard.Render(mat,
		standard.WithFgGradient(standard.NewGradient(0,
			standard.ColorStop{T: 0, Color: color.RGBA{R: 255, A: 255}},
		)),
	)
	require.Error(t, err)

	var styleErr *standard.InvalidStyleError
	assert.ErrorAs(t, err, &styleErr)
}

func TestRender_logoRatioCapped(t *testing.T) {
	mat := encodeMatrix(t, "HELLO WORLD")

	_, err := standard.Render(mat,
		standard.WithLogoImage(solidLogo(64)),
		standard.WithLogoSizeRatio(0.5),
	)
	require.Error(t, err)

	var styleErr *standard.InvalidStyleError
	require.ErrorAs(t, err, &styleErr)
	assert.Equal(t, "logo size ratio", styleErr.Option)
}

func TestRender_logoOverlay(t *testing.T) {
	// a longer payload gives a larger symbol with room for the logo
	mat := encodeMatrix(t, strings.Repeat("PAYMENT", 20))

	img, err := standard.Render(mat,
		standard.WithImageSize(600),
		standard.WithLogoImage(solidLogo(64)),
		standard.WithLogoSizeRatio(0.2),
		standard.WithLogoCircleMask(),
	)
	require.NoError(t, err)

	// the canvas center shows logo pixels, not modules
	center := img.RGBAAt(300, 300)
	assert.Equal(t, color.RGBA{R: 230, G: 120, B: 20, A: 255}, center)
}

func TestRender_logoMustClearFunctionPatterns(t *testing.T) {
	// on a version 1 symbol a large centered logo reaches the timing strips
	mat := encodeMatrix(t, "HELLO WORLD")

	_, err := standard.Render(mat,
		standard.WithQRWidth(10),
		standard.WithBorderModules(4),
		standard.WithLogoImage(solidLogo(64)),
		standard.WithLogoSizeRatio(0.3),
	)
	require.Error(t, err)

	var renderErr *standard.RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestWriter_pngRoundTrip(t *testing.T) {
	qrc, err := qrcode.NewWith("upi://pay?pa=alice%40bank&pn=Alice&am=100.00&cu=INR")
	require.NoError(t, err)

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithImageSize(300),
	)
	require.NoError(t, qrc.Save(w))

	img, err := decodePNG(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestWriter_svgOutput(t *testing.T) {
	qrc, err := qrcode.NewWith("HELLO WORLD")
	require.NoError(t, err)

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithImageSize(300),
		standard.WithBuiltinImageEncoder(standard.SVG_FORMAT),
		standard.WithCircleShape(),
	)
	require.NoError(t, qrc.Save(w))

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "<circle")
	assert.Contains(t, svg, "</svg>")
}

func TestWriter_svgGradientDefinition(t *testing.T) {
	qrc, err := qrcode.NewWith("HELLO WORLD")
	require.NoError(t, err)

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithImageSize(200),
		standard.WithBuiltinImageEncoder(standard.SVG_FORMAT),
		standard.WithFgGradient(standard.NewGradient(90,
			standard.ColorStop{T: 0, Color: color.RGBA{R: 255, A: 255}},
			standard.ColorStop{T: 1, Color: color.RGBA{G: 255, A: 255}},
		)),
	)
	require.NoError(t, qrc.Save(w))

	svg := buf.String()
	assert.Contains(t, svg, "linearGradient")
	assert.Contains(t, svg, "url(#qrGradient)")
}

func decodePNG(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}

type nopWriteCloser struct {
	w *bytes.Buffer
}

func (n nopWriteCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopWriteCloser) Close() error                { return nil }

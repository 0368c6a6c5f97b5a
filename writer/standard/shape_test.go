package standard

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingContext captures the drawing calls a shape makes so tests can
// assert on geometry without rasterizing anything.
type recordingContext struct {
	ops    []string
	rects  [][4]float64
	circle [3]float64
	quads  int
	lines  int
	color  color.Color
}

func (r *recordingContext) MoveTo(x, y float64) { r.ops = append(r.ops, "move") }
func (r *recordingContext) LineTo(x, y float64) {
	r.ops = append(r.ops, "line")
	r.lines++
}
func (r *recordingContext) QuadraticTo(cx, cy, x, y float64) {
	r.ops = append(r.ops, "quad")
	r.quads++
}
func (r *recordingContext) ClosePath()  { r.ops = append(r.ops, "close") }
func (r *recordingContext) NewSubPath() {}
func (r *recordingContext) DrawCircle(cx, cy, radius float64) {
	r.ops = append(r.ops, "circle")
	r.circle = [3]float64{cx, cy, radius}
}
func (r *recordingContext) DrawRectangle(x, y, w, h float64) {
	r.ops = append(r.ops, "rect")
	r.rects = append(r.rects, [4]float64{x, y, w, h})
}
func (r *recordingContext) SetColor(c color.Color) { r.color = c }
func (r *recordingContext) Fill()                  { r.ops = append(r.ops, "fill") }

func newDrawContext(rec *recordingContext, neighbours uint16) *DrawContext {
	return &DrawContext{
		GraphicsContext: rec,
		x:               10,
		y:               20,
		w:               8,
		h:               8,
		color:           color.RGBA{R: 1, G: 2, B: 3, A: 255},
		neighbours:      neighbours,
	}
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]IShape{
		"square":  _shapeRectangle,
		"circle":  _shapeCircle,
		"rounded": _shapeRounded,
		"diamond": _shapeDiamond,
	} {
		got, err := ParseShape(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseShape("hexagon")
	var styleErr *InvalidStyleError
	require.ErrorAs(t, err, &styleErr)
	assert.Equal(t, "shape", styleErr.Option)
}

func TestRectangle_draw(t *testing.T) {
	rec := &recordingContext{}
	_shapeRectangle.Draw(newDrawContext(rec, 0))

	require.Len(t, rec.rects, 1)
	assert.Equal(t, [4]float64{10, 20, 8, 8}, rec.rects[0])
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, rec.color)
	assert.Contains(t, rec.ops, "fill")
}

func TestCircle_drawInscribed(t *testing.T) {
	rec := &recordingContext{}
	_shapeCircle.Draw(newDrawContext(rec, 0))

	assert.Equal(t, [3]float64{14, 24, 4}, rec.circle)
}

func TestRounded_cornersFollowNeighbours(t *testing.T) {
	// Isolated module: all four corners rounded.
	rec := &recordingContext{}
	_shapeRounded.Draw(newDrawContext(rec, 0))
	assert.Equal(t, 4, rec.quads)

	// Dark modules above and to the left keep both top corners and the
	// bottom-left corner square.
	rec = &recordingContext{}
	_shapeRounded.Draw(newDrawContext(rec, NTop|NLeft))
	assert.Equal(t, 1, rec.quads)
}

func TestDiamond_draw(t *testing.T) {
	rec := &recordingContext{}
	_shapeDiamond.Draw(newDrawContext(rec, 0))

	assert.Equal(t, 3, rec.lines)
	assert.Contains(t, rec.ops, "close")
	assert.NotContains(t, rec.ops, "rect")
}

func TestFinderFallsBackToSquare(t *testing.T) {
	for _, shape := range []IShape{_shapeRounded, _shapeDiamond} {
		rec := &recordingContext{}
		shape.DrawFinder(newDrawContext(rec, 0))

		require.Len(t, rec.rects, 1)
		assert.Equal(t, [4]float64{10, 20, 8, 8}, rec.rects[0])
	}
}

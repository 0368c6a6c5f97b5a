package standard

import (
	"image/color"

	"github.com/fogleman/gg"
)

var (
	_shapeRectangle IShape = rectangle{}
	_shapeCircle    IShape = circle{}
	_shapeRounded   IShape = rounded{}
	_shapeDiamond   IShape = diamond{}
)

// IShape draws one module of the symbol.
type IShape interface {
	// Draw fills one data module into the context's rectangle.
	Draw(ctx *DrawContext)

	// DrawFinder fills one finder pattern module. Finder modules must stay
	// scannable, so shapes may fall back to plain squares here.
	DrawFinder(ctx *DrawContext)
}

// GraphicsContext is the drawing surface a shape paints on.
type GraphicsContext interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	NewSubPath()
	DrawCircle(cx, cy, radius float64)
	DrawRectangle(x, y, w, h float64)
	SetColor(c color.Color)
	Fill()
}

// GGContextWrapper adapts gg.Context to GraphicsContext.
type GGContextWrapper struct {
	*gg.Context
}

func (w *GGContextWrapper) MoveTo(x, y float64)              { w.Context.MoveTo(x, y) }
func (w *GGContextWrapper) LineTo(x, y float64)              { w.Context.LineTo(x, y) }
func (w *GGContextWrapper) QuadraticTo(cx, cy, x, y float64) { w.Context.QuadraticTo(cx, cy, x, y) }
func (w *GGContextWrapper) ClosePath()                       { w.Context.ClosePath() }
func (w *GGContextWrapper) NewSubPath()                      { w.Context.NewSubPath() }
func (w *GGContextWrapper) DrawCircle(cx, cy, r float64)     { w.Context.DrawCircle(cx, cy, r) }
func (w *GGContextWrapper) DrawRectangle(x, y, wd, h float64) {
	w.Context.DrawRectangle(x, y, wd, h)
}
func (w *GGContextWrapper) SetColor(c color.Color) { w.Context.SetColor(c) }
func (w *GGContextWrapper) Fill()                  { w.Context.Fill() }

// DrawContext is the rectangle one module may paint into.
type DrawContext struct {
	GraphicsContext

	x, y float64
	w, h int

	color      color.Color
	neighbours uint16
}

// UpperLeft returns the top-left corner of the module rectangle.
func (dc *DrawContext) UpperLeft() (dx, dy float64) {
	return dc.x, dc.y
}

// Edge returns the width and height a shape may take at most.
func (dc *DrawContext) Edge() (width, height int) {
	return dc.w, dc.h
}

// Bit flags for the 8 surrounding cells in a 3x3 grid around the center.
// Layout:
// NTopLeft		NTop 	NTopRight
// NLeft  		NSelf	NRight
// NBotLeft 	NBot 	NBotRight
const (
	NTopLeft uint16 = 1 << iota
	NTop
	NTopRight
	NLeft
	NSelf
	NRight
	NBotLeft
	NBot
	NBotRight
)

// Neighbours returns the bitmask of dark modules around this one.
func (dc *DrawContext) Neighbours() uint16 {
	return dc.neighbours
}

// Color returns the color the shape should fill with.
func (dc *DrawContext) Color() color.Color {
	return dc.color
}

// rectangle IShape, the default
type rectangle struct{}

func (r rectangle) Draw(c *DrawContext) {
	c.DrawRectangle(c.x, c.y, float64(c.w), float64(c.h))
	c.SetColor(c.color)
	c.Fill()
}

func (r rectangle) DrawFinder(ctx *DrawContext) {
	r.Draw(ctx)
}

// circle IShape
type circle struct{}

func (r circle) Draw(c *DrawContext) {
	radius := c.w / 2
	if r2 := c.h / 2; r2 < radius {
		radius = r2
	}

	cx, cy := c.x+float64(c.w)/2.0, c.y+float64(c.h)/2.0
	c.DrawCircle(cx, cy, float64(radius))
	c.SetColor(c.color)
	c.Fill()
}

func (r circle) DrawFinder(ctx *DrawContext) {
	r.Draw(ctx)
}

// rounded IShape, a square with quarter-circle corners. Corners adjacent
// to another dark module stay square so runs of modules read as solid bars.
type rounded struct{}

func (r rounded) Draw(c *DrawContext) {
	w, h := float64(c.w), float64(c.h)
	radius := w
	if h < radius {
		radius = h
	}
	radius *= 0.25

	n := c.Neighbours()
	x, y := c.x, c.y

	c.NewSubPath()
	// top-left corner
	if n&(NTop|NLeft) != 0 {
		c.MoveTo(x, y)
	} else {
		c.MoveTo(x, y+radius)
		c.QuadraticTo(x, y, x+radius, y)
	}
	// top-right corner
	if n&(NTop|NRight) != 0 {
		c.LineTo(x+w, y)
	} else {
		c.LineTo(x+w-radius, y)
		c.QuadraticTo(x+w, y, x+w, y+radius)
	}
	// bottom-right corner
	if n&(NBot|NRight) != 0 {
		c.LineTo(x+w, y+h)
	} else {
		c.LineTo(x+w, y+h-radius)
		c.QuadraticTo(x+w, y+h, x+w-radius, y+h)
	}
	// bottom-left corner
	if n&(NBot|NLeft) != 0 {
		c.LineTo(x, y+h)
	} else {
		c.LineTo(x+radius, y+h)
		c.QuadraticTo(x, y+h, x, y+h-radius)
	}
	c.ClosePath()
	c.SetColor(c.color)
	c.Fill()
}

func (r rounded) DrawFinder(ctx *DrawContext) {
	_shapeRectangle.Draw(ctx)
}

// diamond IShape, a square rotated 45 degrees within the module rectangle.
type diamond struct{}

func (d diamond) Draw(c *DrawContext) {
	w, h := float64(c.w), float64(c.h)
	cx, cy := c.x+w/2.0, c.y+h/2.0

	c.NewSubPath()
	c.MoveTo(cx, c.y)
	c.LineTo(c.x+w, cy)
	c.LineTo(cx, c.y+h)
	c.LineTo(c.x, cy)
	c.ClosePath()
	c.SetColor(c.color)
	c.Fill()
}

func (d diamond) DrawFinder(ctx *DrawContext) {
	_shapeRectangle.Draw(ctx)
}

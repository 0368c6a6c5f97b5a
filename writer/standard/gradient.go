package standard

import (
	"image"
	"image/color"
	"math"
)

// ColorStop pins a color at position T along the gradient axis, T in [0, 1].
type ColorStop struct {
	T     float64
	Color color.Color
}

// LinearGradient fills the foreground along an axis rotated Angle degrees
// counter-clockwise from the positive x axis.
type LinearGradient struct {
	Angle float64
	Stops []ColorStop
}

// NewGradient builds a linear gradient from at least two color stops.
// Stops must be listed in non-decreasing T order.
func NewGradient(angle float64, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{Angle: angle, Stops: stops}
}

func (g *LinearGradient) check() error {
	if len(g.Stops) < 2 {
		return &InvalidStyleError{Option: "gradient", Reason: "needs at least two color stops"}
	}
	prev := math.Inf(-1)
	for _, s := range g.Stops {
		if s.T < 0 || s.T > 1 {
			return &InvalidStyleError{Option: "gradient", Reason: "stop position outside [0, 1]"}
		}
		if s.T < prev {
			return &InvalidStyleError{Option: "gradient", Reason: "stops out of order"}
		}
		if s.Color == nil {
			return &InvalidStyleError{Option: "gradient", Reason: "stop without a color"}
		}
		prev = s.T
	}
	return nil
}

// colorAt interpolates the gradient color at position t on the axis.
func (g *LinearGradient) colorAt(t float64) color.RGBA {
	stops := g.Stops
	if t <= stops[0].T {
		return parseFromColor(stops[0].Color)
	}
	last := stops[len(stops)-1]
	if t >= last.T {
		return parseFromColor(last.Color)
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].T {
			continue
		}
		lo, hi := stops[i-1], stops[i]
		span := hi.T - lo.T
		if span == 0 {
			return parseFromColor(hi.Color)
		}
		return lerpRGBA(parseFromColor(lo.Color), parseFromColor(hi.Color), (t-lo.T)/span)
	}
	return parseFromColor(last.Color)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// projector maps a pixel to its normalized position along the gradient
// axis. The span covers the projections of all four canvas corners, so
// every pixel lands in [0, 1].
func (g *LinearGradient) projector(bounds image.Rectangle) func(x, y float64) float64 {
	angleRad := g.Angle * math.Pi / 180.0
	dx := math.Cos(angleRad)
	dy := -math.Sin(angleRad) // image y grows downward

	xmin, xmax := float64(bounds.Min.X), float64(bounds.Max.X)
	ymin, ymax := float64(bounds.Min.Y), float64(bounds.Max.Y)
	corners := [4][2]float64{
		{xmin, ymin},
		{xmin, ymax},
		{xmax, ymin},
		{xmax, ymax},
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

	span := maxProj - minProj
	if span == 0 {
		return func(x, y float64) float64 { return 0 }
	}
	return func(x, y float64) float64 {
		return (x*dx + y*dy - minProj) / span
	}
}

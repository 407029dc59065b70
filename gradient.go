package uc

import (
	"math"
	"sort"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient is implemented by the gradient paint kinds.
// ColorAt evaluates the gradient at parameter t in [0, 1] after the
// extend mode has been applied; backends use it to build their native
// gradient objects or lookup tables.
type Gradient interface {
	Stops() []ColorStop
	Extend() ExtendMode
	ColorAt(t float64) RGBA
}

// LinearGradient interpolates colors along the segment Start→End.
type LinearGradient struct {
	Start, End Point
	stops      []ColorStop
	extend     ExtendMode
}

// NewLinearGradient creates a linear gradient between two points.
// Stops are sorted by offset; at least two stops are expected but a
// single stop degrades to a solid color.
func NewLinearGradient(start, end Point, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{Start: start, End: end, stops: sortStops(stops)}
}

// WithExtend sets the extend mode and returns the gradient.
func (g *LinearGradient) WithExtend(mode ExtendMode) *LinearGradient {
	g.extend = mode
	return g
}

func (g *LinearGradient) Stops() []ColorStop { return g.stops }
func (g *LinearGradient) Extend() ExtendMode { return g.extend }

// ColorAt evaluates the gradient at parameter t.
func (g *LinearGradient) ColorAt(t float64) RGBA {
	return evalStops(g.stops, applyExtendMode(t, g.extend))
}

// ParamAt returns the gradient parameter for a point, projecting it
// onto the Start→End axis.
func (g *LinearGradient) ParamAt(p Point) float64 {
	d := g.End.Sub(g.Start)
	den := d.X*d.X + d.Y*d.Y
	if den == 0 {
		return 0
	}
	v := p.Sub(g.Start)
	return (v.X*d.X + v.Y*d.Y) / den
}

// RadialGradient interpolates colors outward from Center to Radius.
type RadialGradient struct {
	Center Point
	Radius float64
	stops  []ColorStop
	extend ExtendMode
}

// NewRadialGradient creates a radial gradient around a center point.
func NewRadialGradient(center Point, radius float64, stops ...ColorStop) *RadialGradient {
	return &RadialGradient{Center: center, Radius: radius, stops: sortStops(stops)}
}

// WithExtend sets the extend mode and returns the gradient.
func (g *RadialGradient) WithExtend(mode ExtendMode) *RadialGradient {
	g.extend = mode
	return g
}

func (g *RadialGradient) Stops() []ColorStop { return g.stops }
func (g *RadialGradient) Extend() ExtendMode { return g.extend }

// ColorAt evaluates the gradient at parameter t.
func (g *RadialGradient) ColorAt(t float64) RGBA {
	return evalStops(g.stops, applyExtendMode(t, g.extend))
}

// ParamAt returns the gradient parameter for a point: distance from
// the center divided by the radius.
func (g *RadialGradient) ParamAt(p Point) float64 {
	if g.Radius == 0 {
		return 0
	}
	return p.Distance(g.Center) / g.Radius
}

// sortStops sorts color stops by offset without modifying the input.
func sortStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// evalStops interpolates the stop list at normalized position t.
func evalStops(stops []ColorStop, t float64) RGBA {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			lo, hi := stops[i-1], stops[i]
			span := hi.Offset - lo.Offset
			if span <= 0 {
				return hi.Color
			}
			return lo.Color.Lerp(hi.Color, (t-lo.Offset)/span)
		}
	}
	return last.Color
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

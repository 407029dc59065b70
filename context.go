package uc

import "github.com/ultracanvas/uc/imaging"

// FontWeight selects a face weight.
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// FontSlant selects a face slant.
type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

// FontFace describes the font a DrawContext shapes and measures text
// with. Family is a backend-resolved family name; Monospace asks the
// backend for its fixed-pitch fallback when Family is empty.
type FontFace struct {
	Family    string
	Size      float64
	Weight    FontWeight
	Slant     FontSlant
	Monospace bool
	Underline bool
	Strikeout bool
}

// DefaultFont returns the face a fresh DrawContext state starts with.
func DefaultFont() FontFace {
	return FontFace{Size: 14, Weight: WeightNormal}
}

// Alignment positions text inside a rectangle.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// DrawContext is the capability interface every drawing backend
// implements. It is a stateful 2D API: a current path, a current
// paint, a current font, and a transform/clip stack.
//
// Every mutating state operation is reverted by the matching PopState.
// Implementations must pair PushState/PopState with their native
// save/restore so that partial rendering on any exit path cannot
// leak state into the next element's paint.
//
// The measurement functions (GetTextLineWidth, GetTextHeight,
// GetTextIndexForXY) are side-effect-free with respect to drawing
// state and must be consistent with DrawText: same font cascade, same
// metrics.
//
// A DrawContext is never used concurrently; a window's paint pass owns
// it for the duration of the frame.
type DrawContext interface {
	// State stack.
	PushState()
	PopState()

	// Path construction. A new path starts with BeginPath; the verbs
	// append to the current path until Fill or Stroke consumes it.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(c1x, c1y, c2x, c2y, x, y float64)
	QuadTo(cx, cy, x, y float64)
	Arc(cx, cy, r, startAngle, endAngle float64)
	AddRect(r RectF)
	AddRoundedRect(r RectF, radius float64)
	AddEllipse(r RectF)
	ClosePath()

	// Paint selection. Gradients and colors are mutually exclusive;
	// the most recent call wins.
	SetFillColor(c RGBA)
	SetFillGradient(g Gradient)
	SetStrokeColor(c RGBA)
	SetStrokeStyle(s StrokeStyle)

	// Fill and Stroke consume the current path.
	Fill()
	Stroke()

	// Convenience rectangle operations used heavily by widgets.
	FillRect(r RectF, c RGBA)
	StrokeRect(r RectF, c RGBA, width float64)

	// Transform stack. Transforms compose with the current state and
	// are restored by PopState.
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(angle float64)
	Transform(m Matrix)

	// Clipping intersects with the current clip and is restored by
	// PopState.
	ClipRect(r RectF)
	ClipPath()

	// Text. SetFont selects the face for subsequent draw and measure
	// calls; DrawText renders with the glyph origin at (x, y) top-left.
	SetFont(f FontFace)
	Font() FontFace
	GetTextLineWidth(s string) float64
	GetTextHeight(s string) float64
	// GetTextIndexForXY returns the byte index within s of the glyph
	// boundary nearest to (x, y), for caret placement from a click.
	GetTextIndexForXY(s string, x, y float64) int
	DrawText(s string, x, y float64)
	DrawTextInRect(s string, r RectF, align Alignment)

	// DrawPixmap blits a pixmap into dst using the fit mode.
	DrawPixmap(p *imaging.Pixmap, dst RectF, fit imaging.FitMode)

	// Size reports the drawable surface size in pixels.
	Size() (int, int)

	// Flush pushes buffered drawing to the backend surface. Called by
	// the window at the end of a paint pass.
	Flush()
}

package uc

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ultracanvas/uc/imaging"
)

// RecordingContext is a DrawContext that records operations as typed
// strings instead of rasterizing. It backs headless windows and lets
// tests assert on paint order, state balance, and measured geometry.
//
// Text metrics are a fixed-pitch model: every rune advances CharWidth
// pixels and every line is LineHeight pixels tall, so measurement is
// deterministic and easy to reason about in tests.
type RecordingContext struct {
	width  int
	height int

	ops   []string
	depth int

	font FontFace

	// CharWidth is the advance of every rune. Zero means derive from
	// the font size (0.6 em, a typical monospace aspect).
	CharWidth float64
	// LineHeight is the height of a text line. Zero derives 1.3 em.
	LineHeight float64

	// unbalanced counts PopState calls without a matching PushState.
	unbalanced int
}

// NewRecordingContext creates a recording context of the given size.
func NewRecordingContext(width, height int) *RecordingContext {
	return &RecordingContext{width: width, height: height, font: DefaultFont()}
}

// record appends one formatted operation.
func (rc *RecordingContext) record(format string, args ...any) {
	rc.ops = append(rc.ops, fmt.Sprintf(format, args...))
}

// Ops returns the recorded operations since the last Reset.
func (rc *RecordingContext) Ops() []string { return rc.ops }

// CountOps returns how many recorded operations start with prefix.
func (rc *RecordingContext) CountOps(prefix string) int {
	n := 0
	for _, op := range rc.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

// Reset clears the recording.
func (rc *RecordingContext) Reset() {
	rc.ops = rc.ops[:0]
	rc.depth = 0
	rc.unbalanced = 0
}

// Balanced reports whether every PushState had a matching PopState
// and none popped an empty stack.
func (rc *RecordingContext) Balanced() bool {
	return rc.depth == 0 && rc.unbalanced == 0
}

// Resize adjusts the drawable size.
func (rc *RecordingContext) Resize(w, h int) {
	rc.width, rc.height = w, h
	rc.record("resize %dx%d", w, h)
}

func (rc *RecordingContext) PushState() {
	rc.depth++
	rc.record("push")
}

func (rc *RecordingContext) PopState() {
	if rc.depth == 0 {
		rc.unbalanced++
	} else {
		rc.depth--
	}
	rc.record("pop")
}

func (rc *RecordingContext) BeginPath()          { rc.record("beginPath") }
func (rc *RecordingContext) MoveTo(x, y float64) { rc.record("moveTo %.1f,%.1f", x, y) }
func (rc *RecordingContext) LineTo(x, y float64) { rc.record("lineTo %.1f,%.1f", x, y) }

func (rc *RecordingContext) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	rc.record("curveTo %.1f,%.1f %.1f,%.1f %.1f,%.1f", c1x, c1y, c2x, c2y, x, y)
}

func (rc *RecordingContext) QuadTo(cx, cy, x, y float64) {
	rc.record("quadTo %.1f,%.1f %.1f,%.1f", cx, cy, x, y)
}

func (rc *RecordingContext) Arc(cx, cy, r, a1, a2 float64) {
	rc.record("arc %.1f,%.1f r=%.1f %.2f..%.2f", cx, cy, r, a1, a2)
}

func (rc *RecordingContext) AddRect(r RectF) {
	rc.record("rect %.1f,%.1f %.1fx%.1f", r.X, r.Y, r.W, r.H)
}

func (rc *RecordingContext) AddRoundedRect(r RectF, radius float64) {
	rc.record("roundedRect %.1f,%.1f %.1fx%.1f r=%.1f", r.X, r.Y, r.W, r.H, radius)
}

func (rc *RecordingContext) AddEllipse(r RectF) {
	rc.record("ellipse %.1f,%.1f %.1fx%.1f", r.X, r.Y, r.W, r.H)
}

func (rc *RecordingContext) ClosePath() { rc.record("closePath") }

func (rc *RecordingContext) SetFillColor(c RGBA)       { rc.record("fillColor %v", c) }
func (rc *RecordingContext) SetFillGradient(Gradient)  { rc.record("fillGradient") }
func (rc *RecordingContext) SetStrokeColor(c RGBA)     { rc.record("strokeColor %v", c) }
func (rc *RecordingContext) SetStrokeStyle(StrokeStyle) { rc.record("strokeStyle") }

func (rc *RecordingContext) Fill()   { rc.record("fill") }
func (rc *RecordingContext) Stroke() { rc.record("stroke") }

func (rc *RecordingContext) FillRect(r RectF, c RGBA) {
	rc.record("fillRect %.1f,%.1f %.1fx%.1f %v", r.X, r.Y, r.W, r.H, c)
}

func (rc *RecordingContext) StrokeRect(r RectF, c RGBA, width float64) {
	rc.record("strokeRect %.1f,%.1f %.1fx%.1f w=%.1f", r.X, r.Y, r.W, r.H, width)
}

func (rc *RecordingContext) Translate(dx, dy float64) { rc.record("translate %.1f,%.1f", dx, dy) }
func (rc *RecordingContext) Scale(sx, sy float64)     { rc.record("scale %.2f,%.2f", sx, sy) }
func (rc *RecordingContext) Rotate(angle float64)     { rc.record("rotate %.3f", angle) }
func (rc *RecordingContext) Transform(m Matrix)       { rc.record("transform") }

func (rc *RecordingContext) ClipRect(r RectF) {
	rc.record("clipRect %.1f,%.1f %.1fx%.1f", r.X, r.Y, r.W, r.H)
}

func (rc *RecordingContext) ClipPath() { rc.record("clipPath") }

func (rc *RecordingContext) SetFont(f FontFace) {
	rc.font = f
	rc.record("font %s %.1f", f.Family, f.Size)
}

func (rc *RecordingContext) Font() FontFace { return rc.font }

// charWidth returns the fixed advance for the current metrics model.
func (rc *RecordingContext) charWidth() float64 {
	if rc.CharWidth > 0 {
		return rc.CharWidth
	}
	return rc.font.Size * 0.6
}

// GetTextLineWidth measures a single line: rune count times the fixed
// advance. Side-effect-free.
func (rc *RecordingContext) GetTextLineWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * rc.charWidth()
}

// GetTextHeight returns the line height for the current metrics model.
func (rc *RecordingContext) GetTextHeight(string) float64 {
	if rc.LineHeight > 0 {
		return rc.LineHeight
	}
	return rc.font.Size * 1.3
}

// GetTextIndexForXY returns the byte index of the rune boundary
// nearest to x under the fixed-pitch model.
func (rc *RecordingContext) GetTextIndexForXY(s string, x, _ float64) int {
	cw := rc.charWidth()
	if cw <= 0 {
		return 0
	}
	target := int(math.Round(x / cw))
	if target <= 0 {
		return 0
	}
	i := 0
	for pos := range s {
		if i == target {
			return pos
		}
		i++
	}
	return len(s)
}

func (rc *RecordingContext) DrawText(s string, x, y float64) {
	rc.record("text %.1f,%.1f %q", x, y, s)
}

func (rc *RecordingContext) DrawTextInRect(s string, r RectF, align Alignment) {
	rc.record("textInRect %.1f,%.1f %.1fx%.1f a=%d %q", r.X, r.Y, r.W, r.H, align, s)
}

func (rc *RecordingContext) DrawPixmap(p *imaging.Pixmap, dst RectF, fit imaging.FitMode) {
	if p == nil {
		rc.record("pixmap nil")
		return
	}
	rc.record("pixmap %dx%d -> %.1f,%.1f %.1fx%.1f %s", p.Width(), p.Height(), dst.X, dst.Y, dst.W, dst.H, fit)
}

func (rc *RecordingContext) Size() (int, int) { return rc.width, rc.height }

func (rc *RecordingContext) Flush() { rc.record("flush") }

var _ DrawContext = (*RecordingContext)(nil)

// Package raster is the software rendering backend: a DrawContext
// that rasterizes onto an image.RGBA with no GPU or window system
// behind it. It backs headless rendering and the pixel-level tests of
// the drawing pipeline.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/ultracanvas/uc"
	"github.com/ultracanvas/uc/imaging"
)

// state is one entry of the save/restore stack.
type state struct {
	tr          uc.Matrix
	clipRect    image.Rectangle
	clipMask    *image.Alpha
	fill        paint
	strokeColor uc.RGBA
	strokeStyle uc.StrokeStyle
	font        uc.FontFace
}

// Context implements uc.DrawContext over an image.RGBA.
type Context struct {
	img    *image.RGBA
	states []state
	pth    path
	bank   *FontBank
	glyphs *glyphCache
}

var _ uc.DrawContext = (*Context)(nil)

// New creates a software context with a fresh transparent surface.
func New(width, height int) *Context {
	return NewForImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewForImage creates a software context drawing onto img.
func NewForImage(img *image.RGBA) *Context {
	c := &Context{
		img:    img,
		bank:   defaultBank(),
		glyphs: newGlyphCache(),
	}
	c.states = []state{{
		tr:          uc.Identity(),
		clipRect:    img.Bounds(),
		strokeColor: uc.Black,
		strokeStyle: uc.DefaultStroke(),
		font:        uc.DefaultFont(),
	}}
	c.states[0].fill.color = uc.Black
	return c
}

// Image returns the target surface.
func (c *Context) Image() *image.RGBA { return c.img }

// Bank returns the font bank so callers can register fonts.
func (c *Context) Bank() *FontBank { return c.bank }

func (c *Context) state() *state { return &c.states[len(c.states)-1] }

func (c *Context) clip() image.Rectangle { return c.state().clipRect }

// PushState saves the current drawing state.
func (c *Context) PushState() {
	c.states = append(c.states, *c.state())
}

// PopState restores the most recently saved state. The initial state
// is never popped.
func (c *Context) PopState() {
	if len(c.states) > 1 {
		c.states = c.states[:len(c.states)-1]
	}
}

// device maps a user-space point through the current transform.
func (c *Context) device(x, y float64) uc.Point {
	return c.state().tr.TransformPoint(uc.Pt(x, y))
}

func (c *Context) BeginPath() { c.pth.reset() }

func (c *Context) MoveTo(x, y float64) { c.pth.moveTo(c.device(x, y)) }

func (c *Context) LineTo(x, y float64) { c.pth.lineTo(c.device(x, y)) }

func (c *Context) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.pth.cubeTo(c.device(c1x, c1y), c.device(c2x, c2y), c.device(x, y))
}

func (c *Context) QuadTo(cx, cy, x, y float64) {
	c.pth.quadTo(c.device(cx, cy), c.device(x, y))
}

// Arc appends a circular arc, connecting from the current point when
// the path is open.
func (c *Context) Arc(cx, cy, r, startAngle, endAngle float64) {
	pts := arcPoints(nil, cx, cy, r, startAngle, endAngle)
	for i, p := range pts {
		d := c.state().tr.TransformPoint(p)
		if i == 0 && !c.pth.open {
			c.pth.moveTo(d)
		} else {
			c.pth.lineTo(d)
		}
	}
}

func (c *Context) AddRect(r uc.RectF) {
	c.pth.moveTo(c.device(r.X, r.Y))
	c.pth.lineTo(c.device(r.X+r.W, r.Y))
	c.pth.lineTo(c.device(r.X+r.W, r.Y+r.H))
	c.pth.lineTo(c.device(r.X, r.Y+r.H))
	c.pth.closePath()
}

// AddRoundedRect appends a rectangle with quarter-circle corners. The
// radius is clamped to half the shorter side.
func (c *Context) AddRoundedRect(r uc.RectF, radius float64) {
	if radius <= 0 {
		c.AddRect(r)
		return
	}
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H
	c.MoveTo(x0+radius, y0)
	c.LineTo(x1-radius, y0)
	c.Arc(x1-radius, y0+radius, radius, -math.Pi/2, 0)
	c.LineTo(x1, y1-radius)
	c.Arc(x1-radius, y1-radius, radius, 0, math.Pi/2)
	c.LineTo(x0+radius, y1)
	c.Arc(x0+radius, y1-radius, radius, math.Pi/2, math.Pi)
	c.LineTo(x0, y0+radius)
	c.Arc(x0+radius, y0+radius, radius, math.Pi, 3*math.Pi/2)
	c.ClosePath()
}

func (c *Context) AddEllipse(r uc.RectF) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	rx, ry := r.W/2, r.H/2
	const steps = 48
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		d := c.device(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
		if i == 0 {
			c.pth.moveTo(d)
		} else {
			c.pth.lineTo(d)
		}
	}
	c.pth.closePath()
}

func (c *Context) ClosePath() { c.pth.closePath() }

func (c *Context) SetFillColor(col uc.RGBA) {
	s := c.state()
	s.fill.color = col
	s.fill.gradient = nil
}

func (c *Context) SetFillGradient(g uc.Gradient) {
	c.state().fill.gradient = g
}

func (c *Context) SetStrokeColor(col uc.RGBA) { c.state().strokeColor = col }

func (c *Context) SetStrokeStyle(s uc.StrokeStyle) { c.state().strokeStyle = s }

// Fill rasterizes the current path with the fill paint and consumes
// it.
func (c *Context) Fill() {
	c.fillContours(c.pth.contours, c.state().fill)
	c.pth.reset()
}

// Stroke expands the current path with the stroke style and consumes
// it. The stroke width follows the current transform's average scale.
func (c *Context) Stroke() {
	s := c.state()
	style := s.strokeStyle
	style.Width *= averageScale(s.tr)
	expanded := strokeContours(c.pth.contours, style)
	c.fillContours(expanded, paint{color: s.strokeColor})
	c.pth.reset()
}

// averageScale is the isotropic scale factor of a transform, used to
// carry user-space stroke widths into device space.
func averageScale(m uc.Matrix) float64 {
	det := math.Abs(m.A*m.E - m.B*m.D)
	if det == 0 {
		return 0
	}
	return math.Sqrt(det)
}

// FillRect fills a rectangle without disturbing the current path.
func (c *Context) FillRect(r uc.RectF, col uc.RGBA) {
	c.fillContours([][]uc.Point{c.rectContour(r)}, paint{color: col})
}

// StrokeRect strokes a rectangle outline without disturbing the
// current path.
func (c *Context) StrokeRect(r uc.RectF, col uc.RGBA, width float64) {
	style := uc.DefaultStroke()
	style.Width = width * averageScale(c.state().tr)
	contour := c.rectContour(r)
	contour = append(contour, contour[0])
	expanded := strokeContours([][]uc.Point{contour}, style)
	c.fillContours(expanded, paint{color: col})
}

func (c *Context) rectContour(r uc.RectF) []uc.Point {
	return []uc.Point{
		c.device(r.X, r.Y),
		c.device(r.X+r.W, r.Y),
		c.device(r.X+r.W, r.Y+r.H),
		c.device(r.X, r.Y+r.H),
	}
}

func (c *Context) Translate(dx, dy float64) {
	s := c.state()
	s.tr = s.tr.Multiply(uc.Translation(dx, dy))
}

func (c *Context) Scale(sx, sy float64) {
	s := c.state()
	s.tr = s.tr.Multiply(uc.Scaling(sx, sy))
}

func (c *Context) Rotate(angle float64) {
	s := c.state()
	s.tr = s.tr.Multiply(uc.Rotation(angle))
}

func (c *Context) Transform(m uc.Matrix) {
	s := c.state()
	s.tr = s.tr.Multiply(m)
}

// ClipRect intersects the clip with the bounding box of the
// transformed rectangle.
func (c *Context) ClipRect(r uc.RectF) {
	s := c.state()
	contour := c.rectContour(r)
	box := boundsOf([][]uc.Point{contour})
	s.clipRect = s.clipRect.Intersect(box)
}

// ClipPath intersects the clip with the current path's coverage and
// consumes the path.
func (c *Context) ClipPath() {
	s := c.state()
	full := c.img.Bounds()
	mask := coverage(c.pth.contours, full)
	if s.clipMask != nil {
		for i := range mask.Pix {
			old := s.clipMask.Pix[i]
			mask.Pix[i] = uint8(uint32(mask.Pix[i]) * uint32(old) / 255)
		}
	}
	s.clipMask = mask
	s.clipRect = s.clipRect.Intersect(c.pth.bounds())
	c.pth.reset()
}

func (c *Context) SetFont(f uc.FontFace) { c.state().font = f }

func (c *Context) Font() uc.FontFace { return c.state().font }

// DrawPixmap blits a decoded pixmap into dst according to the fit
// mode, scaling with bilinear interpolation.
func (c *Context) DrawPixmap(p *imaging.Pixmap, dst uc.RectF, fit imaging.FitMode) {
	if p == nil || p.Width() <= 0 || p.Height() <= 0 || dst.W <= 0 || dst.H <= 0 {
		return
	}
	placed := fitRect(dst, float64(p.Width()), float64(p.Height()), fit)

	// Device-space target: bounding box of the transformed placement.
	dev := boundsOf([][]uc.Point{c.rectContour(placed)})
	if dev.Empty() {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, dev.Dx(), dev.Dy()))
	xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), p.RGBA(), p.RGBA().Bounds(), draw.Src, nil)

	// Modes that crop confine the blit to the dst rectangle.
	visible := dev
	if fit == imaging.FitCover || fit == imaging.FitFill {
		visible = visible.Intersect(boundsOf([][]uc.Point{c.rectContour(dst)}))
	}
	r := visible.Intersect(c.clip()).Intersect(c.img.Bounds())
	clipMask := c.state().clipMask
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := tmp.PixOffset(x-dev.Min.X, y-dev.Min.Y)
			pix := tmp.Pix[i : i+4 : i+4]
			if pix[3] == 0 {
				continue
			}
			cov := uint8(255)
			if clipMask != nil {
				cov = clipMask.AlphaAt(x, y).A
				if cov == 0 {
					continue
				}
			}
			// image.RGBA stores premultiplied components.
			src := uc.RGBA{
				R: float64(pix[0]) / float64(pix[3]),
				G: float64(pix[1]) / float64(pix[3]),
				B: float64(pix[2]) / float64(pix[3]),
				A: float64(pix[3]) / 255,
			}
			blendPixel(c.img, x, y, src, cov)
		}
	}
}

// fitRect places a source of size (sw, sh) inside dst per the fit
// mode, returning the placement rectangle in user space.
func fitRect(dst uc.RectF, sw, sh float64, fit imaging.FitMode) uc.RectF {
	var scaleX, scaleY float64
	switch fit {
	case imaging.FitFill:
		return dst
	case imaging.FitContain:
		s := math.Min(dst.W/sw, dst.H/sh)
		scaleX, scaleY = s, s
	case imaging.FitCover:
		s := math.Max(dst.W/sw, dst.H/sh)
		scaleX, scaleY = s, s
	case imaging.FitScaleDown:
		s := math.Min(1, math.Min(dst.W/sw, dst.H/sh))
		scaleX, scaleY = s, s
	default: // FitNoScale
		scaleX, scaleY = 1, 1
	}
	w, h := sw*scaleX, sh*scaleY
	return uc.RectF{
		X: dst.X + (dst.W-w)/2,
		Y: dst.Y + (dst.H-h)/2,
		W: w,
		H: h,
	}
}

// SavePNG writes the surface to a PNG file.
func (c *Context) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: save png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, c.img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// Size reports the surface size in pixels.
func (c *Context) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Flush is a no-op: drawing lands directly in the image.
func (c *Context) Flush() {}

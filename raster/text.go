package raster

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ultracanvas/uc"
	"github.com/ultracanvas/uc/cache"
)

// glyphKey identifies one sized glyph outline in the cache.
type glyphKey struct {
	v    *variant
	gid  sfnt.GlyphIndex
	size fixed.Int26_6
}

type glyphCache = cache.Budget[glyphKey, []sfnt.Segment]

// Outlines are small; 4 MiB holds the working set of a busy screen.
const glyphBudget = 4 << 20

func newGlyphCache() *glyphCache {
	return cache.NewBudget[glyphKey, []sfnt.Segment](glyphBudget)
}

var (
	bankOnce   sync.Once
	sharedBank *FontBank
)

// defaultBank returns the process-wide font bank. Contexts share it so
// registered fonts are visible everywhere.
func defaultBank() *FontBank {
	bankOnce.Do(func() { sharedBank = NewFontBank() })
	return sharedBank
}

// GetTextLineWidth measures a single line with the current font.
func (c *Context) GetTextLineWidth(s string) float64 {
	if s == "" {
		return 0
	}
	f := c.state().font
	run := c.bank.shape(s, f)
	if run.v == nil {
		return fixedToFloat(font.MeasureString(basicfont.Face7x13, s))
	}
	return run.advance
}

// GetTextHeight returns the line height of the current font. The
// argument only matters for the empty string, which measures zero.
func (c *Context) GetTextHeight(s string) float64 {
	if s == "" {
		return 0
	}
	f := c.state().font
	if c.bank.resolve(f) == nil {
		return fixedToFloat(basicfont.Face7x13.Metrics().Height)
	}
	return c.bank.metrics(f).height
}

// GetTextIndexForXY returns the byte index of the glyph boundary
// nearest to x. The y coordinate is ignored for single-line text.
func (c *Context) GetTextIndexForXY(s string, x, y float64) int {
	if s == "" {
		return 0
	}
	f := c.state().font
	run := c.bank.shape(s, f)
	if run.v == nil {
		best, bestDist := 0, absf(x)
		pen := 0.0
		for i, r := range s {
			adv, _ := basicfont.Face7x13.GlyphAdvance(r)
			pen += fixedToFloat(adv)
			if d := absf(x - pen); d < bestDist {
				best, bestDist = i+len(string(r)), d
			}
		}
		return best
	}

	runes := []rune(s)
	byteAt := make([]int, len(runes)+1)
	for i, r := range runes {
		byteAt[i+1] = byteAt[i] + len(string(r))
	}

	best, bestDist := 0, absf(x)
	pen := 0.0
	for _, g := range run.glyphs {
		pen += g.xAdvance
		idx := g.cluster + 1
		if idx > len(runes) {
			idx = len(runes)
		}
		if d := absf(x - pen); d < bestDist {
			best, bestDist = byteAt[idx], d
		}
	}
	return best
}

// DrawText renders a line with the fill paint, origin at the top left
// of the text box.
func (c *Context) DrawText(s string, x, y float64) {
	if s == "" {
		return
	}
	f := c.state().font
	run := c.bank.shape(s, f)
	if run.v == nil {
		c.drawBasicfont(s, x, y)
		return
	}
	m := c.bank.metrics(f)
	baseline := y + m.ascent

	pen := x
	var contours [][]uc.Point
	for _, g := range run.glyphs {
		segs := c.glyphSegments(run.v, g.gid, f.Size)
		contours = appendGlyphContours(contours, segs, c.state().tr,
			pen+g.xOffset, baseline-g.yOffset)
		pen += g.xAdvance
	}
	c.fillContours(contours, c.state().fill)

	if f.Underline {
		c.fillDecoration(x, baseline+1, run.advance)
	}
	if f.Strikeout {
		c.fillDecoration(x, baseline-m.ascent*0.3, run.advance)
	}
}

// drawBasicfont renders with the bitmap fallback face. Only reachable
// when no sfnt face could be parsed.
func (c *Context) drawBasicfont(s string, x, y float64) {
	col := c.state().fill.color
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.Color()),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(y + fixedToFloat(basicfont.Face7x13.Metrics().Ascent)),
		},
	}
	d.DrawString(s)
}

// fillDecoration draws a one-pixel horizontal bar with the fill paint.
func (c *Context) fillDecoration(x, y, width float64) {
	c.fillContours([][]uc.Point{c.rectContour(uc.RectF{X: x, Y: y, W: width, H: 1})},
		c.state().fill)
}

// glyphSegments loads a glyph outline through the cache.
func (c *Context) glyphSegments(v *variant, gid sfnt.GlyphIndex, size float64) []sfnt.Segment {
	key := glyphKey{v: v, gid: gid, size: floatToFixed(size)}
	if segs, ok := c.glyphs.Get(key); ok {
		return segs
	}
	segs := c.bank.loadGlyph(v, gid, size)
	c.glyphs.Set(key, segs, int64(len(segs))*40+24)
	return segs
}

// appendGlyphContours converts sfnt outline segments into device
// contours. Segment coordinates are 26.6 pixels, baseline origin,
// y growing downward.
func appendGlyphContours(dst [][]uc.Point, segs []sfnt.Segment, tr uc.Matrix, ox, oy float64) [][]uc.Point {
	var p path
	at := func(pt fixed.Point26_6) uc.Point {
		return tr.TransformPoint(uc.Pt(ox+fixedToFloat(pt.X), oy+fixedToFloat(pt.Y)))
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p.closePath()
			p.moveTo(at(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			p.lineTo(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.quadTo(at(seg.Args[0]), at(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.cubeTo(at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2]))
		}
	}
	p.closePath()
	return append(dst, p.contours...)
}

// DrawTextInRect draws a line aligned inside r and vertically
// centered.
func (c *Context) DrawTextInRect(s string, r uc.RectF, align uc.Alignment) {
	if s == "" {
		return
	}
	w := c.GetTextLineWidth(s)
	h := c.bank.metrics(c.state().font).height
	x := r.X
	switch align {
	case uc.AlignCenter:
		x = r.X + (r.W-w)/2
	case uc.AlignRight:
		x = r.X + r.W - w
	}
	c.DrawText(s, x, r.Y+(r.H-h)/2)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package raster

import (
	"image"
	"math"

	"github.com/ultracanvas/uc"
)

// path accumulates flattened contours in device space. Curves are
// subdivided when the verbs are appended so that fill and stroke only
// ever see polylines.
type path struct {
	contours [][]uc.Point
	cur      uc.Point
	start    uc.Point
	open     bool
}

func (p *path) reset() {
	p.contours = p.contours[:0]
	p.open = false
}

func (p *path) moveTo(pt uc.Point) {
	p.contours = append(p.contours, []uc.Point{pt})
	p.cur = pt
	p.start = pt
	p.open = true
}

func (p *path) lineTo(pt uc.Point) {
	if !p.open {
		p.moveTo(pt)
		return
	}
	n := len(p.contours) - 1
	p.contours[n] = append(p.contours[n], pt)
	p.cur = pt
}

// quadTo flattens a quadratic Bezier from the current point.
func (p *path) quadTo(c, end uc.Point) {
	if !p.open {
		p.moveTo(p.cur)
	}
	from := p.cur
	steps := flattenSteps(from, c, end)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		p.lineTo(uc.Point{
			X: mt*mt*from.X + 2*mt*t*c.X + t*t*end.X,
			Y: mt*mt*from.Y + 2*mt*t*c.Y + t*t*end.Y,
		})
	}
	p.cur = end
}

// cubeTo flattens a cubic Bezier from the current point.
func (p *path) cubeTo(c1, c2, end uc.Point) {
	if !p.open {
		p.moveTo(p.cur)
	}
	from := p.cur
	steps := flattenSteps(from, c1, c2, end)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		p.lineTo(uc.Point{
			X: a*from.X + b*c1.X + c*c2.X + d*end.X,
			Y: a*from.Y + b*c1.Y + c*c2.Y + d*end.Y,
		})
	}
	p.cur = end
}

func (p *path) closePath() {
	if !p.open {
		return
	}
	n := len(p.contours) - 1
	if len(p.contours[n]) > 1 {
		p.contours[n] = append(p.contours[n], p.contours[n][0])
	}
	p.cur = p.start
	p.open = false
}

// flattenSteps picks a subdivision count from the length of the
// control polygon, clamped so degenerate and huge curves both behave.
func flattenSteps(pts ...uc.Point) int {
	var length float64
	for i := 1; i < len(pts); i++ {
		length += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	steps := int(length / 3)
	if steps < 4 {
		return 4
	}
	if steps > 64 {
		return 64
	}
	return steps
}

// bounds returns the integer bounding box of all contours.
func (p *path) bounds() image.Rectangle {
	if len(p.contours) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range p.contours {
		for _, pt := range c {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// arcPoints appends the polyline of a circular arc to dst. The arc is
// sampled finely enough that the chord error stays below a pixel at
// typical radii.
func arcPoints(dst []uc.Point, cx, cy, r, start, end float64) []uc.Point {
	sweep := end - start
	steps := int(math.Abs(sweep) / (math.Pi / 16))
	if steps < 2 {
		steps = 2
	}
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		dst = append(dst, uc.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return dst
}

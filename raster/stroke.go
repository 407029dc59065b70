package raster

import (
	"math"

	"github.com/ultracanvas/uc"
)

// strokeContours expands every contour into filled polygons: one quad
// per segment, a wedge per interior join, a cap per open end. The
// pieces overlap at joints; uniform winding makes the nonzero fill
// rule union them.
func strokeContours(contours [][]uc.Point, style uc.StrokeStyle) [][]uc.Point {
	w := style.Width
	if w <= 0 {
		return nil
	}
	half := w / 2
	var out [][]uc.Point
	for _, c := range contours {
		for _, run := range dashSplit(c, style.Dash) {
			out = appendStrokeRun(out, run, half, style)
		}
	}
	return out
}

// appendStrokeRun emits the polygons for one dash run.
func appendStrokeRun(out [][]uc.Point, pts []uc.Point, half float64, style uc.StrokeStyle) [][]uc.Point {
	pts = dropDegenerate(pts)
	if len(pts) < 2 {
		if len(pts) == 1 && style.Cap == uc.LineCapRound {
			return append(out, discAround(pts[0], half))
		}
		return out
	}
	closed := samePoint(pts[0], pts[len(pts)-1])

	for i := 0; i < len(pts)-1; i++ {
		out = append(out, segmentQuad(pts[i], pts[i+1], half))
	}

	last := len(pts) - 1
	for i := 1; i < last; i++ {
		out = appendJoin(out, pts[i-1], pts[i], pts[i+1], half, style)
	}
	if closed && len(pts) > 2 {
		out = appendJoin(out, pts[last-1], pts[0], pts[1], half, style)
	} else {
		out = appendCap(out, pts[1], pts[0], half, style.Cap)
		out = appendCap(out, pts[last-1], pts[last], half, style.Cap)
	}
	return out
}

// segmentQuad is the thick-line rectangle of one segment.
func segmentQuad(a, b uc.Point, half float64) []uc.Point {
	nx, ny := normal(a, b)
	return ensureWinding([]uc.Point{
		{X: a.X + nx*half, Y: a.Y + ny*half},
		{X: b.X + nx*half, Y: b.Y + ny*half},
		{X: b.X - nx*half, Y: b.Y - ny*half},
		{X: a.X - nx*half, Y: a.Y - ny*half},
	})
}

// appendJoin emits the joint geometry at vertex v between segments
// prev→v and v→next.
func appendJoin(out [][]uc.Point, prev, v, next uc.Point, half float64, style uc.StrokeStyle) [][]uc.Point {
	switch style.Join {
	case uc.LineJoinRound:
		return append(out, discAround(v, half))
	case uc.LineJoinMiter:
		if poly, ok := miterPolygon(prev, v, next, half, style.MiterLimit); ok {
			return append(out, poly)
		}
		fallthrough
	default:
		return append(out, bevelPolygon(prev, v, next, half))
	}
}

// bevelPolygon is the triangle spanning the outer gap at a joint.
func bevelPolygon(prev, v, next uc.Point, half float64) []uc.Point {
	n1x, n1y := normal(prev, v)
	n2x, n2y := normal(v, next)
	// Outer side is where the two offset edges diverge; the cross
	// product of the incoming directions picks it.
	if cross(prev, v, next) < 0 {
		n1x, n1y = -n1x, -n1y
		n2x, n2y = -n2x, -n2y
	}
	return ensureWinding([]uc.Point{
		v,
		{X: v.X + n1x*half, Y: v.Y + n1y*half},
		{X: v.X + n2x*half, Y: v.Y + n2y*half},
	})
}

// miterPolygon extends the bevel to the miter point when the miter
// ratio stays within the limit.
func miterPolygon(prev, v, next uc.Point, half, limit float64) ([]uc.Point, bool) {
	n1x, n1y := normal(prev, v)
	n2x, n2y := normal(v, next)
	if cross(prev, v, next) < 0 {
		n1x, n1y = -n1x, -n1y
		n2x, n2y = -n2x, -n2y
	}
	// Half-angle construction: the miter direction bisects the two
	// outer normals.
	mx, my := n1x+n2x, n1y+n2y
	mlen := math.Hypot(mx, my)
	if mlen < 1e-9 {
		return nil, false
	}
	mx, my = mx/mlen, my/mlen
	cosHalf := mx*n1x + my*n1y
	if cosHalf < 1e-9 {
		return nil, false
	}
	ratio := 1 / cosHalf
	if limit > 0 && ratio > limit {
		return nil, false
	}
	d := half * ratio
	return ensureWinding([]uc.Point{
		v,
		{X: v.X + n1x*half, Y: v.Y + n1y*half},
		{X: v.X + mx*d, Y: v.Y + my*d},
		{X: v.X + n2x*half, Y: v.Y + n2y*half},
	}), true
}

// appendCap emits the end cap at p, with the stroke arriving from
// `from`.
func appendCap(out [][]uc.Point, from, p uc.Point, half float64, capStyle uc.LineCap) [][]uc.Point {
	switch capStyle {
	case uc.LineCapRound:
		return append(out, discAround(p, half))
	case uc.LineCapSquare:
		dx, dy := direction(from, p)
		nx, ny := -dy, dx
		return append(out, ensureWinding([]uc.Point{
			{X: p.X + nx*half, Y: p.Y + ny*half},
			{X: p.X + (nx+dx)*half, Y: p.Y + (ny+dy)*half},
			{X: p.X + (dx-nx)*half, Y: p.Y + (dy-ny)*half},
			{X: p.X - nx*half, Y: p.Y - ny*half},
		}))
	default:
		return out
	}
}

// discAround is a 16-gon approximating a filled circle.
func discAround(c uc.Point, r float64) []uc.Point {
	pts := make([]uc.Point, 0, 17)
	for i := 0; i <= 16; i++ {
		a := 2 * math.Pi * float64(i) / 16
		pts = append(pts, uc.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return pts
}

// dashSplit cuts a polyline into the "on" runs of a dash pattern. A
// nil pattern returns the polyline unchanged.
func dashSplit(pts []uc.Point, dash *uc.Dash) [][]uc.Point {
	if dash == nil || len(dash.Array) == 0 {
		return [][]uc.Point{pts}
	}
	pattern := dash.Array
	var total float64
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		return [][]uc.Point{pts}
	}

	// Start phase from the offset.
	phase := math.Mod(dash.Offset, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remain := pattern[idx] - phase
	on := idx%2 == 0

	var runs [][]uc.Point
	var cur []uc.Point
	if on {
		cur = append(cur, pts[0])
	}
	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for segLen-pos > remain {
			pos += remain
			t := pos / segLen
			cut := uc.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				cur = append(cur, cut)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []uc.Point{cut}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

// dropDegenerate removes consecutive duplicate points.
func dropDegenerate(pts []uc.Point) []uc.Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) == 0 || !samePoint(out[len(out)-1], p) {
			out = append(out, p)
		}
	}
	return out
}

func samePoint(a, b uc.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// normal is the unit left normal of a→b.
func normal(a, b uc.Point) (float64, float64) {
	dx, dy := direction(a, b)
	return -dy, dx
}

// direction is the unit vector of a→b.
func direction(a, b uc.Point) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return 1, 0
	}
	return dx / l, dy / l
}

// cross is the z component of (v-prev)×(next-v).
func cross(prev, v, next uc.Point) float64 {
	return (v.X-prev.X)*(next.Y-v.Y) - (v.Y-prev.Y)*(next.X-v.X)
}

// ensureWinding orients a polygon counterclockwise in device space so
// overlapping stroke pieces accumulate winding with the same sign.
func ensureWinding(poly []uc.Point) []uc.Point {
	var area float64
	for i := 0; i < len(poly); i++ {
		j := (i + 1) % len(poly)
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	return poly
}

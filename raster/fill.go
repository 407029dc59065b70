package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/ultracanvas/uc"
)

// paint is the source a fill pulls colors from. Exactly one of color
// or gradient is active.
type paint struct {
	color    uc.RGBA
	gradient uc.Gradient
}

// coverage rasterizes the contours into an alpha mask covering r.
// Winding is nonzero as produced by x/image/vector.
func coverage(contours [][]uc.Point, r image.Rectangle) *image.Alpha {
	ras := vector.NewRasterizer(r.Dx(), r.Dy())
	ras.DrawOp = draw.Src
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		ras.MoveTo(float32(c[0].X-ox), float32(c[0].Y-oy))
		for _, pt := range c[1:] {
			ras.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		ras.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// fillContours composites the contours onto the target image using
// the paint, honoring the rectangular clip and the optional clip mask.
func (c *Context) fillContours(contours [][]uc.Point, p paint) {
	r := boundsOf(contours).Intersect(c.clip()).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	mask := coverage(contours, r)

	shade := c.shader(p)
	clipMask := c.state().clipMask
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := mask.AlphaAt(x-r.Min.X, y-r.Min.Y).A
			if cov == 0 {
				continue
			}
			if clipMask != nil {
				cov = uint8(uint32(cov) * uint32(clipMask.AlphaAt(x, y).A) / 255)
				if cov == 0 {
					continue
				}
			}
			src := shade(x, y)
			blendPixel(c.img, x, y, src, cov)
		}
	}
}

// shader returns the color source for a paint, evaluated per device
// pixel. Gradient coordinates live in user space, so device points are
// mapped back through the inverse of the current transform.
func (c *Context) shader(p paint) func(x, y int) uc.RGBA {
	if p.gradient == nil {
		col := p.color
		return func(int, int) uc.RGBA { return col }
	}
	inv := c.state().tr.Invert()
	switch g := p.gradient.(type) {
	case *uc.LinearGradient:
		return func(x, y int) uc.RGBA {
			up := inv.TransformPoint(uc.Pt(float64(x)+0.5, float64(y)+0.5))
			return g.ColorAt(g.ParamAt(up))
		}
	case *uc.RadialGradient:
		return func(x, y int) uc.RGBA {
			up := inv.TransformPoint(uc.Pt(float64(x)+0.5, float64(y)+0.5))
			return g.ColorAt(g.ParamAt(up))
		}
	default:
		col := p.gradient.ColorAt(0)
		return func(int, int) uc.RGBA { return col }
	}
}

// blendPixel composites src over the image pixel at (x, y) with the
// given coverage.
func blendPixel(img *image.RGBA, x, y int, src uc.RGBA, cov uint8) {
	sa := src.A * float64(cov) / 255
	if sa <= 0 {
		return
	}
	i := img.PixOffset(x, y)
	pix := img.Pix[i : i+4 : i+4]
	inv := 1 - sa
	pix[0] = clampByte(src.R*sa*255 + float64(pix[0])*inv)
	pix[1] = clampByte(src.G*sa*255 + float64(pix[1])*inv)
	pix[2] = clampByte(src.B*sa*255 + float64(pix[2])*inv)
	pix[3] = clampByte(sa*255 + float64(pix[3])*inv)
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// boundsOf is the integer bounding box of a contour set.
func boundsOf(contours [][]uc.Point) image.Rectangle {
	p := path{contours: contours}
	return p.bounds()
}

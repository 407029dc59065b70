package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// drawSrc copies src into dst, converting (and premultiplying) as
// needed.
func drawSrc(dst *image.RGBA, src image.Image) {
	xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
}

// scaler is the resampling kernel for the resize pipeline. BiLinear is
// a reasonable quality/speed tradeoff for UI thumbnails and icons.
var scaler xdraw.Scaler = xdraw.BiLinear

// renderFitted rasterizes src into a premultiplied pixmap for the
// requested size and fit mode. The returned pixmap's dimensions come
// from fitSize; Cover center-crops by scaling into an oversized
// destination rectangle.
func renderFitted(src image.Image, w, h int, fit FitMode) *Pixmap {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()

	dw, dh := fitSize(sw, sh, w, h, fit)
	if dw <= 0 || dh <= 0 {
		return nil
	}

	p := NewPixmap(dw, dh)
	if p == nil {
		return nil
	}
	dst := p.RGBA()

	switch fit {
	case FitNoScale:
		drawSrc(dst, src)
	case FitCover:
		// Uniform scale to cover, then center-crop by positioning an
		// oversized destination rect around the pixmap.
		scale := maxf(float64(dw)/float64(sw), float64(dh)/float64(sh))
		fullW := int(float64(sw)*scale + 0.5)
		fullH := int(float64(sh)*scale + 0.5)
		offX := (dw - fullW) / 2
		offY := (dh - fullH) / 2
		target := image.Rect(offX, offY, offX+fullW, offY+fullH)
		scaler.Scale(dst, target, src, sb, xdraw.Src, nil)
	default: // FitFill, FitContain, FitScaleDown
		if dw == sw && dh == sh {
			drawSrc(dst, src)
		} else {
			scaler.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
		}
	}
	return p
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package imaging

import (
	"image"
	"image/color"
)

// Pixmap is a backend-ready pixel buffer: alpha-premultiplied RGBA,
// 4 bytes per pixel, row-major with an explicit stride. A pixmap is
// derived from exactly one decoded image and one fit request.
type Pixmap struct {
	width  int
	height int
	stride int
	pix    []uint8
}

// NewPixmap allocates a transparent pixmap with a tight stride.
// Returns nil when either dimension is not positive or the buffer
// cannot be sized (overflow), matching the pipeline's "allocation
// failure returns null" contract.
func NewPixmap(width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		return nil
	}
	stride := width * 4
	size := stride * height
	if size/stride != height {
		return nil
	}
	return &Pixmap{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]uint8, size),
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Stride returns the byte stride between rows.
func (p *Pixmap) Stride() int { return p.stride }

// Pix returns the raw premultiplied RGBA bytes.
func (p *Pixmap) Pix() []uint8 { return p.pix }

// SizeBytes returns the buffer size, used as the cache cost.
func (p *Pixmap) SizeBytes() int64 { return int64(len(p.pix)) }

// RGBA returns an image.RGBA view sharing the pixmap's storage.
// image.RGBA is alpha-premultiplied, matching the pixmap contents.
func (p *Pixmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pix,
		Stride: p.stride,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// At returns the pixel at (x, y), or transparent outside the bounds.
func (p *Pixmap) At(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := y*p.stride + x*4
	return color.RGBA{R: p.pix[i], G: p.pix[i+1], B: p.pix[i+2], A: p.pix[i+3]}
}

// BGRA returns a copy of the buffer with red and blue swapped, for
// backends whose native format is little-endian BGRA (Cairo ARGB32).
func (p *Pixmap) BGRA() []uint8 {
	out := make([]uint8, len(p.pix))
	for i := 0; i+3 < len(p.pix); i += 4 {
		out[i+0] = p.pix[i+2]
		out[i+1] = p.pix[i+1]
		out[i+2] = p.pix[i+0]
		out[i+3] = p.pix[i+3]
	}
	return out
}

// CopyWithStride copies the pixel rows into a buffer with the given
// stride, for backends whose required stride differs from the tight
// row stride. Returns nil if dstStride is too small for a row.
func (p *Pixmap) CopyWithStride(dstStride int) []uint8 {
	if dstStride < p.width*4 {
		return nil
	}
	out := make([]uint8, dstStride*p.height)
	for y := 0; y < p.height; y++ {
		src := p.pix[y*p.stride : y*p.stride+p.width*4]
		copy(out[y*dstStride:], src)
	}
	return out
}

// fromImage converts a decoded image into a premultiplied pixmap.
func fromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy())
	if p == nil {
		return nil
	}
	dst := p.RGBA()
	// draw.Draw premultiplies while converting into image.RGBA.
	drawSrc(dst, img)
	return p
}

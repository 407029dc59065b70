package imaging

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	// Decoders registered with image.Decode. The supported set matches
	// the magic bytes SniffFormat recognizes.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image is a shared handle to a decoded-image cache entry. Full
// decoding is deferred until a pixmap is requested, so enumerating many
// images (a file browser, a gallery) stays cheap: only the dimension
// metadata is read up front.
type Image struct {
	source string // cache key: file path or ":mem:..." blob key
	data   []byte // raw source bytes
	format Format

	width  int
	height int

	mu  sync.Mutex
	err error // sticky decode error, surfaced to callers

	mgr *Manager
}

// Source returns the cache key identifying this image's origin.
func (im *Image) Source() string { return im.source }

// Width returns the source width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the source height in pixels.
func (im *Image) Height() int { return im.height }

// Format returns the detected source format.
func (im *Image) Format() Format { return im.format }

// Err returns the recorded decode error, if any.
func (im *Image) Err() error {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.err
}

// SizeBytes returns the source byte size, used as the cache cost.
func (im *Image) SizeBytes() int64 { return int64(len(im.data)) }

// Pixmap returns a backend-ready pixmap for the requested size and fit
// mode, deriving and caching it on first use. Returns nil and records
// the error when decoding or allocation fails.
func (im *Image) Pixmap(w, h int, fit FitMode) (*Pixmap, error) {
	return im.mgr.pixmapFor(im, w, h, fit)
}

// decode runs the full decoder over the retained source bytes.
func (im *Image) decode() (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(im.data))
	if err != nil {
		err = fmt.Errorf("imaging: decode %s: %w", im.source, err)
		im.mu.Lock()
		im.err = err
		im.mu.Unlock()
		return nil, err
	}
	return src, nil
}

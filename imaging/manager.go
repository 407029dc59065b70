package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/ultracanvas/uc/cache"
)

// DefaultBudget is the default byte budget for each of the two caches.
const DefaultBudget = 50 << 20 // 50 MiB

// Manager owns the decoded-image cache and the pixmap cache. All
// methods are safe for concurrent use; the caches are the only part of
// the runtime that may be touched off the UI thread.
type Manager struct {
	images  *cache.Budget[string, *Image]
	pixmaps *cache.Budget[string, *Pixmap]
}

// NewManager creates a manager with the given byte budgets.
// Non-positive budgets fall back to DefaultBudget.
func NewManager(imageBudget, pixmapBudget int64) *Manager {
	if imageBudget <= 0 {
		imageBudget = DefaultBudget
	}
	if pixmapBudget <= 0 {
		pixmapBudget = DefaultBudget
	}
	return &Manager{
		images:  cache.NewBudget[string, *Image](imageBudget),
		pixmaps: cache.NewBudget[string, *Pixmap](pixmapBudget),
	}
}

// Load returns a shared handle for the image at path, reading and
// sniffing it on first use. Identical paths share one cache entry.
// Decode-config errors are returned and the entry is not cached.
func (m *Manager) Load(path string) (*Image, error) {
	if im, ok := m.images.Get(path); ok {
		return im, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: read %s: %w", path, err)
	}
	return m.admit(path, data, path)
}

// LoadBytes returns a shared handle for an in-memory image blob. The
// cache key is derived from the blob's identity so repeated calls with
// the same backing slice share one entry.
func (m *Manager) LoadBytes(data []byte, formatHint string) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("imaging: empty image data")
	}
	key := fmt.Sprintf(":mem:%p:%d", &data[0], len(data))
	if im, ok := m.images.Get(key); ok {
		return im, nil
	}
	return m.admit(key, data, formatHint)
}

// admit sniffs, reads metadata, and caches a new image entry. The
// hint is consulted only when the magic bytes match nothing; for file
// loads it is the path itself, for blobs the caller's format hint
// (treated as an extension, e.g. "x.png" or ".png").
func (m *Manager) admit(key string, data []byte, hint string) (*Image, error) {
	format := SniffFormat(data, hint)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Failed entries are surfaced but never cached, so a fixed
		// file is picked up on the next load.
		return nil, fmt.Errorf("imaging: decode config %s: %w", key, err)
	}
	im := &Image{
		source: key,
		data:   data,
		format: format,
		width:  cfg.Width,
		height: cfg.Height,
		mgr:    m,
	}
	m.images.Set(key, im, im.SizeBytes())
	return im, nil
}

// pixmapFor resolves a pixmap request through the pixmap cache,
// running the decode-and-resize pipeline on a miss.
func (m *Manager) pixmapFor(im *Image, w, h int, fit FitMode) (*Pixmap, error) {
	key := pixmapKey(im.source, w, h, fit)
	if p, ok := m.pixmaps.Get(key); ok {
		return p, nil
	}

	src, err := im.decode()
	if err != nil {
		return nil, err
	}
	p := renderFitted(src, w, h, fit)
	if p == nil {
		return nil, fmt.Errorf("imaging: pixmap alloc failed for %s (%dx%d %s)", im.source, w, h, fit)
	}
	m.pixmaps.Set(key, p, p.SizeBytes())
	return p, nil
}

// Images exposes the decoded-image cache, mainly for tests and
// instrumentation.
func (m *Manager) Images() *cache.Budget[string, *Image] { return m.images }

// Pixmaps exposes the pixmap cache.
func (m *Manager) Pixmaps() *cache.Budget[string, *Pixmap] { return m.pixmaps }

// Clear drops both caches.
func (m *Manager) Clear() {
	m.images.Clear()
	m.pixmaps.Clear()
}

// Placeholder returns the grey "broken image" pixmap callers fall
// back to when loading or allocation fails: a grey field with a
// darker border and diagonal cross.
func Placeholder(w, h int) *Pixmap {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	p := NewPixmap(w, h)
	if p == nil {
		return nil
	}
	fill := [4]uint8{0xC0, 0xC0, 0xC0, 0xFF}
	edge := [4]uint8{0x80, 0x80, 0x80, 0xFF}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := fill
			onBorder := x == 0 || y == 0 || x == w-1 || y == h-1
			// Diagonals of the cross, drawn in integer space.
			onCross := x*(h-1) == y*(w-1) || x*(h-1) == (h-1-y)*(w-1)
			if onBorder || onCross {
				px = edge
			}
			i := y*p.stride + x*4
			copy(p.pix[i:i+4], px[:])
		}
	}
	return p
}

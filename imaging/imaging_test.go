package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodePNG builds an opaque w x h PNG filled with the given color.
func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		path string
		want Format
	}{
		{"png magic", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, "", FormatPNG},
		{"jpeg magic", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "", FormatJPEG},
		{"bmp magic", []byte{0x42, 0x4D, 0x00, 0x00}, "", FormatBMP},
		{"gif magic", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "", FormatGIF},
		{"webp magic", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "", FormatWebP},
		{"extension fallback", []byte{0, 1, 2, 3}, "photo.JPG", FormatJPEG},
		{"bare hint", []byte{0, 1, 2, 3}, "png", FormatPNG},
		{"unknown", []byte{0, 1, 2, 3}, "file.txt", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.data, tt.path); got != tt.want {
				t.Errorf("SniffFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		sw, sh, w, h int
		fit          FitMode
		wantW, wantH int
	}{
		{"fill stretches", 100, 50, 40, 40, FitFill, 40, 40},
		{"contain preserves aspect", 100, 50, 40, 40, FitContain, 40, 20},
		{"cover fills request", 100, 50, 40, 40, FitCover, 40, 40},
		{"scaledown never upscales", 10, 10, 40, 40, FitScaleDown, 10, 10},
		{"scaledown shrinks", 100, 100, 40, 40, FitScaleDown, 40, 40},
		{"noscale uses source", 100, 50, 40, 40, FitNoScale, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, gh := fitSize(tt.sw, tt.sh, tt.w, tt.h, tt.fit)
			if gw != tt.wantW || gh != tt.wantH {
				t.Errorf("fitSize = %dx%d, want %dx%d", gw, gh, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoadBytesAndPixmap(t *testing.T) {
	m := NewManager(0, 0)
	data := encodePNG(t, 8, 4, color.NRGBA{R: 255, A: 255})

	im, err := m.LoadBytes(data, "png")
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if im.Width() != 8 || im.Height() != 4 {
		t.Errorf("metadata = %dx%d, want 8x4", im.Width(), im.Height())
	}
	if im.Format() != FormatPNG {
		t.Errorf("format = %q, want png", im.Format())
	}

	// Identical requests share the entry.
	again, err := m.LoadBytes(data, "png")
	if err != nil {
		t.Fatalf("LoadBytes again: %v", err)
	}
	if again != im {
		t.Error("expected shared handle for identical request")
	}

	p, err := im.Pixmap(4, 4, FitFill)
	if err != nil {
		t.Fatalf("Pixmap: %v", err)
	}
	if p.Width() != 4 || p.Height() != 4 {
		t.Errorf("pixmap = %dx%d, want 4x4", p.Width(), p.Height())
	}
	px := p.At(2, 2)
	if px.R < 250 || px.A != 255 {
		t.Errorf("expected red opaque pixel, got %+v", px)
	}

	// Distinct requests produce distinct pixmaps.
	q, err := im.Pixmap(2, 2, FitFill)
	if err != nil {
		t.Fatalf("Pixmap 2x2: %v", err)
	}
	if q == p {
		t.Error("distinct fit requests must produce distinct pixmaps")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	if err := os.WriteFile(path, encodePNG(t, 2, 2, color.NRGBA{G: 255, A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(0, 0)
	im, err := m.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if im.Source() != path {
		t.Errorf("source = %q, want %q", im.Source(), path)
	}

	if _, err := m.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeErrorNotCached(t *testing.T) {
	m := NewManager(0, 0)
	if _, err := m.LoadBytes([]byte("not an image at all"), "png"); err == nil {
		t.Fatal("expected decode error")
	}
	if m.Images().Len() != 0 {
		t.Error("failed entries must not be cached")
	}
}

func TestPixmapCacheEviction(t *testing.T) {
	// Scenario: small pixmap budget, many sized requests. The cache
	// must hold a most-recent subset within budget and re-derive
	// evicted entries on demand.
	m := NewManager(0, 1<<20) // 1 MiB pixmap budget
	data := encodePNG(t, 64, 64, color.NRGBA{B: 255, A: 255})
	im, err := m.LoadBytes(data, "png")
	if err != nil {
		t.Fatal(err)
	}

	// Ten 256x300 RGBA pixmaps at ~300 KiB each, ~3 MiB total.
	for i := 0; i < 10; i++ {
		if _, err := im.Pixmap(256, 300+i, FitFill); err != nil {
			t.Fatalf("pixmap %d: %v", i, err)
		}
	}

	if m.Pixmaps().Used() > 1<<20 {
		t.Errorf("pixmap cache used %d exceeds 1 MiB budget", m.Pixmaps().Used())
	}
	if m.Pixmaps().Contains(pixmapKey(im.Source(), 256, 300, FitFill)) {
		t.Error("oldest pixmap should have been evicted")
	}
	if !m.Pixmaps().Contains(pixmapKey(im.Source(), 256, 309, FitFill)) {
		t.Error("newest pixmap should survive")
	}

	// Requesting an evicted entry re-runs the pipeline.
	p, err := im.Pixmap(256, 300, FitFill)
	if err != nil || p == nil {
		t.Fatalf("re-derive after eviction: %v", err)
	}
}

func TestPixmapStrideAndBGRA(t *testing.T) {
	p := NewPixmap(3, 2)
	p.pix[0], p.pix[1], p.pix[2], p.pix[3] = 10, 20, 30, 255

	bgra := p.BGRA()
	if bgra[0] != 30 || bgra[1] != 20 || bgra[2] != 10 || bgra[3] != 255 {
		t.Errorf("BGRA swap wrong: %v", bgra[:4])
	}

	wide := p.CopyWithStride(16)
	if len(wide) != 32 {
		t.Fatalf("expected stride-16 buffer of 32 bytes, got %d", len(wide))
	}
	if wide[0] != 10 || wide[16] != 0 {
		t.Error("stride copy misplaced rows")
	}
	if p.CopyWithStride(4) != nil {
		t.Error("too-small stride must return nil")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(16, 16)
	if p == nil {
		t.Fatal("Placeholder returned nil")
	}
	if c := p.At(0, 0); c.A != 255 {
		t.Error("placeholder border must be opaque")
	}
	if c := p.At(8, 3); c.R != 0xC0 {
		t.Errorf("placeholder fill = %+v, want grey", c)
	}
}

func TestNewPixmapInvalid(t *testing.T) {
	if NewPixmap(0, 10) != nil || NewPixmap(10, -1) != nil {
		t.Error("invalid dimensions must return nil")
	}
}

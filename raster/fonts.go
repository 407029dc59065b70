package raster

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ultracanvas/uc"
)

// variant pairs the two parsed forms of one font file: the sfnt form
// supplies glyph outlines and metrics, the typesetting form feeds the
// shaper.
type variant struct {
	sf *sfnt.Font
	ts *tsfont.Font
}

// FontBank resolves a FontFace to a concrete font. The Go fonts ship
// as the built-in set; RegisterFont adds faces by family name.
type FontBank struct {
	mu      sync.RWMutex
	builtin [6]*variant // regular, bold, italic, boldItalic, mono, monoBold
	custom  map[string]*variant

	shapers sync.Pool
	buf     sfnt.Buffer
}

const (
	vRegular = iota
	vBold
	vItalic
	vBoldItalic
	vMono
	vMonoBold
)

// NewFontBank loads the built-in Go font family.
func NewFontBank() *FontBank {
	b := &FontBank{
		custom: make(map[string]*variant),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	for i, data := range [6][]byte{
		goregular.TTF, gobold.TTF, goitalic.TTF,
		gobolditalic.TTF, gomono.TTF, gomonobold.TTF,
	} {
		if v, err := parseVariant(data); err == nil {
			b.builtin[i] = v
		}
	}
	return b
}

// parseVariant parses font data into both backend forms.
func parseVariant(data []byte) (*variant, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	tf, err := tsfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: parse font for shaping: %w", err)
	}
	return &variant{sf: sf, ts: tf.Font}, nil
}

// RegisterFont makes a font selectable through FontFace.Family.
func (b *FontBank) RegisterFont(family string, data []byte) error {
	v, err := parseVariant(data)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.custom[strings.ToLower(family)] = v
	b.mu.Unlock()
	return nil
}

// resolve picks the variant for a face. Unknown families fall back to
// the built-in set by weight, slant, and monospace preference.
func (b *FontBank) resolve(f uc.FontFace) *variant {
	if f.Family != "" {
		b.mu.RLock()
		v := b.custom[strings.ToLower(f.Family)]
		b.mu.RUnlock()
		if v != nil {
			return v
		}
	}
	bold := f.Weight >= uc.WeightBold
	switch {
	case f.Monospace && bold:
		return b.builtin[vMonoBold]
	case f.Monospace:
		return b.builtin[vMono]
	case bold && f.Slant == uc.SlantItalic:
		return b.builtin[vBoldItalic]
	case bold:
		return b.builtin[vBold]
	case f.Slant == uc.SlantItalic:
		return b.builtin[vItalic]
	default:
		return b.builtin[vRegular]
	}
}

// shapedGlyph is one positioned glyph of a shaped run. Offsets and
// the advance are in pixels; cluster is the rune index into the text.
type shapedGlyph struct {
	gid      sfnt.GlyphIndex
	cluster  int
	xOffset  float64
	yOffset  float64
	xAdvance float64
}

// shapedRun is the full shaping result for one line of text.
type shapedRun struct {
	glyphs  []shapedGlyph
	advance float64
	v       *variant
}

// shape runs HarfBuzz shaping over one line. The shaper instances are
// pooled; they carry internal buffers and are not concurrent-safe.
func (b *FontBank) shape(s string, f uc.FontFace) shapedRun {
	v := b.resolve(f)
	if v == nil || s == "" {
		return shapedRun{v: v}
	}
	runes := []rune(s)
	input := shaping.Input{
		Text:     runes,
		RunStart: 0,
		RunEnd:   len(runes),
		Face:     tsfont.NewFace(v.ts),
		Size:     floatToFixed(f.Size),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}
	shaper := b.shapers.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	b.shapers.Put(shaper)

	run := shapedRun{v: v, glyphs: make([]shapedGlyph, len(output.Glyphs))}
	for i, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		run.glyphs[i] = shapedGlyph{
			gid:      sfnt.GlyphIndex(g.GlyphID),
			cluster:  g.TextIndex(),
			xOffset:  fixedToFloat(g.XOffset),
			yOffset:  fixedToFloat(g.YOffset),
			xAdvance: adv,
		}
		run.advance += adv
	}
	return run
}

// detectScript returns the script of the first non-space rune, Latin
// when the text has none.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fontMetrics are the vertical metrics of a face at a given size, in
// pixels.
type fontMetrics struct {
	ascent  float64
	descent float64
	height  float64
}

// metrics reads the hinted sfnt metrics for a face.
func (b *FontBank) metrics(f uc.FontFace) fontMetrics {
	v := b.resolve(f)
	if v == nil {
		return fontMetrics{ascent: f.Size * 0.8, descent: f.Size * 0.2, height: f.Size * 1.2}
	}
	b.mu.Lock()
	m, err := v.sf.Metrics(&b.buf, floatToFixed(f.Size), 0)
	b.mu.Unlock()
	if err != nil {
		return fontMetrics{ascent: f.Size * 0.8, descent: f.Size * 0.2, height: f.Size * 1.2}
	}
	return fontMetrics{
		ascent:  fixedToFloat(m.Ascent),
		descent: fixedToFloat(m.Descent),
		height:  fixedToFloat(m.Height),
	}
}

// loadGlyph loads the outline segments of one glyph at a pixel size.
func (b *FontBank) loadGlyph(v *variant, gid sfnt.GlyphIndex, size float64) []sfnt.Segment {
	b.mu.Lock()
	segs, err := v.sf.LoadGlyph(&b.buf, gid, floatToFixed(size), nil)
	b.mu.Unlock()
	if err != nil {
		return nil
	}
	return segs
}

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

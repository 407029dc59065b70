package textarea

import (
	"fmt"
	"strings"

	"github.com/ultracanvas/uc"
)

// Palette used by the renderer. Kept as variables so embedders can
// retheme without touching the draw code.
var (
	ColorBackground    = uc.White
	ColorText          = uc.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}
	ColorCurrentLine   = uc.RGBA{R: 0.93, G: 0.95, B: 1, A: 1}
	ColorSelection     = uc.RGBA{R: 0.3, G: 0.5, B: 0.9, A: 0.3}
	ColorSearchMatch   = uc.RGBA{R: 1, G: 0.85, B: 0.2, A: 0.45}
	ColorCaret         = uc.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}
	ColorGutterText    = uc.Gray(0.55)
	ColorGutterBack    = uc.Gray(0.96)
	ColorScrollbar     = uc.RGBA{R: 0.4, G: 0.4, B: 0.4, A: 0.5}
	ColorQuoteBar      = uc.RGBA{R: 0.6, G: 0.6, B: 0.65, A: 1}
	ColorQuoteBack     = uc.RGBA{R: 0.94, G: 0.94, B: 0.96, A: 1}
	ColorCodeBack      = uc.Gray(0.93)
	ColorLinkText      = uc.RGBA{R: 0.1, G: 0.3, B: 0.8, A: 1}
	ColorHighlightBack = uc.RGBA{R: 1, G: 0.95, B: 0.4, A: 0.7}
)

// tokenColors maps token types to their paint color.
var tokenColors = map[TokenType]uc.RGBA{
	TokenText:     ColorText,
	TokenKeyword:  {R: 0.6, G: 0.1, B: 0.5, A: 1},
	TokenString:   {R: 0.1, G: 0.5, B: 0.2, A: 1},
	TokenComment:  {R: 0.5, G: 0.5, B: 0.5, A: 1},
	TokenNumber:   {R: 0.8, G: 0.4, B: 0.1, A: 1},
	TokenOperator: {R: 0.2, G: 0.2, B: 0.2, A: 1},
	TokenIdent:    ColorText,
	TokenMarkup:   {R: 0.55, G: 0.35, B: 0.75, A: 1},
	TokenHeading:  {R: 0.15, G: 0.25, B: 0.55, A: 1},
	TokenCode:     {R: 0.75, G: 0.3, B: 0.2, A: 1},
	TokenLink:     ColorLinkText,
}

const (
	gutterPad  = 8.0
	textPad    = 4.0
	caretWidth = 2.0
	sbThick    = 6.0
)

// Render paints the text area. The paint order is background, current
// line highlight, gutter, per-display-line text, selection and search
// rectangles, caret, scroll bars.
func (t *TextArea) Render(dc uc.DrawContext) {
	t.dc = dc
	b := t.Bounds()
	w, h := float64(b.W), float64(b.H)

	dc.SetFont(t.font)
	lh := t.lineHeight(dc)
	if lh <= 0 {
		return
	}

	gutterW := 0.0
	if t.showLineNumbers {
		digits := len(fmt.Sprintf("%d", t.doc.lineCount()))
		gutterW = dc.GetTextLineWidth(strings.Repeat("0", digits)) + 2*gutterPad
	}
	textX := gutterW + textPad
	wrapWidth := w - textX - textPad
	if wrapWidth < 1 {
		wrapWidth = 1
	}

	t.ensureLayout(dc, wrapWidth)
	t.visibleLines = int(h / lh)
	if t.visibleLines < 1 {
		t.visibleLines = 1
	}
	t.clampScroll()

	dc.FillRect(uc.RectF{W: w, H: h}, ColorBackground)

	cursorLine, cursorCol := t.doc.lineColumn(t.cursor)

	// Current-line highlight spans every display line of the cursor's
	// logical line.
	if t.highlightCurrentLine && t.Focused() {
		for i, seg := range t.display {
			if seg.line != cursorLine {
				continue
			}
			if y, visible := t.rowY(i, lh); visible {
				dc.FillRect(uc.RectF{X: gutterW, Y: y, W: w - gutterW, H: lh}, ColorCurrentLine)
			}
		}
	}

	if t.showLineNumbers {
		dc.FillRect(uc.RectF{X: 0, Y: 0, W: gutterW, H: h}, ColorGutterBack)
	}

	t.linkRects = t.linkRects[:0]
	var md *markdownState
	if t.markdown {
		md = t.ensureMarkdownState()
	}

	last := t.firstVisible + t.visibleLines
	if last > len(t.display) {
		last = len(t.display)
	}
	for i := t.firstVisible; i < last; i++ {
		seg := t.display[i]
		y := float64(i-t.firstVisible) * lh

		// Logical line number on the first segment only.
		if t.showLineNumbers && seg.first() {
			num := fmt.Sprintf("%d", seg.line+1)
			numW := dc.GetTextLineWidth(num)
			dc.SetFont(t.font)
			dc.SetFillColor(ColorGutterText)
			dc.DrawText(num, gutterW-gutterPad-numW, y)
		}

		switch {
		case md != nil && seg.line != cursorLine:
			t.renderMarkdownLine(dc, md, seg, textX-t.scrollX, y, lh, wrapWidth)
		case md != nil:
			t.renderRawSourceLine(dc, seg, textX-t.scrollX, y)
		default:
			t.renderCodeLine(dc, seg, textX-t.scrollX, y)
		}
	}

	// Selection and search rectangles per display line.
	if start, end, ok := t.Selection(); ok {
		t.renderRangeRects(dc, start, end, textX, lh, last, ColorSelection)
	}
	for _, m := range t.searchMatches {
		t.renderRangeRects(dc, m.start, m.end, textX, lh, last, ColorSearchMatch)
	}

	// Caret.
	if t.Focused() {
		idx := t.displayIndexFor(cursorLine, cursorCol)
		if y, visible := t.rowY(idx, lh); visible {
			seg := t.display[idx]
			prefix := graphemeSlice(t.doc.line(seg.line), seg.start, cursorCol)
			dc.SetFont(t.font)
			x := textX + dc.GetTextLineWidth(prefix) - t.scrollX
			dc.FillRect(uc.RectF{X: x, Y: y, W: caretWidth, H: lh}, ColorCaret)
		}
	}

	t.renderScrollbars(dc, w, h, wrapWidth)
}

// rowY returns the viewport y of display row i and whether it is in
// the visible band.
func (t *TextArea) rowY(i int, lh float64) (float64, bool) {
	if i < t.firstVisible || i >= t.firstVisible+t.visibleLines {
		return 0, false
	}
	return float64(i-t.firstVisible) * lh, true
}

// clampScroll keeps the scroll origin inside the content extent.
func (t *TextArea) clampScroll() {
	maxFirst := len(t.display) - t.visibleLines
	if maxFirst < 0 {
		maxFirst = 0
	}
	if t.firstVisible > maxFirst {
		t.firstVisible = maxFirst
	}
	if t.firstVisible < 0 {
		t.firstVisible = 0
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
}

// renderCodeLine paints one display line as plain or
// syntax-highlighted text. Tokens cover the whole logical line; the
// segment's grapheme range selects the visible slice.
func (t *TextArea) renderCodeLine(dc uc.DrawContext, seg segment, x, y float64) {
	t.renderTokens(dc, seg, t.tokensForLine(seg.line), x, y)
}

// renderRawSourceLine paints the cursor line of a markdown document as
// raw source with marker highlighting, so the text under the caret is
// exactly what editing mutates.
func (t *TextArea) renderRawSourceLine(dc uc.DrawContext, seg segment, x, y float64) {
	t.renderTokens(dc, seg, markdownLineTokens(t.doc.line(seg.line)), x, y)
}

// renderTokens paints one display line from a token partition of its
// logical line. A nil partition falls back to a single plain run.
func (t *TextArea) renderTokens(dc uc.DrawContext, seg segment, tokens []Token, x, y float64) {
	dc.SetFont(t.font)
	if tokens == nil {
		dc.SetFillColor(ColorText)
		dc.DrawText(t.segmentText(seg), x, y)
		return
	}

	// Walk tokens, clipping each to the segment's grapheme range.
	col := 0
	for _, tok := range tokens {
		n := graphemeCount(tok.Text)
		tokStart, tokEnd := col, col+n
		col = tokEnd
		if tokEnd <= seg.start || tokStart >= seg.end {
			continue
		}
		from, to := tokStart, tokEnd
		if from < seg.start {
			from = seg.start
		}
		if to > seg.end {
			to = seg.end
		}
		visible := graphemeSlice(tok.Text, from-tokStart, to-tokStart)
		prefix := graphemeSlice(t.doc.line(seg.line), seg.start, from)
		color, ok := tokenColors[tok.Type]
		if !ok {
			color = ColorText
		}
		dc.SetFillColor(color)
		dc.DrawText(visible, x+dc.GetTextLineWidth(prefix), y)
	}
}

// renderRangeRects paints translucent rectangles for the grapheme
// range [start, end) across every visible display line it touches.
func (t *TextArea) renderRangeRects(dc uc.DrawContext, start, end int, textX, lh float64, lastRow int, color uc.RGBA) {
	dc.SetFont(t.font)
	for i := t.firstVisible; i < lastRow; i++ {
		seg := t.display[i]
		segStart := t.doc.position(seg.line, seg.start)
		segEnd := t.doc.position(seg.line, seg.end)
		from, to := start, end
		if from < segStart {
			from = segStart
		}
		if to > segEnd {
			to = segEnd
		}
		if from >= to && !(from == to && segStart == segEnd) {
			continue
		}
		line := t.doc.line(seg.line)
		_, fromCol := t.doc.lineColumn(from)
		_, toCol := t.doc.lineColumn(to)
		x0 := dc.GetTextLineWidth(graphemeSlice(line, seg.start, fromCol))
		x1 := dc.GetTextLineWidth(graphemeSlice(line, seg.start, toCol))
		y := float64(i-t.firstVisible) * lh
		width := x1 - x0
		if width <= 0 {
			// A line break inside the range still shows a sliver.
			width = 4
		}
		dc.FillRect(uc.RectF{X: textX + x0 - t.scrollX, Y: y, W: width, H: lh}, color)
	}
}

// renderScrollbars draws proportional scroll bars when the content
// extent exceeds the viewport in either axis.
func (t *TextArea) renderScrollbars(dc uc.DrawContext, w, h, wrapWidth float64) {
	total := len(t.display)
	if total > t.visibleLines && total > 0 {
		frac := float64(t.visibleLines) / float64(total)
		barH := h * frac
		if barH < 16 {
			barH = 16
		}
		maxFirst := total - t.visibleLines
		pos := 0.0
		if maxFirst > 0 {
			pos = float64(t.firstVisible) / float64(maxFirst) * (h - barH)
		}
		dc.FillRect(uc.RectF{X: w - sbThick, Y: pos, W: sbThick, H: barH}, ColorScrollbar)
	}

	if t.wrap {
		return
	}
	// Horizontal bar when some line is wider than the viewport.
	widest := 0.0
	dc.SetFont(t.font)
	for i := 0; i < t.doc.lineCount(); i++ {
		if lw := dc.GetTextLineWidth(t.doc.line(i)); lw > widest {
			widest = lw
		}
	}
	if widest > wrapWidth {
		frac := wrapWidth / widest
		barW := w * frac
		if barW < 16 {
			barW = 16
		}
		maxScroll := widest - wrapWidth
		pos := 0.0
		if maxScroll > 0 {
			pos = t.scrollX / maxScroll * (w - barW)
		}
		dc.FillRect(uc.RectF{X: pos, Y: h - sbThick, W: barW, H: sbThick}, ColorScrollbar)
	}
}

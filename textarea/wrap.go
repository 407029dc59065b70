package textarea

import "github.com/ultracanvas/uc"

// segment is one display line: a half-open grapheme column range
// [start, end) of one logical line.
type segment struct {
	line       int
	start, end int
}

// first reports whether the segment is the first display line of its
// logical line.
func (s segment) first() bool { return s.start == 0 }

// ensureLayout rebuilds the display-line list when stale. Measurement
// goes through the render context so wrap positions agree with what
// gets painted.
func (t *TextArea) ensureLayout(dc uc.DrawContext, width float64) {
	if !t.metricsDirty && t.layoutWidth == width && len(t.display) > 0 {
		return
	}
	t.display = t.display[:0]
	t.layoutWidth = width

	for i := 0; i < t.doc.lineCount(); i++ {
		n := t.doc.lineGraphemes(i)
		if !t.wrap || n == 0 {
			t.display = append(t.display, segment{line: i, start: 0, end: n})
			continue
		}
		line := t.doc.line(i)
		for start := 0; start < n; {
			fit := t.fitGraphemes(dc, line, start, n, width)
			end := start + fit
			if end < n {
				if b := retractToBoundary(line, start, end); b > start {
					end = b
				}
			}
			t.display = append(t.display, segment{line: i, start: start, end: end})
			start = end
		}
	}
	t.metricsDirty = false
}

// fitGraphemes binary-searches the largest grapheme count from start
// whose measured width fits. Always at least one, so a grapheme wider
// than the viewport still gets its own display line.
func (t *TextArea) fitGraphemes(dc uc.DrawContext, line string, start, total int, width float64) int {
	remaining := total - start
	lo, hi := 1, remaining
	for lo < hi {
		mid := (lo + hi + 1) / 2
		part := graphemeSlice(line, start, start+mid)
		if dc.GetTextLineWidth(part) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// retractToBoundary pulls a hard break at end back to just after the
// nearest space, tab, or hyphen inside (start, end). Returns start if
// no boundary exists in the segment.
func retractToBoundary(line string, start, end int) int {
	for col := end; col > start; col-- {
		switch graphemeAt(line, col-1) {
		case " ", "\t", "-":
			return col
		}
	}
	return start
}

// displayIndexFor returns the index of the first display line whose
// range contains col, with the cursor at end-of-line belonging to the
// last segment of that logical line.
func (t *TextArea) displayIndexFor(line, col int) int {
	last := -1
	for i, seg := range t.display {
		if seg.line != line {
			continue
		}
		last = i
		if col >= seg.start && col < seg.end {
			return i
		}
	}
	if last >= 0 {
		return last
	}
	return 0
}

// segmentText returns the text of one display line.
func (t *TextArea) segmentText(seg segment) string {
	return graphemeSlice(t.doc.line(seg.line), seg.start, seg.end)
}

// DisplayLineCount returns the number of display lines from the last
// layout pass.
func (t *TextArea) DisplayLineCount() int { return len(t.display) }

// lineHeight returns the display row height for the current font.
func (t *TextArea) lineHeight(dc uc.DrawContext) float64 {
	return dc.GetTextHeight("Mg")
}

// scrollCursorIntoView adjusts the first visible display line so the
// cursor row is on screen. Layout may be stale between paints; the
// adjustment is clamped again at paint time.
func (t *TextArea) scrollCursorIntoView() {
	if len(t.display) == 0 || t.visibleLines == 0 {
		return
	}
	line, col := t.doc.lineColumn(t.cursor)
	idx := t.displayIndexFor(line, col)
	if idx < t.firstVisible {
		t.firstVisible = idx
	}
	if idx >= t.firstVisible+t.visibleLines {
		t.firstVisible = idx - t.visibleLines + 1
	}
	if t.firstVisible < 0 {
		t.firstVisible = 0
	}
}

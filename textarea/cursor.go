package textarea

import "unicode"

// Movement commands. Every mover accepts a selecting flag: when true
// the anchor is planted at the pre-move position (if not already set)
// and the head tracks the cursor; when false both endpoints collapse.

func (t *TextArea) move(selecting bool, to int) {
	from := t.cursor
	t.cursor = t.doc.clampPosition(to)
	if selecting {
		t.extendSelection(from)
	} else {
		t.clearSelection()
	}
	t.emitCursorMoved()
	t.scrollCursorIntoView()
	t.RequestRedraw()
}

// MoveLeft moves one grapheme left.
func (t *TextArea) MoveLeft(selecting bool) {
	t.move(selecting, t.cursor-1)
	t.goalX = -1
}

// MoveRight moves one grapheme right.
func (t *TextArea) MoveRight(selecting bool) {
	t.move(selecting, t.cursor+1)
	t.goalX = -1
}

// MoveUp moves one display line up, preserving the column within the
// display line.
func (t *TextArea) MoveUp(selecting bool) {
	t.moveVertical(selecting, -1)
}

// MoveDown moves one display line down.
func (t *TextArea) MoveDown(selecting bool) {
	t.moveVertical(selecting, 1)
}

// MovePageUp moves up by one viewport of display lines.
func (t *TextArea) MovePageUp(selecting bool) {
	t.moveVertical(selecting, -t.pageStep())
}

// MovePageDown moves down by one viewport of display lines.
func (t *TextArea) MovePageDown(selecting bool) {
	t.moveVertical(selecting, t.pageStep())
}

func (t *TextArea) pageStep() int {
	if t.visibleLines > 1 {
		return t.visibleLines
	}
	return 10
}

// moveVertical moves along display-line indices so wrapped segments
// behave as individual lines.
func (t *TextArea) moveVertical(selecting bool, delta int) {
	if len(t.display) == 0 {
		// No layout yet; fall back to logical lines.
		line, col := t.doc.lineColumn(t.cursor)
		line += delta
		t.move(selecting, t.doc.position(line, col))
		return
	}
	line, col := t.doc.lineColumn(t.cursor)
	idx := t.displayIndexFor(line, col)
	seg := t.display[idx]
	// goalX remembers the preferred column so passing through a short
	// line does not lose it.
	if t.goalX < 0 {
		t.goalX = col - seg.start
	}
	offset := t.goalX

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.display) {
		idx = len(t.display) - 1
	}
	target := t.display[idx]
	if width := target.end - target.start; offset > width {
		offset = width
	}
	t.move(selecting, t.doc.position(target.line, target.start+offset))
}

// MoveHome moves to the start of the current display line.
func (t *TextArea) MoveHome(selecting bool) {
	line, col := t.doc.lineColumn(t.cursor)
	if len(t.display) == 0 {
		t.move(selecting, t.doc.position(line, 0))
		return
	}
	seg := t.display[t.displayIndexFor(line, col)]
	t.move(selecting, t.doc.position(line, seg.start))
	t.goalX = -1
}

// MoveEnd moves to the end of the current display line. On the last
// display line of a logical line this is the logical end, so the
// cursor does not land on a wrap boundary owned by the next segment.
func (t *TextArea) MoveEnd(selecting bool) {
	line, col := t.doc.lineColumn(t.cursor)
	if len(t.display) == 0 {
		t.move(selecting, t.doc.position(line, t.doc.lineGraphemes(line)))
		return
	}
	idx := t.displayIndexFor(line, col)
	seg := t.display[idx]
	target := seg.end
	if seg.end >= t.doc.lineGraphemes(line) {
		target = t.doc.lineGraphemes(line)
	}
	t.move(selecting, t.doc.position(line, target))
	t.goalX = -1
}

// MoveDocumentStart moves to offset 0.
func (t *TextArea) MoveDocumentStart(selecting bool) {
	t.move(selecting, 0)
	t.goalX = -1
}

// MoveDocumentEnd moves past the last grapheme.
func (t *TextArea) MoveDocumentEnd(selecting bool) {
	t.move(selecting, t.doc.graphemes())
	t.goalX = -1
}

// isWordGrapheme reports whether a grapheme belongs to a word:
// Unicode letter or digit, or underscore.
func isWordGrapheme(g string) bool {
	for _, r := range g {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
		break
	}
	return false
}

// MoveWordLeft skips whitespace then word characters leftward.
func (t *TextArea) MoveWordLeft(selecting bool) {
	flat := t.doc.text()
	p := t.cursor
	for p > 0 && !isWordGrapheme(graphemeAt(flat, p-1)) {
		p--
	}
	for p > 0 && isWordGrapheme(graphemeAt(flat, p-1)) {
		p--
	}
	t.move(selecting, p)
	t.goalX = -1
}

// MoveWordRight skips whitespace then word characters rightward.
func (t *TextArea) MoveWordRight(selecting bool) {
	flat := t.doc.text()
	total := t.doc.graphemes()
	p := t.cursor
	for p < total && !isWordGrapheme(graphemeAt(flat, p)) {
		p++
	}
	for p < total && isWordGrapheme(graphemeAt(flat, p)) {
		p++
	}
	t.move(selecting, p)
	t.goalX = -1
}

// wordRangeAt returns the word range containing grapheme offset p,
// used by double-click selection. Non-word positions select the run
// of non-word graphemes instead.
func (t *TextArea) wordRangeAt(p int) (start, end int) {
	flat := t.doc.text()
	total := t.doc.graphemes()
	p = t.doc.clampPosition(p)
	if p >= total {
		p = total - 1
	}
	if p < 0 {
		return 0, 0
	}
	word := isWordGrapheme(graphemeAt(flat, p))
	start, end = p, p+1
	for start > 0 && graphemeAt(flat, start-1) != "\n" && isWordGrapheme(graphemeAt(flat, start-1)) == word {
		start--
	}
	for end < total && graphemeAt(flat, end) != "\n" && isWordGrapheme(graphemeAt(flat, end)) == word {
		end++
	}
	return start, end
}

// lineRangeAt returns the grapheme range of the logical line holding
// offset p, newline excluded; triple-click selection.
func (t *TextArea) lineRangeAt(p int) (start, end int) {
	line, _ := t.doc.lineColumn(p)
	start = t.doc.position(line, 0)
	return start, start + t.doc.lineGraphemes(line)
}

package textarea

import "strings"

// document stores the text as logical lines, each without a trailing
// newline, plus a derived flat buffer joined with '\n'. Grapheme
// counts are cached and invalidated on every edit.
type document struct {
	lines []string

	flat      string
	flatDirty bool

	total      int
	lineCounts []int
	countDirty bool
}

// newDocument creates a document from initial text. An empty string
// yields a single empty line.
func newDocument(text string) *document {
	d := &document{}
	d.setText(text)
	return d
}

// setText replaces the whole document.
func (d *document) setText(text string) {
	d.lines = strings.Split(text, "\n")
	d.flat = text
	d.flatDirty = false
	d.countDirty = true
}

// invalidate marks derived state stale after a line mutation.
func (d *document) invalidate() {
	d.flatDirty = true
	d.countDirty = true
}

// Text returns the flat buffer, rebuilding it if stale.
func (d *document) text() string {
	if d.flatDirty {
		d.flat = strings.Join(d.lines, "\n")
		d.flatDirty = false
	}
	return d.flat
}

// refreshCounts recomputes the per-line and total grapheme counts.
// The total includes one grapheme per line break.
func (d *document) refreshCounts() {
	if !d.countDirty {
		return
	}
	if cap(d.lineCounts) < len(d.lines) {
		d.lineCounts = make([]int, len(d.lines))
	}
	d.lineCounts = d.lineCounts[:len(d.lines)]
	total := 0
	for i, line := range d.lines {
		n := graphemeCount(line)
		d.lineCounts[i] = n
		total += n
	}
	d.total = total + len(d.lines) - 1
	d.countDirty = false
}

// graphemes returns the total grapheme count, line breaks included.
func (d *document) graphemes() int {
	d.refreshCounts()
	return d.total
}

// lineGraphemes returns the grapheme count of one logical line.
// Out-of-range indices return 0.
func (d *document) lineGraphemes(i int) int {
	if i < 0 || i >= len(d.lines) {
		return 0
	}
	d.refreshCounts()
	return d.lineCounts[i]
}

// lineCount returns the number of logical lines. Never 0: an empty
// document is one empty line.
func (d *document) lineCount() int { return len(d.lines) }

// line returns logical line i, or "" out of range.
func (d *document) line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// clampPosition clamps a grapheme offset to [0, graphemes()].
func (d *document) clampPosition(p int) int {
	if p < 0 {
		return 0
	}
	if total := d.graphemes(); p > total {
		return total
	}
	return p
}

// lineColumn converts a grapheme offset into (line, column). Each
// line spans lineGraphemes(i)+1 offsets, the +1 being the line break.
// Out-of-range offsets clamp to the document ends.
func (d *document) lineColumn(p int) (line, col int) {
	p = d.clampPosition(p)
	d.refreshCounts()
	for i, n := range d.lineCounts {
		if p <= n {
			return i, p
		}
		p -= n + 1
	}
	last := len(d.lines) - 1
	return last, d.lineCounts[last]
}

// position converts (line, column) into a grapheme offset. Both
// coordinates are clamped to valid range.
func (d *document) position(line, col int) int {
	d.refreshCounts()
	if line < 0 {
		line = 0
	}
	if line >= len(d.lines) {
		line = len(d.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if n := d.lineCounts[line]; col > n {
		col = n
	}
	p := 0
	for i := 0; i < line; i++ {
		p += d.lineCounts[i] + 1
	}
	return p + col
}

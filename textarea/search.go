package textarea

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldCase normalizes text for case-insensitive comparison using
// Unicode case folding, so "STRASSE" matches "straße".
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Find sets the search query and records the current cursor as the
// starting position. Matches are rescanned for highlighting.
func (t *TextArea) Find(query string, caseSensitive bool) {
	t.searchQuery = query
	t.searchCase = caseSensitive
	t.searchFrom = t.cursor
	t.rescanMatches()
	t.RequestRedraw()
}

// ClearSearch drops the query and its highlights.
func (t *TextArea) ClearSearch() {
	t.searchQuery = ""
	t.searchMatches = nil
	t.RequestRedraw()
}

// SearchMatches returns the non-overlapping match ranges of the last
// scan, in document order.
func (t *TextArea) SearchMatches() [][2]int {
	out := make([][2]int, len(t.searchMatches))
	for i, m := range t.searchMatches {
		out[i] = [2]int{m.start, m.end}
	}
	return out
}

// FindNext moves the cursor and selection to the next match after the
// cursor, wrapping to the document start. Returns false when the
// query matches nowhere.
func (t *TextArea) FindNext() bool {
	if len(t.searchMatches) == 0 {
		return false
	}
	for _, m := range t.searchMatches {
		if m.start > t.cursor {
			t.Select(m.start, m.end)
			t.scrollCursorIntoView()
			return true
		}
	}
	// Wrap to the first match.
	m := t.searchMatches[0]
	t.Select(m.start, m.end)
	t.scrollCursorIntoView()
	return true
}

// FindPrevious moves to the nearest match before the cursor, wrapping
// to the document end.
func (t *TextArea) FindPrevious() bool {
	if len(t.searchMatches) == 0 {
		return false
	}
	cursor := t.cursor
	if start, _, ok := t.Selection(); ok {
		cursor = start
	}
	for i := len(t.searchMatches) - 1; i >= 0; i-- {
		m := t.searchMatches[i]
		if m.start < cursor {
			t.Select(m.start, m.end)
			t.scrollCursorIntoView()
			return true
		}
	}
	m := t.searchMatches[len(t.searchMatches)-1]
	t.Select(m.start, m.end)
	t.scrollCursorIntoView()
	return true
}

// HighlightMatches rescans and returns how many matches the query
// has. The match list is painted in the same pass as the selection.
func (t *TextArea) HighlightMatches() int {
	t.rescanMatches()
	t.RequestRedraw()
	return len(t.searchMatches)
}

// rescanMatches walks the whole buffer once, recording all
// non-overlapping matches as grapheme ranges.
func (t *TextArea) rescanMatches() {
	t.searchMatches = t.searchMatches[:0]
	if t.searchQuery == "" {
		return
	}
	flat := t.doc.text()
	haystack := flat
	needle := t.searchQuery
	if !t.searchCase {
		haystack = foldCase(flat)
		needle = foldCase(needle)
	}
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return
		}
		byteStart := from + i
		byteEnd := byteStart + len(needle)
		// Case folding can change byte lengths; map offsets back
		// through the folded prefix.
		start := graphemeIndexAt(flat, byteForFolded(flat, haystack, byteStart))
		end := graphemeIndexAt(flat, byteForFolded(flat, haystack, byteEnd))
		t.searchMatches = append(t.searchMatches, matchRange{start: start, end: end})
		from = byteEnd
		if from >= len(haystack) {
			return
		}
	}
}

// byteForFolded maps a byte offset in the folded haystack back to a
// byte offset in the original text. When no folding happened the
// offsets are identical.
func byteForFolded(orig, folded string, foldedOffset int) int {
	if orig == folded {
		return foldedOffset
	}
	// Walk graphemes in parallel, folding each, until the folded
	// prefix length reaches the offset.
	origOff, foldOff := 0, 0
	for origOff < len(orig) && foldOff < foldedOffset {
		g := graphemeAt(orig[origOff:], 0)
		if g == "" {
			break
		}
		origOff += len(g)
		foldOff += len(foldCase(g))
	}
	return origOff
}

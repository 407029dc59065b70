package textarea

import "strings"

// pushUndo records the current state before a mutation and clears the
// redo stack. The stack is bounded; the oldest snapshot is dropped
// when the limit is reached.
func (t *TextArea) pushUndo() {
	t.undo = append(t.undo, t.captureSnapshot())
	if len(t.undo) > t.undoLimit {
		t.undo = t.undo[1:]
	}
	t.redo = nil
}

func (t *TextArea) captureSnapshot() snapshot {
	return snapshot{
		text:      t.doc.text(),
		cursor:    t.cursor,
		selAnchor: t.selAnchor,
		selHead:   t.selHead,
	}
}

func (t *TextArea) restoreSnapshot(s snapshot) {
	t.doc.setText(s.text)
	t.cursor = t.doc.clampPosition(s.cursor)
	t.selAnchor = s.selAnchor
	t.selHead = s.selHead
	t.invalidate()
	t.emitTextChanged()
	t.emitCursorMoved()
}

// CanUndo reports whether an undo step is available.
func (t *TextArea) CanUndo() bool { return len(t.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (t *TextArea) CanRedo() bool { return len(t.redo) > 0 }

// Undo restores the most recent snapshot, pushing the current state
// to the redo stack. Cursor and selection are part of the snapshot.
func (t *TextArea) Undo() {
	if len(t.undo) == 0 {
		return
	}
	s := t.undo[len(t.undo)-1]
	t.undo = t.undo[:len(t.undo)-1]
	t.redo = append(t.redo, t.captureSnapshot())
	t.restoreSnapshot(s)
}

// Redo reverses the most recent Undo.
func (t *TextArea) Redo() {
	if len(t.redo) == 0 {
		return
	}
	s := t.redo[len(t.redo)-1]
	t.redo = t.redo[:len(t.redo)-1]
	t.undo = append(t.undo, t.captureSnapshot())
	t.restoreSnapshot(s)
}

// InsertText inserts text at the cursor, replacing any selection.
// Multi-line input splits on '\n'.
func (t *TextArea) InsertText(text string) {
	if t.readOnly || text == "" {
		return
	}
	t.pushUndo()
	t.deleteSelectionNoSnapshot()
	t.insertAtCursor(text)
	t.afterEdit()
}

// InsertNewline splits the current line at the cursor.
func (t *TextArea) InsertNewline() {
	if t.readOnly {
		return
	}
	t.pushUndo()
	t.deleteSelectionNoSnapshot()
	t.insertAtCursor("\n")
	t.afterEdit()
}

// InsertTab inserts the configured number of spaces.
func (t *TextArea) InsertTab() {
	if t.readOnly {
		return
	}
	t.pushUndo()
	t.deleteSelectionNoSnapshot()
	t.insertAtCursor(strings.Repeat(" ", t.tabWidth))
	t.afterEdit()
}

// insertAtCursor splices text into the line structure at the cursor
// and advances the cursor past it.
func (t *TextArea) insertAtCursor(text string) {
	line, col := t.doc.lineColumn(t.cursor)
	cur := t.doc.line(line)
	at := graphemeOffset(cur, col)
	before, after := cur[:at], cur[at:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		t.doc.lines[line] = before + text + after
	} else {
		newLines := make([]string, 0, len(t.doc.lines)+len(parts)-1)
		newLines = append(newLines, t.doc.lines[:line]...)
		newLines = append(newLines, before+parts[0])
		newLines = append(newLines, parts[1:len(parts)-1]...)
		newLines = append(newLines, parts[len(parts)-1]+after)
		newLines = append(newLines, t.doc.lines[line+1:]...)
		t.doc.lines = newLines
	}
	t.doc.invalidate()

	endLine := line + len(parts) - 1
	endCol := graphemeCount(parts[len(parts)-1])
	if len(parts) == 1 {
		endCol += col
	}
	t.cursor = t.doc.position(endLine, endCol)
}

// DeleteBackward removes the grapheme before the cursor, or the
// selection if one is active. At column 0 the line merges with the
// previous one.
func (t *TextArea) DeleteBackward() {
	if t.readOnly {
		return
	}
	if _, _, ok := t.Selection(); ok {
		t.DeleteSelection()
		return
	}
	if t.cursor == 0 {
		return
	}
	t.pushUndo()
	line, col := t.doc.lineColumn(t.cursor)
	if col == 0 {
		// Merge with the previous line.
		prev := t.doc.line(line - 1)
		t.cursor = t.doc.position(line-1, graphemeCount(prev))
		t.doc.lines[line-1] = prev + t.doc.line(line)
		t.doc.lines = append(t.doc.lines[:line], t.doc.lines[line+1:]...)
	} else {
		cur := t.doc.line(line)
		from := graphemeOffset(cur, col-1)
		to := graphemeOffset(cur, col)
		t.doc.lines[line] = cur[:from] + cur[to:]
		t.cursor--
	}
	t.doc.invalidate()
	t.afterEdit()
}

// DeleteForward removes the grapheme after the cursor, or the
// selection if one is active. At end-of-line the next line merges in.
func (t *TextArea) DeleteForward() {
	if t.readOnly {
		return
	}
	if _, _, ok := t.Selection(); ok {
		t.DeleteSelection()
		return
	}
	if t.cursor >= t.doc.graphemes() {
		return
	}
	t.pushUndo()
	line, col := t.doc.lineColumn(t.cursor)
	cur := t.doc.line(line)
	if col >= t.doc.lineGraphemes(line) {
		// Merge the next line into this one.
		t.doc.lines[line] = cur + t.doc.line(line+1)
		t.doc.lines = append(t.doc.lines[:line+1], t.doc.lines[line+2:]...)
	} else {
		from := graphemeOffset(cur, col)
		to := graphemeOffset(cur, col+1)
		t.doc.lines[line] = cur[:from] + cur[to:]
	}
	t.doc.invalidate()
	t.afterEdit()
}

// DeleteSelection removes the selected range.
func (t *TextArea) DeleteSelection() {
	if t.readOnly {
		return
	}
	if _, _, ok := t.Selection(); !ok {
		return
	}
	t.pushUndo()
	t.deleteSelectionNoSnapshot()
	t.afterEdit()
}

// deleteSelectionNoSnapshot removes the selected range without
// touching the undo stack; callers own the snapshot.
func (t *TextArea) deleteSelectionNoSnapshot() {
	start, end, ok := t.Selection()
	if !ok {
		return
	}
	startLine, startCol := t.doc.lineColumn(start)
	endLine, endCol := t.doc.lineColumn(end)

	first := t.doc.line(startLine)
	last := t.doc.line(endLine)
	merged := first[:graphemeOffset(first, startCol)] + last[graphemeOffset(last, endCol):]

	t.doc.lines[startLine] = merged
	if endLine > startLine {
		t.doc.lines = append(t.doc.lines[:startLine+1], t.doc.lines[endLine+1:]...)
	}
	t.doc.invalidate()
	t.cursor = start
	t.clearSelection()
}

// Cut copies the selection to the clipboard and deletes it.
func (t *TextArea) Cut() {
	text := t.SelectedText()
	if text == "" {
		return
	}
	if cb := t.resolveClipboard(); cb != nil {
		cb.SetText(text)
	}
	t.DeleteSelection()
}

// Copy copies the selection to the clipboard.
func (t *TextArea) Copy() {
	text := t.SelectedText()
	if text == "" {
		return
	}
	if cb := t.resolveClipboard(); cb != nil {
		cb.SetText(text)
	}
}

// Paste inserts the clipboard content at the cursor.
func (t *TextArea) Paste() {
	cb := t.resolveClipboard()
	if cb == nil {
		return
	}
	if text, ok := cb.GetText(); ok && text != "" {
		t.InsertText(text)
	}
}

// afterEdit refreshes derived state and fires callbacks after a
// content mutation.
func (t *TextArea) afterEdit() {
	t.clearSelection()
	t.invalidate()
	t.emitTextChanged()
	t.emitCursorMoved()
	t.scrollCursorIntoView()
}

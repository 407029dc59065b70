package textarea

import (
	"strconv"
	"strings"

	"github.com/ultracanvas/uc"
)

// OnEvent implements the element contract: mouse selection, the
// keyboard command table, and text input.
func (t *TextArea) OnEvent(ev uc.Event) bool {
	switch ev.Kind {
	case uc.EventMouseDown:
		return t.onMouseDown(ev, 1)
	case uc.EventMouseDoubleClick:
		return t.onMouseDown(ev, 2)
	case uc.EventMouseMove:
		return t.onMouseMove(ev)
	case uc.EventMouseUp:
		return t.onMouseUp(ev)
	case uc.EventMouseWheel:
		return t.onWheel(ev)
	case uc.EventKeyDown:
		return t.onKeyDown(ev)
	case uc.EventTextInput:
		if ev.Text != "" {
			t.InsertText(ev.Text)
			return true
		}
	case uc.EventFocusGained, uc.EventFocusLost:
		t.RequestRedraw()
	}
	return false
}

// onMouseDown places the cursor, escalating through word and line
// selection on multi-clicks. The click count arrives pre-synthesized
// on the event; it is capped at 3 upstream.
func (t *TextArea) onMouseDown(ev uc.Event, fallbackCount int) bool {
	if ev.Button != uc.MouseButtonLeft && ev.Button != uc.MouseButtonNone {
		return false
	}
	if app, err := uc.Current(); err == nil {
		app.SetFocus(t)
		app.SetCapture(t)
	}
	t.dragging = true

	count := ev.ClickCount
	if count < 1 {
		count = fallbackCount
	}
	pos := t.positionForXY(ev.X, ev.Y)

	switch {
	case count >= 3:
		start, end := t.lineRangeAt(pos)
		t.Select(start, end)
	case count == 2:
		start, end := t.wordRangeAt(pos)
		t.Select(start, end)
	default:
		// Markdown link hit?
		if t.markdown && t.OnLinkOpen != nil {
			p := uc.Pt(float64(ev.X), float64(ev.Y))
			for _, lr := range t.linkRects {
				if lr.Bounds.Contains(p) {
					t.OnLinkOpen(lr.Target)
					t.dragging = false
					return true
				}
			}
		}
		if ev.Mods.Has(uc.ModShift) {
			from := t.cursor
			t.cursor = pos
			t.extendSelection(from)
			t.RequestRedraw()
		} else {
			t.SetCursorPosition(pos)
		}
	}
	return true
}

// onMouseMove extends the selection while dragging, auto-scrolling
// when the pointer leaves the viewport band.
func (t *TextArea) onMouseMove(ev uc.Event) bool {
	if !t.dragging {
		return false
	}
	b := t.Bounds()
	if ev.Y < 0 {
		t.scrollLines(-1)
	} else if ev.Y >= b.H {
		t.scrollLines(1)
	}
	from := t.cursor
	t.cursor = t.positionForXY(ev.X, ev.Y)
	t.extendSelection(from)
	t.RequestRedraw()
	return true
}

func (t *TextArea) onMouseUp(ev uc.Event) bool {
	if !t.dragging {
		return false
	}
	t.dragging = false
	if app, err := uc.Current(); err == nil && app.Captured() == uc.Element(t) {
		app.ReleaseCapture()
	}
	return true
}

// onWheel scrolls by the configured line count per notch.
func (t *TextArea) onWheel(ev uc.Event) bool {
	if ev.WheelY == 0 {
		return false
	}
	step := t.wheelLines
	if ev.WheelY > 0 {
		step = -step
	}
	t.scrollLines(step)
	return true
}

// scrollLines moves the viewport by n display lines.
func (t *TextArea) scrollLines(n int) {
	t.firstVisible += n
	t.clampScroll()
	t.RequestRedraw()
}

// ScrollToLine makes logical line i the first visible row.
func (t *TextArea) ScrollToLine(i int) {
	for idx, seg := range t.display {
		if seg.line == i && seg.first() {
			t.firstVisible = idx
			t.clampScroll()
			t.RequestRedraw()
			return
		}
	}
}

// positionForXY converts viewport coordinates to a grapheme offset:
// pick the display row from y, then the column from the measured text
// via the render context.
func (t *TextArea) positionForXY(x, y int) int {
	if len(t.display) == 0 {
		return t.doc.clampPosition(0)
	}
	dc := t.dc
	lh := 16.0
	if dc != nil {
		lh = t.lineHeight(dc)
	}
	row := t.firstVisible + int(float64(y)/lh)
	if row < 0 {
		row = 0
	}
	if row >= len(t.display) {
		row = len(t.display) - 1
	}
	seg := t.display[row]
	text := t.segmentText(seg)

	col := seg.start
	if dc != nil {
		gutterW := 0.0
		if t.showLineNumbers {
			// Mirror the gutter geometry of the paint pass.
			digits := len(strconv.Itoa(t.doc.lineCount()))
			dc.SetFont(t.font)
			gutterW = dc.GetTextLineWidth(strings.Repeat("0", digits)) + 2*gutterPad
		}
		tx := float64(x) - gutterW - textPad + t.scrollX
		if tx < 0 {
			tx = 0
		}
		byteIdx := dc.GetTextIndexForXY(text, tx, 0)
		col = seg.start + graphemeIndexAt(text, byteIdx)
	}
	if col > seg.end {
		col = seg.end
	}
	return t.doc.position(seg.line, col)
}

// onKeyDown maps key chords to editor commands through a fixed table.
func (t *TextArea) onKeyDown(ev uc.Event) bool {
	sel := ev.Mods.Has(uc.ModShift)
	ctrl := ev.Mods.Has(uc.ModCtrl)

	switch ev.Key {
	case uc.KeyLeft:
		if ctrl {
			t.MoveWordLeft(sel)
		} else {
			t.MoveLeft(sel)
		}
	case uc.KeyRight:
		if ctrl {
			t.MoveWordRight(sel)
		} else {
			t.MoveRight(sel)
		}
	case uc.KeyUp:
		t.MoveUp(sel)
	case uc.KeyDown:
		t.MoveDown(sel)
	case uc.KeyHome:
		if ctrl {
			t.MoveDocumentStart(sel)
		} else {
			t.MoveHome(sel)
		}
	case uc.KeyEnd:
		if ctrl {
			t.MoveDocumentEnd(sel)
		} else {
			t.MoveEnd(sel)
		}
	case uc.KeyPageUp:
		t.MovePageUp(sel)
	case uc.KeyPageDown:
		t.MovePageDown(sel)
	case uc.KeyBackspace:
		t.DeleteBackward()
	case uc.KeyDelete:
		if sel {
			t.Cut()
		} else {
			t.DeleteForward()
		}
	case uc.KeyEnter:
		t.InsertNewline()
	case uc.KeyTab:
		if ctrl || ev.Mods.Has(uc.ModAlt) {
			return false // let focus traversal have it
		}
		t.InsertTab()
	case uc.KeyInsert:
		switch {
		case sel:
			t.Paste()
		case ctrl:
			t.Copy()
		default:
			return false
		}
	case uc.KeyEscape:
		t.clearSelection()
		t.ClearSearch()
		t.RequestRedraw()
	case uc.KeyC:
		if !ctrl {
			return false
		}
		t.Copy()
	case uc.KeyX:
		if !ctrl {
			return false
		}
		t.Cut()
	case uc.KeyV:
		if !ctrl {
			return false
		}
		t.Paste()
	case uc.KeyA:
		if !ctrl {
			return false
		}
		t.SelectAll()
	case uc.KeyZ:
		if !ctrl {
			return false
		}
		t.Undo()
	case uc.KeyY:
		if !ctrl {
			return false
		}
		t.Redo()
	default:
		return false
	}
	return true
}

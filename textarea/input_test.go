package textarea

import (
	"testing"

	"github.com/ultracanvas/uc"
)

// paint runs one render pass so layout, metrics and the stored draw
// context are in place for hit testing.
func paint(ta *TextArea) *uc.RecordingContext {
	b := ta.Bounds()
	dc := testContext(b.W, b.H)
	ta.Render(dc)
	return dc
}

// clickAt builds window-local coordinates for a text column and
// display row: 10px per grapheme, 16px rows, 4px text padding.
func clickAt(col, row int) (x, y int) {
	return int(textPad) + col*10, row*16 + 8
}

func mouseDown(ta *TextArea, col, row, clicks int) bool {
	x, y := clickAt(col, row)
	kind := uc.EventMouseDown
	if clicks == 2 {
		kind = uc.EventMouseDoubleClick
	}
	return ta.OnEvent(uc.Event{Kind: kind, Button: uc.MouseButtonLeft, X: x, Y: y, ClickCount: clicks})
}

func keyDown(ta *TextArea, key uc.Key, mods uc.Modifiers) bool {
	return ta.OnEvent(uc.Event{Kind: uc.EventKeyDown, Key: key, Mods: mods})
}

func TestMouseClickPlacesCursor(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("hello world\nsecond line"))
	paint(ta)

	if !mouseDown(ta, 3, 1, 1) {
		t.Fatal("click not consumed")
	}
	if line, col := ta.CursorLineColumn(); line != 1 || col != 3 {
		t.Errorf("cursor = (%d, %d), want (1, 3)", line, col)
	}
}

func TestDoubleClickSelectsWord(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("hello world"))
	paint(ta)

	mouseDown(ta, 8, 0, 2)
	if got := ta.SelectedText(); got != "world" {
		t.Errorf("selected %q, want %q", got, "world")
	}
}

func TestTripleClickSelectsLine(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("first line\nsecond"))
	paint(ta)

	mouseDown(ta, 3, 0, 3)
	if got := ta.SelectedText(); got != "first line" {
		t.Errorf("selected %q", got)
	}
}

func TestShiftClickExtendsSelection(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("hello world"))
	paint(ta)
	ta.SetCursorPosition(0)

	x, y := clickAt(5, 0)
	ta.OnEvent(uc.Event{
		Kind: uc.EventMouseDown, Button: uc.MouseButtonLeft,
		X: x, Y: y, ClickCount: 1, Mods: uc.ModShift,
	})
	if got := ta.SelectedText(); got != "hello" {
		t.Errorf("selected %q", got)
	}
}

func TestDragSelects(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("hello world"))
	paint(ta)

	mouseDown(ta, 0, 0, 1)
	x, y := clickAt(5, 0)
	ta.OnEvent(uc.Event{Kind: uc.EventMouseMove, X: x, Y: y})
	if got := ta.SelectedText(); got != "hello" {
		t.Errorf("selected %q after drag", got)
	}

	ta.OnEvent(uc.Event{Kind: uc.EventMouseUp, Button: uc.MouseButtonLeft, X: x, Y: y})
	if ta.dragging {
		t.Error("mouse up must end the drag")
	}
	// Movement without a drag changes nothing.
	if ta.OnEvent(uc.Event{Kind: uc.EventMouseMove, X: 0, Y: 0}) {
		t.Error("hover move must not be consumed")
	}
}

func TestWheelScrollsViewport(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("a\nb\nc\nd\ne\nf\ng\nh\ni\nj"))
	paint(ta) // 4 visible rows of 10

	ta.OnEvent(uc.Event{Kind: uc.EventMouseWheel, WheelY: -1})
	if ta.firstVisible != 3 {
		t.Errorf("firstVisible = %d, want 3", ta.firstVisible)
	}
	ta.OnEvent(uc.Event{Kind: uc.EventMouseWheel, WheelY: -1})
	if ta.firstVisible != 6 {
		t.Errorf("firstVisible = %d, want 6 (clamped)", ta.firstVisible)
	}
	ta.OnEvent(uc.Event{Kind: uc.EventMouseWheel, WheelY: 1})
	if ta.firstVisible != 3 {
		t.Errorf("firstVisible = %d after scroll up, want 3", ta.firstVisible)
	}
	if ta.OnEvent(uc.Event{Kind: uc.EventMouseWheel, WheelY: 0}) {
		t.Error("zero wheel delta must not be consumed")
	}
}

func TestScrollToLine(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("a\nb\nc\nd\ne\nf\ng\nh\ni\nj"))
	paint(ta)
	ta.ScrollToLine(5)
	if ta.firstVisible != 5 {
		t.Errorf("firstVisible = %d, want 5", ta.firstVisible)
	}
}

func TestKeyMovementCommands(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("one two\nthree four"))
	paint(ta)
	ta.SetCursorPosition(0)

	keyDown(ta, uc.KeyRight, 0)
	if ta.CursorPosition() != 1 {
		t.Errorf("Right: cursor = %d", ta.CursorPosition())
	}
	keyDown(ta, uc.KeyRight, uc.ModCtrl)
	if ta.CursorPosition() != 3 {
		t.Errorf("Ctrl+Right: cursor = %d, want 3", ta.CursorPosition())
	}
	keyDown(ta, uc.KeyDown, 0)
	if line, _ := ta.CursorLineColumn(); line != 1 {
		t.Errorf("Down: line = %d", line)
	}
	keyDown(ta, uc.KeyEnd, 0)
	if _, col := ta.CursorLineColumn(); col != 10 {
		t.Errorf("End: col = %d, want 10", col)
	}
	keyDown(ta, uc.KeyHome, uc.ModCtrl)
	if ta.CursorPosition() != 0 {
		t.Errorf("Ctrl+Home: cursor = %d", ta.CursorPosition())
	}
	keyDown(ta, uc.KeyEnd, uc.ModCtrl)
	if ta.CursorPosition() != ta.GraphemeCount() {
		t.Errorf("Ctrl+End: cursor = %d", ta.CursorPosition())
	}
}

func TestKeyEditCommands(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("ab"))
	ta.SetCursorPosition(2)

	keyDown(ta, uc.KeyBackspace, 0)
	if ta.Text() != "a" {
		t.Errorf("Backspace: %q", ta.Text())
	}
	keyDown(ta, uc.KeyEnter, 0)
	if ta.Text() != "a\n" {
		t.Errorf("Enter: %q", ta.Text())
	}
	keyDown(ta, uc.KeyTab, 0)
	if ta.Text() != "a\n    " {
		t.Errorf("Tab: %q", ta.Text())
	}
	keyDown(ta, uc.KeyZ, uc.ModCtrl)
	keyDown(ta, uc.KeyZ, uc.ModCtrl)
	if ta.Text() != "a" {
		t.Errorf("Undo twice: %q", ta.Text())
	}
	keyDown(ta, uc.KeyY, uc.ModCtrl)
	if ta.Text() != "a\n" {
		t.Errorf("Redo: %q", ta.Text())
	}
}

func TestKeyClipboardCommands(t *testing.T) {
	var cb uc.MemoryClipboard
	ta := New("ed", boundsFor(200, 64), WithText("hello world"))
	ta.SetClipboard(&cb)

	keyDown(ta, uc.KeyA, uc.ModCtrl)
	if ta.SelectedText() != "hello world" {
		t.Fatalf("Ctrl+A selected %q", ta.SelectedText())
	}
	keyDown(ta, uc.KeyC, uc.ModCtrl)
	if text, _ := cb.GetText(); text != "hello world" {
		t.Errorf("Ctrl+C copied %q", text)
	}

	ta.Select(5, 11)
	keyDown(ta, uc.KeyDelete, uc.ModShift)
	if ta.Text() != "hello" {
		t.Errorf("Shift+Delete: %q", ta.Text())
	}
	if text, _ := cb.GetText(); text != " world" {
		t.Errorf("Shift+Delete payload %q", text)
	}

	keyDown(ta, uc.KeyV, uc.ModCtrl)
	if ta.Text() != "hello world" {
		t.Errorf("Ctrl+V: %q", ta.Text())
	}

	// Plain letters without Ctrl are not commands.
	if keyDown(ta, uc.KeyC, 0) {
		t.Error("bare C must not be consumed")
	}
}

func TestTabPassesThroughForTraversal(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("x"))
	if keyDown(ta, uc.KeyTab, uc.ModCtrl) {
		t.Error("Ctrl+Tab must not be consumed")
	}
	if ta.Text() != "x" {
		t.Errorf("text changed: %q", ta.Text())
	}
}

func TestEscapeClearsSelectionAndSearch(t *testing.T) {
	ta := New("ed", boundsFor(200, 64), WithText("abc abc"))
	ta.Find("abc", true)
	ta.Select(0, 3)

	keyDown(ta, uc.KeyEscape, 0)
	if _, _, ok := ta.Selection(); ok {
		t.Error("selection survived Escape")
	}
	if len(ta.SearchMatches()) != 0 {
		t.Error("search highlights survived Escape")
	}
}

func TestTextInputInserts(t *testing.T) {
	ta := New("ed", boundsFor(200, 64))
	ta.OnEvent(uc.Event{Kind: uc.EventTextInput, Text: "héllo"})
	if ta.Text() != "héllo" {
		t.Errorf("text = %q", ta.Text())
	}
	if ta.OnEvent(uc.Event{Kind: uc.EventTextInput}) {
		t.Error("empty text input must not be consumed")
	}
}

func TestLinkClickOpensTarget(t *testing.T) {
	// The cursor's own line renders raw, so the link lives on the
	// second line while the cursor stays on the first.
	ta := New("ed", boundsFor(300, 64),
		WithText("intro\nsee [docs](https://example.com) here"), WithMarkdown(true))
	var opened string
	ta.OnLinkOpen = func(target string) { opened = target }
	paint(ta)

	if len(ta.LinkRects()) == 0 {
		t.Fatal("no link rects recorded during paint")
	}
	lr := ta.LinkRects()[0]
	x := int(lr.Bounds.X + lr.Bounds.W/2)
	y := int(lr.Bounds.Y + lr.Bounds.H/2)
	ta.OnEvent(uc.Event{Kind: uc.EventMouseDown, Button: uc.MouseButtonLeft, X: x, Y: y, ClickCount: 1})
	if opened != "https://example.com" {
		t.Errorf("opened %q", opened)
	}
}

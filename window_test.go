package uc

import (
	"strings"
	"testing"
)

func newTestApp(t *testing.T, opts ...AppOption) (*App, *HeadlessPlatform) {
	t.Helper()
	platform := NewHeadlessPlatform()
	app, err := Initialize(platform, opts...)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, platform
}

func mustWindow(t *testing.T, app *App, title string, w, h int) *Window {
	t.Helper()
	win, err := app.CreateWindow(title, w, h)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	return win
}

func recorderOf(t *testing.T, win *Window) *RecordingContext {
	t.Helper()
	rc, ok := win.Context().(*RecordingContext)
	if !ok {
		t.Fatalf("window context is %T, want *RecordingContext", win.Context())
	}
	return rc
}

func TestWindowPaintOrder(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 200, 150)
	win.Show()

	low := newMarking("low", NewRect(0, 0, 50, 50))
	high := newMarking("high", NewRect(0, 0, 50, 50))
	high.SetZIndex(5)
	win.AddChild(high)
	win.AddChild(low)

	popup := newPopup("menu", NewRect(10, 10, 40, 40))
	win.AddPopupElement(popup)

	rc := recorderOf(t, win)
	rc.Reset()
	win.Paint()

	var order []string
	for _, op := range rc.Ops() {
		switch {
		case strings.Contains(op, `"low"`):
			order = append(order, "low")
		case strings.Contains(op, `"high"`):
			order = append(order, "high")
		case strings.Contains(op, `"menu"`):
			order = append(order, "menu")
		case strings.HasPrefix(op, "flush"):
			order = append(order, "flush")
		}
	}
	want := []string{"low", "high", "menu", "flush"}
	if len(order) != len(want) {
		t.Fatalf("paint markers = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("paint order = %v, want %v", order, want)
		}
	}
	if !rc.Balanced() {
		t.Error("paint must balance push/pop state")
	}
	if win.NeedsRedraw() {
		t.Error("paint must clear the dirty flag")
	}
}

// markingProbe draws its id so tests can locate it in the recording.
type markingProbe struct {
	probe
}

func newMarking(id string, bounds Rect) *markingProbe {
	return &markingProbe{probe: *newProbe(id, bounds)}
}

func (m *markingProbe) Render(dc DrawContext) {
	dc.DrawText(m.ID(), 0, 0)
}

// popupProbe implements PopupRenderer.
type popupProbe struct {
	probe
	popupRendered int
}

func newPopup(id string, bounds Rect) *popupProbe {
	return &popupProbe{probe: *newProbe(id, bounds)}
}

func (p *popupProbe) RenderPopupContent(dc DrawContext) {
	p.popupRendered++
	dc.DrawText(p.ID(), 0, 0)
}

func TestPopupRemovalIsDeferred(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)
	win.Show()

	popup := newPopup("menu", NewRect(0, 0, 20, 20))
	win.AddPopupElement(popup)

	// Request removal mid-frame. The popup must still paint once.
	win.RemovePopupElement(popup)
	win.Paint()
	if popup.popupRendered != 1 {
		t.Fatalf("popup rendered %d times during removal frame, want 1", popup.popupRendered)
	}

	// Next frame it is gone.
	win.Paint()
	if popup.popupRendered != 1 {
		t.Error("popup painted after deferred removal drained")
	}
	if len(win.PopupElements()) != 0 {
		t.Error("popup list not drained")
	}
}

func TestPopupReAddCancelsRemoval(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)
	popup := newPopup("menu", NewRect(0, 0, 20, 20))

	win.AddPopupElement(popup)
	win.RemovePopupElement(popup)
	win.AddPopupElement(popup)
	win.Paint()

	if len(win.PopupElements()) != 1 {
		t.Error("re-added popup must survive the drain")
	}
}

func TestWindowCloseIsAsync(t *testing.T) {
	app, platform := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)
	win.Show()

	// Handlers observe a valid window during delivery; native
	// destruction happens at the end of the pump iteration.
	seen := false
	livedAtClose := false
	watcher := newProbe("w", NewRect(0, 0, 10, 10))
	win.AddChild(watcher)
	app.AddGlobalHandler(func(ev Event) bool {
		if ev.Kind == EventWindowClose {
			seen = true
			livedAtClose = app.WindowByHandle(win.Handle()) == win
		}
		return false
	})

	platform.Inject(Event{Kind: EventWindowClose, Handle: win.Handle()})
	app.RunOnce()

	if !seen {
		t.Fatal("close event never delivered")
	}
	if !livedAtClose {
		t.Error("window must still be registered while the close event is in flight")
	}
	if win.State() != WindowClosing {
		t.Errorf("state after close = %v, want Closing", win.State())
	}
	if len(app.Windows()) != 0 {
		t.Error("window not destroyed after the pump iteration")
	}
	if app.WindowByHandle(win.Handle()) != nil {
		t.Error("handle still resolves after destruction")
	}
}

func TestWindowResizeEvent(t *testing.T) {
	app, platform := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)
	win.Show()

	platform.Inject(Event{Kind: EventWindowResize, Handle: win.Handle(), Width: 320, Height: 240})
	app.RunOnce()

	b := win.Bounds()
	if b.W != 320 || b.H != 240 {
		t.Errorf("bounds after resize = %+v", b)
	}
	rw, rh := recorderOf(t, win).Size()
	if rw != 320 || rh != 240 {
		t.Errorf("context not resized: %dx%d", rw, rh)
	}
}

func TestWindowStateMachine(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)

	win.SetState(WindowMaximized)
	if win.State() != WindowMaximized {
		t.Error("maximize transition failed")
	}
	// Closing is only entered through Close.
	win.SetState(WindowClosing)
	if win.State() == WindowClosing {
		t.Error("SetState must not enter Closing")
	}
	win.Close()
	if win.State() != WindowClosing {
		t.Error("Close must enter Closing")
	}
	// A closing window ignores further transitions and Show.
	win.SetState(WindowNormal)
	if win.State() != WindowClosing {
		t.Error("closing window must ignore state changes")
	}
	win.Show()
	if win.Visible() {
		t.Error("closing window must not be shown")
	}
}

func TestElementRemovedClearsFocus(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)

	field := newProbe("field", NewRect(0, 0, 50, 20))
	field.SetFocusable(true)
	win.AddChild(field)
	app.SetFocus(field)
	if win.FocusedElement() != Element(field) {
		t.Fatal("focus not set")
	}

	win.RemoveChild(field)
	if win.FocusedElement() != nil {
		t.Error("removing the focused element must clear window focus")
	}
}

func TestMarkDirtyCoalesces(t *testing.T) {
	app, _ := newTestApp(t)
	win := mustWindow(t, app, "main", 100, 100)
	win.Show()
	app.RunOnce() // initial paint

	rc := recorderOf(t, win)
	rc.Reset()

	win.MarkDirty()
	win.MarkDirty()
	win.MarkDirty()
	app.RunOnce()

	if got := rc.CountOps("flush"); got != 1 {
		t.Errorf("flush count = %d, want 1 (coalesced)", got)
	}

	rc.Reset()
	app.RunOnce()
	if got := rc.CountOps("flush"); got != 0 {
		t.Errorf("clean window repainted %d times", got)
	}
}

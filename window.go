package uc

// WindowState is the window's lifecycle state machine.
type WindowState int

const (
	WindowNormal WindowState = iota
	WindowMinimized
	WindowMaximized
	WindowFullscreen
	// WindowClosing means Close was called; the native window is
	// destroyed on the next pump cycle.
	WindowClosing
)

// String returns the string representation of the window state.
func (s WindowState) String() string {
	switch s {
	case WindowNormal:
		return "Normal"
	case WindowMinimized:
		return "Minimized"
	case WindowMaximized:
		return "Maximized"
	case WindowFullscreen:
		return "Fullscreen"
	case WindowClosing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Window is a container that owns a native handle and a render
// context, tracks the focused element, and layers popup overlays above
// the normal tree. Windows are created through App.CreateWindow and
// owned by the application's window list.
type Window struct {
	Container

	app    *App
	handle NativeHandle
	dc     DrawContext
	title  string
	state  WindowState

	// focused is a lookup reference into this window's tree; it is
	// cleared when the element is removed.
	focused Element

	// popups are weak references painted above the normal children in
	// append order. Removal is deferred to the end of the frame so a
	// popup may request its own disposal from its event handler.
	popups        []Element
	pendingRemove map[Element]struct{}

	needsRedraw bool

	tooltips *TooltipManager
}

// newWindow wires a window around a platform handle and context.
func newWindow(app *App, handle NativeHandle, dc DrawContext, title string, w, h int) *Window {
	win := &Window{
		app:           app,
		handle:        handle,
		dc:            dc,
		title:         title,
		pendingRemove: make(map[Element]struct{}),
	}
	win.Container = *NewContainer(title, NewRect(0, 0, w, h))
	win.Container.self = win
	win.Container.window = win
	win.Container.visible = false // mapped by Show
	win.SetBackground(White)
	win.tooltips = NewTooltipManager(win)
	win.needsRedraw = true
	return win
}

// Handle returns the opaque native window handle.
func (w *Window) Handle() NativeHandle { return w.handle }

// Context returns the window's render context. The context is owned
// exclusively by the window; a paint pass must complete before the
// next one begins.
func (w *Window) Context() DrawContext { return w.dc }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.title = title
	if w.app != nil {
		w.app.platform.SetWindowTitle(w.handle, title)
	}
}

// State returns the window state.
func (w *Window) State() WindowState { return w.state }

// SetState transitions the state machine. Closing is entered only
// through Close.
func (w *Window) SetState(s WindowState) {
	if s == WindowClosing || w.state == s || w.state == WindowClosing {
		return
	}
	w.state = s
	w.MarkDirty()
}

// Window returns the window itself, terminating back-reference walks.
func (w *Window) Window() *Window { return w }

// Show maps the window.
func (w *Window) Show() {
	if w.state == WindowClosing {
		return
	}
	w.SetVisible(true)
	if w.app != nil {
		w.app.platform.ShowWindow(w.handle, true)
	}
	w.MarkDirty()
}

// Hide unmaps the window without destroying it.
func (w *Window) Hide() {
	w.SetVisible(false)
	if w.app != nil {
		w.app.platform.ShowWindow(w.handle, false)
	}
}

// Close transitions to Closing and hides the window. Native
// destruction is deferred to the next pump cycle, so handlers that
// reference the window while the close event is delivered stay valid.
func (w *Window) Close() {
	if w.state == WindowClosing {
		return
	}
	w.state = WindowClosing
	w.Hide()
	if w.app != nil {
		w.app.deferDestroy(w)
	}
}

// Resize updates the window size. Contexts that support in-place
// resizing are resized with the window.
func (w *Window) Resize(width, height int) {
	b := w.Bounds()
	if b.W == width && b.H == height {
		return
	}
	w.SetBounds(NewRect(0, 0, width, height))
	if rc, ok := w.dc.(interface{ Resize(w, h int) }); ok {
		rc.Resize(width, height)
	}
	w.MarkDirty()
}

// MarkDirty requests a repaint. Requests are coalesced: the pump
// paints a dirty window once per iteration.
func (w *Window) MarkDirty() { w.needsRedraw = true }

// NeedsRedraw reports whether a repaint is pending.
func (w *Window) NeedsRedraw() bool { return w.needsRedraw }

// FocusedElement returns the element holding keyboard focus within
// this window, or nil.
func (w *Window) FocusedElement() Element { return w.focused }

// setFocused updates the focus pointer. Event emission is the
// application's responsibility (App.SetFocus).
func (w *Window) setFocused(e Element) { w.focused = e }

// Tooltips returns the window's tooltip manager.
func (w *Window) Tooltips() *TooltipManager { return w.tooltips }

// AddPopupElement registers an element to paint above the normal
// tree. Presence is a set (adding twice is a no-op); order is the
// append order, later popups paint on top.
func (w *Window) AddPopupElement(e Element) {
	if e == nil {
		return
	}
	for _, p := range w.popups {
		if p == e {
			return
		}
	}
	// Re-adding cancels a pending removal.
	delete(w.pendingRemove, e)
	w.popups = append(w.popups, e)
	w.MarkDirty()
}

// RemovePopupElement requests removal of a popup overlay. The removal
// is deferred: the popup stays painted for the remainder of the
// current frame and is drained at the frame boundary, which makes it
// safe to call from the popup's own event handler.
func (w *Window) RemovePopupElement(e Element) {
	if e == nil {
		return
	}
	w.pendingRemove[e] = struct{}{}
	w.MarkDirty()
}

// PopupElements returns the live popup overlay list.
func (w *Window) PopupElements() []Element { return w.popups }

// drainPopupRemovals applies deferred popup removals.
func (w *Window) drainPopupRemovals() {
	if len(w.pendingRemove) == 0 {
		return
	}
	kept := w.popups[:0]
	for _, p := range w.popups {
		if _, gone := w.pendingRemove[p]; !gone {
			kept = append(kept, p)
		}
	}
	w.popups = kept
	clear(w.pendingRemove)
}

// elementRemoved clears weak references into a detached subtree.
func (w *Window) elementRemoved(e Element) {
	if w.focused != nil && containsElement(e, w.focused) {
		w.focused = nil
	}
	for i, p := range w.popups {
		if p == e {
			w.popups = append(w.popups[:i], w.popups[i+1:]...)
			break
		}
	}
	delete(w.pendingRemove, e)
	w.tooltips.elementRemoved(e)
	if w.app != nil {
		w.app.elementRemoved(e)
	}
}

// Paint runs one full render traversal: background, children in
// z-order, popup overlays, tooltip, flush.
// Deferred popup removals are drained after the flush.
func (w *Window) Paint() {
	dc := w.dc
	width, height := w.Bounds().W, w.Bounds().H

	dc.PushState()
	dc.FillRect(RectF{W: float64(width), H: float64(height)}, w.Background())

	content := w.ContentRect()
	dc.PushState()
	dc.ClipRect(content.RectF())
	sx, sy := w.ScrollOffset()
	if sx != 0 || sy != 0 {
		dc.Translate(float64(-sx), float64(-sy))
	}
	for _, child := range w.ChildrenInZOrder() {
		renderChild(dc, child)
	}
	dc.PopState()

	// Popups paint after the tree, in append order, in window
	// coordinates, with no ancestor clipping.
	for _, popup := range w.popups {
		if !popup.Visible() {
			continue
		}
		w.renderPopup(dc, popup)
	}

	w.tooltips.Render(dc)
	dc.PopState()
	dc.Flush()

	w.needsRedraw = false
	w.drainPopupRemovals()
}

// renderPopup paints one overlay at its window-space origin.
func (w *Window) renderPopup(dc DrawContext, popup Element) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("popup render panic recovered", "element", popup.ID(), "panic", r)
		}
	}()
	x, y := GlobalOrigin(popup)
	dc.PushState()
	defer dc.PopState()
	dc.Translate(float64(x), float64(y))
	if pr, ok := popup.(PopupRenderer); ok {
		pr.RenderPopupContent(dc)
	} else {
		popup.Render(dc)
	}
}

// containsElement reports whether root's subtree contains e.
func containsElement(root, e Element) bool {
	if root == e {
		return true
	}
	for _, child := range root.Children() {
		if containsElement(child, e) {
			return true
		}
	}
	return false
}

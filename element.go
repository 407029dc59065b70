package uc

import "sync/atomic"

// CursorShape is the mouse cursor an element requests while hovered.
type CursorShape int

const (
	CursorDefault CursorShape = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorResizeH
	CursorResizeV
	CursorWait
)

// nextElementID allocates numeric element ids process-wide.
var nextElementID atomic.Uint64

// Element is a node in the UI tree.
//
// Bounds are in the parent's coordinate space; the window is at (0,0)
// in its own space. Parent and window references are lookups, never
// ownership: children are owned by their parent and an element is
// destroyed when removed from its parent with no other holder.
type Element interface {
	// Identity.
	ID() string
	SetID(string)
	NumericID() uint64

	// Geometry and stacking.
	Bounds() Rect
	SetBounds(Rect)
	ZIndex() int
	SetZIndex(int)

	// Flags.
	Visible() bool
	SetVisible(bool)
	Enabled() bool
	SetEnabled(bool)
	Focusable() bool
	SetFocusable(bool)
	Focused() bool
	SetFocused(bool)
	Hovered() bool
	SetHovered(bool)
	Cursor() CursorShape

	// Tree links. Children returns nil for leaf elements.
	Parent() Element
	SetParent(Element)
	Window() *Window
	SetWindow(*Window)
	Children() []Element

	// Behavior.
	// OnEvent returns true when the element consumed the event;
	// unconsumed events bubble up the parent chain.
	OnEvent(ev Event) bool
	Render(dc DrawContext)
	// Contains reports whether (x, y), in the parent's coordinate
	// space, hits this element.
	Contains(x, y int) bool
	// RequestRedraw marks the owning window dirty. The paint pass is
	// coalesced: any number of requests between two frames produce
	// one repaint.
	RequestRedraw()
}

// PopupRenderer is implemented by elements registered as popup
// overlays on a window. RenderPopupContent is called in the window's
// coordinate space, after the normal tree, bypassing ancestor
// clipping so menus and dropdowns can extend past their spawner.
type PopupRenderer interface {
	RenderPopupContent(dc DrawContext)
}

// BaseElement is the canonical Element implementation. Widgets embed
// it and override OnEvent, Render, and Contains as needed.
type BaseElement struct {
	id        string
	numericID uint64
	bounds    Rect
	zIndex    int

	visible   bool
	enabled   bool
	focusable bool
	focused   bool
	hovered   bool
	cursor    CursorShape

	parent Element
	window *Window
}

// NewBaseElement creates a visible, enabled, non-focusable element
// with the given identifier and bounds.
func NewBaseElement(id string, bounds Rect) *BaseElement {
	return &BaseElement{
		id:        id,
		numericID: nextElementID.Add(1),
		bounds:    bounds,
		visible:   true,
		enabled:   true,
	}
}

func (e *BaseElement) ID() string         { return e.id }
func (e *BaseElement) SetID(id string)    { e.id = id }
func (e *BaseElement) NumericID() uint64  { return e.numericID }
func (e *BaseElement) Bounds() Rect       { return e.bounds }
func (e *BaseElement) ZIndex() int        { return e.zIndex }
func (e *BaseElement) Visible() bool      { return e.visible }
func (e *BaseElement) Enabled() bool      { return e.enabled }
func (e *BaseElement) Focusable() bool    { return e.focusable }
func (e *BaseElement) Focused() bool      { return e.focused }
func (e *BaseElement) Hovered() bool      { return e.hovered }
func (e *BaseElement) Cursor() CursorShape { return e.cursor }
func (e *BaseElement) Parent() Element    { return e.parent }
func (e *BaseElement) Window() *Window    { return e.window }
func (e *BaseElement) Children() []Element { return nil }

// SetBounds moves the element and requests a repaint.
func (e *BaseElement) SetBounds(b Rect) {
	if e.bounds == b {
		return
	}
	e.bounds = b
	e.RequestRedraw()
}

// SetZIndex reorders the element among its siblings.
func (e *BaseElement) SetZIndex(z int) {
	if e.zIndex == z {
		return
	}
	e.zIndex = z
	e.RequestRedraw()
}

func (e *BaseElement) SetVisible(v bool) {
	if e.visible == v {
		return
	}
	e.visible = v
	e.RequestRedraw()
}

func (e *BaseElement) SetEnabled(v bool) {
	if e.enabled == v {
		return
	}
	e.enabled = v
	e.RequestRedraw()
}

func (e *BaseElement) SetFocusable(v bool) { e.focusable = v }

// SetFocused flips the focus flag only. Focus changes with event
// emission go through App.SetFocus.
func (e *BaseElement) SetFocused(v bool) { e.focused = v }

func (e *BaseElement) SetHovered(v bool) { e.hovered = v }

// SetCursor sets the mouse cursor requested while hovered.
func (e *BaseElement) SetCursor(c CursorShape) { e.cursor = c }

func (e *BaseElement) SetParent(p Element) { e.parent = p }
func (e *BaseElement) SetWindow(w *Window) { e.window = w }

// OnEvent does nothing; the event bubbles to the parent.
func (e *BaseElement) OnEvent(Event) bool { return false }

// Render draws nothing.
func (e *BaseElement) Render(DrawContext) {}

// Contains hit-tests against the element's bounds in parent space.
func (e *BaseElement) Contains(x, y int) bool {
	return e.bounds.Contains(x, y)
}

// RequestRedraw marks the owning window dirty.
func (e *BaseElement) RequestRedraw() {
	if e.window != nil {
		e.window.MarkDirty()
	}
}

// GlobalOrigin returns an element's origin in window coordinates by
// walking parent back-references, honoring container scroll offsets.
func GlobalOrigin(e Element) (int, int) {
	x, y := 0, 0
	for cur := e; cur != nil; {
		b := cur.Bounds()
		x += b.X
		y += b.Y
		parent := cur.Parent()
		if sc, ok := parent.(interface{ ScrollOffset() (int, int) }); ok {
			sx, sy := sc.ScrollOffset()
			x -= sx
			y -= sy
		}
		cur = parent
	}
	return x, y
}

// GlobalBounds returns an element's bounds in window coordinates.
func GlobalBounds(e Element) Rect {
	x, y := GlobalOrigin(e)
	b := e.Bounds()
	return Rect{X: x, Y: y, W: b.W, H: b.H}
}

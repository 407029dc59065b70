package uc

// EventKind identifies the variant of an Event.
type EventKind int

const (
	EventNone EventKind = iota

	// Mouse events.
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventMouseWheel
	EventMouseEnter
	EventMouseLeave
	EventMouseDoubleClick

	// Keyboard events.
	EventKeyDown
	EventKeyUp
	EventTextInput

	// Window events.
	EventWindowClose
	EventWindowResize
	EventWindowMove
	EventWindowFocus
	EventWindowBlur
	EventWindowRepaint

	// Element focus events.
	EventFocusGained
	EventFocusLost

	// Shortcut is a synthesized command event (menu accelerators).
	EventShortcut
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMouseDown:
		return "MouseDown"
	case EventMouseUp:
		return "MouseUp"
	case EventMouseMove:
		return "MouseMove"
	case EventMouseWheel:
		return "MouseWheel"
	case EventMouseEnter:
		return "MouseEnter"
	case EventMouseLeave:
		return "MouseLeave"
	case EventMouseDoubleClick:
		return "MouseDoubleClick"
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventTextInput:
		return "TextInput"
	case EventWindowClose:
		return "WindowClose"
	case EventWindowResize:
		return "WindowResize"
	case EventWindowMove:
		return "WindowMove"
	case EventWindowFocus:
		return "WindowFocus"
	case EventWindowBlur:
		return "WindowBlur"
	case EventWindowRepaint:
		return "WindowRepaint"
	case EventFocusGained:
		return "FocusGained"
	case EventFocusLost:
		return "FocusLost"
	case EventShortcut:
		return "Shortcut"
	default:
		return "None"
	}
}

// IsInput reports whether the event kind is input-like: mouse, key,
// text, shortcut, or focus. Modal gating applies only to input events.
func (k EventKind) IsInput() bool {
	switch k {
	case EventMouseDown, EventMouseUp, EventMouseMove, EventMouseWheel,
		EventMouseEnter, EventMouseLeave, EventMouseDoubleClick,
		EventKeyDown, EventKeyUp, EventTextInput,
		EventFocusGained, EventFocusLost, EventShortcut,
		EventWindowFocus:
		return true
	}
	return false
}

// IsMouse reports whether the event kind is a mouse event.
func (k EventKind) IsMouse() bool {
	switch k {
	case EventMouseDown, EventMouseUp, EventMouseMove, EventMouseWheel,
		EventMouseEnter, EventMouseLeave, EventMouseDoubleClick:
		return true
	}
	return false
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers int

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << 0
	ModCtrl  Modifiers = 1 << 1
	ModAlt   Modifiers = 1 << 2
	ModMeta  Modifiers = 1 << 3
)

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// Key is a virtual key code, independent of keyboard layout.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeySpace
	KeyShift
	KeyCtrl
	KeyAlt
	KeyMeta
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Printable keys carry their ASCII uppercase value so shortcut
	// tables can match Ctrl+C etc. without layout knowledge.
	KeyA Key = 'A'
	KeyB Key = 'B'
	KeyC Key = 'C'
	KeyD Key = 'D'
	KeyE Key = 'E'
	KeyF Key = 'F'
	KeyG Key = 'G'
	KeyH Key = 'H'
	KeyI Key = 'I'
	KeyJ Key = 'J'
	KeyK Key = 'K'
	KeyL Key = 'L'
	KeyM Key = 'M'
	KeyN Key = 'N'
	KeyO Key = 'O'
	KeyP Key = 'P'
	KeyQ Key = 'Q'
	KeyR Key = 'R'
	KeyS Key = 'S'
	KeyT Key = 'T'
	KeyU Key = 'U'
	KeyV Key = 'V'
	KeyW Key = 'W'
	KeyX Key = 'X'
	KeyY Key = 'Y'
	KeyZ Key = 'Z'
)

// NativeHandle is the opaque, equality-comparable identity of a
// platform window (X11 Window, HWND, NSWindow). The pump uses it only
// to route events to the owning Window.
type NativeHandle uint64

// Event is the value type carried through the pump. Handlers receive
// events by value and must not retain pointers into them across
// dispatch.
type Event struct {
	Kind EventKind

	// X, Y are window-local coordinates; GlobalX, GlobalY are screen
	// coordinates as reported by the platform.
	X, Y             int
	GlobalX, GlobalY int

	Button MouseButton
	// ClickCount is 1 for a plain click, 2 for a double click, 3 for
	// a triple click. Synthesized by the pump.
	ClickCount int

	Key  Key
	Mods Modifiers

	// Text carries pre-composed UTF-8 for EventTextInput.
	Text string

	// WheelX, WheelY are scroll deltas in lines; positive Y scrolls up.
	WheelX, WheelY float64

	// Width, Height carry the new size for EventWindowResize.
	Width, Height int

	// Target is the element the event is addressed to, when known.
	// It is a lookup reference, never ownership; a destroyed target
	// causes the event to be dropped.
	Target Element

	// Handle identifies the source native window.
	Handle NativeHandle
}

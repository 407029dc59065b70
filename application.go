package uc

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Default click-synthesis parameters.
const (
	// DefaultClickInterval is the window for consecutive clicks to
	// escalate to double and triple clicks.
	DefaultClickInterval = 250 * time.Millisecond
	// DefaultClickRadius is the pixel slop allowed between
	// consecutive clicks.
	DefaultClickRadius = 5
	// defaultWaitTimeout bounds the blocking wait of an idle pump
	// iteration when nothing (tooltip, animation) wants an earlier
	// wake-up.
	defaultWaitTimeout = 100 * time.Millisecond
)

// ErrNotInitialized is returned by Current before Initialize.
var ErrNotInitialized = errors.New("uc: application not initialized")

// GlobalHandler filters events before dispatch. Returning true
// consumes the event.
type GlobalHandler func(ev Event) bool

// AppOption configures the application at Initialize time.
type AppOption func(*App)

// WithClickInterval overrides the multi-click escalation window.
func WithClickInterval(d time.Duration) AppOption {
	return func(a *App) { a.clickInterval = d }
}

// WithClickRadius overrides the multi-click pixel slop.
func WithClickRadius(px int) AppOption {
	return func(a *App) { a.clickRadius = px }
}

// App is the process-wide application: platform binding, window list,
// event queue, and the cooperative single-threaded pump. Lifecycle is
// Initialize → Run → Shutdown; re-initialization after shutdown
// produces a fresh instance.
//
// All UI state belongs to the goroutine that calls Run. The only
// off-thread entry points are PostEvent, ExecuteOnMainThread, and the
// image caches.
type App struct {
	platform Platform

	queueMu sync.Mutex
	queue   []Event

	windows  []*Window
	byHandle map[NativeHandle]*Window

	globalHandlers []GlobalHandler
	modal          *ModalManager

	capture       Element
	captureWindow *Window
	hovered       Element

	running atomic.Bool
	exit    atomic.Bool

	// Multi-click synthesis state.
	clickInterval time.Duration
	clickRadius   int
	lastClickAt   time.Time
	lastClickX    int
	lastClickY    int
	lastButton    MouseButton
	clickCount    int

	deferredDestroy []*Window

	trampolineMu sync.Mutex
	trampoline   []func()
}

var (
	appMu  sync.Mutex
	theApp *App
)

// Initialize creates the application singleton bound to a platform.
// Calling Initialize while an instance exists returns that instance.
func Initialize(platform Platform, opts ...AppOption) (*App, error) {
	if platform == nil {
		return nil, errors.New("uc: nil platform")
	}
	appMu.Lock()
	defer appMu.Unlock()
	if theApp != nil {
		return theApp, nil
	}
	a := &App{
		platform:      platform,
		byHandle:      make(map[NativeHandle]*Window),
		modal:         NewModalManager(),
		clickInterval: DefaultClickInterval,
		clickRadius:   DefaultClickRadius,
	}
	for _, opt := range opts {
		opt(a)
	}
	theApp = a
	logger().Info("application initialized", "platform", platform.Name())
	return a, nil
}

// Current returns the active application instance.
func Current() (*App, error) {
	appMu.Lock()
	defer appMu.Unlock()
	if theApp == nil {
		return nil, ErrNotInitialized
	}
	return theApp, nil
}

// Shutdown destroys all windows and releases the platform. After
// Shutdown, Initialize may be called again for a fresh instance.
func (a *App) Shutdown() {
	a.exit.Store(true)
	for _, w := range a.windows {
		a.platform.DestroyWindow(w.Handle())
	}
	a.windows = nil
	a.byHandle = make(map[NativeHandle]*Window)
	a.platform.Shutdown()

	appMu.Lock()
	if theApp == a {
		theApp = nil
	}
	appMu.Unlock()
	logger().Info("application shut down")
}

// Platform returns the bound platform.
func (a *App) Platform() Platform { return a.platform }

// Modal returns the modal dialog manager.
func (a *App) Modal() *ModalManager { return a.modal }

// Clipboard returns the platform clipboard.
func (a *App) Clipboard() Clipboard { return a.platform.Clipboard() }

// CreateWindow creates a window through the platform factory and
// registers it with the pump.
func (a *App) CreateWindow(title string, width, height int) (*Window, error) {
	handle, dc, err := a.platform.CreateWindow(title, width, height)
	if err != nil {
		return nil, fmt.Errorf("uc: create window %q: %w", title, err)
	}
	win := newWindow(a, handle, dc, title, width, height)
	a.windows = append(a.windows, win)
	a.byHandle[handle] = win
	logger().Info("window created", "title", title, "handle", handle)
	return win, nil
}

// Windows returns the live window list.
func (a *App) Windows() []*Window { return a.windows }

// WindowByHandle resolves a native handle to its window.
func (a *App) WindowByHandle(h NativeHandle) *Window { return a.byHandle[h] }

// AddGlobalHandler registers an event filter. Filters run in
// registration order before any dispatch; returning true consumes the
// event.
func (a *App) AddGlobalHandler(h GlobalHandler) {
	a.globalHandlers = append(a.globalHandlers, h)
}

// PostEvent enqueues an event. Safe to call from any goroutine;
// background workers use it to hand results back to the UI thread.
func (a *App) PostEvent(ev Event) {
	a.queueMu.Lock()
	a.queue = append(a.queue, ev)
	a.queueMu.Unlock()
	a.platform.Wake()
}

// ExecuteOnMainThread defers fn to the next pump iteration on the UI
// thread. Safe to call from any goroutine.
func (a *App) ExecuteOnMainThread(fn func()) {
	if fn == nil {
		return
	}
	a.trampolineMu.Lock()
	a.trampoline = append(a.trampoline, fn)
	a.trampolineMu.Unlock()
	a.platform.Wake()
}

// RequestExit asks the pump to stop. The flag is checked at the top
// of each iteration; in-flight dispatch completes first.
func (a *App) RequestExit() {
	a.exit.Store(true)
	a.platform.Wake()
}

// Running reports whether the pump is inside Run.
func (a *App) Running() bool { return a.running.Load() }

// Run executes the pump until RequestExit. It must be called from the
// goroutine that owns all UI state.
func (a *App) Run() {
	a.running.Store(true)
	defer a.running.Store(false)

	for !a.exit.Load() {
		a.RunOnce()
		if a.exit.Load() {
			break
		}
		if a.queueEmpty() {
			a.platform.WaitEvents(a.nextWakeTimeout())
		}
	}
	logger().Info("pump exited")
}

// RunOnce executes a single pump iteration: ingest, dispatch, paint,
// drain deferred work. Exposed so tests and embedders can step the
// pump without blocking.
func (a *App) RunOnce() {
	// 1. Drain native events into the FIFO queue.
	a.platform.PollEvents(func(ev Event) {
		a.queueMu.Lock()
		a.queue = append(a.queue, ev)
		a.queueMu.Unlock()
	})

	// 2. Dispatch queued events one at a time.
	for {
		ev, ok := a.popEvent()
		if !ok {
			break
		}
		a.processEvent(ev)
	}

	// 3. Run deferred main-thread closures.
	a.trampolineMu.Lock()
	fns := a.trampoline
	a.trampoline = nil
	a.trampolineMu.Unlock()
	for _, fn := range fns {
		a.safeCall(fn)
	}

	// 4. Tooltip timers advance during paint, so a window with a due
	// deadline must be dirtied or the timer never fires.
	now := time.Now()
	for _, w := range a.windows {
		if d, ok := w.Tooltips().NextDeadline(); ok && !now.Before(d) {
			w.MarkDirty()
		}
	}

	// 5. Repaint dirty windows (coalesced).
	for _, w := range a.windows {
		if w.Visible() && w.NeedsRedraw() && w.State() != WindowClosing {
			w.Paint()
		}
	}

	// 6. Destroy windows whose Close was requested.
	a.drainDestroyed()
}

func (a *App) queueEmpty() bool {
	a.queueMu.Lock()
	defer a.queueMu.Unlock()
	return len(a.queue) == 0
}

func (a *App) popEvent() (Event, bool) {
	a.queueMu.Lock()
	defer a.queueMu.Unlock()
	if len(a.queue) == 0 {
		return Event{}, false
	}
	ev := a.queue[0]
	a.queue = a.queue[1:]
	return ev, true
}

// nextWakeTimeout derives the blocking-wait bound from pending UI
// timers (tooltip show/hide deadlines).
func (a *App) nextWakeTimeout() time.Duration {
	timeout := defaultWaitTimeout
	now := time.Now()
	for _, w := range a.windows {
		if d, ok := w.Tooltips().NextDeadline(); ok {
			if until := d.Sub(now); until < timeout {
				timeout = until
			}
		}
	}
	if timeout < time.Millisecond {
		timeout = time.Millisecond
	}
	return timeout
}

// processEvent runs one event through filters, modal gating, click
// synthesis, and dispatch. Handler panics are contained here so the
// pump survives misbehaving widgets.
func (a *App) processEvent(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("event handler panic recovered", "kind", ev.Kind.String(), "panic", r)
		}
	}()

	// a. Global filters, registration order, first consumer wins.
	for _, h := range a.globalHandlers {
		if h(ev) {
			return
		}
	}

	// b. Modal gating.
	if drop, reroute := a.modal.HandleModalEvents(&ev, a.byHandle[ev.Handle]); drop {
		logger().Debug("event dropped by modal gate", "kind", ev.Kind.String())
		if reroute != nil {
			a.raiseWindow(reroute)
		}
		return
	}

	// An event addressed to an element that is no longer in any
	// window is silently dropped.
	if ev.Target != nil && ev.Target.Window() == nil {
		logger().Debug("event for destroyed element dropped", "kind", ev.Kind.String())
		return
	}

	// c. Route by native handle.
	win := a.byHandle[ev.Handle]
	if win == nil && ev.Target != nil {
		win = ev.Target.Window()
	}

	switch ev.Kind {
	case EventWindowClose:
		if win != nil {
			a.bubbleFrom(win, ev)
			win.Close()
		}
		return
	case EventWindowResize:
		if win != nil {
			win.Resize(ev.Width, ev.Height)
			a.bubbleFrom(win, ev)
		}
		return
	case EventWindowRepaint:
		if win != nil {
			win.MarkDirty()
		}
		return
	case EventWindowFocus, EventWindowBlur, EventWindowMove:
		if win != nil {
			a.bubbleFrom(win, ev)
		}
		return
	case EventFocusGained, EventFocusLost:
		if ev.Target != nil {
			a.deliver(ev.Target, ev)
		}
		return
	}

	if win == nil {
		logger().Debug("event without window dropped", "kind", ev.Kind.String(), "handle", ev.Handle)
		return
	}

	// d. Multi-click synthesis.
	if ev.Kind == EventMouseDown {
		ev = a.synthesizeClicks(ev)
	}

	// e/f. Dispatch with capture, focus, hit testing, and bubbling.
	a.dispatch(win, ev)
}

// synthesizeClicks escalates consecutive MouseDown events within the
// configured time window and pixel radius: click 2 becomes a
// MouseDoubleClick, click 3 stays MouseDown with ClickCount 3 and
// resets the counter, so a rapid fourth click starts over at 1.
func (a *App) synthesizeClicks(ev Event) Event {
	now := time.Now()
	near := abs(ev.X-a.lastClickX) <= a.clickRadius && abs(ev.Y-a.lastClickY) <= a.clickRadius
	within := now.Sub(a.lastClickAt) <= a.clickInterval
	if within && near && ev.Button == a.lastButton && a.clickCount < 3 {
		a.clickCount++
	} else {
		a.clickCount = 1
	}
	a.lastClickAt = now
	a.lastClickX, a.lastClickY = ev.X, ev.Y
	a.lastButton = ev.Button

	ev.ClickCount = a.clickCount
	if a.clickCount == 2 {
		ev.Kind = EventMouseDoubleClick
	}
	if a.clickCount == 3 {
		// Triple click is the cap; reset so the next click is single.
		a.clickCount = 0
	}
	return ev
}

// dispatch delivers one routed event to its element and bubbles it.
func (a *App) dispatch(win *Window, ev Event) {
	switch {
	case ev.Kind.IsMouse():
		a.dispatchMouse(win, ev)
	case ev.Kind == EventKeyDown || ev.Kind == EventKeyUp || ev.Kind == EventTextInput || ev.Kind == EventShortcut:
		a.dispatchKey(win, ev)
	default:
		a.bubbleFrom(win, ev)
	}
}

func (a *App) dispatchKey(win *Window, ev Event) {
	target := win.FocusedElement()
	handled := false
	if target != nil {
		handled = a.bubbleFrom(target, ev)
	}
	if handled {
		return
	}
	// Unconsumed Tab traverses focus.
	if ev.Kind == EventKeyDown && ev.Key == KeyTab {
		if ev.Mods.Has(ModShift) {
			a.FocusPrevious(win)
		} else {
			a.FocusNext(win)
		}
		return
	}
	if target != win.outer() {
		a.bubbleFrom(win, ev)
	}
}

func (a *App) dispatchMouse(win *Window, ev Event) {
	// While capture is held, every mouse event goes to the captured
	// element and enter/leave tracking is suppressed.
	if a.capture != nil {
		if a.capture.Window() == nil {
			// Captured element was destroyed; drop capture and event.
			a.capture = nil
			a.captureWindow = nil
			return
		}
		local := toLocal(a.capture, ev)
		a.deliver(a.capture, local)
		return
	}

	target := hitTest(win.outer(), ev.X, ev.Y)
	if ev.Kind == EventMouseMove {
		a.updateHover(target, ev)
	}
	a.bubbleFrom(target, ev)
}

// updateHover emits MouseLeave/MouseEnter pairs when the element
// under the pointer changes.
func (a *App) updateHover(target Element, ev Event) {
	if a.hovered == target {
		return
	}
	if a.hovered != nil && a.hovered.Window() != nil {
		a.hovered.SetHovered(false)
		leave := toLocal(a.hovered, ev)
		leave.Kind = EventMouseLeave
		leave.Target = a.hovered
		a.deliver(a.hovered, leave)
	}
	a.hovered = target
	if target != nil {
		target.SetHovered(true)
		enter := toLocal(target, ev)
		enter.Kind = EventMouseEnter
		enter.Target = target
		a.deliver(target, enter)
	}
}

// bubbleFrom delivers the event to an element and walks the parent
// chain until consumed or the window is reached. Returns whether any
// handler consumed the event.
func (a *App) bubbleFrom(start Element, ev Event) bool {
	for e := start; e != nil; e = e.Parent() {
		if !e.Enabled() {
			continue
		}
		local := toLocal(e, ev)
		local.Target = e
		if a.deliver(e, local) {
			return true
		}
	}
	return false
}

// deliver invokes one element's handler with panic containment.
func (a *App) deliver(e Element, ev Event) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("element handler panic recovered", "element", e.ID(), "panic", r)
			handled = false
		}
	}()
	return e.OnEvent(ev)
}

// toLocal rebases a mouse event's coordinates into the element's own
// space. Non-mouse events pass through unchanged.
func toLocal(e Element, ev Event) Event {
	if !ev.Kind.IsMouse() {
		return ev
	}
	x, y := GlobalOrigin(e)
	ev.X -= x
	ev.Y -= y
	return ev
}

// SetCapture routes all mouse events to e until ReleaseCapture. A
// single element per process may hold capture.
func (a *App) SetCapture(e Element) {
	a.capture = e
	if e != nil {
		a.captureWindow = e.Window()
	}
}

// ReleaseCapture restores normal hit testing on the next event.
func (a *App) ReleaseCapture() {
	a.capture = nil
	a.captureWindow = nil
}

// Captured returns the element holding mouse capture, or nil.
func (a *App) Captured() Element { return a.capture }

// SetFocus moves keyboard focus to e within its window, emitting
// FocusLost to the previous holder and FocusGained to the new one
// before the change is observable.
func (a *App) SetFocus(e Element) {
	if e == nil || !e.Focusable() || !e.Enabled() || !e.Visible() {
		return
	}
	win := e.Window()
	if win == nil {
		return
	}
	old := win.FocusedElement()
	if old == e {
		return
	}
	if old != nil {
		old.SetFocused(false)
		a.deliver(old, Event{Kind: EventFocusLost, Target: old, Handle: win.Handle()})
	}
	e.SetFocused(true)
	win.setFocused(e)
	a.deliver(e, Event{Kind: EventFocusGained, Target: e, Handle: win.Handle()})
	win.MarkDirty()
}

// ClearFocus drops focus within a window, emitting FocusLost.
func (a *App) ClearFocus(win *Window) {
	old := win.FocusedElement()
	if old == nil {
		return
	}
	old.SetFocused(false)
	a.deliver(old, Event{Kind: EventFocusLost, Target: old, Handle: win.Handle()})
	win.setFocused(nil)
}

// raiseWindow re-raises and refocuses a window (modal focus-steal).
func (a *App) raiseWindow(w *Window) {
	a.platform.ShowWindow(w.Handle(), true)
	w.MarkDirty()
}

// deferDestroy schedules native destruction for the next pump tick.
func (a *App) deferDestroy(w *Window) {
	a.deferredDestroy = append(a.deferredDestroy, w)
}

func (a *App) drainDestroyed() {
	if len(a.deferredDestroy) == 0 {
		return
	}
	for _, w := range a.deferredDestroy {
		a.modal.windowDestroyed(w)
		if a.capture != nil && a.captureWindow == w {
			a.ReleaseCapture()
		}
		if a.hovered != nil && a.hovered.Window() == w {
			a.hovered = nil
		}
		delete(a.byHandle, w.Handle())
		for i, existing := range a.windows {
			if existing == w {
				a.windows = append(a.windows[:i], a.windows[i+1:]...)
				break
			}
		}
		a.platform.DestroyWindow(w.Handle())
		logger().Info("window destroyed", "title", w.Title())
	}
	a.deferredDestroy = nil
}

// elementRemoved clears process-wide weak references into a detached
// subtree (capture, hover).
func (a *App) elementRemoved(e Element) {
	if a.capture != nil && containsElement(e, a.capture) {
		a.ReleaseCapture()
	}
	if a.hovered != nil && containsElement(e, a.hovered) {
		a.hovered = nil
	}
}

func (a *App) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("main-thread closure panic recovered", "panic", r)
		}
	}()
	fn()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

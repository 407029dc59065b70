package uc

// collectFocusable walks a window's tree depth-first, left-to-right,
// appending elements that can receive focus: focusable, enabled, and
// visible (including all ancestors).
func collectFocusable(e Element, out []Element) []Element {
	if !e.Visible() {
		return out
	}
	if e.Focusable() && e.Enabled() {
		out = append(out, e)
	}
	for _, child := range e.Children() {
		out = collectFocusable(child, out)
	}
	return out
}

// FocusNext moves focus to the next focusable element in a
// depth-first left-to-right walk of the window's tree, wrapping at
// the end. With no current focus, the first focusable element wins.
func (a *App) FocusNext(win *Window) {
	order := collectFocusable(win.outer(), nil)
	if len(order) == 0 {
		return
	}
	current := win.FocusedElement()
	next := order[0]
	for i, e := range order {
		if e == current {
			next = order[(i+1)%len(order)]
			break
		}
	}
	a.SetFocus(next)
}

// FocusPrevious is the Shift+Tab reverse walk.
func (a *App) FocusPrevious(win *Window) {
	order := collectFocusable(win.outer(), nil)
	if len(order) == 0 {
		return
	}
	current := win.FocusedElement()
	prev := order[len(order)-1]
	for i, e := range order {
		if e == current {
			prev = order[(i-1+len(order))%len(order)]
			break
		}
	}
	a.SetFocus(prev)
}

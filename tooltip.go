package uc

import "time"

// Tooltip timing defaults.
const (
	DefaultTooltipShowDelay = 600 * time.Millisecond
	DefaultTooltipHideAfter = 5 * time.Second
)

// TooltipManager owns the single tooltip of a window: which element
// requested it, where it anchors, and the show/hide deadlines the
// pump derives its wait timeout from. Tooltip output paints last in
// the window's frame, above popups.
type TooltipManager struct {
	win *Window

	owner Element // weak; cleared when the element is removed
	text  string
	x, y  int

	visible bool
	showAt  time.Time
	hideAt  time.Time

	ShowDelay time.Duration
	HideAfter time.Duration
}

// NewTooltipManager creates the manager for a window.
func NewTooltipManager(win *Window) *TooltipManager {
	return &TooltipManager{
		win:       win,
		ShowDelay: DefaultTooltipShowDelay,
		HideAfter: DefaultTooltipHideAfter,
	}
}

// Show schedules a tooltip anchored at window coordinates (x, y).
// The tooltip becomes visible after ShowDelay and expires after
// HideAfter.
func (t *TooltipManager) Show(owner Element, text string, x, y int) {
	if text == "" {
		t.Hide()
		return
	}
	t.owner = owner
	t.text = text
	t.x, t.y = x, y
	t.visible = false
	t.showAt = time.Now().Add(t.ShowDelay)
	t.hideAt = time.Time{}
	t.win.MarkDirty()
}

// Hide dismisses the tooltip immediately.
func (t *TooltipManager) Hide() {
	if t.owner == nil && !t.visible {
		return
	}
	t.owner = nil
	t.text = ""
	t.visible = false
	t.showAt = time.Time{}
	t.hideAt = time.Time{}
	t.win.MarkDirty()
}

// Visible reports whether the tooltip is currently painted.
func (t *TooltipManager) Visible() bool { return t.visible }

// Text returns the pending or visible tooltip text.
func (t *TooltipManager) Text() string { return t.text }

// NextDeadline returns the earliest pending timer, used by the pump
// to bound its blocking wait.
func (t *TooltipManager) NextDeadline() (time.Time, bool) {
	switch {
	case !t.showAt.IsZero() && !t.visible:
		return t.showAt, true
	case t.visible && !t.hideAt.IsZero():
		return t.hideAt, true
	}
	return time.Time{}, false
}

// tick advances the show/hide state machine.
func (t *TooltipManager) tick(now time.Time) {
	if !t.visible && !t.showAt.IsZero() && now.After(t.showAt) {
		t.visible = true
		t.showAt = time.Time{}
		t.hideAt = now.Add(t.HideAfter)
	}
	if t.visible && !t.hideAt.IsZero() && now.After(t.hideAt) {
		t.Hide()
	}
}

// Render paints the tooltip if due. Called by the window as the last
// step of its paint traversal.
func (t *TooltipManager) Render(dc DrawContext) {
	t.tick(time.Now())
	if !t.visible || t.text == "" {
		return
	}

	dc.PushState()
	defer dc.PopState()

	font := DefaultFont()
	font.Size = 12
	dc.SetFont(font)

	const pad = 6
	tw := dc.GetTextLineWidth(t.text)
	th := dc.GetTextHeight(t.text)
	w, h := tw+2*pad, th+2*pad

	// Anchor below-right of the hotspot; flip back inside the window
	// when it would overflow.
	x := float64(t.x) + 12
	y := float64(t.y) + 18
	ww, wh := dc.Size()
	if x+w > float64(ww) {
		x = float64(ww) - w
	}
	if y+h > float64(wh) {
		y = float64(t.y) - h - 4
	}

	box := RectF{X: x, Y: y, W: w, H: h}
	dc.FillRect(box, RGBA{1, 1, 0.88, 1})
	dc.StrokeRect(box, DarkGray, 1)
	dc.SetFillColor(Black)
	dc.DrawText(t.text, x+pad, y+pad)
}

// elementRemoved drops the tooltip when its owner leaves the tree.
func (t *TooltipManager) elementRemoved(e Element) {
	if t.owner != nil && containsElement(e, t.owner) {
		t.Hide()
	}
}

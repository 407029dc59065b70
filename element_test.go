package uc

import "testing"

// probe is a leaf element that records the events it receives and
// optionally consumes them.
type probe struct {
	BaseElement
	events  []Event
	consume bool
}

func newProbe(id string, bounds Rect) *probe {
	return &probe{BaseElement: *NewBaseElement(id, bounds)}
}

func (p *probe) OnEvent(ev Event) bool {
	p.events = append(p.events, ev)
	return p.consume
}

func (p *probe) kinds() []EventKind {
	out := make([]EventKind, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Kind
	}
	return out
}

func TestBaseElementDefaults(t *testing.T) {
	e := NewBaseElement("x", NewRect(1, 2, 3, 4))
	if !e.Visible() || !e.Enabled() {
		t.Error("new elements must be visible and enabled")
	}
	if e.Focusable() || e.Focused() {
		t.Error("new elements must not be focusable or focused")
	}
	if e.NumericID() == 0 {
		t.Error("numeric id must be allocated")
	}

	other := NewBaseElement("y", Rect{})
	if other.NumericID() == e.NumericID() {
		t.Error("numeric ids must be unique")
	}
}

func TestGlobalOrigin(t *testing.T) {
	outer := NewContainer("outer", NewRect(10, 10, 200, 200))
	inner := NewContainer("inner", NewRect(20, 30, 100, 100))
	leaf := newProbe("leaf", NewRect(5, 5, 10, 10))
	outer.AddChild(inner)
	inner.AddChild(leaf)

	x, y := GlobalOrigin(leaf)
	if x != 35 || y != 45 {
		t.Errorf("GlobalOrigin = (%d, %d), want (35, 45)", x, y)
	}
}

func TestGlobalOriginHonorsScroll(t *testing.T) {
	outer := NewContainer("outer", NewRect(0, 0, 200, 200))
	leaf := newProbe("leaf", NewRect(50, 80, 10, 10))
	outer.AddChild(leaf)
	outer.SetScrollOffset(0, 30)

	_, y := GlobalOrigin(leaf)
	if y != 50 {
		t.Errorf("scrolled origin y = %d, want 50", y)
	}
}

func TestContainerAddRemoveChild(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	child := newProbe("child", NewRect(0, 0, 10, 10))

	c.AddChild(child)
	c.AddChild(child) // idempotent
	if len(c.Children()) != 1 {
		t.Fatalf("children = %d, want 1", len(c.Children()))
	}
	if child.Parent() != Element(c) {
		t.Error("child parent not set")
	}

	c.RemoveChild(child)
	if len(c.Children()) != 0 {
		t.Error("child not removed")
	}
	if child.Parent() != nil {
		t.Error("parent reference not cleared")
	}
}

func TestChildrenInZOrder(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	a := newProbe("a", Rect{})
	b := newProbe("b", Rect{})
	d := newProbe("d", Rect{})
	a.SetZIndex(1)
	c.AddChild(a)
	c.AddChild(b) // z 0, added after a
	c.AddChild(d) // z 0, added after b

	order := c.ChildrenInZOrder()
	if order[0] != Element(b) || order[1] != Element(d) || order[2] != Element(a) {
		t.Errorf("z order wrong: %s %s %s", order[0].ID(), order[1].ID(), order[2].ID())
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	under := newProbe("under", NewRect(10, 10, 50, 50))
	over := newProbe("over", NewRect(10, 10, 50, 50))
	over.SetZIndex(1)
	c.AddChild(under)
	c.AddChild(over)

	hit := hitTest(c, 20, 20)
	if hit.ID() != "over" {
		t.Errorf("hit = %s, want over", hit.ID())
	}

	over.SetVisible(false)
	if hit := hitTest(c, 20, 20); hit.ID() != "under" {
		t.Errorf("hit with over hidden = %s, want under", hit.ID())
	}

	if hit := hitTest(c, 90, 90); hit.ID() != "c" {
		t.Errorf("miss must fall back to the container, got %s", hit.ID())
	}
}

func TestHitTestScrolledContainer(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	leaf := newProbe("leaf", NewRect(0, 120, 100, 20))
	c.AddChild(leaf)
	c.SetScrollOffset(0, 110)

	if hit := hitTest(c, 50, 15); hit.ID() != "leaf" {
		t.Errorf("scrolled hit = %s, want leaf", hit.ID())
	}
}

func TestChildByID(t *testing.T) {
	c := NewContainer("root", NewRect(0, 0, 100, 100))
	mid := NewContainer("mid", NewRect(0, 0, 50, 50))
	leaf := newProbe("leaf", Rect{})
	c.AddChild(mid)
	mid.AddChild(leaf)

	if got := c.ChildByID("leaf"); got != Element(leaf) {
		t.Error("nested lookup failed")
	}
	if got := c.ChildByID("ghost"); got != nil {
		t.Error("missing id must return nil")
	}
}

func TestContainerRenderClipsAndScrolls(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	c.SetBackground(White)
	c.SetScrollOffset(0, 25)
	c.AddChild(newProbe("leaf", NewRect(0, 0, 10, 10)))

	rc := NewRecordingContext(100, 100)
	c.Render(rc)

	if !rc.Balanced() {
		t.Error("render must balance push/pop")
	}
	if rc.CountOps("clip") == 0 {
		t.Error("content clip missing")
	}
	if rc.CountOps("translate") == 0 {
		t.Error("scroll translate missing")
	}
}

func TestRenderChildRecoversPanic(t *testing.T) {
	c := NewContainer("c", NewRect(0, 0, 100, 100))
	c.AddChild(&panicky{BaseElement: *NewBaseElement("boom", NewRect(0, 0, 10, 10))})
	c.AddChild(newProbe("ok", NewRect(20, 0, 10, 10)))

	rc := NewRecordingContext(100, 100)
	c.Render(rc) // must not panic
	if !rc.Balanced() {
		t.Error("panicking child must not unbalance the context")
	}
}

type panicky struct {
	BaseElement
}

func (p *panicky) Render(DrawContext) { panic("render boom") }

package uc

import "sort"

// LayoutFunc arranges a container's children inside its content rect.
// Containers with no layout leave child bounds alone.
type LayoutFunc func(c *Container)

// Container is an element that owns an ordered list of children and
// renders them in z-order, clipped to its content rect and shifted by
// its scroll offsets.
type Container struct {
	BaseElement

	children []Element

	background  RGBA
	borderColor RGBA
	borderWidth int
	padding     int

	scrollX, scrollY int

	layout LayoutFunc

	// self, when set, is the outer element embedding this container
	// (the Window). Children link their parent reference to it.
	self Element
}

// NewContainer creates an empty container with a transparent
// background.
func NewContainer(id string, bounds Rect) *Container {
	c := &Container{BaseElement: *NewBaseElement(id, bounds)}
	c.background = Transparent
	return c
}

// SetBackground sets the fill painted behind the children.
func (c *Container) SetBackground(col RGBA) {
	c.background = col
	c.RequestRedraw()
}

// Background returns the container background color.
func (c *Container) Background() RGBA { return c.background }

// SetBorder sets the border stroke drawn inside the bounds.
func (c *Container) SetBorder(col RGBA, width int) {
	c.borderColor = col
	c.borderWidth = width
	c.RequestRedraw()
}

// SetPadding sets the inner padding between border and content.
func (c *Container) SetPadding(p int) {
	c.padding = p
	c.RequestRedraw()
}

// SetLayout installs a layout strategy, applied on the next paint.
func (c *Container) SetLayout(l LayoutFunc) {
	c.layout = l
	c.RequestRedraw()
}

// ContentRect returns the child area in the container's own
// coordinate space: bounds minus border and padding.
func (c *Container) ContentRect() Rect {
	inset := c.borderWidth + c.padding
	b := c.Bounds()
	return NewRect(inset, inset, b.W-2*inset, b.H-2*inset)
}

// ScrollOffset returns the current scroll translation.
func (c *Container) ScrollOffset() (int, int) { return c.scrollX, c.scrollY }

// SetScrollOffset scrolls the content. Negative offsets clamp to zero.
func (c *Container) SetScrollOffset(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if c.scrollX == x && c.scrollY == y {
		return
	}
	c.scrollX = x
	c.scrollY = y
	c.RequestRedraw()
}

// AddChild appends a child, taking ownership. Adding an element that
// is already a child is a no-op.
func (c *Container) AddChild(child Element) {
	if child == nil || child == c.outer() {
		return
	}
	for _, existing := range c.children {
		if existing == child {
			return
		}
	}
	child.SetParent(c.outer())
	child.SetWindow(c.Window())
	c.children = append(c.children, child)
	propagateWindow(child, c.Window())
	c.RequestRedraw()
}

// RemoveChild detaches a child. The element is destroyed when no
// other holder retains it. Focus and hover references held by the
// window are cleared so no dangling lookups survive.
func (c *Container) RemoveChild(child Element) {
	for i, existing := range c.children {
		if existing == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			if w := c.Window(); w != nil {
				w.elementRemoved(child)
			}
			child.SetParent(nil)
			propagateWindow(child, nil)
			child.SetWindow(nil)
			c.RequestRedraw()
			return
		}
	}
}

// RemoveAllChildren detaches every child.
func (c *Container) RemoveAllChildren() {
	for len(c.children) > 0 {
		c.RemoveChild(c.children[len(c.children)-1])
	}
}

// Children returns the child list in insertion order.
func (c *Container) Children() []Element { return c.children }

// ChildrenInZOrder returns the children sorted by z-index, lower
// first, with insertion order as the tie-break (stable sort). A
// child's z-index orders it among siblings only; the walk order
// between subtrees is decided by the parents' z-indices.
func (c *Container) ChildrenInZOrder() []Element {
	sorted := make([]Element, len(c.children))
	copy(sorted, c.children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex() < sorted[j].ZIndex()
	})
	return sorted
}

// ChildByID finds a child (depth-first) by string identifier.
func (c *Container) ChildByID(id string) Element {
	for _, child := range c.children {
		if child.ID() == id {
			return child
		}
		if sub, ok := child.(interface{ ChildByID(string) Element }); ok {
			if found := sub.ChildByID(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Render paints the background, border, and children.
func (c *Container) Render(dc DrawContext) {
	if c.layout != nil {
		c.layout(c)
	}

	b := c.Bounds()
	local := RectF{W: float64(b.W), H: float64(b.H)}
	if c.background.A > 0 {
		dc.FillRect(local, c.background)
	}
	if c.borderWidth > 0 && c.borderColor.A > 0 {
		dc.StrokeRect(local, c.borderColor, float64(c.borderWidth))
	}

	content := c.ContentRect()
	dc.PushState()
	dc.ClipRect(content.RectF())
	if c.scrollX != 0 || c.scrollY != 0 {
		dc.Translate(float64(-c.scrollX), float64(-c.scrollY))
	}
	for _, child := range c.ChildrenInZOrder() {
		renderChild(dc, child)
	}
	dc.PopState()
}

// Contains hit-tests against the container's bounds.
func (c *Container) Contains(x, y int) bool {
	return c.Bounds().Contains(x, y)
}

// outer returns the element identity for parent links. Containers are
// embedded by value in Window; the window overrides this so children
// link back to the window, not the inner container.
func (c *Container) outer() Element {
	if c.self != nil {
		return c.self
	}
	return c
}

// renderChild paints one element with scoped state: translate to its
// origin, clip to its bounds, recurse. A panic inside Render is
// contained so one misbehaving element cannot abandon the frame.
func renderChild(dc DrawContext, child Element) {
	if !child.Visible() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("render panic recovered", "element", child.ID(), "panic", r)
		}
	}()
	b := child.Bounds()
	dc.PushState()
	defer dc.PopState()
	dc.Translate(float64(b.X), float64(b.Y))
	dc.ClipRect(RectF{W: float64(b.W), H: float64(b.H)})
	child.Render(dc)
}

// propagateWindow updates the window back-reference through a subtree.
func propagateWindow(e Element, w *Window) {
	e.SetWindow(w)
	for _, child := range e.Children() {
		propagateWindow(child, w)
	}
}

// hitTest finds the topmost visible element containing (x, y), given
// in e's own coordinate space. Children are consulted in reverse
// z-order so elements painted last win.
func hitTest(e Element, x, y int) Element {
	var children []Element
	var sx, sy int
	if c, ok := e.(interface{ ChildrenInZOrder() []Element }); ok {
		children = c.ChildrenInZOrder()
	} else {
		children = e.Children()
	}
	if sc, ok := e.(interface{ ScrollOffset() (int, int) }); ok {
		sx, sy = sc.ScrollOffset()
	}
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		if !child.Visible() {
			continue
		}
		cx, cy := x+sx, y+sy
		if child.Contains(cx, cy) {
			b := child.Bounds()
			return hitTest(child, cx-b.X, cy-b.Y)
		}
	}
	return e
}

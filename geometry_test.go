package uc

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	if !r.Contains(10, 10) {
		t.Error("top-left corner must be inside")
	}
	if r.Contains(30, 30) {
		t.Error("bottom-right edge is exclusive")
	}
	if r.Contains(9, 15) {
		t.Error("left of rect must be outside")
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := NewRect(20, 20, 5, 5)
	if !a.Intersect(c).Empty() {
		t.Error("disjoint rects must intersect to empty")
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, W: 15, H: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union identity failed: %+v", got)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 10).Inset(3)
	if r != (Rect{X: 3, Y: 3, W: 4, H: 4}) {
		t.Errorf("Inset = %+v", r)
	}
	if !NewRect(0, 0, 4, 4).Inset(3).Empty() {
		t.Error("over-inset must collapse to empty")
	}
}

func TestNewRectNormalizesNegative(t *testing.T) {
	r := NewRect(0, 0, -5, 7)
	if r.W != 0 || r.H != 7 {
		t.Errorf("negative width must clamp to zero, got %+v", r)
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if p.Length() != 5 {
		t.Errorf("Length = %v, want 5", p.Length())
	}
	if d := p.Distance(Pt(3, 0)); d != 4 {
		t.Errorf("Distance = %v, want 4", d)
	}
	if m := p.Lerp(Pt(5, 8), 0.5); m != Pt(4, 6) {
		t.Errorf("Lerp = %v", m)
	}
}

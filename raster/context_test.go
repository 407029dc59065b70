package raster

import (
	"testing"

	"github.com/ultracanvas/uc"
	"github.com/ultracanvas/uc/imaging"
)

func alphaAt(c *Context, x, y int) uint8 {
	return c.Image().RGBAAt(x, y).A
}

func redAt(c *Context, x, y int) uint8 {
	return c.Image().RGBAAt(x, y).R
}

func TestFillRectWritesPixels(t *testing.T) {
	c := New(40, 40)
	c.FillRect(uc.NewRectF(10, 10, 20, 20), uc.RGB(1, 0, 0))

	if a := alphaAt(c, 20, 20); a != 255 {
		t.Fatalf("center alpha = %d, want 255", a)
	}
	if r := redAt(c, 20, 20); r != 255 {
		t.Fatalf("center red = %d, want 255", r)
	}
	if a := alphaAt(c, 5, 5); a != 0 {
		t.Fatalf("outside alpha = %d, want 0", a)
	}
}

func TestFillRespectsClipRect(t *testing.T) {
	c := New(40, 40)
	c.ClipRect(uc.NewRectF(0, 0, 20, 40))
	c.FillRect(uc.NewRectF(0, 0, 40, 40), uc.RGB(0, 0, 1))

	if a := alphaAt(c, 10, 20); a != 255 {
		t.Fatalf("inside clip alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 30, 20); a != 0 {
		t.Fatalf("outside clip alpha = %d, want 0", a)
	}
}

func TestPushPopRestoresTransformAndClip(t *testing.T) {
	c := New(40, 40)
	c.PushState()
	c.Translate(20, 20)
	c.ClipRect(uc.NewRectF(0, 0, 5, 5))
	c.PopState()

	c.FillRect(uc.NewRectF(0, 0, 4, 4), uc.RGB(0, 1, 0))
	if a := alphaAt(c, 2, 2); a != 255 {
		t.Fatalf("origin fill alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 22, 22); a != 0 {
		t.Fatalf("translated position alpha = %d, want 0", a)
	}

	c.FillRect(uc.NewRectF(30, 30, 4, 4), uc.RGB(0, 1, 0))
	if a := alphaAt(c, 32, 32); a != 255 {
		t.Fatalf("clip leaked through PopState")
	}
}

func TestScaleTransformsFill(t *testing.T) {
	c := New(40, 40)
	c.Scale(2, 2)
	c.FillRect(uc.NewRectF(0, 0, 5, 5), uc.RGB(1, 0, 0))

	if a := alphaAt(c, 8, 8); a != 255 {
		t.Fatalf("scaled fill alpha at (8,8) = %d, want 255", a)
	}
	if a := alphaAt(c, 12, 12); a != 0 {
		t.Fatalf("alpha beyond scaled extent = %d, want 0", a)
	}
}

func TestFillPath(t *testing.T) {
	c := New(40, 40)
	c.SetFillColor(uc.RGB(1, 1, 1))
	c.BeginPath()
	c.MoveTo(20, 2)
	c.LineTo(38, 38)
	c.LineTo(2, 38)
	c.ClosePath()
	c.Fill()

	if a := alphaAt(c, 20, 30); a != 255 {
		t.Fatalf("inside triangle alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 2, 2); a != 0 {
		t.Fatalf("outside triangle alpha = %d, want 0", a)
	}
}

func TestFillConsumesPath(t *testing.T) {
	c := New(20, 20)
	c.SetFillColor(uc.RGB(1, 1, 1))
	c.BeginPath()
	c.AddRect(uc.NewRectF(0, 0, 10, 10))
	c.Fill()
	c.Fill()
	if len(c.pth.contours) != 0 {
		t.Fatalf("path survived Fill: %d contours", len(c.pth.contours))
	}
}

func TestLinearGradientFill(t *testing.T) {
	c := New(40, 10)
	g := uc.NewLinearGradient(uc.Pt(0, 0), uc.Pt(40, 0),
		uc.ColorStop{Offset: 0, Color: uc.RGB(0, 0, 0)},
		uc.ColorStop{Offset: 1, Color: uc.RGB(1, 1, 1)},
	)
	c.SetFillGradient(g)
	c.BeginPath()
	c.AddRect(uc.NewRectF(0, 0, 40, 10))
	c.Fill()

	left := redAt(c, 2, 5)
	right := redAt(c, 37, 5)
	if left >= right {
		t.Fatalf("gradient not increasing: left %d right %d", left, right)
	}
	if right < 200 {
		t.Fatalf("right edge too dark: %d", right)
	}
}

func TestRadialGradientCenterColor(t *testing.T) {
	c := New(40, 40)
	g := uc.NewRadialGradient(uc.Pt(20, 20), 20,
		uc.ColorStop{Offset: 0, Color: uc.RGB(1, 0, 0)},
		uc.ColorStop{Offset: 1, Color: uc.RGB(0, 0, 1)},
	)
	c.SetFillGradient(g)
	c.BeginPath()
	c.AddRect(uc.NewRectF(0, 0, 40, 40))
	c.Fill()

	center := c.Image().RGBAAt(20, 20)
	corner := c.Image().RGBAAt(1, 1)
	if center.R < 200 || center.B > 60 {
		t.Fatalf("center not red: %v", center)
	}
	if corner.B < 200 || corner.R > 60 {
		t.Fatalf("corner not blue: %v", corner)
	}
}

func TestClipPathMasksFill(t *testing.T) {
	c := New(40, 40)
	c.BeginPath()
	c.AddEllipse(uc.NewRectF(10, 10, 20, 20))
	c.ClipPath()
	c.FillRect(uc.NewRectF(0, 0, 40, 40), uc.RGB(1, 0, 0))

	if a := alphaAt(c, 20, 20); a != 255 {
		t.Fatalf("circle center alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 11, 11); a != 0 {
		t.Fatalf("corner of circle box alpha = %d, want 0", a)
	}
	if a := alphaAt(c, 2, 2); a != 0 {
		t.Fatalf("far corner alpha = %d, want 0", a)
	}
}

func TestStrokeLine(t *testing.T) {
	c := New(40, 20)
	c.SetStrokeColor(uc.RGB(1, 1, 1))
	style := uc.DefaultStroke()
	style.Width = 4
	c.SetStrokeStyle(style)
	c.BeginPath()
	c.MoveTo(5, 10)
	c.LineTo(35, 10)
	c.Stroke()

	if a := alphaAt(c, 20, 10); a != 255 {
		t.Fatalf("on-line alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 20, 16); a != 0 {
		t.Fatalf("off-line alpha = %d, want 0", a)
	}
	if a := alphaAt(c, 2, 10); a != 0 {
		t.Fatalf("butt cap extends past endpoint: alpha %d", a)
	}
}

func TestStrokeDashSkipsGaps(t *testing.T) {
	c := New(60, 20)
	c.SetStrokeColor(uc.RGB(1, 1, 1))
	style := uc.DefaultStroke()
	style.Width = 2
	style.Dash = uc.NewDash(10, 10)
	c.SetStrokeStyle(style)
	c.BeginPath()
	c.MoveTo(0, 10)
	c.LineTo(60, 10)
	c.Stroke()

	if a := alphaAt(c, 5, 10); a == 0 {
		t.Fatalf("dash segment not drawn at x=5")
	}
	if a := alphaAt(c, 15, 10); a != 0 {
		t.Fatalf("gap drawn at x=15: alpha %d", a)
	}
	if a := alphaAt(c, 25, 10); a == 0 {
		t.Fatalf("second dash segment not drawn at x=25")
	}
}

func TestStrokeRoundCapCoversEndpoint(t *testing.T) {
	c := New(40, 20)
	c.SetStrokeColor(uc.RGB(1, 1, 1))
	style := uc.DefaultStroke()
	style.Width = 8
	style.Cap = uc.LineCapRound
	c.SetStrokeStyle(style)
	c.BeginPath()
	c.MoveTo(10, 10)
	c.LineTo(30, 10)
	c.Stroke()

	if a := alphaAt(c, 7, 10); a == 0 {
		t.Fatalf("round cap missing before start point")
	}
}

func TestStrokeRectOutlineOnly(t *testing.T) {
	c := New(40, 40)
	c.StrokeRect(uc.NewRectF(10, 10, 20, 20), uc.RGB(1, 1, 1), 2)

	if a := alphaAt(c, 20, 10); a == 0 {
		t.Fatalf("top edge not stroked")
	}
	if a := alphaAt(c, 20, 20); a != 0 {
		t.Fatalf("interior filled: alpha %d", a)
	}
}

func TestDrawPixmapContainCenters(t *testing.T) {
	p := imaging.NewPixmap(2, 2)
	pix := p.Pix()
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 255
		pix[i+3] = 255
	}

	c := New(40, 20)
	c.DrawPixmap(p, uc.NewRectF(0, 0, 40, 20), imaging.FitContain)

	// Square source in a 2:1 box lands centered with 10px bars.
	if a := alphaAt(c, 20, 10); a != 255 {
		t.Fatalf("center alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 4, 10); a != 0 {
		t.Fatalf("left bar alpha = %d, want 0", a)
	}
	if a := alphaAt(c, 36, 10); a != 0 {
		t.Fatalf("right bar alpha = %d, want 0", a)
	}
}

func TestDrawPixmapCoverCrops(t *testing.T) {
	p := imaging.NewPixmap(2, 2)
	pix := p.Pix()
	for i := 0; i < len(pix); i += 4 {
		pix[i+2] = 255
		pix[i+3] = 255
	}

	c := New(40, 40)
	c.DrawPixmap(p, uc.NewRectF(10, 10, 20, 10), imaging.FitCover)

	if a := alphaAt(c, 20, 15); a != 255 {
		t.Fatalf("inside dst alpha = %d, want 255", a)
	}
	if a := alphaAt(c, 20, 25); a != 0 {
		t.Fatalf("cover overflow escaped dst rect: alpha %d", a)
	}
}

func TestSizeReportsSurface(t *testing.T) {
	c := New(123, 45)
	w, h := c.Size()
	if w != 123 || h != 45 {
		t.Fatalf("Size() = %dx%d, want 123x45", w, h)
	}
}

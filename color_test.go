package uc

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#FF0000", Red},
		{"00FF00", Green},
		{"#FFF", White},
		{"#0000", Transparent},
		{"#00000080", RGBA{0, 0, 0, float64(0x80) / 255}},
		{"nonsense", Black},
		{"", Black},
	}
	for _, tt := range tests {
		got := Hex(tt.in)
		if !colorNear(got, tt.want) {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	c := RGBA{R: 0.5, G: 0.25, B: 1, A: 0.5}
	got := FromColor(c.Color())
	if !colorNear(got, c) {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}

	if got := FromColor(color.NRGBA{}); got != (RGBA{}) {
		t.Errorf("zero alpha must map to zero color, got %+v", got)
	}
}

func TestLerp(t *testing.T) {
	mid := Black.Lerp(White, 0.5)
	if !colorNear(mid, Gray(0.5)) {
		t.Errorf("Lerp midpoint = %+v", mid)
	}
	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp t=0 = %+v", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.5)
	if c.R != 1 || c.A != 0.5 {
		t.Errorf("WithAlpha = %+v", c)
	}
}

func colorNear(a, b RGBA) bool {
	const eps = 0.01
	near := func(x, y float64) bool {
		d := x - y
		return d > -eps && d < eps
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

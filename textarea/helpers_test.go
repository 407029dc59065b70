package textarea

import "github.com/ultracanvas/uc"

// boundsFor builds element bounds from a size.
func boundsFor(w, h int) uc.Rect {
	return uc.NewRect(0, 0, w, h)
}

// testContext returns a recording context with a 10px fixed-pitch
// metrics model, so measured widths are rune count times ten.
func testContext(w, h int) *uc.RecordingContext {
	rc := uc.NewRecordingContext(w, h)
	rc.CharWidth = 10
	rc.LineHeight = 16
	return rc
}

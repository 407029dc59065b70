package imaging

import "fmt"

// FitMode is the rule that maps a source image's dimensions to a
// requested rectangle.
type FitMode int

const (
	// FitFill stretches non-uniformly to exactly the requested size.
	FitFill FitMode = iota
	// FitContain scales uniformly, preserving aspect ratio, so the
	// whole image fits inside the requested size.
	FitContain
	// FitCover scales uniformly so the image covers the requested
	// size, center-cropping the overflow.
	FitCover
	// FitScaleDown behaves like FitContain but never upscales.
	FitScaleDown
	// FitNoScale ignores the requested size and uses the source
	// dimensions.
	FitNoScale
)

// String returns the string representation of the fit mode.
func (f FitMode) String() string {
	switch f {
	case FitFill:
		return "Fill"
	case FitContain:
		return "Contain"
	case FitCover:
		return "Cover"
	case FitScaleDown:
		return "ScaleDown"
	case FitNoScale:
		return "NoScale"
	default:
		return "Unknown"
	}
}

// fitSize returns the pixmap dimensions produced for a source of
// (sw, sh) fitted into a request of (w, h).
//
// Fill and Cover produce exactly the requested size. Contain and
// ScaleDown produce the uniformly scaled size, which may be smaller
// than requested in one axis. NoScale produces the source size.
func fitSize(sw, sh, w, h int, fit FitMode) (int, int) {
	if sw <= 0 || sh <= 0 {
		return 0, 0
	}
	if w <= 0 || h <= 0 {
		if fit == FitNoScale {
			return sw, sh
		}
		return 0, 0
	}
	switch fit {
	case FitFill, FitCover:
		return w, h
	case FitNoScale:
		return sw, sh
	case FitContain, FitScaleDown:
		scale := minf(float64(w)/float64(sw), float64(h)/float64(sh))
		if fit == FitScaleDown && scale > 1 {
			return sw, sh
		}
		dw := int(float64(sw)*scale + 0.5)
		dh := int(float64(sh)*scale + 0.5)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		return dw, dh
	default:
		return w, h
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// pixmapKey builds the pixmap-cache key for a source at a specific
// request. Distinct requests produce distinct pixmaps.
func pixmapKey(source string, w, h int, fit FitMode) string {
	return fmt.Sprintf("%s?w:%dh:%dc:%d", source, w, h, int(fit))
}

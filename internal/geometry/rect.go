// Package geometry provides the rectangle and gap arithmetic shared by the
// layout engine, the state model, and the effect applier. Coordinates are
// pixels in top-left-origin screen space; the platform adapter is
// responsible for converting from whatever convention the OS reports
// (macOS reports bottom-left-origin frames for displays).
package geometry

import "math"

// tolerancePx is the slack used when comparing rectangles for equality,
// matching the 1px tolerance spec.md's testable properties require of
// layout tiling and idempotence checks.
const tolerancePx = 1.0

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
}

// NewRect builds a Rect from its four components.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the X coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsEmpty reports whether the rectangle has non-positive area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point (x, y) falls within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ApproxEqual reports whether two rectangles are equal within tolerancePx
// on every component, the comparison the effect applier uses to decide
// whether a window already sits at its target frame.
func (r Rect) ApproxEqual(o Rect) bool {
	return approxEqual(r.X, o.X) && approxEqual(r.Y, o.Y) &&
		approxEqual(r.W, o.W) && approxEqual(r.H, o.H)
}

// SamePosition reports whether two rectangles share the same origin.
func (r Rect) SamePosition(o Rect) bool {
	return approxEqual(r.X, o.X) && approxEqual(r.Y, o.Y)
}

// SameSize reports whether two rectangles share the same width and height.
func (r Rect) SameSize(o Rect) bool {
	return approxEqual(r.W, o.W) && approxEqual(r.H, o.H)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerancePx
}

// Inset shrinks the rectangle by the given amount on every side. Negative
// amounts grow it. Used to apply outer gaps to a screen's visible frame.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	return Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: math.Max(0, r.W-left-right),
		H: math.Max(0, r.H-top-bottom),
	}
}

// IsLandscape reports whether the rectangle is wider than it is tall.
func (r Rect) IsLandscape() bool { return r.W >= r.H }

// Gaps holds the four outer margins and two inner spacings used by every
// layout algorithm. Outer gaps are applied once to the screen's usable
// frame before tiling; inner gaps separate adjacent window cells.
type Gaps struct {
	OuterTop, OuterRight, OuterBottom, OuterLeft float64
	InnerH, InnerV                               float64
}

// Apply insets a screen frame by the outer gaps, yielding the rectangle
// that layouts actually tile. The outer top gap is where a host UI's
// status bar offset (bar.height + bar.padding, spec.md §6) is folded in
// for the main screen.
func (g Gaps) Apply(frame Rect) Rect {
	return frame.Inset(g.OuterTop, g.OuterRight, g.OuterBottom, g.OuterLeft)
}

// ConvertOrigin converts a rectangle from bottom-left-origin space (macOS's
// native screen coordinate convention, where Y grows upward from the
// bottom of the primary display) to top-left-origin space used throughout
// this module. screenHeight is the height of the coordinate space the
// source rectangle is expressed in (typically the primary display's
// frame height).
func ConvertOrigin(r Rect, screenHeight float64) Rect {
	return Rect{
		X: r.X,
		Y: screenHeight - r.Y - r.H,
		W: r.W,
		H: r.H,
	}
}

// ClampRatio clamps a split ratio to the [0.05, 0.95] range every layout
// and the minimum-size solver must respect (spec.md §8 boundary
// behaviors).
func ClampRatio(ratio float64) float64 {
	const min, max = 0.05, 0.95
	if ratio < min {
		return min
	}
	if ratio > max {
		return max
	}
	return ratio
}

// EqualSplit returns n ratios that sum to 1 and are pairwise equal,
// the default used whenever split_ratios is shorter than a layout's
// degrees of freedom (spec.md §3 invariants).
func EqualSplit(n int) []float64 {
	if n <= 0 {
		return nil
	}
	ratios := make([]float64, n)
	equal := 1.0 / float64(n)
	for i := range ratios {
		ratios[i] = equal
	}
	return ratios
}

// RatioOrDefault returns ratios[i] if present and within bounds, otherwise
// the supplied default. Missing split_ratios entries default to equal
// split per spec.md §3.
func RatioOrDefault(ratios []float64, i int, def float64) float64 {
	if i < 0 || i >= len(ratios) {
		return def
	}
	return ClampRatio(ratios[i])
}

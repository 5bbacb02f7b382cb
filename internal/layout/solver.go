package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// maxSolveIterations bounds the back-propagation loop; each iteration
// fixes one violation exactly, so convergence only takes more than a
// handful of passes when several windows are under their minimum at
// once.
const maxSolveIterations = 32

// MinimumLookup looks up a window's effective minimum size, or reports
// ok == false if the caller has none recorded for it (unconstrained).
type MinimumLookup func(model.WindowID) (model.Size, bool)

// Solve computes placements for tag and, if the algorithm has a ratio
// tree to walk (SupportsSolver), back-propagates any minimum-size
// violation into the governing ratio and reproposes, bounded to
// [0.05, 0.95], until every window's frame satisfies its minimum or no
// further adjustment is possible (spec.md §4.3). Master, Monocle, and
// Floating pass through unchanged since they expose no split ratios.
//
// The ratio-to-window correspondence used here is index-aligned: ratio
// i governs window i's share of its split. This is exact for Split and
// Dwindle, whose ratios are defined that way, and an approximation for
// Grid's larger shapes, whose ratios are column/row cumulative
// fractions rather than per-window; Grid counts of 2 and the
// master-stack shapes (3, 5, 7) are index-aligned and solve exactly,
// larger grids solve on a best-effort basis and fall back to the
// unadjusted layout when the bound is hit (visible overflow over
// invisible windows, per spec.md §4.3).
func Solve(tag model.LayoutTag, ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, ratios []float64, opts Options, minimums MinimumLookup) []Placement {
	algo, ok := Lookup(tag)
	if !ok || !algo.SupportsSolver() || len(ids) < 2 || minimums == nil {
		return Compute(tag, ids, screen, gaps, ratios, opts)
	}

	n := len(ids)
	working := normalizeRatios(ratios, n)
	placements := algo.Compute(ids, screen, gaps, working, opts)

	for iter := 0; iter < maxSolveIterations; iter++ {
		idx, axis := firstViolation(placements, minimums)
		if idx < 0 {
			return placements
		}

		min, _ := minimums(placements[idx].WindowID)
		target := targetFraction(working[idx], placements[idx].Frame, min, axis)
		grown := growShare(working, idx, target)
		if grown == nil {
			break // already at the ratio bound; cannot satisfy this window
		}

		next := algo.Compute(ids, screen, gaps, grown, opts)
		if !improves(placements, next, idx, axis) {
			break // the index-aligned ratio does not actually govern this window
		}
		working = grown
		placements = next
	}
	return placements
}

// firstViolation returns the index of the first window whose frame is
// smaller than its minimum along some axis, and which axis ('w' or
// 'h'). Returns -1 if every window satisfies its minimum.
func firstViolation(placements []Placement, minimums MinimumLookup) (idx int, axis byte) {
	for i, p := range placements {
		min, ok := minimums(p.WindowID)
		if !ok || min.IsZero() {
			continue
		}
		if min.W > p.Frame.W {
			return i, 'w'
		}
		if min.H > p.Frame.H {
			return i, 'h'
		}
	}
	return -1, 0
}

// targetFraction returns the normalized ratio idx would need, given its
// current ratio produced a frame of size frame.W/frame.H along axis,
// to instead produce exactly min's size along that axis.
func targetFraction(currentRatio float64, frame geometry.Rect, min model.Size, axis byte) float64 {
	var have, want float64
	if axis == 'w' {
		have, want = frame.W, min.W
	} else {
		have, want = frame.H, min.H
	}
	if have <= 0 {
		return currentRatio
	}
	return geometry.ClampRatio(currentRatio * (want / have))
}

// growShare holds ratio idx fixed at target and scales every other
// ratio down so the full vector still sums to 1 with idx's share equal
// to target. Returns nil if target is not actually larger than idx's
// current ratio (already at the bound, or the sibling pool has nothing
// left to give).
func growShare(current []float64, idx int, target float64) []float64 {
	if target <= current[idx]+1e-9 {
		return nil
	}
	othersSum := 1 - current[idx]
	if othersSum <= 1e-9 {
		return nil
	}
	scale := (1 - target) / othersSum
	out := make([]float64, len(current))
	for i, r := range current {
		if i == idx {
			out[i] = target
			continue
		}
		out[i] = geometry.ClampRatio(r * scale)
	}
	return out
}

// improves reports whether next grew the violating window along axis
// relative to placements, so the solver can detect a dead end (e.g. a
// grid shape where the ratio index does not actually govern that
// window) and stop instead of looping to the iteration cap.
func improves(placements, next []Placement, idx int, axis byte) bool {
	if idx >= len(placements) || idx >= len(next) {
		return false
	}
	if axis == 'w' {
		return next[idx].Frame.W > placements[idx].Frame.W+0.01
	}
	return next[idx].Frame.H > placements[idx].Frame.H+0.01
}

package layout

import (
	"github.com/yourorg/tilecore/internal/geometry"
	"github.com/yourorg/tilecore/internal/model"
)

// splitAlgorithm implements Split, SplitH, and SplitV: a single row
// (SplitH) or column (SplitV) of cells, one ratio per cell, normalized to
// sum to 1. Split resolves to a row on landscape screens and a column on
// portrait screens (spec.md §4.3).
type splitAlgorithm struct {
	tag model.LayoutTag
}

func (s splitAlgorithm) Tag() model.LayoutTag { return s.tag }

func (s splitAlgorithm) Name() string {
	switch s.tag {
	case model.SplitH:
		return "split_h"
	case model.SplitV:
		return "split_v"
	default:
		return "split"
	}
}

func (s splitAlgorithm) SupportsSolver() bool { return true }

func (s splitAlgorithm) Compute(ids []model.WindowID, screen geometry.Rect, gaps geometry.Gaps, ratios []float64, _ Options) []Placement {
	row := s.rowWise(screen)
	return tileRow(ids, screen, gaps, ratios, row)
}

func (s splitAlgorithm) rowWise(screen geometry.Rect) bool {
	switch s.tag {
	case model.SplitH:
		return true
	case model.SplitV:
		return false
	default: // Split: choose by aspect
		return screen.IsLandscape()
	}
}

// tileRow lays out n cells along a single axis: side by side (row=true,
// dividing width) or stacked (row=false, dividing height). Shared by
// Split/SplitH/SplitV and by Dwindle's per-level bisection.
func tileRow(ids []model.WindowID, rect geometry.Rect, gaps geometry.Gaps, ratios []float64, row bool) []Placement {
	n := len(ids)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Placement{{WindowID: ids[0], Frame: rect}}
	}

	norm := normalizeRatios(ratios, n)
	out := make([]Placement, n)

	if row {
		gap := gaps.InnerH
		avail := rect.W - gap*float64(n-1)
		x := rect.X
		for i := 0; i < n; i++ {
			w := avail * norm[i]
			if i == n-1 {
				w = rect.Right() - x
			}
			out[i] = Placement{WindowID: ids[i], Frame: geometry.NewRect(x, rect.Y, w, rect.H)}
			x += w + gap
		}
	} else {
		gap := gaps.InnerV
		avail := rect.H - gap*float64(n-1)
		y := rect.Y
		for i := 0; i < n; i++ {
			h := avail * norm[i]
			if i == n-1 {
				h = rect.Bottom() - y
			}
			out[i] = Placement{WindowID: ids[i], Frame: geometry.NewRect(rect.X, y, rect.W, h)}
			y += h + gap
		}
	}
	return out
}
